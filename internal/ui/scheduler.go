package ui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"glide/internal/scroll"
)

// frameMsg carries a scheduled engine callback into the update loop so that
// the engine is only ever touched from one goroutine.
type frameMsg struct {
	run func()
}

// frameScheduler implements scroll.Scheduler with real timers that post
// frameMsg to the program.
type frameScheduler struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func (f *frameScheduler) setSend(send func(tea.Msg)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.send = send
}

func (f *frameScheduler) AfterFunc(d time.Duration, fn func()) scroll.Timer {
	return time.AfterFunc(d, func() {
		f.mu.Lock()
		send := f.send
		f.mu.Unlock()
		if send != nil {
			send(frameMsg{run: fn})
		}
	})
}
