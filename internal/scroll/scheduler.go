package scroll

import (
	"time"

	"github.com/charmbracelet/harmonica"
)

// FrameRate is the nominal animation rate all timing math assumes.
const FrameRate = 60

// FrameInterval is the duration of one animation frame at FrameRate.
var FrameInterval = time.Duration(harmonica.FPS(FrameRate) * float64(time.Second))

// Timer is a pending scheduled callback.
type Timer interface {
	// Stop prevents the callback from running. It returns false if the
	// callback already ran or was stopped.
	Stop() bool
}

// Scheduler runs callbacks after a delay. Callbacks must be delivered on the
// goroutine that owns the Engine.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(d time.Duration, fn func()) Timer

func (f SchedulerFunc) AfterFunc(d time.Duration, fn func()) Timer { return f(d, fn) }

// frameMillis is FrameInterval in fractional milliseconds.
func frameMillis() float64 {
	return float64(FrameInterval) / float64(time.Millisecond)
}
