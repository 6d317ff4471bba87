//go:build e2e && unix

package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/require"
)

const (
	maxCapture   = 1 << 20 // bytes of terminal output kept per session
	readyMarker  = "__READY__"
	screenRows   = 40
	screenCols   = 120
	seeTimeout   = 3 * time.Second
	pollInterval = 25 * time.Millisecond
)

// Keys understood by the default key map.
const (
	keyPageDown    = " "
	keyLineDown    = "j"
	keyNextSection = "n"
	keyPrevSection = "p"
	keyBottom      = "G"
	keyToggleAuto  = "t"
	keyStop        = "x"
	keyQuit        = "q"
	keyCtrlC       = "\x03"
)

// scrollingIndicator is shown on the status line while an animation runs.
const scrollingIndicator = "▶ scrolling"

// ansiRe matches the escape sequences bubbletea emits: CSI, OSC, charset
// selection, keypad mode and carriage returns.
var ansiRe = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]|\x1b\][^\x07]*\x07|\x1b[()][A-Za-z]|\x1b[=>]|\r`)

// pager is one glide process running in a pseudo-terminal with an isolated
// home directory.
type pager struct {
	t    *testing.T
	home string
	cmd  *exec.Cmd
	pty  *os.File

	exited  chan struct{}
	exitErr error

	mu      sync.Mutex
	out     []byte
	dropped int
	lastOut time.Time
}

func newPager(t *testing.T) *pager {
	t.Helper()
	p := &pager{t: t, home: t.TempDir(), exited: make(chan struct{})}
	t.Cleanup(p.close)
	return p
}

// writeDoc writes a document into the home directory and returns its path.
func (p *pager) writeDoc(name, content string) string {
	p.t.Helper()
	path := filepath.Join(p.home, name)
	require.NoError(p.t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// writeConfig writes config.toml where glide looks for it.
func (p *pager) writeConfig(content string) {
	p.t.Helper()
	dir := filepath.Join(p.home, ".config", "glide")
	require.NoError(p.t, os.MkdirAll(dir, 0755))
	require.NoError(p.t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644))
}

// start launches glide with args.
func (p *pager) start(args ...string) {
	p.t.Helper()
	p.cmd = exec.Command(binPath, args...)
	p.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C.UTF-8",
		"HOME="+p.home,
		"XDG_CONFIG_HOME="+filepath.Join(p.home, ".config"),
		"GLIDE_E2E_TEST=1",
	)

	f, err := pty.StartWithSize(p.cmd, &pty.Winsize{Rows: screenRows, Cols: screenCols})
	require.NoError(p.t, err, "start glide in a pty")
	p.pty = f

	go p.capture()
	go func() {
		p.exitErr = p.cmd.Wait()
		close(p.exited)
	}()
}

// open starts glide on a fresh document and waits for its first frame.
func (p *pager) open(name, content string) {
	p.t.Helper()
	p.start(p.writeDoc(name, content))
	require.True(p.t, p.ready(), "glide never signalled readiness")
	require.True(p.t, p.see(name), "header should name the file")
}

func (p *pager) capture() {
	buf := make([]byte, 8192)
	for {
		n, err := p.pty.Read(buf)
		if n > 0 {
			p.mu.Lock()
			p.out = append(p.out, buf[:n]...)
			if over := len(p.out) - maxCapture; over > 0 {
				p.out = p.out[over:]
				p.dropped += over
			}
			p.lastOut = time.Now()
			p.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// press types keys into the terminal.
func (p *pager) press(keys ...string) {
	p.t.Helper()
	for _, k := range keys {
		_, err := p.pty.Write([]byte(k))
		require.NoError(p.t, err)
	}
}

// mark returns a position in the output stream; the *Since helpers only look
// at what was drawn after it.
func (p *pager) mark() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dropped + len(p.out)
}

func (p *pager) rawSince(mark int) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := max(mark-p.dropped, 0)
	return string(p.out[min(i, len(p.out)):])
}

// screenSince returns the text drawn after mark with escape sequences removed.
func (p *pager) screenSince(mark int) string {
	return ansiRe.ReplaceAllString(p.rawSince(mark), "")
}

func (p *pager) waitFor(timeout time.Duration, pred func() bool) bool {
	deadline := time.Now().Add(timeout)
	for {
		if pred() {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(pollInterval)
	}
}

func (p *pager) ready() bool {
	return p.waitFor(5*time.Second, func() bool {
		return strings.Contains(p.rawSince(0), readyMarker)
	})
}

// see waits for text anywhere in the session's output.
func (p *pager) see(text string) bool {
	return p.seeSince(0, text)
}

// seeSince waits for text to be drawn after mark.
func (p *pager) seeSince(mark int, text string) bool {
	return p.waitFor(seeTimeout, func() bool {
		return strings.Contains(p.screenSince(mark), text)
	})
}

// statusShows waits for the status line to name section title: the title,
// padding, the optional animation indicator and the scroll percentage.
func (p *pager) statusShows(mark int, title string) bool {
	status := regexp.MustCompile(regexp.QuoteMeta(title) + ` {2,}(` + scrollingIndicator + `\s+)?\s*\d+%`)
	return p.waitFor(seeTimeout, func() bool {
		return status.MatchString(p.screenSince(mark))
	})
}

// scrolling waits for the animation indicator to be drawn after mark.
func (p *pager) scrolling(mark int) bool {
	return p.seeSince(mark, scrollingIndicator)
}

// settles waits until glide has drawn nothing for quiet, which means no
// animation frame is moving the view.
func (p *pager) settles(quiet, timeout time.Duration) bool {
	return p.waitFor(timeout, func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()
		return time.Since(p.lastOut) >= quiet
	})
}

// exit waits for the process to end and reports its error.
func (p *pager) exit(timeout time.Duration) (exited bool, err error) {
	select {
	case <-p.exited:
		return true, p.exitErr
	case <-time.After(timeout):
		return false, nil
	}
}

func (p *pager) close() {
	if p.t.Failed() && p.cmd != nil {
		tail := p.screenSince(0)
		if len(tail) > 4096 {
			tail = tail[len(tail)-4096:]
		}
		p.t.Logf("--- terminal tail ---\n%s", tail)
	}
	if p.cmd != nil && p.cmd.Process != nil {
		select {
		case <-p.exited:
		default:
			_ = p.cmd.Process.Kill()
			<-p.exited
		}
	}
	if p.pty != nil {
		_ = p.pty.Close()
	}
}

// sectionedDoc builds a markdown file with one heading per title, each
// followed by 60 numbered body lines.
func sectionedDoc(titles ...string) string {
	var b bytes.Buffer
	for _, title := range titles {
		fmt.Fprintf(&b, "# %s\n\n", title)
		for i := 1; i <= 60; i++ {
			fmt.Fprintf(&b, "%s body line %d\n", title, i)
		}
		b.WriteString("\n")
	}
	return b.String()
}
