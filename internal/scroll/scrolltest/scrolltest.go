// Package scrolltest provides a virtual clock and an in-memory surface for
// exercising the scroll engine without real timers.
package scrolltest

import (
	"math"
	"sort"
	"time"

	"glide/internal/scroll"
)

// Clock is a scroll.Scheduler whose time only moves when Advance is called.
// Callbacks run synchronously on the caller's goroutine.
type Clock struct {
	now    time.Duration
	seq    int
	timers []*timer
	fired  int
}

type timer struct {
	clock *Clock
	due   time.Duration
	seq   int
	fn    func()
}

func (t *timer) Stop() bool {
	return t.clock.remove(t)
}

// NewClock returns a clock at time zero.
func NewClock() *Clock {
	return &Clock{}
}

// AfterFunc schedules fn to run once the clock has advanced by d.
func (c *Clock) AfterFunc(d time.Duration, fn func()) scroll.Timer {
	c.seq++
	t := &timer{clock: c, due: c.now + d, seq: c.seq, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// Now is the virtual time elapsed since the clock was created.
func (c *Clock) Now() time.Duration {
	return c.now
}

// Pending is the number of scheduled callbacks that have not run.
func (c *Clock) Pending() int {
	return len(c.timers)
}

// Fired is the number of callbacks run so far.
func (c *Clock) Fired() int {
	return c.fired
}

// Advance moves time forward by d, running every callback that falls due,
// including those scheduled by callbacks during the advance.
func (c *Clock) Advance(d time.Duration) {
	target := c.now + d
	for {
		next := c.next()
		if next == nil || next.due > target {
			break
		}
		c.remove(next)
		c.now = next.due
		c.fired++
		next.fn()
	}
	c.now = target
}

// Step runs exactly one frame's worth of time.
func (c *Clock) Step() {
	c.Advance(scroll.FrameInterval)
}

// RunUntilIdle runs callbacks in due order until none are pending or limit
// callbacks have run. It returns the number of callbacks run.
func (c *Clock) RunUntilIdle(limit int) int {
	ran := 0
	for ran < limit {
		next := c.next()
		if next == nil {
			break
		}
		c.remove(next)
		c.now = next.due
		c.fired++
		ran++
		next.fn()
	}
	return ran
}

func (c *Clock) next() *timer {
	if len(c.timers) == 0 {
		return nil
	}
	sort.SliceStable(c.timers, func(i, j int) bool {
		if c.timers[i].due == c.timers[j].due {
			return c.timers[i].seq < c.timers[j].seq
		}
		return c.timers[i].due < c.timers[j].due
	})
	return c.timers[0]
}

func (c *Clock) remove(t *timer) bool {
	for i, pending := range c.timers {
		if pending == t {
			c.timers = append(c.timers[:i], c.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Element is a section candidate at a fixed content offset.
type Element struct {
	Name string
	Top  float64
}

func (e *Element) Offset() float64 { return e.Top }

// Surface is an in-memory scroll.Surface that clamps writes like a browser
// viewport and records every write.
type Surface struct {
	Top      float64
	Visible  float64
	Content  float64
	Sections []*Element
	Writes   []float64
}

// NewSurface returns a surface with the given visible and content heights.
func NewSurface(visible, content float64) *Surface {
	return &Surface{Visible: visible, Content: content}
}

func (s *Surface) ScrollTop() float64    { return s.Top }
func (s *Surface) ClientHeight() float64 { return s.Visible }
func (s *Surface) ScrollHeight() float64 { return s.Content }

func (s *Surface) SetScrollTop(offset float64) {
	s.Writes = append(s.Writes, offset)
	limit := math.Max(s.Content-s.Visible, 0)
	s.Top = math.Min(math.Max(offset, 0), limit)
}

// Elements returns every section; selectors are ignored.
func (s *Surface) Elements([]string) []scroll.Element {
	out := make([]scroll.Element, len(s.Sections))
	for i, el := range s.Sections {
		out[i] = el
	}
	return out
}

// AddSections appends named elements at the given offsets, in order.
func (s *Surface) AddSections(offsets ...float64) *Surface {
	for _, off := range offsets {
		s.Sections = append(s.Sections, &Element{Name: sectionName(len(s.Sections)), Top: off})
	}
	return s
}

func sectionName(i int) string {
	return "section-" + string(rune('a'+i))
}
