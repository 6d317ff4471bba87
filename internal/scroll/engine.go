package scroll

import (
	"fmt"
	"log/slog"
	"math"
	"time"
)

// MinScrollDistance is the pixel distance at or below which a smooth scroll
// jumps directly. Section navigation uses it as the gap that keeps the section
// already at the top from being selected again.
const MinScrollDistance = 5.0

// boundaryGraceFrames is how many eased frames must pass before an unchanged
// offset counts as a boundary.
const boundaryGraceFrames = 2

// Engine owns the active surface and the single running animation.
//
// Engine is not safe for concurrent use. All calls, and all scheduler
// callbacks, must happen on one goroutine.
type Engine struct {
	log     *slog.Logger
	sched   Scheduler
	easing  EasingFunc
	surface Surface

	timer   Timer
	session uint64
}

// NewEngine creates an engine driven by sched. A nil logger discards output.
func NewEngine(sched Scheduler, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Engine{
		log:    log.With("component", "scroll-engine"),
		sched:  sched,
		easing: EaseInOut(1, 1),
	}
}

// SetEasing replaces the easing used by SmoothScrollTo. Nil restores linear.
func (e *Engine) SetEasing(fn EasingFunc) {
	if fn == nil {
		fn = EaseLinear
	}
	e.easing = fn
}

// Activate binds s as the target of subsequent scroll calls.
func (e *Engine) Activate(s Surface) {
	if e.surface != nil && e.surface != s {
		e.log.Warn("activating surface while another is still bound")
		e.Deactivate()
	}
	e.surface = s
}

// Deactivate releases the bound surface. An animation already running keeps
// driving the surface it started on until it ends or is stopped.
func (e *Engine) Deactivate() {
	if e.surface == nil {
		e.log.Debug("deactivate called with no active surface")
		return
	}
	e.surface = nil
}

// Surface returns the bound surface or nil.
func (e *Engine) Surface() Surface {
	return e.surface
}

// IsActive reports whether a surface is bound and an animation is running.
func (e *Engine) IsActive() bool {
	return e.surface != nil && e.timer != nil
}

// Animating reports whether a frame is scheduled, whether or not a surface
// is still bound.
func (e *Engine) Animating() bool {
	return e.timer != nil
}

// StopAnimation cancels the running animation, leaving the offset where it
// is. The cancelled animation's completion never resolves.
func (e *Engine) StopAnimation() {
	e.session++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
		e.log.Debug("animation stopped")
	}
}

// DirectScroll moves the active surface to target immediately. Negative
// targets clamp to the top.
func (e *Engine) DirectScroll(target float64) error {
	if e.surface == nil {
		return fmt.Errorf("direct scroll: %w", ErrNoActiveSurface)
	}
	write(e.surface, target)
	return nil
}

// AnimatedScroll steps the offset by pixelsPerFrame once every interval.
// It stops when the offset no longer changes (a boundary), after totalFrames
// frames, or, when totalFrames is 0, only on a boundary or StopAnimation.
func (e *Engine) AnimatedScroll(interval time.Duration, pixelsPerFrame float64, totalFrames int) (*Completion, error) {
	s := e.surface
	if s == nil {
		return nil, fmt.Errorf("animated scroll: %w", ErrNoActiveSurface)
	}
	if interval <= 0 {
		interval = FrameInterval
	}
	e.log.Debug("linear animation started", "step", pixelsPerFrame, "frames", totalFrames)

	return e.start(interval, func(frame int) bool {
		before := s.ScrollTop()
		write(s, before+pixelsPerFrame)
		if s.ScrollTop() == before {
			return true
		}
		return totalFrames > 0 && frame >= totalFrames
	}), nil
}

// SmoothScrollTo eases the offset to target over duration. Short distances
// and durations under one frame jump directly.
func (e *Engine) SmoothScrollTo(target float64, duration time.Duration) (*Completion, error) {
	s := e.surface
	if s == nil {
		return nil, fmt.Errorf("smooth scroll: %w", ErrNoActiveSurface)
	}
	target = math.Max(target, 0)
	start := s.ScrollTop()
	distance := math.Abs(target - start)

	if duration < FrameInterval || distance <= MinScrollDistance {
		e.StopAnimation()
		write(s, target)
		return Resolved(), nil
	}

	totalFrames := int(math.Ceil(float64(duration) / float64(FrameInterval)))
	ease := e.easing
	e.log.Debug("smooth animation started", "from", start, "to", target, "frames", totalFrames)

	return e.start(FrameInterval, func(frame int) bool {
		if frame >= totalFrames {
			write(s, target)
			return true
		}
		progress := math.Min(float64(frame)/float64(totalFrames), 1)
		before := s.ScrollTop()
		write(s, start+(target-start)*ease(progress))
		return frame >= boundaryGraceFrames && s.ScrollTop() == before
	}), nil
}

// ContinuousScroll scrolls in dir at pixelsPerSecond until a boundary is hit
// or the animation is stopped.
func (e *Engine) ContinuousScroll(dir Direction, pixelsPerSecond float64) (*Completion, error) {
	step := pixelsPerSecond * frameMillis() / 1000 * float64(dir)
	return e.AnimatedScroll(FrameInterval, step, 0)
}

// start cancels any running animation and schedules step once per interval
// until it reports completion.
func (e *Engine) start(interval time.Duration, step func(frame int) bool) *Completion {
	e.StopAnimation()
	id := e.session
	done := NewCompletion()
	frame := 0

	var tick func()
	tick = func() {
		if id != e.session {
			return
		}
		frame++
		if step(frame) {
			e.timer = nil
			done.Resolve()
			return
		}
		e.timer = e.sched.AfterFunc(interval, tick)
	}
	e.timer = e.sched.AfterFunc(interval, tick)
	return done
}

func write(s Surface, offset float64) {
	s.SetScrollTop(math.Max(offset, 0))
}
