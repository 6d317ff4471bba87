package scroll

import (
	"time"
)

// Strategy is one scrolling behaviour. Execute returns a completion that
// resolves once the scroll it started, if any, finishes.
type Strategy interface {
	Execute(s Surface) (*Completion, error)
}

// PageScroller moves by a percentage of the visible height.
type PageScroller struct {
	engine   *Engine
	dir      Direction
	percent  float64
	duration time.Duration
}

// NewPageScroller creates a page up or page down strategy.
func NewPageScroller(engine *Engine, dir Direction, percent float64, duration time.Duration) *PageScroller {
	return &PageScroller{engine: engine, dir: dir, percent: percent, duration: duration}
}

func (p *PageScroller) Execute(s Surface) (*Completion, error) {
	distance := p.percent / 100 * s.ClientHeight()
	target := s.ScrollTop() + distance*float64(p.dir)
	return p.engine.SmoothScrollTo(target, p.duration)
}

// SectionScroller moves to the nearest section beyond the current offset.
type SectionScroller struct {
	engine    *Engine
	locator   SectionLocator
	selectors []string
	dir       Direction
	duration  time.Duration
}

// NewSectionScroller creates a next (Down) or previous (Up) section strategy.
func NewSectionScroller(engine *Engine, locator SectionLocator, selectors []string, dir Direction, duration time.Duration) *SectionScroller {
	return &SectionScroller{
		engine:    engine,
		locator:   locator,
		selectors: append([]string(nil), selectors...),
		dir:       dir,
		duration:  duration,
	}
}

func (sc *SectionScroller) Execute(s Surface) (*Completion, error) {
	target, ok := sc.Target(s)
	if !ok {
		return Resolved(), nil
	}
	return sc.engine.SmoothScrollTo(sc.locator.Offset(s, target), sc.duration)
}

// Target reports the section Execute would scroll to.
func (sc *SectionScroller) Target(s Surface) (Element, bool) {
	sections := sc.locator.Sections(s, sc.selectors)
	current := s.ScrollTop()

	if sc.dir == Down {
		for _, el := range sections {
			if sc.locator.Offset(s, el) > current+MinScrollDistance {
				return el, true
			}
		}
		return nil, false
	}
	for i := len(sections) - 1; i >= 0; i-- {
		if sc.locator.Offset(s, sections[i]) < current-MinScrollDistance {
			return sections[i], true
		}
	}
	return nil, false
}

// EdgeScroller brings the first (Up) or last (Down) visible section to the
// top of the viewport.
type EdgeScroller struct {
	engine    *Engine
	locator   SectionLocator
	selectors []string
	dir       Direction
	margin    float64
	duration  time.Duration
}

// NewEdgeScroller creates an edge up or edge down strategy. margin insets the
// viewport on both edges when deciding visibility.
func NewEdgeScroller(engine *Engine, locator SectionLocator, selectors []string, dir Direction, margin float64, duration time.Duration) *EdgeScroller {
	return &EdgeScroller{
		engine:    engine,
		locator:   locator,
		selectors: append([]string(nil), selectors...),
		dir:       dir,
		margin:    margin,
		duration:  duration,
	}
}

func (ed *EdgeScroller) Execute(s Surface) (*Completion, error) {
	target, ok := ed.Target(s)
	if !ok {
		return Resolved(), nil
	}
	return ed.engine.SmoothScrollTo(ed.locator.Offset(s, target), ed.duration)
}

// Target reports the section Execute would bring to the top.
func (ed *EdgeScroller) Target(s Surface) (Element, bool) {
	var visible []Element
	for _, el := range ed.locator.Sections(s, ed.selectors) {
		if ed.locator.Visible(s, el, ed.margin) {
			visible = append(visible, el)
		}
	}
	if len(visible) == 0 {
		return nil, false
	}
	if ed.dir == Up {
		return visible[0], true
	}
	return visible[len(visible)-1], true
}

// AutoScroller scrolls continuously until a boundary or a stop.
type AutoScroller struct {
	engine *Engine
	dir    Direction
	speed  float64
}

// NewAutoScroller creates a continuous scroll strategy; speed is in pixels per second.
func NewAutoScroller(engine *Engine, dir Direction, speed float64) *AutoScroller {
	return &AutoScroller{engine: engine, dir: dir, speed: speed}
}

func (a *AutoScroller) Execute(Surface) (*Completion, error) {
	return a.engine.ContinuousScroll(a.dir, a.speed)
}

// Stopper cancels whatever is animating.
type Stopper struct {
	engine *Engine
}

func NewStopper(engine *Engine) *Stopper {
	return &Stopper{engine: engine}
}

func (st *Stopper) Execute(Surface) (*Completion, error) {
	st.engine.StopAnimation()
	return Resolved(), nil
}

// Toggler stops a running animation, or runs the wrapped strategy when
// nothing is animating.
type Toggler struct {
	engine *Engine
	inner  Strategy
}

func NewToggler(engine *Engine, inner Strategy) *Toggler {
	return &Toggler{engine: engine, inner: inner}
}

func (t *Toggler) Execute(s Surface) (*Completion, error) {
	if t.engine.IsActive() {
		t.engine.StopAnimation()
		return Resolved(), nil
	}
	return t.inner.Execute(s)
}
