package scroll

// Surface is a scrollable region with a single vertical offset.
//
// Implementations clamp writes to [0, ScrollHeight-ClientHeight] the way a
// browser clamps scrollTop; the engine relies on that to detect boundaries.
// Surfaces are compared by identity, so implementations should be pointers.
type Surface interface {
	ScrollTop() float64
	SetScrollTop(offset float64)
	ClientHeight() float64
	ScrollHeight() float64
	// Elements returns the descendants matching any of the selectors, in
	// document order.
	Elements(selectors []string) []Element
}

// Element is a section candidate inside a surface.
type Element interface {
	// Offset is the element's top edge measured from the start of the
	// surface's content, i.e. relative to its scroll origin.
	Offset() float64
}

// SurfaceResolver finds the surface commands should act on. It returns nil
// when nothing is eligible.
type SurfaceResolver interface {
	ResolveSurface() Surface
}

// SurfaceResolverFunc adapts a function to SurfaceResolver.
type SurfaceResolverFunc func() Surface

func (f SurfaceResolverFunc) ResolveSurface() Surface { return f() }

// Direction is the sign applied to scroll distances.
type Direction int

const (
	Up   Direction = -1
	Down Direction = 1
)

func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}
