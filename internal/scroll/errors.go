package scroll

import "errors"

var (
	// ErrNoActiveSurface is returned by engine primitives called before Activate.
	ErrNoActiveSurface = errors.New("no active scroll surface")

	// ErrNoSurface is reported when a command finds nothing to scroll.
	ErrNoSurface = errors.New("no scrollable surface found")
)
