package scroll

import "sync"

// Completion resolves once when an animation or command finishes. A
// completion belonging to a superseded animation is never resolved.
type Completion struct {
	mu        sync.Mutex
	done      chan struct{}
	resolved  bool
	callbacks []func()
}

// NewCompletion returns an unresolved completion.
func NewCompletion() *Completion {
	return &Completion{done: make(chan struct{})}
}

// Resolved returns a completion that has already finished.
func Resolved() *Completion {
	c := NewCompletion()
	c.Resolve()
	return c
}

// Resolve marks the completion finished and runs its callbacks in
// registration order. Later calls do nothing.
func (c *Completion) Resolve() {
	c.mu.Lock()
	if c.resolved {
		c.mu.Unlock()
		return
	}
	c.resolved = true
	callbacks := c.callbacks
	c.callbacks = nil
	close(c.done)
	c.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

// OnDone registers fn to run on resolution. If the completion is already
// resolved fn runs immediately.
func (c *Completion) OnDone(fn func()) {
	c.mu.Lock()
	if !c.resolved {
		c.callbacks = append(c.callbacks, fn)
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	fn()
}

// Done is closed on resolution.
func (c *Completion) Done() <-chan struct{} {
	return c.done
}

// IsResolved reports whether Resolve has been called.
func (c *Completion) IsResolved() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolved
}
