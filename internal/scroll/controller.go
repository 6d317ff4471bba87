package scroll

import (
	"fmt"
	"log/slog"
	"time"

	"glide/internal/eventbus"
)

// DefaultNoticeDuration is how long failure notices stay on screen.
const DefaultNoticeDuration = 3 * time.Second

// Notifier shows a transient message to the user.
type Notifier interface {
	Notify(message string, d time.Duration)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string, d time.Duration)

func (f NotifierFunc) Notify(message string, d time.Duration) { f(message, d) }

// ControllerOptions holds the collaborators of a Controller. Engine and
// Resolver are required.
type ControllerOptions struct {
	Engine         *Engine
	Resolver       SurfaceResolver
	Notifier       Notifier
	Locator        SectionLocator
	Bus            eventbus.EventBus
	Logger         *slog.Logger
	NoticeDuration time.Duration
}

// Controller maps command ids to strategies and runs them against the
// current surface. It is the fault boundary: no strategy error escapes it.
type Controller struct {
	log        *slog.Logger
	engine     *Engine
	resolver   SurfaceResolver
	notifier   Notifier
	bus        eventbus.EventBus
	noticeTime time.Duration
	strategies map[string]Strategy
}

// NewController builds one strategy per catalog command from settings.
func NewController(opts ControllerOptions, settings Settings) *Controller {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	locator := opts.Locator
	if locator == nil {
		locator = DocumentLocator{}
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = NotifierFunc(func(string, time.Duration) {})
	}
	noticeTime := opts.NoticeDuration
	if noticeTime <= 0 {
		noticeTime = DefaultNoticeDuration
	}

	opts.Engine.SetEasing(EaseInOut(settings.EaseIn, settings.EaseOut))

	return &Controller{
		log:        log.With("component", "scroll-controller"),
		engine:     opts.Engine,
		resolver:   opts.Resolver,
		notifier:   notifier,
		bus:        opts.Bus,
		noticeTime: noticeTime,
		strategies: buildStrategies(opts.Engine, locator, settings),
	}
}

// Has reports whether id is registered.
func (c *Controller) Has(id string) bool {
	_, ok := c.strategies[id]
	return ok
}

// ExecuteCommand runs the strategy registered for id. The returned completion
// resolves when the command's scroll finishes and the engine has released the
// surface; unknown commands and failures resolve immediately.
func (c *Controller) ExecuteCommand(id string) *Completion {
	strategy, ok := c.strategies[id]
	if !ok {
		c.log.Warn("unknown scroll command", "command", id)
		return Resolved()
	}

	pending, err := c.run(id, strategy)
	if err != nil {
		c.fail(id, err)
		return Resolved()
	}

	if c.bus != nil {
		c.bus.Publish(eventbus.ScrollCommandExecutedEvent{CommandID: id})
	}

	done := NewCompletion()
	pending.OnDone(func() {
		c.engine.Deactivate()
		done.Resolve()
	})
	return done
}

// run activates the engine on the resolved surface and executes strategy.
// The engine is released on every failure path, including panics.
func (c *Controller) run(id string, strategy Strategy) (pending *Completion, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.engine.Deactivate()
			pending, err = nil, fmt.Errorf("command %s panicked: %v", id, r)
		}
	}()

	surface := c.resolver.ResolveSurface()
	if surface == nil {
		return nil, fmt.Errorf("command %s: %w", id, ErrNoSurface)
	}

	c.engine.Activate(surface)
	pending, err = strategy.Execute(surface)
	if err != nil {
		c.engine.Deactivate()
		return nil, fmt.Errorf("command %s: %w", id, err)
	}
	if pending == nil {
		pending = Resolved()
	}
	return pending, nil
}

func (c *Controller) fail(id string, err error) {
	c.log.Error("scroll command failed", "command", id, "error", err)

	name := id
	if cmd, ok := LookupCommand(id); ok {
		name = cmd.Name
	}
	c.notifier.Notify(fmt.Sprintf("%s failed: %v", name, err), c.noticeTime)

	if c.bus != nil {
		c.bus.Publish(eventbus.ScrollCommandFailedEvent{CommandID: id, Err: err})
	}
}
