package scroll_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glide/internal/scroll"
	"glide/internal/scroll/scrolltest"
)

type recordingNotifier struct {
	messages []string
}

func (r *recordingNotifier) Notify(message string, _ time.Duration) {
	r.messages = append(r.messages, message)
}

type panickingLocator struct {
	scroll.DocumentLocator
}

func (panickingLocator) Sections(scroll.Surface, []string) []scroll.Element {
	panic("section index corrupted")
}

type controllerFixture struct {
	surface    *scrolltest.Surface
	clock      *scrolltest.Clock
	engine     *scroll.Engine
	notifier   *recordingNotifier
	controller *scroll.Controller
}

func newControllerFixture(t *testing.T, settings scroll.Settings, locator scroll.SectionLocator) *controllerFixture {
	t.Helper()
	f := &controllerFixture{
		surface:  scrolltest.NewSurface(800, 4000),
		clock:    scrolltest.NewClock(),
		notifier: &recordingNotifier{},
	}
	f.engine = scroll.NewEngine(f.clock, nil)
	f.controller = scroll.NewController(scroll.ControllerOptions{
		Engine:   f.engine,
		Resolver: scroll.SurfaceResolverFunc(func() scroll.Surface {
			if f.surface == nil {
				return nil
			}
			return f.surface
		}),
		Notifier: f.notifier,
		Locator:  locator,
	}, settings)
	return f
}

func TestControllerRegistersCatalog(t *testing.T) {
	f := newControllerFixture(t, scroll.DefaultSettings(), nil)

	for _, cmd := range scroll.Catalog() {
		assert.True(t, f.controller.Has(cmd.ID), cmd.ID)
		assert.NotEmpty(t, cmd.Name, cmd.ID)
	}
	assert.False(t, f.controller.Has("scroll-sideways"))
}

func TestControllerPageDownScenario(t *testing.T) {
	f := newControllerFixture(t, scroll.DefaultSettings(), nil)

	done := f.controller.ExecuteCommand(scroll.CommandPageDown)
	assert.Same(t, f.surface, f.engine.Surface(), "surface stays bound while animating")

	f.clock.RunUntilIdle(1000)

	assert.True(t, done.IsResolved())
	assert.Equal(t, 400.0, f.surface.Top)
	assert.Nil(t, f.engine.Surface(), "surface released after completion")
	assert.Empty(t, f.notifier.messages)
}

func TestControllerUnknownCommandIsIgnored(t *testing.T) {
	f := newControllerFixture(t, scroll.DefaultSettings(), nil)

	done := f.controller.ExecuteCommand("scroll-sideways")

	assert.True(t, done.IsResolved())
	assert.Empty(t, f.notifier.messages)
	assert.Empty(t, f.surface.Writes)
}

func TestControllerWithoutSurfaceNotifies(t *testing.T) {
	f := newControllerFixture(t, scroll.DefaultSettings(), nil)
	f.surface = nil

	var done *scroll.Completion
	require.NotPanics(t, func() {
		done = f.controller.ExecuteCommand(scroll.CommandPageDown)
	})

	assert.True(t, done.IsResolved())
	require.Len(t, f.notifier.messages, 1)
	assert.Contains(t, f.notifier.messages[0], "Page down")
	assert.Nil(t, f.engine.Surface())
}

func TestControllerIsolatesStrategyPanics(t *testing.T) {
	f := newControllerFixture(t, scroll.DefaultSettings(), panickingLocator{})

	var done *scroll.Completion
	require.NotPanics(t, func() {
		done = f.controller.ExecuteCommand(scroll.CommandSectionNext)
	})

	assert.True(t, done.IsResolved())
	require.Len(t, f.notifier.messages, 1)
	assert.Contains(t, f.notifier.messages[0], "section index corrupted")
	assert.Nil(t, f.engine.Surface(), "engine released on failure")
}

func TestControllerToggleStartsThenStops(t *testing.T) {
	f := newControllerFixture(t, scroll.DefaultSettings(), nil)

	started := f.controller.ExecuteCommand(scroll.CommandToggleAutoScrollDown)
	f.clock.Step()
	assert.True(t, f.engine.IsActive())
	assert.Greater(t, f.surface.Top, 0.0)

	stopped := f.controller.ExecuteCommand(scroll.CommandToggleAutoScrollDown)
	position := f.surface.Top
	f.clock.Advance(time.Second)

	assert.True(t, stopped.IsResolved())
	assert.False(t, started.IsResolved(), "cancelled animation never resolves")
	assert.False(t, f.engine.IsActive())
	assert.Equal(t, position, f.surface.Top)
	assert.Zero(t, f.clock.Pending())
}

func TestControllerStopCancelsAutoScroll(t *testing.T) {
	f := newControllerFixture(t, scroll.DefaultSettings(), nil)

	f.controller.ExecuteCommand(scroll.CommandAutoScrollDown)
	f.clock.Advance(100 * time.Millisecond)
	done := f.controller.ExecuteCommand(scroll.CommandStop)

	assert.True(t, done.IsResolved())
	assert.Zero(t, f.clock.Pending())
	assert.Nil(t, f.engine.Surface())
}

func TestControllerNoopCommandLeavesAutoScrollRunning(t *testing.T) {
	f := newControllerFixture(t, scroll.DefaultSettings(), nil)

	f.controller.ExecuteCommand(scroll.CommandAutoScrollDown)
	f.clock.Step()
	done := f.controller.ExecuteCommand(scroll.CommandSectionNext)
	assert.True(t, done.IsResolved())

	before := f.surface.Top
	f.clock.Step()
	assert.Greater(t, f.surface.Top, before)
}

func TestControllerNewCommandSupersedesRunningOne(t *testing.T) {
	f := newControllerFixture(t, scroll.DefaultSettings(), nil)
	f.surface.Top = 2000

	auto := f.controller.ExecuteCommand(scroll.CommandAutoScrollDown)
	f.clock.Advance(50 * time.Millisecond)
	page := f.controller.ExecuteCommand(scroll.CommandPageUp)
	assert.Equal(t, 1, f.clock.Pending())

	start := f.surface.Top
	f.clock.RunUntilIdle(1000)

	assert.False(t, auto.IsResolved())
	assert.True(t, page.IsResolved())
	assert.Equal(t, start-400, f.surface.Top)
}

func TestControllerUsesItsSettings(t *testing.T) {
	settings := scroll.DefaultSettings()
	settings.PagePercent = 25
	settings.PageDuration = 100 * time.Millisecond
	f := newControllerFixture(t, settings, nil)

	f.controller.ExecuteCommand(scroll.CommandPageDown)
	f.clock.RunUntilIdle(1000)

	assert.Equal(t, 200.0, f.surface.Top)
}

func TestControllerSectionNavigation(t *testing.T) {
	f := newControllerFixture(t, scroll.DefaultSettings(), nil)
	f.surface.AddSections(0, 640, 1280, 2560)

	f.controller.ExecuteCommand(scroll.CommandSectionNext)
	f.clock.RunUntilIdle(1000)
	assert.Equal(t, 640.0, f.surface.Top)

	f.controller.ExecuteCommand(scroll.CommandSectionNext)
	f.clock.RunUntilIdle(1000)
	assert.Equal(t, 1280.0, f.surface.Top)

	f.controller.ExecuteCommand(scroll.CommandSectionPrevious)
	f.clock.RunUntilIdle(1000)
	assert.Equal(t, 640.0, f.surface.Top)
}
