package scroll_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glide/internal/scroll"
	"glide/internal/scroll/scrolltest"
)

type countingStrategy struct {
	calls int
}

func (c *countingStrategy) Execute(scroll.Surface) (*scroll.Completion, error) {
	c.calls++
	return scroll.Resolved(), nil
}

func TestPageScroller(t *testing.T) {
	tests := []struct {
		name  string
		dir   scroll.Direction
		start float64
		want  float64
	}{
		{"down from top", scroll.Down, 0, 400},
		{"up from middle", scroll.Up, 1000, 600},
		{"up past top clamps", scroll.Up, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			surface := scrolltest.NewSurface(800, 4000)
			surface.Top = tt.start
			engine, clock := newEngine(t, surface)

			done, err := scroll.NewPageScroller(engine, tt.dir, 50, 250*time.Millisecond).Execute(surface)
			require.NoError(t, err)
			clock.RunUntilIdle(1000)

			assert.True(t, done.IsResolved())
			assert.Equal(t, tt.want, surface.Top)
		})
	}
}

func TestSectionNextKeepsDocumentOrderOnTies(t *testing.T) {
	surface := scrolltest.NewSurface(400, 4000).AddSections(100, 300, 300, 500)
	surface.Top = 200
	engine, _ := newEngine(t, surface)

	next := scroll.NewSectionScroller(engine, scroll.DocumentLocator{}, []string{"h1"}, scroll.Down, time.Second)
	target, ok := next.Target(surface)

	require.True(t, ok)
	assert.Same(t, surface.Sections[1], target)
}

func TestSectionNextFollowsDocumentOrderNotCoordinates(t *testing.T) {
	surface := scrolltest.NewSurface(400, 4000).AddSections(300, 100, 500)
	engine, _ := newEngine(t, surface)

	next := scroll.NewSectionScroller(engine, scroll.DocumentLocator{}, []string{"h1"}, scroll.Down, time.Second)
	target, ok := next.Target(surface)

	require.True(t, ok)
	assert.Same(t, surface.Sections[0], target, "the first qualifying section in document order wins")
}

func TestSectionPreviousScansBackward(t *testing.T) {
	surface := scrolltest.NewSurface(400, 4000).AddSections(100, 300, 300, 500)
	surface.Top = 400
	engine, _ := newEngine(t, surface)

	prev := scroll.NewSectionScroller(engine, scroll.DocumentLocator{}, []string{"h1"}, scroll.Up, time.Second)
	target, ok := prev.Target(surface)

	require.True(t, ok)
	assert.Same(t, surface.Sections[2], target)
}

func TestSectionGapSkipsSectionAtTop(t *testing.T) {
	surface := scrolltest.NewSurface(400, 4000).AddSections(100, 300, 500)
	surface.Top = 303
	engine, clock := newEngine(t, surface)

	done, err := scroll.NewSectionScroller(engine, scroll.DocumentLocator{}, []string{"h1"}, scroll.Down, 300*time.Millisecond).Execute(surface)
	require.NoError(t, err)
	clock.RunUntilIdle(1000)

	assert.True(t, done.IsResolved())
	assert.Equal(t, 500.0, surface.Top)
}

func TestSectionWithoutCandidateIsNoop(t *testing.T) {
	surface := scrolltest.NewSurface(400, 4000).AddSections(100, 300)
	surface.Top = 300
	engine, clock := newEngine(t, surface)

	done, err := scroll.NewSectionScroller(engine, scroll.DocumentLocator{}, []string{"h1"}, scroll.Down, time.Second).Execute(surface)
	require.NoError(t, err)

	assert.True(t, done.IsResolved())
	assert.Empty(t, surface.Writes)
	assert.Zero(t, clock.Pending())
}

func TestDocumentLocatorKeepsDocumentOrder(t *testing.T) {
	surface := scrolltest.NewSurface(400, 4000).AddSections(300, 100, 300)

	got := scroll.DocumentLocator{}.Sections(surface, []string{"hr"})

	require.Len(t, got, 3)
	for i := range got {
		assert.Same(t, surface.Sections[i], got[i])
	}
	assert.Empty(t, scroll.DocumentLocator{}.Sections(surface, nil))
}

func TestEdgeScroller(t *testing.T) {
	tests := []struct {
		name string
		dir  scroll.Direction
		want int
	}{
		{"up picks first visible", scroll.Up, 1},
		{"down picks last visible", scroll.Down, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			surface := scrolltest.NewSurface(400, 4000).AddSections(0, 50, 200, 390, 600)
			engine, clock := newEngine(t, surface)

			edge := scroll.NewEdgeScroller(engine, scroll.DocumentLocator{}, []string{"h2"}, tt.dir, 16, 300*time.Millisecond)
			target, ok := edge.Target(surface)
			require.True(t, ok)
			assert.Same(t, surface.Sections[tt.want], target)

			done, err := edge.Execute(surface)
			require.NoError(t, err)
			clock.RunUntilIdle(1000)

			assert.True(t, done.IsResolved())
			assert.Equal(t, surface.Sections[tt.want].Top, surface.Top)
		})
	}
}

func TestEdgeScrollerWithoutVisibleSection(t *testing.T) {
	surface := scrolltest.NewSurface(400, 4000).AddSections(1000)
	engine, _ := newEngine(t, surface)

	done, err := scroll.NewEdgeScroller(engine, scroll.DocumentLocator{}, []string{"h2"}, scroll.Down, 16, time.Second).Execute(surface)
	require.NoError(t, err)
	assert.True(t, done.IsResolved())
	assert.Empty(t, surface.Writes)
}

func TestAutoScrollerRunsToBoundary(t *testing.T) {
	surface := scrolltest.NewSurface(800, 1000)
	engine, clock := newEngine(t, surface)

	done, err := scroll.NewAutoScroller(engine, scroll.Down, 300).Execute(surface)
	require.NoError(t, err)
	clock.RunUntilIdle(10000)

	assert.True(t, done.IsResolved())
	assert.Equal(t, 200.0, surface.Top)
}

func TestStopperAlwaysSucceeds(t *testing.T) {
	surface := scrolltest.NewSurface(800, 4000)
	engine, clock := newEngine(t, surface)
	stop := scroll.NewStopper(engine)

	done, err := stop.Execute(surface)
	require.NoError(t, err)
	assert.True(t, done.IsResolved())

	_, err = engine.ContinuousScroll(scroll.Down, 100)
	require.NoError(t, err)
	done, err = stop.Execute(surface)
	require.NoError(t, err)
	assert.True(t, done.IsResolved())
	assert.Zero(t, clock.Pending())
}

func TestTogglerStartsWhenIdle(t *testing.T) {
	surface := scrolltest.NewSurface(800, 4000)
	engine, _ := newEngine(t, surface)
	inner := &countingStrategy{}

	_, err := scroll.NewToggler(engine, inner).Execute(surface)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
}

func TestTogglerStopsWhenActive(t *testing.T) {
	surface := scrolltest.NewSurface(800, 4000)
	engine, clock := newEngine(t, surface)
	inner := &countingStrategy{}

	_, err := engine.ContinuousScroll(scroll.Down, 100)
	require.NoError(t, err)
	require.True(t, engine.IsActive())

	done, err := scroll.NewToggler(engine, inner).Execute(surface)
	require.NoError(t, err)

	assert.True(t, done.IsResolved())
	assert.Zero(t, inner.calls)
	assert.False(t, engine.IsActive())
	assert.Zero(t, clock.Pending())
}
