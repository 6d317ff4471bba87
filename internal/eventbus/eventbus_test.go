package eventbus

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, ch <-chan DomainEvent) DomainEvent {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
		return nil
	}
}

func TestPublishDeliversToSubscribersOfThatType(t *testing.T) {
	bus := New(nil)
	defer bus.Close()

	settled := make(chan DomainEvent, 1)
	errs := make(chan DomainEvent, 1)
	bus.Subscribe(EventScrollSettled, func(e DomainEvent) { settled <- e })
	bus.Subscribe(EventError, func(e DomainEvent) { errs <- e })

	bus.Publish(ScrollSettledEvent{Path: "notes.md", Offset: 48})

	got := waitFor(t, settled)
	assert.Equal(t, ScrollSettledEvent{Path: "notes.md", Offset: 48}, got)
	assert.Empty(t, errs)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := New(nil)
	defer bus.Close()

	var kept, dropped atomic.Int32
	done := make(chan DomainEvent, 2)
	unsubscribe := bus.Subscribe(EventError, func(DomainEvent) { dropped.Add(1) })
	bus.Subscribe(EventError, func(e DomainEvent) {
		kept.Add(1)
		done <- e
	})

	unsubscribe()
	unsubscribe()
	bus.Publish(ErrorEvent{Message: "boom", Err: errors.New("boom")})

	waitFor(t, done)
	assert.Equal(t, int32(1), kept.Load())
	assert.Zero(t, dropped.Load())
}

func TestHandlerPanicDoesNotStopTheBus(t *testing.T) {
	bus := New(nil)
	defer bus.Close()

	done := make(chan DomainEvent, 2)
	bus.Subscribe(EventConfigChanged, func(e DomainEvent) {
		if e.(ConfigChangedEvent).Path == "bad" {
			panic("handler exploded")
		}
		done <- e
	})

	bus.Publish(ConfigChangedEvent{Path: "bad"})
	bus.Publish(ConfigChangedEvent{Path: "good"})

	got := waitFor(t, done)
	require.IsType(t, ConfigChangedEvent{}, got)
	assert.Equal(t, "good", got.(ConfigChangedEvent).Path)
}

func TestCloseIsIdempotent(t *testing.T) {
	bus := New(nil)
	bus.Close()
	assert.NotPanics(t, bus.Close)
	assert.NotPanics(t, func() { bus.Publish(ErrorEvent{Message: "late"}) })
}

func TestSubscriberSeesPublishOrder(t *testing.T) {
	bus := New(nil)
	defer bus.Close()

	const n = 200
	got := make(chan float64, n)
	release := make(chan struct{})
	bus.Subscribe(EventScrollSettled, func(DomainEvent) { <-release })
	bus.Subscribe(EventScrollSettled, func(e DomainEvent) {
		got <- e.(ScrollSettledEvent).Offset
	})

	for i := 1; i <= n; i++ {
		bus.Publish(ScrollSettledEvent{Path: "notes.md", Offset: float64(i)})
	}

	for i := 1; i <= n; i++ {
		select {
		case offset := <-got:
			require.Equal(t, float64(i), offset, "a blocked subscriber must not reorder or stall the others")
		case <-time.After(time.Second):
			t.Fatalf("event %d not delivered", i)
		}
	}
	close(release)
}
