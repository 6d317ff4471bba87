package eventbus

import (
	"log/slog"
	"runtime/debug"
	"sync"

	"glide/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventScrollCommandExecuted = domain.EventScrollCommandExecuted
	EventScrollCommandFailed   = domain.EventScrollCommandFailed
	EventScrollSettled         = domain.EventScrollSettled
	EventDocumentOpened        = domain.EventDocumentOpened
	EventError                 = domain.EventError
	EventConfigLoaded          = domain.EventConfigLoaded
	EventConfigSaved           = domain.EventConfigSaved
	EventConfigChanged         = domain.EventConfigChanged
)

// Re-export domain event types
type ScrollCommandExecutedEvent = domain.ScrollCommandExecutedEvent
type ScrollCommandFailedEvent = domain.ScrollCommandFailedEvent
type ScrollSettledEvent = domain.ScrollSettledEvent
type DocumentOpenedEvent = domain.DocumentOpenedEvent
type ErrorEvent = domain.ErrorEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent
type ConfigChangedEvent = domain.ConfigChangedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

// subscriberQueue bounds the events waiting for one subscriber.
const subscriberQueue = 256

// subscription delivers events to its handler one at a time, in publish order.
type subscription struct {
	id      uint64
	handler EventHandler
	events  chan DomainEvent
}

// bus is the concrete implementation of EventBus
type bus struct {
	log       *slog.Logger
	mu        sync.RWMutex
	nextID    uint64
	handlers  map[EventType][]*subscription
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus. A nil logger discards output.
func New(log *slog.Logger) EventBus {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	b := &bus{
		log:       log.With("component", "eventbus"),
		handlers:  make(map[EventType][]*subscription),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
	}

	// Start the event dispatcher
	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	// Settled events fire after every scroll; keep them out of the log
	if event.Type() != EventScrollSettled {
		b.log.Debug("publishing event", "type", event.Type())
	}

	select {
	case b.eventChan <- event:
	default:
		b.log.Warn("event bus channel full, dropping event", "type", event.Type())
	}
}

// Subscribe subscribes to events of a specific type. Each subscriber sees
// events in the order they were published; a slow handler only delays its
// own queue. Returns an unsubscribe function.
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &subscription{
		id:      b.nextID,
		handler: handler,
		events:  make(chan DomainEvent, subscriberQueue),
	}
	b.handlers[eventType] = append(b.handlers[eventType], sub)

	b.wg.Add(1)
	go b.deliver(sub)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == sub.id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				close(sub.events)
				break
			}
		}
	}
}

// Close stops the dispatcher and discards undelivered events. It waits for
// handlers that are already running to return.
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
		b.wg.Wait()
	})
}

// dispatch fans events out to the subscriber queues
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			// Sends happen under the read lock so unsubscribe cannot close a
			// queue mid-send.
			b.mu.RLock()
			for _, sub := range b.handlers[event.Type()] {
				select {
				case sub.events <- event:
				default:
					b.log.Warn("subscriber queue full, dropping event", "type", event.Type(), "subscriber", sub.id)
				}
			}
			b.mu.RUnlock()

		case <-b.quit:
			// Drain remaining events
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}

// deliver runs one subscriber's handler until it unsubscribes or the bus closes
func (b *bus) deliver(sub *subscription) {
	defer b.wg.Done()

	for {
		select {
		case event, ok := <-sub.events:
			if !ok {
				return
			}
			b.call(sub.handler, event)
		case <-b.quit:
			return
		}
	}
}

func (b *bus) call(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event handler panic", "type", event.Type(), "panic", r, "stack", string(debug.Stack()))
		}
	}()
	h(event)
}
