// Package events provides a minimal in-process publish/subscribe bus.
// Modules communicate through events instead of importing each other.
package events

import (
	"context"
	"sync"
	"time"
)

// Event is implemented by every event payload.
type Event interface {
	EventName() string
}

// BaseEvent carries the fields shared by all events.
type BaseEvent struct {
	Timestamp time.Time
}

// NewBaseEvent creates a BaseEvent stamped with the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now().UTC()}
}

// Handler processes a single event. Errors from async delivery are
// the handler's responsibility to log.
type Handler func(ctx context.Context, event Event) error

// Bus delivers events to subscribed handlers.
type Bus interface {
	// Publish delivers the event asynchronously. It never blocks the
	// caller on handler work.
	Publish(ctx context.Context, event Event)
	// PublishSync delivers the event inline and returns the first
	// handler error.
	PublishSync(ctx context.Context, event Event) error
	// Subscribe registers a handler for the named event.
	Subscribe(eventName string, handler Handler)
}

type memoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewBus creates an in-memory bus.
func NewBus() Bus {
	return &memoryBus{handlers: make(map[string][]Handler)}
}

func (b *memoryBus) Subscribe(eventName string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

func (b *memoryBus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.EventName()]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		go func(h Handler) {
			// Detach from the request context so delivery survives the
			// response being written.
			_ = h(context.WithoutCancel(ctx), event)
		}(handler)
	}
}

func (b *memoryBus) PublishSync(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.EventName()]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
