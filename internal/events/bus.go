// Package events provides the in-memory event bus implementation used to wire
// domain modules together inside a single process.
package events

import (
	"context"
	"errors"
	"sync"

	"quotepay_backend/platform/events"
	"quotepay_backend/platform/logger"
)

// InMemoryBus dispatches events to subscribed handlers in-process.
type InMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]events.Handler
	log      *logger.Logger
}

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return &InMemoryBus{
		handlers: make(map[string][]events.Handler),
		log:      log,
	}
}

// Subscribe registers a handler for the given event name.
func (b *InMemoryBus) Subscribe(eventName string, handler events.Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish dispatches the event to all handlers asynchronously. Handler
// failures are logged, never propagated; the request that produced the event
// has usually already been answered.
func (b *InMemoryBus) Publish(ctx context.Context, event events.Event) {
	b.mu.RLock()
	handlers := append([]events.Handler(nil), b.handlers[event.EventName()]...)
	b.mu.RUnlock()

	for _, h := range handlers {
		go func(h events.Handler) {
			// Detach from the request context; the HTTP request may
			// complete before the handler does.
			if err := h.Handle(context.WithoutCancel(ctx), event); err != nil {
				b.log.Error("event_handler_failed",
					"event", event.EventName(),
					"error", err.Error(),
				)
			}
		}(h)
	}
}

// PublishSync dispatches the event and waits for every handler, joining
// their errors.
func (b *InMemoryBus) PublishSync(ctx context.Context, event events.Event) error {
	b.mu.RLock()
	handlers := append([]events.Handler(nil), b.handlers[event.EventName()]...)
	b.mu.RUnlock()

	var errs []error
	for _, h := range handlers {
		if err := h.Handle(ctx, event); err != nil {
			b.log.Error("event_handler_failed",
				"event", event.EventName(),
				"error", err.Error(),
			)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Compile-time check that InMemoryBus implements events.Bus.
var _ events.Bus = (*InMemoryBus)(nil)
