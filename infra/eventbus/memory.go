// Package eventbus provides the in-memory event bus implementation.
// Every producer and consumer lives in the same process, so dispatch is a
// synchronous fan-out to the registered handlers.
package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ederelias/bank-service/pkg/domain/events"
	"github.com/ederelias/bank-service/pkg/eventbus"
)

// MemoryEventBus is a simple in-memory implementation of eventbus.Bus.
type MemoryEventBus struct {
	mu        sync.RWMutex
	handlers  map[string][]eventbus.HandlerFunc
	logger    *slog.Logger
	published []events.Event // captured for tests
}

// NewWithMemory creates a new in-memory event bus.
func NewWithMemory(logger *slog.Logger) *MemoryEventBus {
	return &MemoryEventBus{
		handlers:  make(map[string][]eventbus.HandlerFunc),
		logger:    logger.With("bus", "memory"),
		published: make([]events.Event, 0),
	}
}

// Register registers a handler for a specific event type.
func (b *MemoryEventBus) Register(eventType string, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit dispatches the event to all handlers registered for its type.
func (b *MemoryEventBus) Emit(ctx context.Context, event events.Event) error {
	eventType := event.Type()
	b.mu.RLock()
	handlers := b.handlers[eventType]
	b.mu.RUnlock()

	b.mu.Lock()
	b.published = append(b.published, event)
	b.mu.Unlock()

	b.logger.Debug("emitting event", "type", eventType, "handlers", len(handlers))
	for _, handler := range handlers {
		handler(ctx, event)
	}
	return nil
}

// Published returns the list of published events. Useful for testing.
func (b *MemoryEventBus) Published() []events.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]events.Event, len(b.published))
	copy(out, b.published)
	return out
}

// ClearPublished clears the list of published events. Useful for testing.
func (b *MemoryEventBus) ClearPublished() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = b.published[:0]
}

var _ eventbus.Bus = (*MemoryEventBus)(nil)
