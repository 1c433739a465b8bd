// Package eventbus defines the contract for publishing and subscribing to
// domain events.
package eventbus

import (
	"context"

	"github.com/ederelias/bank-service/pkg/domain/events"
)

// HandlerFunc handles a single dispatched event.
type HandlerFunc func(ctx context.Context, event events.Event)

// Bus dispatches domain events to registered handlers.
type Bus interface {
	Emit(ctx context.Context, event events.Event) error
	Register(eventType string, handler HandlerFunc)
}
