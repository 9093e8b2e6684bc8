package ports

import (
	"context"

	"github.com/seatech/storefront-api/internal/core/domain"
)

// EventSink accepts order events without blocking the caller.
type EventSink interface {
	Enqueue(event domain.OrderEvent)
}

// EventPublisher delivers a single event to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.OrderEvent) error
}
