package ports

import (
	"context"

	"github.com/seatech/storefront-api/internal/core/domain"
)

// ListOrdersFilter carries the query parameters for listing orders.
type ListOrdersFilter struct {
	UserEmail string // empty = every owner
	Status    string // optional
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	List(ctx context.Context, filter ListOrdersFilter) ([]*domain.Order, error)
	// MarkPaid stores the transaction id and moves the order to pending,
	// provided its current status may legally become pending.
	MarkPaid(ctx context.Context, id, transactionID string) error
	// MarkDelivered sets the order status to delivered without any
	// precondition on the current status.
	MarkDelivered(ctx context.Context, id string) error
}
