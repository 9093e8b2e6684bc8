package ports

import (
	"context"

	"github.com/seatech/storefront-api/internal/core/domain"
)

// OrderItemInput is one requested line of a new order.
type OrderItemInput struct {
	ProductID string
	Name      string
	Quantity  int
	Price     float64
}

// PlaceOrderInput carries everything needed to create an order.
type PlaceOrderInput struct {
	UserEmail string
	Items     []OrderItemInput
}

// DeliverInput identifies the fulfillment to perform.
type DeliverInput struct {
	ProductID   string
	OrderID     string
	OrderAmount int
}

// OrderService drives an order from placed through pending to delivered.
type OrderService interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)
	RecordPayment(ctx context.Context, orderID, transactionID string) error
	Deliver(ctx context.Context, input DeliverInput) (*domain.FulfillmentResult, error)
	ListForOwner(ctx context.Context, filter ListOrdersFilter) ([]*domain.Order, error)
	ListAll(ctx context.Context) ([]*domain.Order, error)
}
