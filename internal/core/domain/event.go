package domain

import "time"

// OrderEventType names an order lifecycle notification.
type OrderEventType string

const (
	EventOrderPlaced    OrderEventType = "order.placed"
	EventOrderPaid      OrderEventType = "order.paid"
	EventOrderDelivered OrderEventType = "order.delivered"
)

// OrderEvent is published after an order changes state.
type OrderEvent struct {
	Type       OrderEventType `json:"type"`
	OrderID    string         `json:"order_id"`
	UserEmail  string         `json:"user_email,omitempty"`
	Status     OrderStatus    `json:"status"`
	OccurredAt time.Time      `json:"occurred_at"`
}
