package domain

import "time"

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderPlaced    OrderStatus = "placed"
	OrderPending   OrderStatus = "pending"
	OrderDelivered OrderStatus = "delivered"
)

// validTransitions defines which status may follow which. Skipping payment
// (placed → delivered) and repeating a step are tolerated; going backwards
// is not.
var validTransitions = map[OrderStatus][]OrderStatus{
	OrderPlaced:    {OrderPending, OrderDelivered},
	OrderPending:   {OrderPending, OrderDelivered},
	OrderDelivered: {OrderDelivered},
}

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// SourcesOf returns every status from which next may be entered.
func SourcesOf(next OrderStatus) []OrderStatus {
	var out []OrderStatus
	for _, from := range []OrderStatus{OrderPlaced, OrderPending, OrderDelivered} {
		if from.CanTransitionTo(next) {
			out = append(out, from)
		}
	}
	return out
}

// OrderItem is a single line of an order. Price is captured at order time.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order is owned by the user whose email it carries.
type Order struct {
	ID            string      `json:"id"`
	UserEmail     string      `json:"user_email"`
	Items         []OrderItem `json:"items"`
	Total         float64     `json:"total"`
	TransactionID string      `json:"transaction_id,omitempty"`
	Status        OrderStatus `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// FulfillmentResult is the outcome of delivering an order. Success is true
// only when both the inventory write and the order write were acknowledged.
type FulfillmentResult struct {
	Success          bool
	ProductID        string
	OrderID          string
	PreviousQuantity int
	NewQuantity      int
	InventoryUpdated bool
	OrderDelivered   bool
	// Err describes why Success is false; it always matches ErrPartialFulfillment.
	Err error
}
