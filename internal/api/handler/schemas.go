package handler

import (
	"time"

	"github.com/seatech/storefront-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type profileRequest struct {
	Name      string `json:"name"      validate:"omitempty,max=120"`
	Phone     string `json:"phone"     validate:"omitempty,max=40"`
	Location  string `json:"location"  validate:"omitempty,max=200"`
	Education string `json:"education" validate:"omitempty,max=200"`
	LinkedIn  string `json:"linkedin"  validate:"omitempty,url"`
	PhotoURL  string `json:"photo_url" validate:"omitempty,url"`
}

type loginRequest struct {
	Email string `param:"email" json:"-" validate:"required,email"`
	profileRequest
}

type emailParam struct {
	Email string `param:"email" json:"-" validate:"required,email"`
}

type productIDParam struct {
	ID string `param:"id" json:"-" validate:"required,mongodb"`
}

type createProductRequest struct {
	Name              string  `json:"name"               validate:"required"`
	Description       string  `json:"description"`
	ImageURL          string  `json:"image_url"          validate:"omitempty,url"`
	Price             float64 `json:"price"              validate:"gte=0"`
	MinimumOrder      int     `json:"minimum_order"      validate:"gte=0"`
	AvailableQuantity int     `json:"available_quantity" validate:"gte=0"`
}

type createReviewRequest struct {
	Name    string  `json:"name"    validate:"required"`
	Rating  float64 `json:"rating"  validate:"gte=0,lte=5"`
	Comment string  `json:"comment" validate:"required"`
}

type orderItemRequest struct {
	ProductID string  `json:"product_id" validate:"required,mongodb"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"   validate:"gt=0"`
	Price     float64 `json:"price"      validate:"gte=0"`
}

type placeOrderRequest struct {
	Items []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type recordPaymentRequest struct {
	OrderID       string `param:"id"              json:"-" validate:"required,mongodb"`
	TransactionID string `json:"transaction_id"  validate:"required"`
}

type listMyOrdersRequest struct {
	Email  string `query:"email"  validate:"omitempty,email"`
	Status string `query:"status" validate:"omitempty,oneof=placed pending delivered"`
}

type deliverRequest struct {
	OrderID     string `param:"id"            json:"-" validate:"required,mongodb"`
	ProductID   string `json:"product_id"    validate:"required,mongodb"`
	OrderAmount int    `json:"order_amount"  validate:"gt=0"`
}

type paymentIntentRequest struct {
	Amount int64 `json:"amount" validate:"gt=0"`
}

// --- Response types ---

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

type adminStatusResponse struct {
	Admin bool `json:"admin"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type availabilityResponse struct {
	ProductID         string `json:"product_id"`
	AvailableQuantity int    `json:"available_quantity"`
}

type orderResponse struct {
	ID            string             `json:"id"`
	UserEmail     string             `json:"user_email"`
	Items         []domain.OrderItem `json:"items"`
	Total         float64            `json:"total"`
	TransactionID string             `json:"transaction_id,omitempty"`
	Status        domain.OrderStatus `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// fulfillmentResponse reports both writes of a delivery separately. Success
// is false when either write failed; Error then says which.
type fulfillmentResponse struct {
	Success          bool   `json:"success"`
	ProductID        string `json:"product_id"`
	OrderID          string `json:"order_id"`
	PreviousQuantity int    `json:"previous_quantity"`
	NewQuantity      int    `json:"new_quantity"`
	InventoryUpdated bool   `json:"inventory_updated"`
	OrderDelivered   bool   `json:"order_delivered"`
	Error            string `json:"error,omitempty"`
}

type paymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}
