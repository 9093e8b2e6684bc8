package domain

// Product is a catalogue entry. AvailableQuantity is expected to stay
// non-negative; see OrderService.Deliver for when it may not.
type Product struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Description       string  `json:"description,omitempty"`
	ImageURL          string  `json:"image_url,omitempty"`
	Price             float64 `json:"price"`
	MinimumOrder      int     `json:"minimum_order"`
	AvailableQuantity int     `json:"available_quantity"`
}
