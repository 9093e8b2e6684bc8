package domain

import "time"

// Review is a customer testimonial shown on the storefront.
type Review struct {
	ID        string    `json:"id"`
	UserEmail string    `json:"user_email"`
	Name      string    `json:"name"`
	Rating    float64   `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
