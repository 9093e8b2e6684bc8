package ports

import (
	"context"

	"github.com/seatech/storefront-api/internal/core/domain"
)

// CreateProductInput carries the fields of a new catalogue entry.
type CreateProductInput struct {
	Name              string
	Description       string
	ImageURL          string
	Price             float64
	MinimumOrder      int
	AvailableQuantity int
}

// ProductService is a thin pass-through over ProductRepository.
type ProductService interface {
	List(ctx context.Context) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// CreateReviewInput carries a new review. UserEmail comes from the credential.
type CreateReviewInput struct {
	UserEmail string
	Name      string
	Rating    float64
	Comment   string
}

// ReviewService is a thin pass-through over ReviewRepository.
type ReviewService interface {
	List(ctx context.Context) ([]*domain.Review, error)
	Latest(ctx context.Context) ([]*domain.Review, error)
	Create(ctx context.Context, input CreateReviewInput) (*domain.Review, error)
}
