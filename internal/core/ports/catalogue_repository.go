package ports

import (
	"context"

	"github.com/seatech/storefront-api/internal/core/domain"
)

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	List(ctx context.Context) ([]*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
	// SetAvailableQuantity overwrites the quantity unconditionally.
	SetAvailableQuantity(ctx context.Context, id string, quantity int) error
	// CompareAndSetAvailableQuantity writes quantity only if the stored value
	// still equals expected. swapped is false when another writer got there first.
	CompareAndSetAvailableQuantity(ctx context.Context, id string, expected, quantity int) (swapped bool, err error)
}

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	List(ctx context.Context) ([]*domain.Review, error)
	// Latest returns the n most recent reviews, oldest first.
	Latest(ctx context.Context, n int) ([]*domain.Review, error)
	Create(ctx context.Context, r *domain.Review) error
}
