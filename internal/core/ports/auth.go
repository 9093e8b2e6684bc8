package ports

import (
	"context"

	"github.com/seatech/storefront-api/internal/core/domain"
)

// TokenIssuer signs a credential for an already upserted user.
type TokenIssuer interface {
	Issue(email string) (string, error)
}

// TokenVerifier validates a raw credential without touching the store.
type TokenVerifier interface {
	Verify(token string) (*domain.Claims, error)
}

// AuthService implements sign-up/login as a single idempotent operation.
type AuthService interface {
	Login(ctx context.Context, email string, profile domain.Profile) (string, *domain.User, error)
}

// UserService covers self-service profile access and admin user management.
type UserService interface {
	Profile(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, email string, profile domain.Profile) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	IsAdmin(ctx context.Context, email string) (bool, error)
	Promote(ctx context.Context, email string) error
	Remove(ctx context.Context, email string) (bool, error)
}
