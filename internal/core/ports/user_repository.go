package ports

import (
	"context"

	"github.com/seatech/storefront-api/internal/core/domain"
)

// RoleLookup is the read the authorizer performs on every admin request.
type RoleLookup interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	RoleLookup
	// Upsert creates the user with the customer role when absent, otherwise
	// overwrites the non-empty profile fields. It returns the stored user.
	Upsert(ctx context.Context, email string, profile domain.Profile) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	SetRole(ctx context.Context, email string, role domain.Role) error
	// DeleteNonAdmin removes the user unless its stored role is admin.
	// deleted is false when no non-admin user with that email existed.
	DeleteNonAdmin(ctx context.Context, email string) (deleted bool, err error)
}
