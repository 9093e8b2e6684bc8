package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/seatech/storefront-api/internal/core/domain"
	"github.com/seatech/storefront-api/internal/core/ports"
)

// UserService serves profile reads/writes and the admin-only mutations.
// Callers of Promote and Remove must already have passed the admin check.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) Profile(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *UserService) UpdateProfile(ctx context.Context, email string, profile domain.Profile) (*domain.User, error) {
	if email == "" {
		return nil, fmt.Errorf("update profile: %w: email is required", domain.ErrInvalidRequest)
	}
	return s.repo.Upsert(ctx, email, profile)
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// IsAdmin answers false for unknown emails rather than failing.
func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}

// Promote grants the admin role. Promoting an admin is a no-op.
func (s *UserService) Promote(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("promote: %w", err)
	}
	if user.IsAdmin() {
		return nil
	}

	if err := s.repo.SetRole(ctx, email, domain.RoleAdmin); err != nil {
		return fmt.Errorf("promote: %w", err)
	}
	s.log.Info().Str("email", email).Msg("user promoted to admin")
	return nil
}

// Remove deletes a non-admin user and reports true. Admin accounts are left
// untouched and reported as false; that is an outcome, not an error.
func (s *UserService) Remove(ctx context.Context, email string) (bool, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("remove user: %w", err)
	}
	if user.IsAdmin() {
		s.log.Warn().Str("email", email).Msg("refused to remove admin account")
		return false, nil
	}

	deleted, err := s.repo.DeleteNonAdmin(ctx, email)
	if err != nil {
		return false, fmt.Errorf("remove user: %w", err)
	}
	if !deleted {
		// Promoted or removed between the read and the delete.
		s.log.Warn().Str("email", email).Msg("user changed before removal")
		return false, nil
	}

	s.log.Info().Str("email", email).Msg("user removed")
	return true, nil
}
