package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/seatech/storefront-api/internal/core/domain"
	"github.com/seatech/storefront-api/internal/core/ports"
)

// AuthService implements sign-up and login. Both are the same idempotent
// upsert followed by credential issuance.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenIssuer
	log    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log}
}

func (s *AuthService) Login(ctx context.Context, email string, profile domain.Profile) (string, *domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", nil, fmt.Errorf("login: %w: email is required", domain.ErrInvalidRequest)
	}

	user, err := s.users.Upsert(ctx, email, profile)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		s.log.Error().Err(err).Msg("credential signing failed")
		return "", nil, err
	}

	s.log.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("user logged in")
	return token, user, nil
}
