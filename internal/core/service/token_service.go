package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/seatech/storefront-api/internal/core/domain"
)

// DefaultTokenTTL is the validity window of an issued credential.
const DefaultTokenTTL = 24 * time.Hour

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 credentials. It is both the
// TokenIssuer and the TokenVerifier; verification never reads the store.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a credential whose subject is email.
func (s *TokenService) Issue(email string) (string, error) {
	if email == "" {
		return "", fmt.Errorf("issue token: %w: empty email", domain.ErrInvalidRequest)
	}

	now := s.now().UTC()
	claims := tokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

// Verify parses raw and returns its claims. Every failure, including an
// expired credential, is reported as domain.ErrInvalidCredentials.
func (s *TokenService) Verify(raw string) (*domain.Claims, error) {
	var claims tokenClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidCredentials, reason(err))
	}
	if !tkn.Valid || claims.Subject == "" {
		return nil, domain.ErrInvalidCredentials
	}

	out := &domain.Claims{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

func reason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "token expired"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "token malformed"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "signature invalid"
	default:
		return "token rejected"
	}
}
