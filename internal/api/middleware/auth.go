package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/seatech/storefront-api/internal/api/metrics"
	"github.com/seatech/storefront-api/internal/core/domain"
	"github.com/seatech/storefront-api/internal/core/ports"
)

// claimsKey is the echo context key holding the verified *domain.Claims.
const claimsKey = "claims"

// Auth validates the bearer credential and injects its claims into context.
//
//   - no Authorization header      → domain.ErrMissingCredentials (401)
//   - malformed header or token    → domain.ErrInvalidCredentials (403)
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_credentials").Inc()
				return domain.ErrMissingCredentials
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				metrics.AuthFailuresTotal.WithLabelValues("invalid_credentials").Inc()
				return fmt.Errorf("%w: malformed authorization header", domain.ErrInvalidCredentials)
			}

			claims, err := verifier.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("invalid_credentials").Inc()
				if !errors.Is(err, domain.ErrInvalidCredentials) {
					err = fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
				}
				return err
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the claims stored by Auth.
func ClaimsFrom(c echo.Context) (*domain.Claims, bool) {
	claims, ok := c.Get(claimsKey).(*domain.Claims)
	return claims, ok && claims != nil
}

// WithClaims stores claims as Auth would. Intended for handler tests.
func WithClaims(c echo.Context, claims *domain.Claims) {
	c.Set(claimsKey, claims)
}
