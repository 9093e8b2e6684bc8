package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/seatech/storefront-api/internal/api/middleware"
	"github.com/seatech/storefront-api/internal/core/domain"
)

// subject returns the verified email injected by the Auth middleware.
// Reaching a handler without it means the route was wired without Auth.
func subject(c echo.Context) (string, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok || claims.Subject == "" {
		return "", domain.ErrMissingCredentials
	}
	return claims.Subject, nil
}

// bindAndValidate binds path, query and body into req and runs the
// registered validator. Both failures surface as domain.ErrInvalidRequest.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrInvalidRequest)
	}
	if err := c.Validate(req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	return nil
}
