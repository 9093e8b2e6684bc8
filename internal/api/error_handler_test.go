package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/seatech/storefront-api/internal/core/domain"
)

func TestHTTPErrorHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrMissingCredentials, http.StatusUnauthorized},
		{fmt.Errorf("%w: token expired", domain.ErrInvalidCredentials), http.StatusForbidden},
		{fmt.Errorf("%w: role customer", domain.ErrInsufficientRole), http.StatusForbidden},
		{fmt.Errorf("promote: %w", domain.ErrUserNotFound), http.StatusNotFound},
		{domain.ErrProductNotFound, http.StatusNotFound},
		{domain.ErrOrderNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: bad body", domain.ErrInvalidRequest), http.StatusBadRequest},
		{domain.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{domain.ErrInsufficientStock, http.StatusConflict},
		{echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	e := echo.New()
	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		h(tc.err, c)
		if rec.Code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
	}
}

func TestHTTPErrorHandler_RoleCheckedBeforeNotFound(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	err := fmt.Errorf("%w: %w", domain.ErrInsufficientRole, domain.ErrUserNotFound)
	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestHTTPErrorHandler_HidesInternalErrors(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("mongo: secret connection string"), c)

	if rec.Body.String() != "{\"error\":\"internal server error\"}\n" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}
