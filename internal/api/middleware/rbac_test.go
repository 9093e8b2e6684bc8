package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/seatech/storefront-api/internal/core/domain"
)

type stubLookup struct {
	users map[string]*domain.User
	err   error
	calls int
}

func (s *stubLookup) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func rbacContext(subject string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if subject != "" {
		WithClaims(c, &domain.Claims{Subject: subject})
	}
	return c
}

func newLookup() *stubLookup {
	return &stubLookup{users: map[string]*domain.User{
		"admin@example.com": {Email: "admin@example.com", Role: domain.RoleAdmin},
		"cust@example.com":  {Email: "cust@example.com", Role: domain.RoleCustomer},
	}}
}

func TestRBAC_AllowsAdmin(t *testing.T) {
	c := rbacContext("admin@example.com")

	called := false
	handler := AdminOnly(newLookup())(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRBAC_Denies(t *testing.T) {
	cases := []struct {
		name    string
		subject string
		lookup  *stubLookup
	}{
		{"customer", "cust@example.com", newLookup()},
		{"unknown user", "ghost@example.com", newLookup()},
		{"lookup error", "admin@example.com", &stubLookup{err: errors.New("connection refused")}},
		{"no claims", "", newLookup()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := rbacContext(tc.subject)
			err := AdminOnly(tc.lookup)(mustNotReach(t))(c)
			if !errors.Is(err, domain.ErrInsufficientRole) {
				t.Fatalf("expected ErrInsufficientRole, got %v", err)
			}
			if errors.Is(err, domain.ErrNotFound) {
				t.Fatalf("absent user must not surface as not found: %v", err)
			}
		})
	}
}

func TestRBAC_ReadsRoleFromStoreEachRequest(t *testing.T) {
	lookup := newLookup()
	mw := AdminOnly(lookup)(func(c echo.Context) error { return nil })

	if err := mw(rbacContext("cust@example.com")); !errors.Is(err, domain.ErrInsufficientRole) {
		t.Fatalf("expected denial before promotion, got %v", err)
	}

	lookup.users["cust@example.com"].Role = domain.RoleAdmin
	if err := mw(rbacContext("cust@example.com")); err != nil {
		t.Fatalf("expected access after promotion, got %v", err)
	}
	if lookup.calls != 2 {
		t.Fatalf("expected one lookup per request, got %d", lookup.calls)
	}
}

func TestRBAC_MultipleRoles(t *testing.T) {
	c := rbacContext("cust@example.com")
	mw := RBAC(newLookup(), domain.RoleAdmin, domain.RoleCustomer)

	if err := mw(func(c echo.Context) error { return nil })(c); err != nil {
		t.Fatalf("expected customer to pass, got %v", err)
	}
}
