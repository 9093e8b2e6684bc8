package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/seatech/storefront-api/internal/api/metrics"
	"github.com/seatech/storefront-api/internal/core/domain"
	"github.com/seatech/storefront-api/internal/core/ports"
)

// RBAC enforces role-based access control against the stored user, not the
// credential: the role is looked up by claim subject on every request. Access
// is granted only on an explicit, present, allowed role; an absent user or a
// failed lookup is denied like any other role.
// It must run after Auth.
func RBAC(users ports.RoleLookup, allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return deny("no verified identity")
			}

			user, err := users.FindByEmail(c.Request().Context(), claims.Subject)
			if err != nil {
				return deny(fmt.Sprintf("role lookup: %v", err))
			}
			if user == nil {
				return deny("unknown user")
			}
			if _, ok := allowed[user.Role]; !ok {
				return deny("role " + string(user.Role))
			}
			return next(c)
		}
	}
}

// AdminOnly is RBAC restricted to administrators.
func AdminOnly(users ports.RoleLookup) echo.MiddlewareFunc {
	return RBAC(users, domain.RoleAdmin)
}

func deny(detail string) error {
	metrics.AuthFailuresTotal.WithLabelValues("insufficient_role").Inc()
	return fmt.Errorf("%w: %s", domain.ErrInsufficientRole, detail)
}
