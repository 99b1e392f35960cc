package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/shoplist/shopping-api/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after Authenticate:
// a request without a resolved user is unauthenticated (401), one with the
// wrong role is forbidden (403).
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return domain.ErrUnauthenticated
			}
			if _, ok := allowed[user.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
