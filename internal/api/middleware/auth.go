package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/shoplist/shopping-api/internal/core/domain"
	"github.com/shoplist/shopping-api/internal/core/ports"
)

// UserKey is the echo context key holding the resolved *domain.User.
const UserKey = "user"

// Authenticate resolves the Authorization header to a user and injects it
// into the context. Any failure ends the request with 401.
func Authenticate(authn ports.Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := authn.ResolveBearer(c.Request().Context(), c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return domain.ErrUnauthenticated
			}

			c.Set(UserKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user injected by Authenticate, or nil.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(UserKey).(*domain.User)
	return user
}
