package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shoplist/shopping-api/internal/api/middleware"
	"github.com/shoplist/shopping-api/internal/core/domain"
)

// currentUser returns the caller resolved by middleware.Authenticate. A
// missing user means the route was registered without the middleware.
func currentUser(c echo.Context) (*domain.User, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

// bindAndValidate decodes the JSON body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON in request body")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(req)
}
