package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/planejaula/planejaula-api/internal/api/middleware"
	"github.com/planejaula/planejaula-api/internal/core/domain"
)

// currentUser returns the user attached by the auth middleware. Its absence
// means the middleware did not run on this route; fail closed with 401.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := middleware.UserFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not authorized, token not provided")
	}
	return user, nil
}
