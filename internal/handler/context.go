package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"projman/internal/model"
)

// ContextUserKey is where the auth middleware stores the resolved user.
const ContextUserKey = "currentUser"

// CurrentUser returns the authenticated user from the request context.
func CurrentUser(c echo.Context) (*model.User, error) {
	user, ok := c.Get(ContextUserKey).(*model.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "could not validate credentials")
	}
	return user, nil
}
