package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/streamtv/streamtv/internal/middleware"
)

// Home returns the logged-in username for the home page header, or the
// empty string for anonymous visitors.
func Home(c echo.Context) error {
	user, _ := middleware.CurrentUser(c)
	return c.JSON(http.StatusOK, echo.Map{
		"pageTitle": "Home",
		"user":      user,
	})
}
