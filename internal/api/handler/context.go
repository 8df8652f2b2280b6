package handler

import (
	"github.com/labstack/echo/v4"
)

// ctxUsername returns the username injected by the Auth middleware, or "" on
// routes that do not require authentication.
func ctxUsername(c echo.Context) string {
	username, _ := c.Get("username").(string)
	return username
}
