package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/hireboard/job-portal/internal/core/ports"
)

// Login exchanges credentials for a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.Credentials  true  "Login credentials"
// @Success      200   {object}  domain.Session
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *BackendHandler) Login(c echo.Context) error {
	return h.dispatch(c, ports.OpLogin, "")
}

// ValidateSession confirms that a persisted session still names a live user.
//
// @Summary      Validate a persisted session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      domain.Session  true  "Persisted session"
// @Success      200   {object}  domain.User
// @Failure      401   {object}  map[string]string
// @Router       /auth/session [post]
func (h *BackendHandler) ValidateSession(c echo.Context) error {
	return h.dispatch(c, ports.OpValidateSession, "")
}
