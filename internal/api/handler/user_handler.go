package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/hireboard/job-portal/internal/core/ports"
)

// ListUsers returns every identity without credentials.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}  domain.User
// @Router       /users [get]
func (h *BackendHandler) ListUsers(c echo.Context) error {
	return h.dispatch(c, ports.OpListUsers, "")
}

// AddSubUser provisions a recruiter. A blank createdBy is filled with the caller.
//
// @Summary      Add a sub-user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      domain.SubUserInput  true  "Recruiter credentials"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /users/sub [post]
func (h *BackendHandler) AddSubUser(c echo.Context) error {
	return h.dispatch(c, ports.OpAddSubUser, "createdBy")
}
