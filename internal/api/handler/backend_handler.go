package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hireboard/job-portal/internal/core/ports"
	"github.com/hireboard/job-portal/internal/infrastructure/mockapi"
)

// Backend resolves a single backend operation.
type Backend interface {
	Handle(ctx context.Context, op string, params map[string]string, body []byte) (*mockapi.Response, error)
}

// BackendHandler exposes backend operations over HTTP. Rejections are
// returned as errors and rendered by the API error handler.
type BackendHandler struct {
	backend Backend
}

func NewBackendHandler(backend Backend) *BackendHandler {
	return &BackendHandler{backend: backend}
}

// Routes maps operation names to their handlers.
func (h *BackendHandler) Routes() map[string]echo.HandlerFunc {
	return map[string]echo.HandlerFunc{
		ports.OpListJobs:        h.ListJobs,
		ports.OpGetJob:          h.GetJob,
		ports.OpCreateJob:       h.CreateJob,
		ports.OpUpdateJob:       h.UpdateJob,
		ports.OpDeleteJob:       h.DeleteJob,
		ports.OpLogin:           h.Login,
		ports.OpValidateSession: h.ValidateSession,
		ports.OpListUsers:       h.ListUsers,
		ports.OpAddSubUser:      h.AddSubUser,
		ports.OpGetCompany:      h.GetCompany,
		ports.OpListCompanyJobs: h.ListCompanyJobs,
	}
}

// Passthrough forwards op without any request shaping.
func (h *BackendHandler) Passthrough(op string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return h.dispatch(c, op, "")
	}
}

// dispatch forwards the request to the backend. When actorField is set and the
// body leaves it blank, it is filled with the authenticated username.
func (h *BackendHandler) dispatch(c echo.Context, op, actorField string) error {
	body, err := readBody(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable request body")
	}
	if actorField != "" {
		body = stampActor(body, actorField, ctxUsername(c))
	}

	params := make(map[string]string, len(c.ParamNames()))
	for i, name := range c.ParamNames() {
		params[name] = c.ParamValues()[i]
	}

	resp, err := h.backend.Handle(c.Request().Context(), op, params, body)
	if err != nil {
		return err
	}
	if resp.Body == nil {
		return c.NoContent(resp.Status)
	}
	return c.JSON(resp.Status, resp.Body)
}

func readBody(c echo.Context) ([]byte, error) {
	if c.Request().Body == nil {
		return nil, nil
	}
	return io.ReadAll(c.Request().Body)
}

func stampActor(body []byte, field, username string) []byte {
	if username == "" || len(body) == 0 {
		return body
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		return body
	}
	if v, ok := obj[field]; ok && string(v) != `""` && string(v) != "null" {
		return body
	}

	name, err := json.Marshal(username)
	if err != nil {
		return body
	}
	obj[field] = name
	out, err := json.Marshal(obj)
	if err != nil {
		return body
	}
	return out
}
