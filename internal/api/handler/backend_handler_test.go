package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hireboard/job-portal/internal/core/domain"
	"github.com/hireboard/job-portal/internal/core/ports"
	"github.com/hireboard/job-portal/internal/infrastructure/mockapi"
)

type stubBackend struct {
	handleFn func(ctx context.Context, op string, params map[string]string, body []byte) (*mockapi.Response, error)

	op     string
	params map[string]string
	body   []byte
}

func (s *stubBackend) Handle(ctx context.Context, op string, params map[string]string, body []byte) (*mockapi.Response, error) {
	s.op, s.params, s.body = op, params, body
	if s.handleFn == nil {
		return &mockapi.Response{Status: http.StatusOK, Body: map[string]string{"ok": "yes"}}, nil
	}
	return s.handleFn(ctx, op, params, body)
}

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestBackendHandler_ForwardsParams(t *testing.T) {
	stub := &stubBackend{}
	h := NewBackendHandler(stub)

	c, rec := newContext(http.MethodGet, "/jobs/job7", "")
	c.SetParamNames("id")
	c.SetParamValues("job7")

	if err := h.GetJob(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.op != ports.OpGetJob || stub.params["id"] != "job7" {
		t.Fatalf("unexpected dispatch %s %v", stub.op, stub.params)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestBackendHandler_UsesBackendStatus(t *testing.T) {
	stub := &stubBackend{
		handleFn: func(ctx context.Context, op string, params map[string]string, body []byte) (*mockapi.Response, error) {
			return &mockapi.Response{Status: http.StatusCreated, Body: domain.User{ID: 9, Username: "r9"}}, nil
		},
	}
	h := NewBackendHandler(stub)

	c, rec := newContext(http.MethodPost, "/users/sub", `{"username":"r9","password":"pw"}`)
	if err := h.AddSubUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var u domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &u); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if u.Username != "r9" {
		t.Fatalf("unexpected payload %+v", u)
	}
}

func TestBackendHandler_ReturnsRejection(t *testing.T) {
	rejection := domain.NewAPIError(http.StatusNotFound, "job not found")
	stub := &stubBackend{
		handleFn: func(ctx context.Context, op string, params map[string]string, body []byte) (*mockapi.Response, error) {
			return nil, rejection
		},
	}
	h := NewBackendHandler(stub)

	c, _ := newContext(http.MethodDelete, "/jobs/x", "")
	if err := h.DeleteJob(c); !errors.Is(err, rejection) {
		t.Fatalf("expected rejection to propagate, got %v", err)
	}
}

func TestBackendHandler_StampsActor(t *testing.T) {
	tests := []struct {
		name     string
		username string
		body     string
		want     string
	}{
		{"missing field", "alice", `{"title":"Go"}`, "alice"},
		{"blank field", "alice", `{"title":"Go","postedBy":""}`, "alice"},
		{"null field", "alice", `{"title":"Go","postedBy":null}`, "alice"},
		{"explicit field", "alice", `{"title":"Go","postedBy":"bob"}`, "bob"},
		{"anonymous", "", `{"title":"Go"}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubBackend{}
			h := NewBackendHandler(stub)

			c, _ := newContext(http.MethodPost, "/jobs", tt.body)
			if tt.username != "" {
				c.Set("username", tt.username)
			}
			if err := h.CreateJob(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}

			var in domain.JobInput
			if err := json.Unmarshal(stub.body, &in); err != nil {
				t.Fatalf("forwarded body is not JSON: %v", err)
			}
			if in.PostedBy != tt.want || in.Title != "Go" {
				t.Fatalf("forwarded %+v, want postedBy %q", in, tt.want)
			}
		})
	}
}

func TestBackendHandler_NonObjectBodyUntouched(t *testing.T) {
	stub := &stubBackend{}
	h := NewBackendHandler(stub)

	c, _ := newContext(http.MethodPost, "/jobs", `not json`)
	c.Set("username", "alice")
	if err := h.CreateJob(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if string(stub.body) != "not json" {
		t.Fatalf("body rewritten: %q", stub.body)
	}
}

func TestBackendHandler_RoutesCoverRegistry(t *testing.T) {
	routes := NewBackendHandler(&stubBackend{}).Routes()
	for _, op := range mockapi.Names() {
		if _, ok := routes[op]; !ok {
			t.Errorf("no handler for %s", op)
		}
	}
}

func TestBackendHandler_Passthrough(t *testing.T) {
	stub := &stubBackend{}
	h := NewBackendHandler(stub)

	c, rec := newContext(http.MethodPost, "/x", `{"a":1}`)
	if err := h.Passthrough("Custom")(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.op != "Custom" || string(stub.body) != `{"a":1}` || rec.Code != http.StatusOK {
		t.Fatalf("unexpected passthrough %s %q %d", stub.op, stub.body, rec.Code)
	}
}
