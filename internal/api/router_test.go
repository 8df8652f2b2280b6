package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hireboard/job-portal/internal/core/domain"
	"github.com/hireboard/job-portal/internal/core/ports"
	"github.com/hireboard/job-portal/internal/infrastructure/mockapi"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func newTestServer(t *testing.T, health map[string]ports.Pinger) http.Handler {
	t.Helper()
	backend, err := mockapi.New(mockapi.Options{
		BcryptCost:  bcrypt.MinCost,
		TokenSecret: "router-test",
		Seed:        true,
	}, zerolog.Nop())
	if err != nil {
		t.Fatalf("mockapi.New: %v", err)
	}
	return NewRouter(Deps{
		Backend:  backend,
		Health:   health,
		Registry: prometheus.NewRegistry(),
		Logger:   zerolog.Nop(),
	})
}

func do(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func loginAs(t *testing.T, h http.Handler, username string) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/auth/login", "", `{"username":"`+username+`","password":"password"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", username, rec.Code, rec.Body.String())
	}
	var s domain.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &s); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return s.Token
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error envelope: %v (%s)", err, rec.Body.String())
	}
	return resp.Error
}

func TestRouter_ListAndGetJobs(t *testing.T) {
	h := newTestServer(t, nil)

	rec := do(t, h, http.MethodGet, "/jobs", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var jobs []domain.JobPosting
	if err := json.Unmarshal(rec.Body.Bytes(), &jobs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(jobs) != 3 || jobs[0].ID != "job3" {
		t.Fatalf("unexpected listing %+v", jobs)
	}

	rec = do(t, h, http.MethodGet, "/jobs/job1", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get job1: %d", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/jobs/nope", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "job not found" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestRouter_CreateJobRequiresToken(t *testing.T) {
	h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/jobs", "", `{"title":"x"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_CreateJobStampsCaller(t *testing.T) {
	h := newTestServer(t, nil)
	token := loginAs(t, h, "recruiter1")

	rec := do(t, h, http.MethodPost, "/jobs", token, `{"title":"Go Engineer","tier":"premium"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var job domain.JobPosting
	if err := json.Unmarshal(rec.Body.Bytes(), &job); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if job.PostedBy != "recruiter1" || !job.IsFeatured {
		t.Fatalf("unexpected job %+v", job)
	}
	if job.CompanyName == nil || *job.CompanyName != "Globex" {
		t.Fatalf("expected auto-linked company, got %+v", job.CompanyName)
	}

	rec = do(t, h, http.MethodPost, "/jobs", token, `{"title":"Explicit","postedBy":"someone"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &job); err != nil {
		t.Fatal(err)
	}
	if job.PostedBy != "someone" {
		t.Fatalf("explicit postedBy overwritten: %q", job.PostedBy)
	}
}

func TestRouter_CreateJobValidation(t *testing.T) {
	h := newTestServer(t, nil)
	token := loginAs(t, h, "admin")

	rec := do(t, h, http.MethodPost, "/jobs", token, `{"description":"no title"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRouter_DeleteJob(t *testing.T) {
	h := newTestServer(t, nil)
	token := loginAs(t, h, "admin")

	if rec := do(t, h, http.MethodDelete, "/jobs/job1", token, ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodDelete, "/jobs/job1", token, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestRouter_UpdateJobIsAcknowledged(t *testing.T) {
	h := newTestServer(t, nil)
	token := loginAs(t, h, "admin")

	rec := do(t, h, http.MethodPut, "/jobs/job1", token, `{"title":"changed"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var ack map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &ack); err != nil {
		t.Fatal(err)
	}
	if _, ok := ack["message"]; !ok {
		t.Fatalf("expected acknowledgement, got %v", ack)
	}
}

func TestRouter_LoginRejected(t *testing.T) {
	h := newTestServer(t, nil)

	rec := do(t, h, http.MethodPost, "/auth/login", "", `{"username":"admin","password":"nope"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "invalid credentials" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestRouter_AddSubUser(t *testing.T) {
	h := newTestServer(t, nil)

	recruiter := loginAs(t, h, "recruiter1")
	if rec := do(t, h, http.MethodPost, "/users/sub", recruiter, `{"username":"r9","password":"pw"}`); rec.Code != http.StatusForbidden {
		t.Fatalf("recruiter: expected 403, got %d", rec.Code)
	}

	admin := loginAs(t, h, "admin")
	rec := do(t, h, http.MethodPost, "/users/sub", admin, `{"username":"r9","password":"pw"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("admin: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var u domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &u); err != nil {
		t.Fatal(err)
	}
	if u.CreatedBy != "admin" || u.Role != domain.RoleRecruiter {
		t.Fatalf("unexpected user %+v", u)
	}

	if rec := do(t, h, http.MethodPost, "/users/sub", admin, `{"username":"r9","password":"pw"}`); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate: expected 409, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/users", "", "")
	var users []domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatal(err)
	}
	if len(users) != 4 {
		t.Fatalf("expected 4 users, got %d", len(users))
	}
}

func TestRouter_ValidateSession(t *testing.T) {
	h := newTestServer(t, nil)
	rec := do(t, h, http.MethodPost, "/auth/login", "", `{"username":"admin","password":"password"}`)

	if rec := do(t, h, http.MethodPost, "/auth/session", "", rec.Body.String()); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/auth/session", "", `{"id":1,"username":"admin","token":"bogus"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_Companies(t *testing.T) {
	h := newTestServer(t, nil)

	if rec := do(t, h, http.MethodGet, "/companies/c1", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec := do(t, h, http.MethodGet, "/companies/c1/jobs", "", "")
	var jobs []domain.JobPosting
	if err := json.Unmarshal(rec.Body.Bytes(), &jobs); err != nil {
		t.Fatal(err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 Acme jobs, got %d", len(jobs))
	}
	if rec := do(t, h, http.MethodGet, "/companies/zzz", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRouter_Health(t *testing.T) {
	h := newTestServer(t, map[string]ports.Pinger{
		"session_store": stubPinger{},
	})
	if rec := do(t, h, http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("liveness: %d", rec.Code)
	}
	if rec := do(t, h, http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("readiness: %d", rec.Code)
	}

	degraded := newTestServer(t, map[string]ports.Pinger{
		"session_store": stubPinger{err: errors.New("connection refused")},
	})
	rec := do(t, degraded, http.MethodGet, "/health/ready", "", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "connection refused") {
		t.Fatalf("expected dependency error in body: %s", rec.Body.String())
	}
}

func TestRouter_Metrics(t *testing.T) {
	h := newTestServer(t, nil)
	do(t, h, http.MethodGet, "/jobs", "", "")

	rec := do(t, h, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "requests_total") {
		t.Fatalf("expected request counter in metrics output")
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	h := newTestServer(t, nil)
	rec := do(t, h, http.MethodGet, "/nope", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if errorMessage(t, rec) == "" {
		t.Fatal("expected error envelope")
	}
}
