// Package mockapi simulates the job board's remote backend entirely in memory.
//
// Every request waits a fixed artificial latency, then resolves against three
// collections (users, jobs, companies). Rejections are *domain.APIError values
// carrying a status code and message.
package mockapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/hireboard/job-portal/internal/core/domain"
	"github.com/hireboard/job-portal/internal/core/ports"
	"github.com/hireboard/job-portal/internal/pkg/metrics"
)

const (
	// DefaultLatency is the simulated round trip of every request.
	DefaultLatency = 500 * time.Millisecond
	// DefaultCreator is recorded as createdBy when a sub-user arrives without one.
	DefaultCreator = "system"
	// DefaultPoster is recorded as postedBy when a job arrives without one.
	DefaultPoster = "anonymous"
)

// Options configures a Backend.
type Options struct {
	Latency     time.Duration
	BcryptCost  int
	TokenSecret string
	// Now is the backend clock. Defaults to time.Now in UTC.
	Now func() time.Time
	// Seed loads the demo users, jobs and companies.
	Seed bool
}

// Response is a resolved backend outcome.
type Response struct {
	Status int
	Body   any
}

type storedUser struct {
	domain.User
	hash []byte
}

// Backend is the sole owner of the user, job and company collections.
type Backend struct {
	mu         sync.Mutex
	users      []storedUser
	jobs       []domain.JobPosting
	companies  []domain.Company
	nextJobID  int
	nextUserID int

	latency   time.Duration
	cost      int
	now       func() time.Time
	tokens    *TokenIssuer
	validator *requestValidator
	log       zerolog.Logger
}

// New builds a Backend. It fails only if a seed credential cannot be hashed.
func New(opts Options, log zerolog.Logger) (*Backend, error) {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}

	b := &Backend{
		nextJobID:  1,
		nextUserID: 1,
		latency:    opts.Latency,
		cost:       opts.BcryptCost,
		now:        opts.Now,
		tokens:     NewTokenIssuer(opts.TokenSecret),
		validator:  newRequestValidator(),
		log:        log,
	}

	if opts.Seed {
		for _, su := range seedUsers() {
			hash, err := bcrypt.GenerateFromPassword([]byte(su.password), b.cost)
			if err != nil {
				return nil, fmt.Errorf("seed user %s: %w", su.user.Username, err)
			}
			b.users = append(b.users, storedUser{User: su.user, hash: hash})
		}
		b.companies = seedCompanies()
		b.jobs = seedJobs(b.companies)
		b.nextJobID = len(b.jobs) + 1
		b.nextUserID = len(b.users) + 1
	}
	return b, nil
}

// Tokens exposes the issuer so the HTTP layer can authenticate bearers.
func (b *Backend) Tokens() *TokenIssuer {
	return b.tokens
}

// Handle resolves a single request after the simulated latency.
func (b *Backend) Handle(ctx context.Context, op string, params map[string]string, body []byte) (*Response, error) {
	start := time.Now()
	label := op
	if _, ok := Lookup(op); !ok {
		label = "unknown"
	}

	b.log.Debug().Str("operation", op).Interface("params", params).Msg("backend request")

	if err := b.wait(ctx); err != nil {
		return nil, err
	}

	resp, err := b.dispatch(op, params, body)

	var status int
	if err != nil {
		status = domain.StatusOf(err)
	} else {
		status = resp.Status
	}
	metrics.BackendRequestsTotal.WithLabelValues(label, strconv.Itoa(status)).Inc()
	metrics.BackendRequestDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())

	return resp, err
}

// Do implements ports.Transport in-process by JSON round-tripping through Handle.
func (b *Backend) Do(ctx context.Context, req ports.Request, out any) error {
	var body []byte
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", req.Operation, err)
		}
		body = raw
	}

	resp, err := b.Handle(ctx, req.Operation, req.Params, body)
	if err != nil {
		return err
	}
	if out == nil || resp.Body == nil {
		return nil
	}

	raw, err := json.Marshal(resp.Body)
	if err != nil {
		return fmt.Errorf("encode %s response: %w", req.Operation, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s response: %w", req.Operation, err)
	}
	return nil
}

func (b *Backend) wait(ctx context.Context) error {
	if b.latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(b.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (b *Backend) dispatch(op string, params map[string]string, body []byte) (*Response, error) {
	switch op {
	case ports.OpListJobs:
		return respondOK(b.listJobs()), nil
	case ports.OpGetJob:
		return b.getJob(params["id"])
	case ports.OpCreateJob:
		var in domain.JobInput
		if err := b.validator.decode(body, &in); err != nil {
			return nil, err
		}
		return b.createJob(in)
	case ports.OpDeleteJob:
		return b.deleteJob(params["id"])
	case ports.OpLogin:
		var creds domain.Credentials
		if err := b.validator.decode(body, &creds); err != nil {
			return nil, domain.NewAPIError(http.StatusUnauthorized, "invalid credentials")
		}
		return b.login(creds)
	case ports.OpValidateSession:
		var s domain.Session
		if err := b.validator.decode(body, &s); err != nil {
			return nil, err
		}
		return b.validateSession(s)
	case ports.OpListUsers:
		return respondOK(b.listUsers()), nil
	case ports.OpAddSubUser:
		var in domain.SubUserInput
		if err := b.validator.decode(body, &in); err != nil {
			return nil, err
		}
		return b.addSubUser(in)
	case ports.OpGetCompany:
		return b.getCompany(params["id"])
	case ports.OpListCompanyJobs:
		return b.listCompanyJobs(params["id"])
	default:
		b.log.Warn().Str("operation", op).Msg("no backend handler for operation")
		ack := map[string]any{"message": fmt.Sprintf("Request to %s received (no specific handler).", op)}
		if len(body) > 0 && json.Valid(body) {
			ack["data"] = json.RawMessage(body)
		}
		return respondOK(ack), nil
	}
}

func respondOK(body any) *Response {
	return &Response{Status: http.StatusOK, Body: body}
}

func respondCreated(body any) *Response {
	return &Response{Status: http.StatusCreated, Body: body}
}

// ── Jobs ─────────────────────────────────────────────────────────────────────

func (b *Backend) listJobs() []domain.JobPosting {
	b.mu.Lock()
	jobs := append(make([]domain.JobPosting, 0, len(b.jobs)), b.jobs...)
	b.mu.Unlock()

	domain.SortByDatePostedDesc(jobs)
	return jobs
}

func (b *Backend) getJob(id string) (*Response, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, j := range b.jobs {
		if j.ID == id {
			return respondOK(j), nil
		}
	}
	return nil, domain.NewAPIError(http.StatusNotFound, "job not found")
}

func (b *Backend) createJob(in domain.JobInput) (*Response, error) {
	if in.PostedBy == "" {
		in.PostedBy = DefaultPoster
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	id := fmt.Sprintf("job%d", b.nextJobID)
	job, err := domain.NewJobPosting(id, in, b.now())
	if err != nil {
		return nil, domain.NewAPIError(http.StatusBadRequest, err.Error())
	}
	b.nextJobID++

	switch {
	case in.CompanyID != "":
		if c, found := b.company(in.CompanyID); found {
			job.LinkCompany(c)
		} else {
			companyID := in.CompanyID
			job.CompanyID = &companyID
		}
	default:
		if c, found := companyManagedBy(b.companies, in.PostedBy); found {
			job.LinkCompany(c)
		}
	}

	b.jobs = slices.Insert(b.jobs, 0, *job)
	metrics.JobsCreatedTotal.WithLabelValues(string(job.Tier)).Inc()

	b.log.Info().
		Str("job_id", job.ID).
		Str("posted_by", job.PostedBy).
		Str("tier", string(job.Tier)).
		Msg("job posting created")

	return respondCreated(*job), nil
}

func (b *Backend) deleteJob(id string) (*Response, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := slices.IndexFunc(b.jobs, func(j domain.JobPosting) bool { return j.ID == id })
	if idx < 0 {
		return nil, domain.NewAPIError(http.StatusNotFound, "job not found for deletion")
	}
	deleted := b.jobs[idx]
	b.jobs = slices.Delete(b.jobs, idx, idx+1)

	b.log.Info().Str("job_id", id).Msg("job posting deleted")
	return respondOK(map[string]any{"message": "job deleted successfully", "job": deleted}), nil
}

// ── Auth & users ─────────────────────────────────────────────────────────────

func (b *Backend) login(creds domain.Credentials) (*Response, error) {
	b.mu.Lock()
	var match *storedUser
	for i := range b.users {
		if b.users[i].Username == creds.Username {
			u := b.users[i]
			match = &u
			break
		}
	}
	b.mu.Unlock()

	if match == nil || bcrypt.CompareHashAndPassword(match.hash, []byte(creds.Password)) != nil {
		return nil, domain.NewAPIError(http.StatusUnauthorized, "invalid credentials")
	}

	token, err := b.tokens.Issue(match.User)
	if err != nil {
		return nil, domain.NewAPIError(http.StatusInternalServerError, "internal server error")
	}
	return respondOK(domain.NewSession(match.User, token)), nil
}

func (b *Backend) validateSession(s domain.Session) (*Response, error) {
	claims, err := b.tokens.Parse(s.Token)
	if err != nil {
		return nil, domain.NewAPIError(http.StatusUnauthorized, "invalid session token")
	}
	if id, err := claims.UserID(); err != nil || id != s.ID || claims.Username != s.Username {
		return nil, domain.NewAPIError(http.StatusUnauthorized, "session does not match token")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, u := range b.users {
		if u.ID == s.ID && u.Username == s.Username {
			return respondOK(u.User), nil
		}
	}
	return nil, domain.NewAPIError(http.StatusUnauthorized, "session user no longer exists")
}

func (b *Backend) listUsers() []domain.User {
	b.mu.Lock()
	defer b.mu.Unlock()

	users := make([]domain.User, 0, len(b.users))
	for _, u := range b.users {
		users = append(users, u.User)
	}
	return users
}

func (b *Backend) addSubUser(in domain.SubUserInput) (*Response, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), b.cost)
	if err != nil {
		return nil, domain.NewAPIError(http.StatusInternalServerError, "internal server error")
	}
	if in.CreatedBy == "" {
		in.CreatedBy = DefaultCreator
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, u := range b.users {
		if u.Username == in.Username {
			return nil, domain.NewAPIError(http.StatusConflict, "username already exists")
		}
	}

	user := domain.User{
		ID:        b.nextUserID,
		Username:  in.Username,
		Role:      domain.RoleRecruiter,
		CreatedBy: in.CreatedBy,
	}
	b.nextUserID++
	b.users = append(b.users, storedUser{User: user, hash: hash})

	b.log.Info().Str("username", user.Username).Str("created_by", user.CreatedBy).Msg("sub-user created")
	return respondCreated(user), nil
}

// ── Companies ────────────────────────────────────────────────────────────────

func (b *Backend) getCompany(id string) (*Response, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, found := b.company(id)
	if !found {
		return nil, domain.NewAPIError(http.StatusNotFound, "company not found")
	}
	return respondOK(c), nil
}

func (b *Backend) listCompanyJobs(id string) (*Response, error) {
	b.mu.Lock()
	if _, found := b.company(id); !found {
		b.mu.Unlock()
		return nil, domain.NewAPIError(http.StatusNotFound, "company not found")
	}
	jobs := make([]domain.JobPosting, 0)
	for _, j := range b.jobs {
		if j.CompanyID != nil && *j.CompanyID == id {
			jobs = append(jobs, j)
		}
	}
	b.mu.Unlock()

	domain.SortByDatePostedDesc(jobs)
	return respondOK(jobs), nil
}

// company must be called with b.mu held.
func (b *Backend) company(id string) (domain.Company, bool) {
	for _, c := range b.companies {
		if c.CompanyID == id {
			return c, true
		}
	}
	return domain.Company{}, false
}

func companyManagedBy(companies []domain.Company, username string) (domain.Company, bool) {
	for _, c := range companies {
		if c.ManagedBy(username) {
			return c, true
		}
	}
	return domain.Company{}, false
}
