// Package session owns "who is logged in" and the cached projection of the
// backend's job and user collections.
//
// The backend is the single store of record. The Manager never mutates its
// projection locally: every mutation is followed by a full re-fetch.
package session

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hireboard/job-portal/internal/core/domain"
	"github.com/hireboard/job-portal/internal/core/ports"
	"github.com/hireboard/job-portal/internal/pkg/metrics"
)

// SubUserOwner is the provisioning identity whose recruiters are listed by SubUsers.
const SubUserOwner = "admin"

// Deps are the collaborators of a Manager.
type Deps struct {
	Jobs   ports.JobService
	Auth   ports.AuthService
	Users  ports.UserService
	Store  ports.SessionStore
	Logger zerolog.Logger
}

// Manager is the application-state container: one per process, constructed
// at start-up and handed by reference to the navigation guard and the CLI.
type Manager struct {
	jobs  ports.JobService
	auth  ports.AuthService
	users ports.UserService
	store ports.SessionStore
	log   zerolog.Logger

	mu          sync.RWMutex
	current     *domain.Session
	jobPostings []domain.JobPosting
	userList    []domain.User
	loadingJobs bool
}

func New(d Deps) *Manager {
	return &Manager{
		jobs:  d.Jobs,
		auth:  d.Auth,
		users: d.Users,
		store: d.Store,
		log:   d.Logger,
	}
}

// Init restores a persisted session if there is one and loads the listings.
// Restoring an admin session also loads the users.
func (m *Manager) Init(ctx context.Context) error {
	m.TryAutoLogin(ctx)
	if err := m.RefreshJobPostings(ctx); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	return nil
}

// Dispose drops all in-memory state. The persisted session is left alone.
func (m *Manager) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
	m.jobPostings = nil
	m.userList = nil
	m.loadingJobs = false
}

// ── Session transitions ──────────────────────────────────────────────────────

// Login authenticates against the backend and persists the new session.
// On failure any existing session is left untouched.
func (m *Manager) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	s, err := m.auth.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			m.log.Info().Str("username", username).Msg("login rejected")
			return nil, domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	m.mu.Lock()
	m.current = s
	m.mu.Unlock()

	if err := m.store.Save(ctx, s); err != nil {
		m.log.Warn().Err(err).Str("username", s.Username).Msg("failed to persist session")
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	m.log.Info().Str("username", s.Username).Str("role", string(s.Role)).Msg("logged in")
	m.loadUsers(ctx, s)
	return cloneSession(s), nil
}

// Logout clears the session and its persisted copy. It is idempotent.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	prev := m.current
	m.current = nil
	m.userList = nil
	m.mu.Unlock()

	if err := m.store.Delete(ctx); err != nil {
		m.log.Warn().Err(err).Msg("failed to remove persisted session")
	}
	if prev != nil {
		m.log.Info().Str("username", prev.Username).Msg("logged out")
	}
}

// HasPersistedSession reports whether a session record is in durable storage.
func (m *Manager) HasPersistedSession(ctx context.Context) bool {
	_, err := m.store.Load(ctx)
	return err == nil
}

// TryAutoLogin promotes a persisted session to the live one after the backend
// confirms its token and that its user still exists. Rejected records are
// discarded. It reports whether a session was restored.
func (m *Manager) TryAutoLogin(ctx context.Context) bool {
	if m.IsAuthenticated() {
		return false
	}

	persisted, err := m.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNoSession) {
			m.log.Warn().Err(err).Msg("failed to read persisted session")
		}
		return false
	}

	if persisted.Token == "" || persisted.Username == "" {
		m.discard(ctx, "incomplete persisted session")
		return false
	}

	user, err := m.auth.Validate(ctx, persisted)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrNotFound) {
			m.discard(ctx, "stale persisted session")
			return false
		}
		m.log.Warn().Err(err).Msg("could not validate persisted session")
		return false
	}
	if user.ID != persisted.ID || user.Username != persisted.Username {
		m.discard(ctx, "persisted session does not match its user")
		return false
	}

	restored := cloneSession(persisted)
	restored.Role = user.Role

	m.mu.Lock()
	m.current = restored
	m.mu.Unlock()

	metrics.LoginsTotal.WithLabelValues("auto").Inc()
	m.log.Info().Str("username", restored.Username).Msg("session restored")
	m.loadUsers(ctx, restored)
	return true
}

// loadUsers fills the user projection for an admin session. A failure is
// logged and leaves the session in place.
func (m *Manager) loadUsers(ctx context.Context, s *domain.Session) {
	if s.Role != domain.RoleAdmin {
		return
	}
	if err := m.RefreshUsers(ctx); err != nil {
		m.log.Warn().Err(err).Str("username", s.Username).Msg("users could not be loaded")
	}
}

func (m *Manager) discard(ctx context.Context, reason string) {
	m.log.Info().Str("reason", reason).Msg("discarding persisted session")
	if err := m.store.Delete(ctx); err != nil {
		m.log.Warn().Err(err).Msg("failed to remove persisted session")
	}
}

// ── Mutations ────────────────────────────────────────────────────────────────

// RefreshJobPostings replaces the job projection wholesale. On failure the
// projection is emptied rather than left stale.
func (m *Manager) RefreshJobPostings(ctx context.Context) error {
	m.mu.Lock()
	m.loadingJobs = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.loadingJobs = false
		m.mu.Unlock()
	}()

	jobs, err := m.jobs.List(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.jobPostings = nil
		m.log.Error().Err(err).Msg("failed to refresh job postings")
		return fmt.Errorf("refresh job postings: %w", err)
	}
	m.jobPostings = jobs
	return nil
}

// CreateJob posts a job as the current user, then re-fetches all listings.
func (m *Manager) CreateJob(ctx context.Context, in domain.JobInput) (*domain.JobPosting, error) {
	actor := m.CurrentUser()
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}

	job, err := m.jobs.Create(ctx, in, actor)
	if err != nil {
		return nil, err
	}

	if err := m.RefreshJobPostings(ctx); err != nil {
		m.log.Warn().Err(err).Str("job_id", job.ID).Msg("job created but listings could not be refreshed")
	}
	return job, nil
}

// DeleteJob removes a job through the backend, then re-fetches all listings.
func (m *Manager) DeleteJob(ctx context.Context, id string) error {
	if err := m.jobs.Delete(ctx, id, m.CurrentUser()); err != nil {
		return err
	}

	if err := m.RefreshJobPostings(ctx); err != nil {
		m.log.Warn().Err(err).Str("job_id", id).Msg("job deleted but listings could not be refreshed")
	}
	return nil
}

// CreateSubUser provisions a recruiter. Only admins may call it.
func (m *Manager) CreateSubUser(ctx context.Context, in domain.SubUserInput) (*domain.User, error) {
	actor := m.CurrentUser()
	if actor == nil {
		return nil, domain.ErrForbidden
	}
	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleRecruiter:
		return nil, domain.ErrForbidden
	default:
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrForbidden, actor.Role)
	}

	m.mu.RLock()
	exists := slices.ContainsFunc(m.userList, func(u domain.User) bool { return u.Username == in.Username })
	m.mu.RUnlock()
	if exists {
		return nil, domain.ErrConflict
	}

	user, err := m.users.AddSubUser(ctx, in, actor)
	if err != nil {
		return nil, err
	}

	if err := m.RefreshUsers(ctx); err != nil {
		m.log.Warn().Err(err).Msg("sub-user created but users could not be refreshed")
		m.mu.Lock()
		if !slices.ContainsFunc(m.userList, func(u domain.User) bool { return u.Username == user.Username }) {
			m.userList = append(m.userList, *user)
		}
		m.mu.Unlock()
	}

	m.log.Info().Str("username", user.Username).Str("created_by", actor.Username).Msg("sub-user created")
	return user, nil
}

// RefreshUsers replaces the user projection wholesale.
func (m *Manager) RefreshUsers(ctx context.Context) error {
	users, err := m.users.List(ctx)
	if err != nil {
		return fmt.Errorf("refresh users: %w", err)
	}
	m.mu.Lock()
	m.userList = users
	m.mu.Unlock()
	return nil
}

// ── Predicates ───────────────────────────────────────────────────────────────

func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil && m.current.Token != ""
}

func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.IsAdmin()
}

func (m *Manager) IsRecruiter() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.IsRecruiter()
}

func (m *Manager) IsLoadingJobs() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loadingJobs
}

// CurrentUser returns a copy of the live session, or nil when anonymous.
func (m *Manager) CurrentUser() *domain.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneSession(m.current)
}

// AllJobPostings returns the listings newest first.
func (m *Manager) AllJobPostings() []domain.JobPosting {
	m.mu.RLock()
	jobs := slices.Clone(m.jobPostings)
	m.mu.RUnlock()

	domain.SortByDatePostedDesc(jobs)
	return jobs
}

// AllUsers returns the user projection in backend order.
func (m *Manager) AllUsers() []domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.userList)
}

// SubUsers returns the recruiters provisioned by SubUserOwner.
func (m *Manager) SubUsers() []domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []domain.User
	for _, u := range m.userList {
		if u.Role == domain.RoleRecruiter && u.CreatedBy == SubUserOwner {
			out = append(out, u)
		}
	}
	return out
}

// JobFilter narrows the listings. Zero values match everything.
type JobFilter struct {
	// Search matches title, company name or description, case-insensitively.
	Search       string
	Location     string
	Type         string
	FeaturedOnly bool
	// ActiveAt, when set, drops listings whose end date has passed at that instant.
	ActiveAt time.Time
}

// FilterJobPostings returns the listings matching f, newest first.
func (m *Manager) FilterJobPostings(f JobFilter) []domain.JobPosting {
	term := strings.ToLower(strings.TrimSpace(f.Search))

	var out []domain.JobPosting
	for _, j := range m.AllJobPostings() {
		if term != "" && !matchesTerm(j, term) {
			continue
		}
		if f.Location != "" && !strings.EqualFold(j.Location, f.Location) {
			continue
		}
		if f.Type != "" && !strings.EqualFold(j.Type, f.Type) {
			continue
		}
		if f.FeaturedOnly && !j.IsFeatured {
			continue
		}
		if !f.ActiveAt.IsZero() && j.Expired(f.ActiveAt) {
			continue
		}
		out = append(out, j)
	}
	return out
}

func matchesTerm(j domain.JobPosting, term string) bool {
	if strings.Contains(strings.ToLower(j.Title), term) ||
		strings.Contains(strings.ToLower(j.Description), term) {
		return true
	}
	return j.CompanyName != nil && strings.Contains(strings.ToLower(*j.CompanyName), term)
}

func cloneSession(s *domain.Session) *domain.Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
