package navigation

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hireboard/job-portal/internal/core/domain"
)

type stubCore struct {
	current   *domain.Session
	persisted *domain.Session

	autoLoginCalls int
}

func (s *stubCore) CurrentUser() *domain.Session { return s.current }

func (s *stubCore) HasPersistedSession(context.Context) bool { return s.persisted != nil }

func (s *stubCore) TryAutoLogin(context.Context) bool {
	s.autoLoginCalls++
	if s.current != nil || s.persisted == nil {
		return false
	}
	s.current = s.persisted
	return true
}

func session(role domain.Role) *domain.Session {
	return &domain.Session{ID: 7, Username: "someone", Role: role, Token: "tok"}
}

func newGuard(t *testing.T, core Core) *Guard {
	t.Helper()
	table, err := DefaultTable()
	if err != nil {
		t.Fatalf("DefaultTable: %v", err)
	}
	return NewGuard(table, core, zerolog.Nop())
}

func TestDecide(t *testing.T) {
	public := Route{Name: "About", Path: "/about"}
	guest := Route{Name: "Login", Path: "/login", Guest: true}
	auth := Route{Name: "Dashboard", Path: "/dashboard", RequiresAuth: true}
	admin := Route{Name: "ManageSubUsers", Path: "/manage-sub-users", RequiresAuth: true, RequiresAdmin: true}

	tests := []struct {
		name    string
		route   Route
		isAuth  bool
		isAdmin bool
		want    Outcome
	}{
		{"anonymous on public", public, false, false, Allow},
		{"anonymous on guest", guest, false, false, Allow},
		{"anonymous on auth", auth, false, false, RedirectLogin},
		{"anonymous on admin", admin, false, false, RedirectLogin},
		{"recruiter on guest", guest, true, false, RedirectLanding},
		{"recruiter on auth", auth, true, false, Allow},
		{"recruiter on admin", admin, true, false, RedirectLanding},
		{"admin on admin", admin, true, true, Allow},
		{"admin on guest", guest, true, true, RedirectLanding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decide(tt.route, tt.isAuth, tt.isAdmin); got != tt.want {
				t.Fatalf("Decide = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGuard_Navigate(t *testing.T) {
	tests := []struct {
		name         string
		current      *domain.Session
		path         string
		wantOutcome  Outcome
		wantRoute    string
		wantLocation string
	}{
		{"anonymous to dashboard", nil, "/dashboard", RedirectLogin, "Login", "/login?redirect=%2Fdashboard"},
		{"anonymous keeps query in return-to", nil, "/post-job?draft=1", RedirectLogin, "Login", "/login?redirect=%2Fpost-job%3Fdraft%3D1"},
		{"anonymous to login", nil, "/login", Allow, "Login", "/login"},
		{"recruiter to login", session(domain.RoleRecruiter), "/login", RedirectLanding, "Dashboard", "/dashboard"},
		{"recruiter to admin page", session(domain.RoleRecruiter), "/manage-sub-users", RedirectLanding, "Dashboard", "/dashboard"},
		{"admin to admin page", session(domain.RoleAdmin), "/manage-sub-users", Allow, "ManageSubUsers", "/manage-sub-users"},
		{"recruiter to post job", session(domain.RoleRecruiter), "/post-job", Allow, "PostJob", "/post-job"},
		{"trailing slash", session(domain.RoleAdmin), "/dashboard/", Allow, "Dashboard", "/dashboard/"},
		{"root anonymous", nil, "/", Allow, "Login", "/login"},
		{"root authenticated", session(domain.RoleRecruiter), "/", Allow, "Dashboard", "/dashboard"},
		{"unknown anonymous", nil, "/nowhere", Allow, "Login", "/login"},
		{"unknown authenticated", session(domain.RoleAdmin), "/nowhere", Allow, "Dashboard", "/dashboard"},
		{"unknown role is anonymous", session(domain.Role("owner")), "/dashboard", RedirectLogin, "Login", "/login?redirect=%2Fdashboard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGuard(t, &stubCore{current: tt.current})

			d, err := g.Navigate(context.Background(), tt.path)
			if err != nil {
				t.Fatalf("Navigate: %v", err)
			}
			if d.Outcome != tt.wantOutcome || d.Route.Name != tt.wantRoute || d.Location != tt.wantLocation {
				t.Fatalf("got %v %s %q, want %v %s %q",
					d.Outcome, d.Route.Name, d.Location, tt.wantOutcome, tt.wantRoute, tt.wantLocation)
			}
		})
	}
}

func TestGuard_AutoLoginBeforeDeciding(t *testing.T) {
	core := &stubCore{persisted: session(domain.RoleAdmin)}
	g := newGuard(t, core)

	d, err := g.Navigate(context.Background(), "/manage-sub-users")
	if err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if d.Outcome != Allow {
		t.Fatalf("expected restored admin to be allowed, got %v", d.Outcome)
	}
	if core.autoLoginCalls != 1 {
		t.Fatalf("expected one auto-login attempt, got %d", core.autoLoginCalls)
	}

	// Already authenticated: no further attempts.
	if _, err := g.Navigate(context.Background(), "/dashboard"); err != nil {
		t.Fatal(err)
	}
	if core.autoLoginCalls != 1 {
		t.Fatalf("auto-login should not run when authenticated, got %d calls", core.autoLoginCalls)
	}
}

func TestGuard_NoAutoLoginWithoutPersistedSession(t *testing.T) {
	core := &stubCore{}
	g := newGuard(t, core)

	if _, err := g.Navigate(context.Background(), "/dashboard"); err != nil {
		t.Fatal(err)
	}
	if core.autoLoginCalls != 0 {
		t.Fatalf("expected no auto-login attempt, got %d", core.autoLoginCalls)
	}
}

func TestParseTable_Rejects(t *testing.T) {
	tests := map[string]string{
		"unknown landing": `
landing: Home
login: Login
routes:
  - {name: Login, path: /login, guest: true}
`,
		"duplicate path": `
landing: Dashboard
login: Login
routes:
  - {name: Login, path: /login, guest: true}
  - {name: Dashboard, path: /login, requiresAuth: true}
`,
		"admin without auth": `
landing: Dashboard
login: Login
routes:
  - {name: Login, path: /login, guest: true}
  - {name: Dashboard, path: /dashboard, requiresAdmin: true}
`,
		"dangling redirect": `
landing: Dashboard
login: Login
routes:
  - {name: Login, path: /login, guest: true}
  - {name: Dashboard, path: /dashboard, requiresAuth: true}
  - {name: Old, path: /old, redirect: Gone}
`,
		"redirect cycle": `
landing: Dashboard
login: Login
routes:
  - {name: Login, path: /login, guest: true}
  - {name: Dashboard, path: /dashboard, requiresAuth: true}
  - {name: A, path: /a, redirect: B}
  - {name: B, path: /b, redirect: A}
`,
		"self redirect": `
landing: Dashboard
login: Login
routes:
  - {name: Login, path: /login, guest: true}
  - {name: Dashboard, path: /dashboard, requiresAuth: true}
  - {name: Loop, path: /loop, redirect: Loop}
`,
		"not yaml": "routes: [",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseTable([]byte(raw)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestGuard_NoCatchAll(t *testing.T) {
	table, err := ParseTable([]byte(`
landing: Dashboard
login: Login
routes:
  - {name: Login, path: /login, guest: true}
  - {name: Dashboard, path: /dashboard, requiresAuth: true}
`))
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}
	g := NewGuard(table, &stubCore{}, zerolog.Nop())

	if _, err := g.Navigate(context.Background(), "/missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestGuard_NamedRedirect(t *testing.T) {
	table, err := ParseTable([]byte(`
landing: Dashboard
login: Login
routes:
  - {name: Login, path: /login, guest: true}
  - {name: Dashboard, path: /dashboard, requiresAuth: true}
  - {name: Jobs, path: /jobs, redirect: Dashboard}
`))
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}
	g := NewGuard(table, &stubCore{}, zerolog.Nop())

	d, err := g.Navigate(context.Background(), "/jobs")
	if err != nil {
		t.Fatal(err)
	}
	if d.Outcome != RedirectLogin || d.Location != "/login?redirect=%2Fjobs" {
		t.Fatalf("got %v %q", d.Outcome, d.Location)
	}
}

func TestParseTable_RedirectChainToHome(t *testing.T) {
	table, err := ParseTable([]byte(`
landing: Dashboard
login: Login
routes:
  - {name: Login, path: /login, guest: true}
  - {name: Dashboard, path: /dashboard, requiresAuth: true}
  - {name: Start, path: /start, redirect: Root}
  - {name: Root, path: /, redirect: home}
`))
	if err != nil {
		t.Fatalf("ParseTable: %v", err)
	}
	g := NewGuard(table, &stubCore{current: session(domain.RoleRecruiter)}, zerolog.Nop())

	d, err := g.Navigate(context.Background(), "/start")
	if err != nil {
		t.Fatal(err)
	}
	if d.Outcome != Allow || d.Route.Name != "Dashboard" {
		t.Fatalf("got %v %s", d.Outcome, d.Route.Name)
	}
}
