// Package navigation decides whether a page transition may proceed.
package navigation

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/hireboard/job-portal/internal/core/domain"
	"github.com/hireboard/job-portal/internal/pkg/metrics"
)

// Outcome is the verdict of Decide.
type Outcome int

const (
	Allow Outcome = iota
	RedirectLogin
	RedirectLanding
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectLanding:
		return "redirect_landing"
	default:
		return "unknown"
	}
}

// Decide applies the access rules for target. It has no side effects.
func Decide(target Route, isAuthenticated, isAdmin bool) Outcome {
	switch {
	case target.RequiresAuth && !isAuthenticated:
		return RedirectLogin
	case target.RequiresAuth && target.RequiresAdmin && !isAdmin:
		return RedirectLanding
	case target.Guest && isAuthenticated:
		return RedirectLanding
	default:
		return Allow
	}
}

// ReturnToParam carries the originally requested path on a login redirect.
const ReturnToParam = "redirect"

// Decision is where a navigation ends up.
type Decision struct {
	Outcome Outcome
	// Route is the page that will render.
	Route Route
	// Location is the path to render, including the return-to query on a
	// login redirect.
	Location string
}

// Core is the slice of the session manager the guard reads.
type Core interface {
	CurrentUser() *domain.Session
	HasPersistedSession(ctx context.Context) bool
	TryAutoLogin(ctx context.Context) bool
}

// Guard is consulted before every page transition.
type Guard struct {
	table *Table
	core  Core
	log   zerolog.Logger
}

func NewGuard(table *Table, core Core, log zerolog.Logger) *Guard {
	return &Guard{table: table, core: core, log: log}
}

// Navigate resolves fullPath against the route table and decides the
// transition. An anonymous actor with a persisted session is auto-logged-in
// first.
func (g *Guard) Navigate(ctx context.Context, fullPath string) (Decision, error) {
	isAuth, isAdmin := g.actor()
	if !isAuth && g.core.HasPersistedSession(ctx) {
		if g.core.TryAutoLogin(ctx) {
			isAuth, isAdmin = g.actor()
		}
	}

	target, ok := g.table.Match(fullPath)
	if !ok {
		return Decision{}, fmt.Errorf("%w: no route for %q", domain.ErrNotFound, fullPath)
	}
	requested := fullPath
	if target.Redirect != "" {
		target = g.follow(target, isAuth)
		requested = target.Path
	}

	var d Decision
	switch outcome := Decide(target, isAuth, isAdmin); outcome {
	case Allow:
		d = Decision{Outcome: outcome, Route: target, Location: requested}
	case RedirectLogin:
		login := g.table.LoginRoute()
		q := url.Values{ReturnToParam: {fullPath}}
		d = Decision{Outcome: outcome, Route: login, Location: login.Path + "?" + q.Encode()}
	case RedirectLanding:
		landing := g.table.LandingRoute()
		d = Decision{Outcome: outcome, Route: landing, Location: landing.Path}
	}

	metrics.NavigationDecisionsTotal.WithLabelValues(d.Outcome.String()).Inc()
	g.log.Debug().
		Str("path", fullPath).
		Str("outcome", d.Outcome.String()).
		Str("location", d.Location).
		Msg("navigation decided")
	return d, nil
}

// actor derives the predicates from the live session's role.
func (g *Guard) actor() (isAuthenticated, isAdmin bool) {
	s := g.core.CurrentUser()
	if s == nil || s.Token == "" {
		return false, false
	}
	switch s.Role {
	case domain.RoleAdmin:
		return true, true
	case domain.RoleRecruiter:
		return true, false
	default:
		g.log.Warn().Str("role", string(s.Role)).Msg("session has unknown role, treating as anonymous")
		return false, false
	}
}

func (g *Guard) follow(r Route, isAuth bool) Route {
	// ParseTable rejects cycles, so a chain ends within len(Routes) steps.
	for n := len(g.table.Routes); n > 0; n-- {
		switch {
		case r.Redirect == "":
			return r
		case r.Redirect == RedirectHome && isAuth:
			r = g.table.LandingRoute()
		case r.Redirect == RedirectHome:
			r = g.table.LoginRoute()
		default:
			r, _ = g.table.Named(r.Redirect)
		}
	}
	return r
}
