package navigation

import (
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"gopkg.in/yaml.v3"
)

// RedirectHome is the dynamic redirect target: landing when authenticated,
// login otherwise.
const RedirectHome = "home"

// CatchAll is the path of the route matched when nothing else is.
const CatchAll = "*"

//go:embed routes.yaml
var defaultRoutes []byte

// Route is a page the guard can be asked to enter.
type Route struct {
	Name          string `yaml:"name"`
	Path          string `yaml:"path"`
	Guest         bool   `yaml:"guest"`
	RequiresAuth  bool   `yaml:"requiresAuth"`
	RequiresAdmin bool   `yaml:"requiresAdmin"`
	Redirect      string `yaml:"redirect"`
}

// Table is the static route table consumed by the guard.
type Table struct {
	Landing string  `yaml:"landing"`
	Login   string  `yaml:"login"`
	Routes  []Route `yaml:"routes"`

	byName map[string]Route
	byPath map[string]Route
}

// DefaultTable returns the built-in route table.
func DefaultTable() (*Table, error) {
	return ParseTable(defaultRoutes)
}

// ParseTable decodes and checks a YAML route table.
func ParseTable(raw []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("parse route table: %w", err)
	}
	if err := t.index(); err != nil {
		return nil, err
	}
	return &t, nil
}

func (t *Table) index() error {
	t.byName = make(map[string]Route, len(t.Routes))
	t.byPath = make(map[string]Route, len(t.Routes))

	var errs []error
	for _, r := range t.Routes {
		if r.Name == "" || r.Path == "" {
			errs = append(errs, fmt.Errorf("route %q: name and path are required", r.Name+r.Path))
			continue
		}
		if _, dup := t.byName[r.Name]; dup {
			errs = append(errs, fmt.Errorf("route %q: duplicate name", r.Name))
		}
		if _, dup := t.byPath[r.Path]; dup {
			errs = append(errs, fmt.Errorf("route %q: duplicate path %q", r.Name, r.Path))
		}
		if r.RequiresAdmin && !r.RequiresAuth {
			errs = append(errs, fmt.Errorf("route %q: requiresAdmin implies requiresAuth", r.Name))
		}
		t.byName[r.Name] = r
		t.byPath[r.Path] = r
	}

	for _, r := range t.Routes {
		if r.Redirect != "" && r.Redirect != RedirectHome {
			if _, ok := t.byName[r.Redirect]; !ok {
				errs = append(errs, fmt.Errorf("route %q: unknown redirect target %q", r.Name, r.Redirect))
			}
		}
	}
	for _, r := range t.Routes {
		if t.redirectsInCycle(r) {
			errs = append(errs, fmt.Errorf("route %q: redirect cycle", r.Name))
		}
	}

	if landing, ok := t.byName[t.Landing]; !ok || landing.Redirect != "" {
		errs = append(errs, fmt.Errorf("landing route %q must exist and render", t.Landing))
	}
	if login, ok := t.byName[t.Login]; !ok || login.Redirect != "" {
		errs = append(errs, fmt.Errorf("login route %q must exist and render", t.Login))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid route table: %w", errors.Join(errs...))
	}
	return nil
}

// redirectsInCycle follows r's named redirects and reports whether they loop.
// The home redirect always ends the chain.
func (t *Table) redirectsInCycle(r Route) bool {
	seen := map[string]bool{r.Name: true}
	for r.Redirect != "" && r.Redirect != RedirectHome {
		next, ok := t.byName[r.Redirect]
		if !ok {
			return false
		}
		if seen[next.Name] {
			return true
		}
		seen[next.Name] = true
		r = next
	}
	return false
}

// Named returns the route with the given name.
func (t *Table) Named(name string) (Route, bool) {
	r, ok := t.byName[name]
	return r, ok
}

// Match finds the route for fullPath, ignoring any query or fragment, and
// falls back to the catch-all route.
func (t *Table) Match(fullPath string) (Route, bool) {
	path := fullPath
	if u, err := url.Parse(fullPath); err == nil {
		path = u.Path
	}
	if path == "" {
		path = "/"
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	if r, ok := t.byPath[path]; ok {
		return r, true
	}
	r, ok := t.byPath[CatchAll]
	return r, ok
}

// LandingRoute is where authenticated actors are sent.
func (t *Table) LandingRoute() Route { return t.byName[t.Landing] }

// LoginRoute is where anonymous actors are sent.
func (t *Table) LoginRoute() Route { return t.byName[t.Login] }
