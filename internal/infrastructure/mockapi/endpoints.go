package mockapi

import (
	"net/url"
	"sort"
	"strings"

	"github.com/hireboard/job-portal/internal/core/ports"
)

// Endpoint is the wire shape of a backend operation. Auth and Admin are only
// enforced when the backend is served over HTTP.
type Endpoint struct {
	Method string
	Path   string
	Auth   bool
	Admin  bool
}

// Endpoints maps every operation name to its verb and path template.
var Endpoints = map[string]Endpoint{
	ports.OpListJobs:        {Method: "GET", Path: "/jobs"},
	ports.OpGetJob:          {Method: "GET", Path: "/jobs/:id"},
	ports.OpCreateJob:       {Method: "POST", Path: "/jobs", Auth: true},
	ports.OpUpdateJob:       {Method: "PUT", Path: "/jobs/:id", Auth: true},
	ports.OpDeleteJob:       {Method: "DELETE", Path: "/jobs/:id", Auth: true},
	ports.OpLogin:           {Method: "POST", Path: "/auth/login"},
	ports.OpValidateSession: {Method: "POST", Path: "/auth/session"},
	ports.OpListUsers:       {Method: "GET", Path: "/users"},
	ports.OpAddSubUser:      {Method: "POST", Path: "/users/sub", Auth: true, Admin: true},
	ports.OpGetCompany:      {Method: "GET", Path: "/companies/:id"},
	ports.OpListCompanyJobs: {Method: "GET", Path: "/companies/:id/jobs"},
}

// Lookup returns the endpoint registered under op.
func Lookup(op string) (Endpoint, bool) {
	ep, ok := Endpoints[op]
	return ep, ok
}

// Names returns the registered operation names in a stable order.
func Names() []string {
	names := make([]string, 0, len(Endpoints))
	for name := range Endpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Expand substitutes ":name" segments of the path template with the escaped
// value of params[name]. Missing params expand to an empty segment.
func (e Endpoint) Expand(params map[string]string) string {
	segments := strings.Split(e.Path, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, ":") {
			segments[i] = url.PathEscape(params[seg[1:]])
		}
	}
	return strings.Join(segments, "/")
}
