package ports

import "context"

// Operation names understood by the backend.
const (
	OpListJobs        = "ListJobs"
	OpGetJob          = "GetJob"
	OpCreateJob       = "CreateJob"
	OpUpdateJob       = "UpdateJob"
	OpDeleteJob       = "DeleteJob"
	OpLogin           = "Login"
	OpValidateSession = "ValidateSession"
	OpListUsers       = "ListUsers"
	OpAddSubUser      = "AddSubUser"
	OpGetCompany      = "GetCompany"
	OpListCompanyJobs = "ListCompanyJobs"
)

// Request is a single round trip to the backend.
type Request struct {
	Operation string
	Params    map[string]string
	Body      any
	// Token is the caller's bearer token, if any. In-process backends ignore it.
	Token string
}

// Transport carries a Request to the backend and decodes the result into out.
// A nil out discards the response body. Rejected outcomes are returned as
// *domain.APIError.
type Transport interface {
	Do(ctx context.Context, req Request, out any) error
}
