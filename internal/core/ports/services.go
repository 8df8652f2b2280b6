package ports

import (
	"context"

	"github.com/hireboard/job-portal/internal/core/domain"
)

// JobService is the facade over job operations.
type JobService interface {
	List(ctx context.Context) ([]domain.JobPosting, error)
	Get(ctx context.Context, id string) (*domain.JobPosting, error)
	// Create stamps postedBy from actor before forwarding.
	Create(ctx context.Context, in domain.JobInput, actor *domain.Session) (*domain.JobPosting, error)
	Delete(ctx context.Context, id string, actor *domain.Session) error
}

// AuthService is the facade over authentication operations.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*domain.Session, error)
	// Validate asks the backend whether a persisted session is still good.
	Validate(ctx context.Context, s *domain.Session) (*domain.User, error)
}

// UserService is the facade over user operations.
type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	// AddSubUser stamps createdBy from actor before forwarding.
	AddSubUser(ctx context.Context, in domain.SubUserInput, actor *domain.Session) (*domain.User, error)
}

// CompanyService is the facade over company operations.
type CompanyService interface {
	Get(ctx context.Context, id string) (*domain.Company, error)
	ListJobs(ctx context.Context, id string) ([]domain.JobPosting, error)
}
