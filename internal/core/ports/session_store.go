package ports

import (
	"context"

	"github.com/hireboard/job-portal/internal/core/domain"
)

// SessionStore is the durable home of the single persisted session record.
type SessionStore interface {
	// Load returns the persisted session or domain.ErrNoSession.
	Load(ctx context.Context) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session) error
	// Delete removes the record. Deleting a missing record is not an error.
	Delete(ctx context.Context) error
}

// Pinger is implemented by stores backed by a network dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}
