// Package service is the thin per-entity facade over the backend transport.
// Each call is a single round trip; nothing is cached or retried.
package service

import (
	"context"

	"github.com/hireboard/job-portal/internal/core/domain"
	"github.com/hireboard/job-portal/internal/core/ports"
)

// FallbackPoster is stamped as postedBy when a job is created without a session.
const FallbackPoster = "unknown_api_user"

type JobService struct {
	transport ports.Transport
}

func NewJobService(transport ports.Transport) *JobService {
	return &JobService{transport: transport}
}

func (s *JobService) List(ctx context.Context) ([]domain.JobPosting, error) {
	var jobs []domain.JobPosting
	if err := s.transport.Do(ctx, ports.Request{Operation: ports.OpListJobs}, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (s *JobService) Get(ctx context.Context, id string) (*domain.JobPosting, error) {
	var job domain.JobPosting
	err := s.transport.Do(ctx, ports.Request{
		Operation: ports.OpGetJob,
		Params:    map[string]string{"id": id},
	}, &job)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// Create attributes the posting to actor, or to FallbackPoster when actor is nil.
func (s *JobService) Create(ctx context.Context, in domain.JobInput, actor *domain.Session) (*domain.JobPosting, error) {
	in.PostedBy = FallbackPoster
	if actor != nil {
		in.PostedBy = actor.Username
	}

	var job domain.JobPosting
	err := s.transport.Do(ctx, ports.Request{
		Operation: ports.OpCreateJob,
		Body:      in,
		Token:     tokenOf(actor),
	}, &job)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *JobService) Delete(ctx context.Context, id string, actor *domain.Session) error {
	return s.transport.Do(ctx, ports.Request{
		Operation: ports.OpDeleteJob,
		Params:    map[string]string{"id": id},
		Token:     tokenOf(actor),
	}, nil)
}

func tokenOf(actor *domain.Session) string {
	if actor == nil {
		return ""
	}
	return actor.Token
}
