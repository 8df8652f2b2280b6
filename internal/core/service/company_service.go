package service

import (
	"context"

	"github.com/hireboard/job-portal/internal/core/domain"
	"github.com/hireboard/job-portal/internal/core/ports"
)

type CompanyService struct {
	transport ports.Transport
}

func NewCompanyService(transport ports.Transport) *CompanyService {
	return &CompanyService{transport: transport}
}

func (s *CompanyService) Get(ctx context.Context, id string) (*domain.Company, error) {
	var c domain.Company
	err := s.transport.Do(ctx, ports.Request{
		Operation: ports.OpGetCompany,
		Params:    map[string]string{"id": id},
	}, &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *CompanyService) ListJobs(ctx context.Context, id string) ([]domain.JobPosting, error) {
	var jobs []domain.JobPosting
	err := s.transport.Do(ctx, ports.Request{
		Operation: ports.OpListCompanyJobs,
		Params:    map[string]string{"id": id},
	}, &jobs)
	if err != nil {
		return nil, err
	}
	return jobs, nil
}
