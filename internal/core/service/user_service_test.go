package service

import (
	"context"
	"testing"

	"github.com/hireboard/job-portal/internal/core/domain"
	"github.com/hireboard/job-portal/internal/core/ports"
)

func echoUser(req ports.Request) (any, error) {
	in := req.Body.(domain.SubUserInput)
	return domain.User{ID: 4, Username: in.Username, Role: domain.RoleRecruiter, CreatedBy: in.CreatedBy}, nil
}

func TestUserService_AddSubUser_StampsActor(t *testing.T) {
	svc := NewUserService(&stubTransport{respond: echoUser})

	actor := &domain.Session{Username: "admin", Role: domain.RoleAdmin}
	u, err := svc.AddSubUser(context.Background(), domain.SubUserInput{Username: "r3", Password: "pw"}, actor)
	if err != nil {
		t.Fatalf("AddSubUser: %v", err)
	}
	if u.CreatedBy != "admin" {
		t.Fatalf("expected createdBy admin, got %s", u.CreatedBy)
	}
}

func TestUserService_AddSubUser_FallbackIdentity(t *testing.T) {
	svc := NewUserService(&stubTransport{respond: echoUser})

	u, err := svc.AddSubUser(context.Background(), domain.SubUserInput{Username: "r3", Password: "pw"}, nil)
	if err != nil {
		t.Fatalf("AddSubUser: %v", err)
	}
	if u.CreatedBy != FallbackCreator {
		t.Fatalf("expected %s, got %s", FallbackCreator, u.CreatedBy)
	}
}

func TestCompanyService_Lookups(t *testing.T) {
	transport := &stubTransport{respond: func(req ports.Request) (any, error) {
		switch req.Operation {
		case ports.OpGetCompany:
			return domain.Company{CompanyID: req.Params["id"], Name: "Acme"}, nil
		case ports.OpListCompanyJobs:
			return []domain.JobPosting{{ID: "job1"}}, nil
		}
		t.Fatalf("unexpected operation %s", req.Operation)
		return nil, nil
	}}
	svc := NewCompanyService(transport)

	c, err := svc.Get(context.Background(), "c1")
	if err != nil || c.CompanyID != "c1" {
		t.Fatalf("Get: %v %+v", err, c)
	}
	jobs, err := svc.ListJobs(context.Background(), "c1")
	if err != nil || len(jobs) != 1 {
		t.Fatalf("ListJobs: %v %+v", err, jobs)
	}
}
