package service

import (
	"context"

	"github.com/hireboard/job-portal/internal/core/domain"
	"github.com/hireboard/job-portal/internal/core/ports"
)

// FallbackCreator is stamped as createdBy when a sub-user is added without a session.
const FallbackCreator = "unknown_admin_api"

type UserService struct {
	transport ports.Transport
}

func NewUserService(transport ports.Transport) *UserService {
	return &UserService{transport: transport}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := s.transport.Do(ctx, ports.Request{Operation: ports.OpListUsers}, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AddSubUser attributes the new recruiter to actor, or to FallbackCreator.
func (s *UserService) AddSubUser(ctx context.Context, in domain.SubUserInput, actor *domain.Session) (*domain.User, error) {
	in.CreatedBy = FallbackCreator
	if actor != nil {
		in.CreatedBy = actor.Username
	}

	var user domain.User
	err := s.transport.Do(ctx, ports.Request{
		Operation: ports.OpAddSubUser,
		Body:      in,
		Token:     tokenOf(actor),
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
