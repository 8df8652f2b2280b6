package service

import (
	"context"

	"github.com/hireboard/job-portal/internal/core/domain"
	"github.com/hireboard/job-portal/internal/core/ports"
)

// AuthService forwards login and session validation to the backend.
type AuthService struct {
	transport ports.Transport
}

func NewAuthService(transport ports.Transport) *AuthService {
	return &AuthService{transport: transport}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	var session domain.Session
	err := s.transport.Do(ctx, ports.Request{
		Operation: ports.OpLogin,
		Body:      domain.Credentials{Username: username, Password: password},
	}, &session)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *AuthService) Validate(ctx context.Context, session *domain.Session) (*domain.User, error) {
	var user domain.User
	err := s.transport.Do(ctx, ports.Request{
		Operation: ports.OpValidateSession,
		Body:      session,
		Token:     session.Token,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
