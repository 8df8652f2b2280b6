package service

import (
	"context"
	"encoding/json"

	"github.com/hireboard/job-portal/internal/core/ports"
)

// stubTransport records every request and answers with a canned body or error.
type stubTransport struct {
	requests []ports.Request
	respond  func(req ports.Request) (any, error)
}

func (s *stubTransport) Do(_ context.Context, req ports.Request, out any) error {
	s.requests = append(s.requests, req)
	if s.respond == nil {
		return nil
	}
	body, err := s.respond(req)
	if err != nil {
		return err
	}
	if out == nil || body == nil {
		return nil
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (s *stubTransport) last() ports.Request {
	return s.requests[len(s.requests)-1]
}
