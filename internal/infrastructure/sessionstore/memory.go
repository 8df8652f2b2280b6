package sessionstore

import (
	"context"
	"sync"

	"github.com/hireboard/job-portal/internal/core/domain"
)

// Memory keeps the record in process memory. It survives a Manager being
// disposed and rebuilt, which is how tests simulate a restart.
type Memory struct {
	mu  sync.Mutex
	raw []byte
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(_ context.Context) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.raw == nil {
		return nil, domain.ErrNoSession
	}
	s, ok := decode(m.raw)
	if !ok {
		m.raw = nil
		return nil, domain.ErrNoSession
	}
	return s, nil
}

func (m *Memory) Save(_ context.Context, s *domain.Session) error {
	raw, err := encode(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.raw = raw
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context) error {
	m.mu.Lock()
	m.raw = nil
	m.mu.Unlock()
	return nil
}

// Put stores raw bytes as the record, bypassing encoding.
func (m *Memory) Put(raw []byte) {
	m.mu.Lock()
	m.raw = raw
	m.mu.Unlock()
}
