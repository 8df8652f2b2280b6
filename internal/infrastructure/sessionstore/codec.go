// Package sessionstore persists the single current-session record.
//
// Every store keeps exactly one record under a well-known key. A record that
// cannot be decoded is treated as absent and removed.
package sessionstore

import (
	"encoding/json"
	"fmt"

	"github.com/hireboard/job-portal/internal/core/domain"
)

// DefaultKey is the well-known name of the persisted session record.
const DefaultKey = "currentUser"

func encode(s *domain.Session) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("encode session: nil session")
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return raw, nil
}

func decode(raw []byte) (*domain.Session, bool) {
	var s domain.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false
	}
	return &s, true
}
