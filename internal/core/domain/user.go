package domain

import (
	"fmt"
	"strings"
)

// Role is the closed set of actor roles known to the job board.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleRecruiter Role = "recruiter"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleRecruiter:
		return true
	default:
		return false
	}
}

// ParseRole converts s into a Role, rejecting unknown values.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
	}
	return r, nil
}

// User models an identity record. The credential lives only in the backend.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Role      Role   `json:"role"`
	CreatedBy string `json:"createdBy,omitempty"`
}

// Session is the currently authenticated actor together with its bearer token.
// It is the record persisted under the well-known session key.
type Session struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Token    string `json:"token"`
}

// NewSession binds a token to the given user.
func NewSession(u User, token string) *Session {
	return &Session{ID: u.ID, Username: u.Username, Role: u.Role, Token: token}
}

// IsAdmin reports whether the session belongs to an admin.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// IsRecruiter reports whether the session belongs to a recruiter.
func (s *Session) IsRecruiter() bool {
	return s != nil && s.Role == RoleRecruiter
}

// Credentials is a username/password pair submitted to login.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SubUserInput provisions a recruiter on behalf of an admin.
type SubUserInput struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required"`
	CreatedBy string `json:"createdBy,omitempty"`
}
