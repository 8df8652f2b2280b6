package domain

import (
	"errors"
	"net/http"
	"testing"
)

func TestParseRole(t *testing.T) {
	for in, want := range map[string]Role{"admin": RoleAdmin, " Recruiter ": RoleRecruiter} {
		got, err := ParseRole(in)
		if err != nil || got != want {
			t.Fatalf("ParseRole(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseRole("client"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestSession_RolePredicates(t *testing.T) {
	var none *Session
	if none.IsAdmin() || none.IsRecruiter() {
		t.Fatalf("nil session must have no role")
	}

	admin := NewSession(User{ID: 1, Username: "admin", Role: RoleAdmin}, "tok")
	if !admin.IsAdmin() || admin.IsRecruiter() {
		t.Fatalf("unexpected predicates for admin")
	}
	if admin.Token != "tok" || admin.ID != 1 {
		t.Fatalf("unexpected session: %+v", admin)
	}
}

func TestAPIError_UnwrapsToSentinel(t *testing.T) {
	tests := map[int]error{
		http.StatusNotFound:            ErrNotFound,
		http.StatusConflict:            ErrConflict,
		http.StatusUnauthorized:        ErrUnauthorized,
		http.StatusForbidden:           ErrForbidden,
		http.StatusBadRequest:          ErrValidation,
		http.StatusInternalServerError: ErrInternal,
	}
	for status, want := range tests {
		err := error(NewAPIError(status, "boom"))
		if !errors.Is(err, want) {
			t.Fatalf("status %d: expected %v", status, want)
		}
		if StatusOf(err) != status {
			t.Fatalf("status %d: StatusOf returned %d", status, StatusOf(err))
		}
	}
	if StatusOf(errors.New("plain")) != 0 {
		t.Fatalf("expected 0 for non-API error")
	}
}
