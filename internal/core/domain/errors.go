package domain

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrValidation         = errors.New("validation failed")
	ErrInternal           = errors.New("internal error")
	ErrNoSession          = errors.New("no persisted session")
)

// APIError is a rejected backend outcome. It carries the HTTP-style status code
// and message produced by the backend and unwraps to the matching sentinel, so
// callers compare with errors.Is.
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// NewAPIError builds an APIError for the given status.
func NewAPIError(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrValidation
	default:
		return ErrInternal
	}
}

// StatusOf returns the status code carried by err, or 0 if err is not an APIError.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
