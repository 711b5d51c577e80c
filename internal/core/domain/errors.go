package domain

import (
	"errors"
	"fmt"
)

var ErrSessionExpired = errors.New("session expired")
var ErrSessionNotFound = errors.New("session not found")
var ErrWizardNotFound = errors.New("wizard state not found")

// PreconditionError reports a wizard field that must be present before an
// operation may run. It is raised locally, before any upstream call is made.
type PreconditionError struct {
	Field string
}

func (e *PreconditionError) Error() string {
	return "missing " + e.Field
}

// NewPrecondition returns a PreconditionError for the given field.
func NewPrecondition(field string) *PreconditionError {
	return &PreconditionError{Field: field}
}

// NetworkError reports a transport-level failure talking to the upstream
// API: the request never produced an HTTP response. Timeout distinguishes
// deadline expiry from generic connectivity failures.
type NetworkError struct {
	Timeout bool
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("upstream timeout: %v", e.Err)
	}
	return fmt.Sprintf("upstream unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// APIError is a non-2xx upstream response. Message carries the
// server-supplied text ("message" field, falling back to "error", falling
// back to a synthesized status line) and is safe to surface to the UI.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }
