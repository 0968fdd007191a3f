package domain

import (
	"errors"
	"fmt"
)

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUsernameTaken   = errors.New("username already exists")
	ErrBadCredentials  = errors.New("invalid username or password")
	ErrNoResults       = errors.New("no jobs found for your query")
	ErrNotSignedIn     = errors.New("sign in required")
)

// ProviderError marks a failed or malformed AI provider call. Op names the
// gateway operation ("jobs", "banner", "availability", "summary", "speech").
type ProviderError struct {
	Op     string
	Reason string
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider %s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("provider %s: %s", e.Op, e.Reason)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func NewProviderError(op, reason string, err error) *ProviderError {
	return &ProviderError{Op: op, Reason: reason, Err: err}
}

// IsProviderError reports whether err (or anything it wraps) is a ProviderError.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}
