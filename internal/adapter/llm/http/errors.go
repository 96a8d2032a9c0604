// Package http holds the shared plumbing for the provider HTTP
// clients: the typed error taxonomy and the status code mapping both
// providers translate their failure responses through.
package http

import (
	"fmt"
	"net/http"
)

// ErrorType represents the category of a provider API failure.
type ErrorType int

const (
	ErrTypeAuthentication ErrorType = iota
	ErrTypeRateLimit
	ErrTypeServiceUnavailable
	ErrTypeInvalidRequest
	ErrTypeTimeout
	ErrTypeModelNotFound
	ErrTypeUnknown
)

// String returns a human-readable description of the error type.
func (e ErrorType) String() string {
	switch e {
	case ErrTypeAuthentication:
		return "authentication error"
	case ErrTypeRateLimit:
		return "rate limit exceeded"
	case ErrTypeServiceUnavailable:
		return "service unavailable"
	case ErrTypeInvalidRequest:
		return "invalid request"
	case ErrTypeTimeout:
		return "timeout"
	case ErrTypeModelNotFound:
		return "model not found"
	default:
		return "unknown error"
	}
}

// Error is a provider API error with enough context to log usefully.
type Error struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Provider   string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s (status: %d)", e.Provider, e.Type.String(), e.Message, e.StatusCode)
}

// Is matches on error type so callers can use errors.Is with a
// prototype value.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewTransportError wraps a failure that never produced an HTTP
// response, such as a dial error or a context timeout.
func NewTransportError(provider string, err error) *Error {
	return &Error{
		Type:     ErrTypeTimeout,
		Message:  err.Error(),
		Provider: provider,
	}
}

// FromStatus maps an HTTP error status to a typed error. Status 529 is
// the Anthropic-specific overloaded signal and maps to service
// unavailable like a 503.
func FromStatus(provider string, statusCode int, message string) *Error {
	errType := ErrTypeUnknown
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		errType = ErrTypeAuthentication
	case http.StatusTooManyRequests:
		errType = ErrTypeRateLimit
	case http.StatusBadRequest:
		errType = ErrTypeInvalidRequest
	case http.StatusNotFound:
		errType = ErrTypeModelNotFound
	case http.StatusInternalServerError, http.StatusServiceUnavailable, 529:
		errType = ErrTypeServiceUnavailable
	}
	return &Error{
		Type:       errType,
		Message:    message,
		StatusCode: statusCode,
		Provider:   provider,
	}
}
