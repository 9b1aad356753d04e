// Package errors defines the gateway's error taxonomy. Every failure
// surfaced to a caller is a ServiceError with an HTTP status, so
// handlers never have to guess how to render one.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeUpstream     = "UPSTREAM_REJECTED"
	CodeUnavailable  = "UPSTREAM_UNAVAILABLE"
	CodeInternal     = "INTERNAL_ERROR"
	CodeRateLimit    = "RATE_LIMIT_EXCEEDED"
)

// ServiceError is a structured error with an HTTP rendering.
type ServiceError struct {
	Code       string                 `json:"code"`
	Message    string                 `json:"error"`
	HTTPStatus int                    `json:"-"`
	Details    map[string]interface{} `json:"details,omitempty"`

	cause error
}

func (e *ServiceError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *ServiceError) Unwrap() error { return e.cause }

// WithCause attaches the underlying error.
func (e *ServiceError) WithCause(err error) *ServiceError {
	e.cause = err
	return e
}

// WithDetail attaches one structured detail field.
func (e *ServiceError) WithDetail(key string, value interface{}) *ServiceError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Validation reports a missing or malformed request field. Rejected
// before any downstream call is made.
func Validation(message string) *ServiceError {
	return &ServiceError{Code: CodeValidation, Message: message, HTTPStatus: http.StatusBadRequest}
}

// Unauthorized reports a missing or invalid session.
func Unauthorized(message string) *ServiceError {
	return &ServiceError{Code: CodeUnauthorized, Message: message, HTTPStatus: http.StatusUnauthorized}
}

// Forbidden reports a blocked action (locked door, hostile room).
func Forbidden(message string) *ServiceError {
	return &ServiceError{Code: CodeForbidden, Message: message, HTTPStatus: http.StatusForbidden}
}

// NotFound reports a missing entity.
func NotFound(message string) *ServiceError {
	return &ServiceError{Code: CodeNotFound, Message: message, HTTPStatus: http.StatusNotFound}
}

// Upstream reports a downstream business rejection, preserving the
// originating status and message verbatim.
func Upstream(status int, message string) *ServiceError {
	return &ServiceError{Code: CodeUpstream, Message: message, HTTPStatus: status}
}

// Unavailable reports a connection or timeout failure reaching a
// domain service.
func Unavailable(service string, err error) *ServiceError {
	e := &ServiceError{
		Code:       CodeUnavailable,
		Message:    fmt.Sprintf("failed to connect to %s service", service),
		HTTPStatus: http.StatusInternalServerError,
	}
	return e.WithCause(err)
}

// Internal reports an orchestrator-detected contradiction, e.g. a
// create response missing the created ID.
func Internal(message string) *ServiceError {
	return &ServiceError{Code: CodeInternal, Message: message, HTTPStatus: http.StatusInternalServerError}
}

// RateLimitExceeded reports that the caller exceeded the request
// budget for the window.
func RateLimitExceeded(limit int, window string) *ServiceError {
	e := &ServiceError{
		Code:       CodeRateLimit,
		Message:    "rate limit exceeded",
		HTTPStatus: http.StatusTooManyRequests,
	}
	return e.WithDetail("limit", limit).WithDetail("window", window)
}

// AsServiceError extracts a ServiceError from err, or wraps err as an
// internal error when it is something else.
func AsServiceError(err error) *ServiceError {
	var se *ServiceError
	if errors.As(err, &se) {
		return se
	}
	return Internal("unexpected error").WithCause(err)
}
