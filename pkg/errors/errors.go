// Package errors defines the structured application errors used across the
// finsmart core service. Each error carries a machine-readable code, the HTTP
// status it maps to, and optional per-field details.
package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/finsmart/finsmart/pkg/constants"
)

// AppError is the structured error type every layer of the service speaks.
type AppError struct {
	Code    constants.ErrorCode
	Status  int
	Message string
	Details map[string]string
	cause   error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is / errors.As chains.
func (e *AppError) Unwrap() error {
	return e.cause
}

// WithCause attaches an underlying error and returns a copy.
func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.cause = cause
	return &clone
}

// WithDetail records a per-field detail and returns a copy.
func (e *AppError) WithDetail(field, message string) *AppError {
	clone := *e
	clone.Details = make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		clone.Details[k] = v
	}
	clone.Details[field] = message
	return &clone
}

// New creates an AppError with the given code, HTTP status and message.
func New(code constants.ErrorCode, status int, message string) *AppError {
	return &AppError{
		Code:    code,
		Status:  status,
		Message: message,
	}
}

// ================================================================================
// Taxonomy Constructors
// ================================================================================

// ErrRateLimited is returned when the admission layer rejects a request.
// Retryable after the next bucket refill.
func ErrRateLimited() *AppError {
	return New(constants.ErrCodeRateLimited, http.StatusTooManyRequests,
		"Rate limit exceeded. Please try again later.")
}

// ErrValidation is returned for malformed or incomplete request payloads.
func ErrValidation(message string) *AppError {
	return New(constants.ErrCodeValidation, http.StatusBadRequest, message)
}

// ErrMissingField is a validation error for a missing required field.
func ErrMissingField(field string) *AppError {
	return ErrValidation(fmt.Sprintf("missing required field: %s", field)).
		WithDetail(field, "required")
}

// ErrUpstreamUnavailable is returned when the AI service times out, cannot be
// reached, or answers with something the gateway cannot decode.
func ErrUpstreamUnavailable(message string) *AppError {
	return New(constants.ErrCodeUpstreamUnavailable, http.StatusServiceUnavailable, message)
}

// ErrAuditWriteFailed wraps a failed audit persistence attempt. It is logged
// and swallowed; it must never reach an API client.
func ErrAuditWriteFailed(cause error) *AppError {
	return New(constants.ErrCodeAuditWriteFailed, http.StatusInternalServerError,
		"failed to persist audit record").WithCause(cause)
}

// ErrStorageFailure is returned when a durable write or read fails. Surfaced
// as a 5xx because the operation was not recorded.
func ErrStorageFailure(cause error) *AppError {
	return New(constants.ErrCodeStorageFailure, http.StatusInternalServerError,
		"storage operation failed").WithCause(cause)
}

// ErrUnauthorized is returned when no valid principal accompanies the request.
func ErrUnauthorized(message string) *AppError {
	return New(constants.ErrCodeUnauthorized, http.StatusUnauthorized, message)
}

// ErrNotFound is returned when the requested resource does not exist.
func ErrNotFound(resource string) *AppError {
	return New(constants.ErrCodeNotFound, http.StatusNotFound, resource+" not found")
}

// ErrInternal is the fallback for unexpected failures.
func ErrInternal(cause error) *AppError {
	return New(constants.ErrCodeInternal, http.StatusInternalServerError,
		"internal server error").WithCause(cause)
}

// ================================================================================
// Inspection Helpers
// ================================================================================

// AsAppError extracts an *AppError from an error chain. Unknown errors are
// wrapped as internal so handlers always have a status and code to render.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternal(err)
}

// HasCode reports whether err carries the given application error code.
func HasCode(err error, code constants.ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
