// Package constants defines system-wide constants for the finsmart core service.
package constants

import "time"

// ================================================================================
// Error Codes
// ================================================================================

// ErrorCode identifies a class of application error.
type ErrorCode string

const (
	// ErrCodeRateLimited indicates the request was rejected by the admission layer.
	ErrCodeRateLimited ErrorCode = "rate_limited"

	// ErrCodeValidation indicates a malformed or incomplete request payload.
	ErrCodeValidation ErrorCode = "validation_error"

	// ErrCodeUpstreamUnavailable indicates the AI prediction service could not be reached
	// or returned a malformed response.
	ErrCodeUpstreamUnavailable ErrorCode = "upstream_unavailable"

	// ErrCodeAuditWriteFailed indicates an audit record could not be persisted.
	// This code is operational only and never surfaces to API clients.
	ErrCodeAuditWriteFailed ErrorCode = "audit_write_failed"

	// ErrCodeStorageFailure indicates a durable write or read against the primary store failed.
	ErrCodeStorageFailure ErrorCode = "storage_failure"

	// ErrCodeUnauthorized indicates a missing or invalid authenticated principal.
	ErrCodeUnauthorized ErrorCode = "unauthorized"

	// ErrCodeNotFound indicates the requested resource does not exist.
	ErrCodeNotFound ErrorCode = "not_found"

	// ErrCodeInternal indicates an unexpected server-side failure.
	ErrCodeInternal ErrorCode = "internal_error"
)

// ================================================================================
// Rate Limiting
// ================================================================================

// EndpointClass groups request paths into independently configured rate-limit buckets.
type EndpointClass string

const (
	// EndpointClassLogin covers credential-bearing endpoints and gets the strict bucket.
	EndpointClassLogin EndpointClass = "login"

	// EndpointClassDefault covers every other API endpoint.
	EndpointClassDefault EndpointClass = "default"
)

const (
	// LoginRateLimitPerMinute is the default capacity of the login bucket.
	LoginRateLimitPerMinute = 10

	// DefaultRateLimitPerMinute is the default capacity of the general bucket.
	DefaultRateLimitPerMinute = 100

	// DefaultRefillInterval is the default bucket refill period.
	DefaultRefillInterval = time.Minute

	// DefaultBucketIdleTTL is how long an untouched bucket survives before eviction.
	DefaultBucketIdleTTL = 30 * time.Minute
)

// ================================================================================
// Audit
// ================================================================================

const (
	// DefaultAuditQueueSize is the capacity of the background audit queue.
	DefaultAuditQueueSize = 1024

	// DefaultAuditWorkers is the number of concurrent audit writers.
	DefaultAuditWorkers = 4

	// DefaultAuditWriteTimeout bounds a single audit persistence attempt.
	DefaultAuditWriteTimeout = 5 * time.Second
)

// ================================================================================
// Prediction Gateway
// ================================================================================

const (
	// DefaultAITimeout bounds a single round trip to the AI service.
	DefaultAITimeout = 10 * time.Second
)

// ================================================================================
// Context Keys
// ================================================================================

// ContextKey is the type used for values stashed in request contexts.
type ContextKey string

const (
	// ContextKeyRequestID carries the per-request correlation identifier.
	ContextKeyRequestID ContextKey = "request_id"

	// ContextKeyUserID carries the authenticated principal's identifier.
	ContextKeyUserID ContextKey = "user_id"

	// ContextKeyUserEmail carries the authenticated principal's email.
	ContextKeyUserEmail ContextKey = "user_email"
)

// ================================================================================
// HTTP Headers
// ================================================================================

const (
	// HeaderForwardedFor is consulted first when resolving the client IP.
	HeaderForwardedFor = "X-Forwarded-For"

	// HeaderRateLimitLimit reports the bucket capacity for the matched endpoint class.
	HeaderRateLimitLimit = "X-RateLimit-Limit"

	// HeaderRateLimitRemaining reports the tokens left after admission.
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"

	// HeaderRequestID carries the correlation identifier back to the client.
	HeaderRequestID = "X-Request-ID"
)
