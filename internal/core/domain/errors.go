package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist remotely.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates a structurally required parameter is
	// missing or malformed. Operations failing this way never reach the
	// remote API.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidDomain indicates a string does not parse as a hostname.
	ErrInvalidDomain = errors.New("invalid domain")

	// ErrNotImplemented indicates a required collaborator is not configured.
	ErrNotImplemented = errors.New("not implemented")

	// Authentication Errors.

	// ErrAuthRequired indicates no API credential is configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAuthInvalid indicates the API credential was rejected.
	// Fatal for the session; never retried.
	ErrAuthInvalid = errors.New("authentication invalid")

	// Remote API Errors.

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrFeedLimitReached indicates the tenant has hit the maximum
	// number of feeds the vendor allows.
	ErrFeedLimitReached = errors.New("tenant feed limit reached")
)
