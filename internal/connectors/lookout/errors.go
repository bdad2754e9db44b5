package lookout

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/threatfeed-cli/internal/core/domain"
)

// APIError represents a non-2xx response from the threat-feed API.
type APIError struct {
	StatusCode int
	Body       string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lookout: API error %d: %s (URL: %s)", e.StatusCode, e.Body, e.URL)
}

// Retryable reports whether the status indicates a transient condition
// (rate limiting or a server-side failure).
func (e *APIError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// NetworkError represents a transport-level failure, including request
// timeouts. Always retryable.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("lookout: network error (URL: %s): %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// RateLimitError represents a rate limit exceeded response with the
// time at which the quota resets.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
	Limit     int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("lookout: rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// IsRetryable checks whether err is worth retrying: transport failures,
// rate limiting and 5xx responses. Authentication and not-found errors
// are never retryable.
func IsRetryable(err error) bool {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return true
	}
	var rateErr *RateLimitError
	if errors.As(err, &rateErr) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable()
	}
	return false
}

// IsNotFound checks if the error indicates an absent resource.
func IsNotFound(err error) bool {
	if errors.Is(err, domain.ErrNotFound) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates a rejected credential.
func IsUnauthorized(err error) bool {
	if errors.Is(err, domain.ErrAuthInvalid) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		(apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden)
}
