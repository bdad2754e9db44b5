package lookout

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// ProactiveRate is the self-imposed request rate (req/sec) used to
	// stay clear of the vendor's quota.
	ProactiveRate = 5

	// HeaderRateLimit is the quota header.
	HeaderRateLimit = "X-RateLimit-Limit"

	// HeaderRateRemaining is the remaining requests header.
	HeaderRateRemaining = "X-RateLimit-Remaining"

	// HeaderRateReset is the reset timestamp header (Unix seconds).
	HeaderRateReset = "X-RateLimit-Reset"

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// RateLimiter combines proactive throttling (a token bucket ahead of
// every request) with reactive tracking of the vendor's rate headers.
type RateLimiter struct {
	mu        sync.Mutex
	remaining int
	limit     int
	resetTime time.Time
	bucket    *rate.Limiter
}

// NewRateLimiter creates a rate limiter with proactive throttling.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		remaining: -1, // unknown until the first response
		bucket:    rate.NewLimiter(rate.Limit(ProactiveRate), 1),
	}
}

// Wait blocks until it is safe to issue the next request. When the
// vendor reported an exhausted quota, Wait holds until the reset time.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	remaining := r.remaining
	resetTime := r.resetTime
	r.mu.Unlock()

	if remaining == 0 && time.Now().Before(resetTime) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(resetTime)):
		}
	}
	return nil
}

// Observe updates quota state from response headers and returns a
// RateLimitError when the response itself signals rate limiting.
func (r *RateLimiter) Observe(resp *http.Response) error {
	if resp == nil {
		return nil
	}

	r.mu.Lock()
	if v, err := strconv.Atoi(resp.Header.Get(HeaderRateRemaining)); err == nil {
		r.remaining = v
	}
	if v, err := strconv.Atoi(resp.Header.Get(HeaderRateLimit)); err == nil {
		r.limit = v
	}
	if v, err := strconv.ParseInt(resp.Header.Get(HeaderRateReset), 10, 64); err == nil {
		r.resetTime = time.Unix(v, 0)
	}
	remaining, limit, resetTime := r.remaining, r.limit, r.resetTime
	r.mu.Unlock()

	if resp.StatusCode != http.StatusTooManyRequests {
		return nil
	}
	if seconds, err := strconv.Atoi(resp.Header.Get(HeaderRetryAfter)); err == nil {
		resetTime = time.Now().Add(time.Duration(seconds) * time.Second)
		r.mu.Lock()
		r.resetTime = resetTime
		r.mu.Unlock()
	}
	return &RateLimitError{
		ResetAt:   resetTime,
		Remaining: remaining,
		Limit:     limit,
	}
}

// Remaining returns the last reported remaining quota, or -1 when the
// vendor has not reported one yet.
func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}

// ResetTime returns the last reported quota reset time.
func (r *RateLimiter) ResetTime() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetTime
}
