package lookout

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/threatfeed-cli/internal/logger"
)

// RetryPolicy bounds retries of transient request failures with
// exponential backoff. The sleep function is swappable so tests can run
// with a deterministic clock.
type RetryPolicy struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int

	// BaseDelay is the wait before the first retry; it doubles after
	// each failed attempt.
	BaseDelay time.Duration

	// MaxDelay caps the backoff. Zero means uncapped.
	MaxDelay time.Duration

	sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryPolicy returns the policy used against the vendor API:
// three attempts with exponential backoff starting at one second.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxDelay:    30 * time.Second,
		sleep:       sleepContext,
	}
}

// WithSleep returns a copy of the policy using the given sleep
// function. Used by tests to avoid real waits.
func (p RetryPolicy) WithSleep(sleep func(ctx context.Context, d time.Duration) error) RetryPolicy {
	p.sleep = sleep
	return p
}

// Do runs fn, retrying transient failures with exponential backoff up
// to MaxAttempts. Non-retryable errors propagate immediately; a
// still-failing final attempt is wrapped with the operation name.
func (p RetryPolicy) Do(ctx context.Context, op string, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	sleep := p.sleep
	if sleep == nil {
		sleep = sleepContext
	}

	delay := p.BaseDelay
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn()
		if err == nil || !IsRetryable(err) {
			return err
		}
		if attempt == attempts {
			break
		}

		logger.Debug("%s: transient failure (attempt %d/%d), retrying in %s: %v",
			op, attempt, attempts, delay, err)
		if serr := sleep(ctx, delay); serr != nil {
			return serr
		}

		delay *= 2
		if p.MaxDelay > 0 && delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}
	return fmt.Errorf("%s: retries exhausted: %w", op, err)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
