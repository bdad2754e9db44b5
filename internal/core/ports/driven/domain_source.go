package driven

import "context"

// DomainSource yields an ordered sequence of raw domain strings for a
// feed sync. Implementations fetch from an external URL or a local
// file; entries come back untrimmed and unvalidated, exactly as the
// source listed them.
type DomainSource interface {
	// Describe returns a short human-readable origin (URL or path).
	Describe() string

	// Fetch retrieves the raw entries, preserving source order.
	Fetch(ctx context.Context) ([]string, error)
}
