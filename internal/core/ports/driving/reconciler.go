package driving

import (
	"context"

	"github.com/custodia-labs/threatfeed-cli/internal/core/domain"
	"github.com/custodia-labs/threatfeed-cli/internal/core/ports/driven"
)

// Reconciler turns domain-set intents into remote client calls, hiding
// pagination and aggregating partial failure so callers see exactly one
// coherent outcome per intent.
//
// Any outcome expressible as per-domain success or failure is returned
// as data inside an OperationResult. Only whole-operation failures
// (authentication, exhausted retries, unrecoverable remote errors, a
// structurally missing feed id) are returned as Go errors.
type Reconciler interface {
	// StreamDomains lazily enumerates every domain in the feed, in
	// stable server order, requesting page N+1 only after page N has
	// been consumed. Each invocation restarts from the first page.
	// The error channel delivers at most one error and both channels
	// are closed when enumeration ends.
	StreamDomains(ctx context.Context, feedID string) (<-chan domain.Domain, <-chan error)

	// AllDomains drains StreamDomains into a slice.
	AllDomains(ctx context.Context, feedID string) ([]domain.Domain, error)

	// SyncFromSource fetches raw entries from src, validates and
	// normalizes them, and replaces the feed's domain list wholesale
	// with the valid set in a single remote call. Invalid entries are
	// reported in the result, never dispatched.
	SyncFromSource(ctx context.Context, feedID string, src driven.DomainSource) (*domain.OperationResult, error)

	// AddDomains validates, normalizes and deduplicates raw entries,
	// then adds the valid set to the feed.
	AddDomains(ctx context.Context, feedID string, raw []string) (*domain.OperationResult, error)

	// RemoveDomains validates, normalizes and deduplicates raw entries,
	// then removes the valid set from the feed.
	RemoveDomains(ctx context.Context, feedID string, raw []string) (*domain.OperationResult, error)
}
