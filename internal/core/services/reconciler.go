package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/threatfeed-cli/internal/core/domain"
	"github.com/custodia-labs/threatfeed-cli/internal/core/ports/driven"
	"github.com/custodia-labs/threatfeed-cli/internal/core/ports/driving"
	"github.com/custodia-labs/threatfeed-cli/internal/logger"
)

// Ensure Reconciler implements the interface.
var _ driving.Reconciler = (*Reconciler)(nil)

// Reconciler composes FeedClient primitives into user-facing domain-set
// intents. Per-domain outcomes are always data in an OperationResult;
// only whole-operation infrastructure failures surface as errors.
type Reconciler struct {
	client driven.FeedClient
}

// NewReconciler creates a new reconciler.
func NewReconciler(client driven.FeedClient) *Reconciler {
	return &Reconciler{client: client}
}

// StreamDomains lazily enumerates every domain in the feed across all
// pages. Pages are requested strictly in sequence: the remote cursor
// gives no ordering guarantee for concurrent page requests. Each
// invocation restarts from the first page; no server-side cursor state
// is held between calls.
func (r *Reconciler) StreamDomains(ctx context.Context, feedID string) (<-chan domain.Domain, <-chan error) {
	domainsCh := make(chan domain.Domain)
	errsCh := make(chan error, 1)

	go func() {
		defer close(domainsCh)
		defer close(errsCh)

		if r.client == nil {
			errsCh <- domain.ErrNotImplemented
			return
		}
		if feedID == "" {
			errsCh <- fmt.Errorf("%w: feed id required", domain.ErrInvalidInput)
			return
		}

		token := ""
		for {
			page, err := r.client.ListDomains(ctx, feedID, token)
			if err != nil {
				errsCh <- fmt.Errorf("list domains: %w", err)
				return
			}

			for _, d := range page.Domains {
				select {
				case <-ctx.Done():
					errsCh <- ctx.Err()
					return
				case domainsCh <- d:
				}
			}

			if !page.HasMore() {
				return
			}
			token = page.NextPageToken
		}
	}()

	return domainsCh, errsCh
}

// AllDomains drains StreamDomains into a slice.
func (r *Reconciler) AllDomains(ctx context.Context, feedID string) ([]domain.Domain, error) {
	domainsCh, errsCh := r.StreamDomains(ctx, feedID)

	var all []domain.Domain
	for d := range domainsCh {
		all = append(all, d)
	}
	if err := <-errsCh; err != nil {
		return nil, err
	}
	return all, nil
}

// SyncFromSource replaces the feed's domain list wholesale with the
// validated entries fetched from src. Invalid entries become validation
// failures in the result and are never dispatched; remote-reported
// failures are merged in afterwards, with local failures winning for
// the same key.
func (r *Reconciler) SyncFromSource(ctx context.Context, feedID string, src driven.DomainSource) (*domain.OperationResult, error) {
	if r.client == nil {
		return nil, domain.ErrNotImplemented
	}
	if src == nil {
		return nil, fmt.Errorf("%w: domain source required", domain.ErrInvalidInput)
	}

	raw, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch source %s: %w", src.Describe(), err)
	}
	logger.Info("Fetched %d entries from %s", len(raw), src.Describe())

	return r.dispatch(ctx, feedID, raw, r.client.ReplaceDomains)
}

// AddDomains adds the validated set to the feed.
func (r *Reconciler) AddDomains(ctx context.Context, feedID string, raw []string) (*domain.OperationResult, error) {
	if r.client == nil {
		return nil, domain.ErrNotImplemented
	}
	return r.dispatch(ctx, feedID, raw, r.client.AddDomains)
}

// RemoveDomains removes the validated set from the feed.
func (r *Reconciler) RemoveDomains(ctx context.Context, feedID string, raw []string) (*domain.OperationResult, error) {
	if r.client == nil {
		return nil, domain.ErrNotImplemented
	}
	return r.dispatch(ctx, feedID, raw, r.client.RemoveDomains)
}

// sendFunc is one of the client's bulk mutation primitives.
type sendFunc func(ctx context.Context, id string, domains []domain.Domain) (*domain.OperationResult, error)

// dispatch runs the validate-then-delegate pipeline shared by every
// mutating intent: normalize and deduplicate the raw entries, send the
// valid set in one client call, and merge local validation failures
// with the remote result. When nothing validates, no call is issued.
func (r *Reconciler) dispatch(ctx context.Context, feedID string, raw []string, send sendFunc) (*domain.OperationResult, error) {
	if r.client == nil {
		return nil, domain.ErrNotImplemented
	}
	if feedID == "" {
		return nil, fmt.Errorf("%w: feed id required", domain.ErrInvalidInput)
	}

	valid, result := prepare(raw)
	logger.Debug("Validated %d/%d entries for feed %s", len(valid), len(raw), feedID)

	if len(valid) > 0 {
		remote, err := send(ctx, feedID, valid)
		if err != nil {
			return nil, err
		}
		result.Merge(remote)
	}
	return result, nil
}

// prepare validates, normalizes and deduplicates raw entries,
// preserving first-seen order for the valid set. Invalid entries are
// recorded on the result under their trimmed raw spelling.
func prepare(raw []string) ([]domain.Domain, *domain.OperationResult) {
	result := domain.NewOperationResult()
	seen := make(map[domain.Domain]struct{}, len(raw))
	valid := make([]domain.Domain, 0, len(raw))

	for _, entry := range raw {
		d, err := domain.NormalizeDomain(entry)
		if err != nil {
			result.Fail(domain.Domain(strings.TrimSpace(entry)), domain.ErrorKindValidation)
			continue
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		valid = append(valid, d)
	}
	return valid, result
}
