package driven

import (
	"context"

	"github.com/custodia-labs/threatfeed-cli/internal/core/domain"
)

// FeedClient is the remote threat-feed API. Implementations own all
// network I/O against the vendor: callers above this port never build
// raw requests. Every method performs exactly one logical remote
// operation; ListDomains is the pagination exception, where each page
// is one request.
//
// Transient transport failures and retryable remote statuses are
// retried inside the implementation. Errors that escape are
// whole-operation failures: authentication (domain.ErrAuthInvalid),
// absence (domain.ErrNotFound) or an unrecoverable remote response.
type FeedClient interface {
	// ListFeeds returns every feed owned by the tenant.
	ListFeeds(ctx context.Context) ([]domain.Feed, error)

	// GetFeed returns metadata for a single feed.
	GetFeed(ctx context.Context, id string) (*domain.Feed, error)

	// CreateFeed registers a new feed. The feed type, title and
	// description are validated locally before any request is sent.
	CreateFeed(ctx context.Context, feedType domain.FeedType, title, description string) (*domain.Feed, error)

	// DeleteFeed removes a feed. Returns domain.ErrNotFound if the feed
	// is already gone; callers may treat that as success.
	DeleteFeed(ctx context.Context, id string) error

	// ListDomains returns one page of the feed's domain list. Callers
	// drive pagination with the returned token until HasMore is false.
	ListDomains(ctx context.Context, id, pageToken string) (*domain.Page, error)

	// ReplaceDomains overwrites the feed's entire domain list.
	ReplaceDomains(ctx context.Context, id string, domains []domain.Domain) (*domain.OperationResult, error)

	// AddDomains adds the set to the feed. The remote service may
	// silently deduplicate.
	AddDomains(ctx context.Context, id string, domains []domain.Domain) (*domain.OperationResult, error)

	// RemoveDomains removes the set from the feed.
	RemoveDomains(ctx context.Context, id string, domains []domain.Domain) (*domain.OperationResult, error)
}
