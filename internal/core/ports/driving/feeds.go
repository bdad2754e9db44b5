package driving

import (
	"context"

	"github.com/custodia-labs/threatfeed-cli/internal/core/domain"
)

// FeedService exposes feed lifecycle intents to the presentation layer.
type FeedService interface {
	// List returns every feed owned by the tenant.
	List(ctx context.Context) ([]domain.Feed, error)

	// Get returns metadata for one feed.
	Get(ctx context.Context, id string) (*domain.Feed, error)

	// Create registers a new feed after local validation of the type,
	// title and description.
	Create(ctx context.Context, feedType domain.FeedType, title, description string) (*domain.Feed, error)

	// Delete removes a feed. Deleting a feed that is already gone is a
	// successful no-op; the confirmation gate is the caller's concern.
	Delete(ctx context.Context, id string) error

	// LastFeedID returns the most recently created feed id, if one was
	// recorded this or a previous session. Empty string when unknown.
	LastFeedID() string
}
