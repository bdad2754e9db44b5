package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/threatfeed-cli/internal/core/domain"
	"github.com/custodia-labs/threatfeed-cli/internal/core/ports/driven"
	"github.com/custodia-labs/threatfeed-cli/internal/core/ports/driving"
	"github.com/custodia-labs/threatfeed-cli/internal/logger"
)

// lastFeedIDKey is the config key recording the most recent feed id.
const lastFeedIDKey = "feed.last_id"

// Ensure FeedService implements the interface.
var _ driving.FeedService = (*FeedService)(nil)

// FeedService implements feed lifecycle intents on top of a FeedClient.
type FeedService struct {
	client driven.FeedClient
	config driven.ConfigStore // optional; records the last created feed id
}

// NewFeedService creates a new feed service. The config store is
// optional: when nil, the last created feed id is not remembered.
func NewFeedService(client driven.FeedClient, config driven.ConfigStore) *FeedService {
	return &FeedService{
		client: client,
		config: config,
	}
}

// List returns every feed owned by the tenant.
func (s *FeedService) List(ctx context.Context) ([]domain.Feed, error) {
	if s.client == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.client.ListFeeds(ctx)
}

// Get returns metadata for one feed.
func (s *FeedService) Get(ctx context.Context, id string) (*domain.Feed, error) {
	if s.client == nil {
		return nil, domain.ErrNotImplemented
	}
	if id == "" {
		return nil, fmt.Errorf("%w: feed id required", domain.ErrInvalidInput)
	}
	return s.client.GetFeed(ctx, id)
}

// Create registers a new feed. Validation failures never reach the
// remote API. On success the feed id is recorded so later commands can
// default to it.
func (s *FeedService) Create(ctx context.Context, feedType domain.FeedType, title, description string) (*domain.Feed, error) {
	if s.client == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := domain.ValidateNewFeed(feedType, title, description); err != nil {
		return nil, err
	}

	feed, err := s.client.CreateFeed(ctx, feedType, title, description)
	if err != nil {
		return nil, err
	}

	if s.config != nil {
		if err := s.config.Set(lastFeedIDKey, feed.ID); err != nil {
			logger.Warn("record last feed id: %v", err)
		}
	}
	return feed, nil
}

// Delete removes a feed. A feed that is already gone is treated as
// successfully deleted, not as an error.
func (s *FeedService) Delete(ctx context.Context, id string) error {
	if s.client == nil {
		return domain.ErrNotImplemented
	}
	if id == "" {
		return fmt.Errorf("%w: feed id required", domain.ErrInvalidInput)
	}

	err := s.client.DeleteFeed(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		logger.Debug("Feed %s already deleted", id)
		return nil
	}
	return err
}

// LastFeedID returns the most recently created feed id, if recorded.
func (s *FeedService) LastFeedID() string {
	if s.config == nil {
		return ""
	}
	return s.config.GetString(lastFeedIDKey)
}
