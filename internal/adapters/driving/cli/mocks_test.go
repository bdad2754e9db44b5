package cli

import (
	"context"
	"errors"

	"github.com/custodia-labs/threatfeed-cli/internal/core/domain"
	"github.com/custodia-labs/threatfeed-cli/internal/core/ports/driven"
)

// mockFeedService implements driving.FeedService for testing.
type mockFeedService struct {
	feeds      []domain.Feed
	lastID     string
	listErr    error
	createErr  error
	deleteErr  error
	deletedIDs []string
}

func (m *mockFeedService) List(_ context.Context) ([]domain.Feed, error) {
	return m.feeds, m.listErr
}

func (m *mockFeedService) Get(_ context.Context, id string) (*domain.Feed, error) {
	for i := range m.feeds {
		if m.feeds[i].ID == id {
			return &m.feeds[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockFeedService) Create(_ context.Context, feedType domain.FeedType, title, description string) (*domain.Feed, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	feed := domain.Feed{ID: "fd-new", Type: feedType, Title: title, Description: description}
	m.feeds = append(m.feeds, feed)
	return &feed, nil
}

func (m *mockFeedService) Delete(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedIDs = append(m.deletedIDs, id)
	return nil
}

func (m *mockFeedService) LastFeedID() string {
	return m.lastID
}

// mockReconciler implements driving.Reconciler for testing.
type mockReconciler struct {
	domains    []domain.Domain
	streamErr  error
	result     *domain.OperationResult
	opErr      error
	addCalls   [][]string
	rmCalls    [][]string
	syncFeedID string
}

func (m *mockReconciler) StreamDomains(_ context.Context, _ string) (<-chan domain.Domain, <-chan error) {
	domainsCh := make(chan domain.Domain)
	errsCh := make(chan error, 1)
	go func() {
		defer close(domainsCh)
		defer close(errsCh)
		if m.streamErr != nil {
			errsCh <- m.streamErr
			return
		}
		for _, d := range m.domains {
			domainsCh <- d
		}
	}()
	return domainsCh, errsCh
}

func (m *mockReconciler) AllDomains(_ context.Context, _ string) ([]domain.Domain, error) {
	return m.domains, m.streamErr
}

func (m *mockReconciler) SyncFromSource(ctx context.Context, feedID string, src driven.DomainSource) (*domain.OperationResult, error) {
	m.syncFeedID = feedID
	if m.opErr != nil {
		return nil, m.opErr
	}
	raw, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return m.resultFor(raw), nil
}

func (m *mockReconciler) AddDomains(_ context.Context, _ string, raw []string) (*domain.OperationResult, error) {
	m.addCalls = append(m.addCalls, raw)
	if m.opErr != nil {
		return nil, m.opErr
	}
	return m.resultFor(raw), nil
}

func (m *mockReconciler) RemoveDomains(_ context.Context, _ string, raw []string) (*domain.OperationResult, error) {
	m.rmCalls = append(m.rmCalls, raw)
	if m.opErr != nil {
		return nil, m.opErr
	}
	return m.resultFor(raw), nil
}

func (m *mockReconciler) resultFor(raw []string) *domain.OperationResult {
	if m.result != nil {
		return m.result
	}
	result := domain.NewOperationResult()
	for _, r := range raw {
		result.Succeed(domain.Domain(r))
	}
	return result
}

// setupCLITest swaps the package services for mocks and returns a
// cleanup function.
func setupCLITest(fs *mockFeedService, rec *mockReconciler) func() {
	oldFeed, oldRec := feedService, reconciler
	feedService, reconciler = nil, nil
	if fs != nil {
		feedService = fs
	}
	if rec != nil {
		reconciler = rec
	}
	return func() {
		feedService = oldFeed
		reconciler = oldRec
	}
}

var errBoom = errors.New("boom")
