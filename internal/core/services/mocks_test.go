package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/threatfeed-cli/internal/core/domain"
)

// mockFeedClient implements driven.FeedClient with per-call recording.
type mockFeedClient struct {
	feeds map[string]domain.Feed

	listFeedsErr error
	deleteErr    error

	// pages served by ListDomains, keyed by page token ("" is first).
	pages map[string]*domain.Page

	replaceResult *domain.OperationResult
	replaceErr    error
	addResult     *domain.OperationResult
	addErr        error
	removeResult  *domain.OperationResult
	removeErr     error

	listDomainCalls []string // page tokens, in order
	replaceCalls    [][]domain.Domain
	addCalls        [][]domain.Domain
	removeCalls     [][]domain.Domain
	deletedIDs      []string
	createdFeeds    []domain.Feed
}

func newMockFeedClient() *mockFeedClient {
	return &mockFeedClient{
		feeds: make(map[string]domain.Feed),
		pages: make(map[string]*domain.Page),
	}
}

func (m *mockFeedClient) ListFeeds(_ context.Context) ([]domain.Feed, error) {
	if m.listFeedsErr != nil {
		return nil, m.listFeedsErr
	}
	feeds := make([]domain.Feed, 0, len(m.feeds))
	for _, f := range m.feeds {
		feeds = append(feeds, f)
	}
	return feeds, nil
}

func (m *mockFeedClient) GetFeed(_ context.Context, id string) (*domain.Feed, error) {
	f, ok := m.feeds[id]
	if !ok {
		return nil, fmt.Errorf("%w: feed %s", domain.ErrNotFound, id)
	}
	return &f, nil
}

func (m *mockFeedClient) CreateFeed(_ context.Context, feedType domain.FeedType, title, description string) (*domain.Feed, error) {
	feed := domain.Feed{
		ID:          fmt.Sprintf("feed-%d", len(m.createdFeeds)+1),
		Type:        feedType,
		Title:       title,
		Description: description,
	}
	m.createdFeeds = append(m.createdFeeds, feed)
	m.feeds[feed.ID] = feed
	return &feed, nil
}

func (m *mockFeedClient) DeleteFeed(_ context.Context, id string) error {
	m.deletedIDs = append(m.deletedIDs, id)
	return m.deleteErr
}

func (m *mockFeedClient) ListDomains(_ context.Context, _ string, pageToken string) (*domain.Page, error) {
	m.listDomainCalls = append(m.listDomainCalls, pageToken)
	page, ok := m.pages[pageToken]
	if !ok {
		return nil, fmt.Errorf("%w: page %q", domain.ErrNotFound, pageToken)
	}
	return page, nil
}

func (m *mockFeedClient) ReplaceDomains(_ context.Context, _ string, domains []domain.Domain) (*domain.OperationResult, error) {
	m.replaceCalls = append(m.replaceCalls, domains)
	if m.replaceErr != nil {
		return nil, m.replaceErr
	}
	return resultOrAllSucceeded(m.replaceResult, domains), nil
}

func (m *mockFeedClient) AddDomains(_ context.Context, _ string, domains []domain.Domain) (*domain.OperationResult, error) {
	m.addCalls = append(m.addCalls, domains)
	if m.addErr != nil {
		return nil, m.addErr
	}
	return resultOrAllSucceeded(m.addResult, domains), nil
}

func (m *mockFeedClient) RemoveDomains(_ context.Context, _ string, domains []domain.Domain) (*domain.OperationResult, error) {
	m.removeCalls = append(m.removeCalls, domains)
	if m.removeErr != nil {
		return nil, m.removeErr
	}
	return resultOrAllSucceeded(m.removeResult, domains), nil
}

func resultOrAllSucceeded(fixed *domain.OperationResult, domains []domain.Domain) *domain.OperationResult {
	if fixed != nil {
		return fixed
	}
	result := domain.NewOperationResult()
	for _, d := range domains {
		result.Succeed(d)
	}
	return result
}

// stubSource implements driven.DomainSource with fixed entries.
type stubSource struct {
	entries []string
	err     error
}

func (s *stubSource) Describe() string {
	return "stub-source"
}

func (s *stubSource) Fetch(_ context.Context) ([]string, error) {
	return s.entries, s.err
}

// memConfig implements driven.ConfigStore in memory.
type memConfig struct {
	data   map[string]any
	setErr error
}

func newMemConfig() *memConfig {
	return &memConfig{data: make(map[string]any)}
}

func (c *memConfig) Get(key string) (any, bool) {
	v, ok := c.data[key]
	return v, ok
}

func (c *memConfig) GetString(key string) string {
	if s, ok := c.data[key].(string); ok {
		return s
	}
	return ""
}

func (c *memConfig) GetInt(key string) int {
	if i, ok := c.data[key].(int); ok {
		return i
	}
	return 0
}

func (c *memConfig) GetBool(key string) bool {
	if b, ok := c.data[key].(bool); ok {
		return b
	}
	return false
}

func (c *memConfig) Set(key string, value any) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = value
	return nil
}
