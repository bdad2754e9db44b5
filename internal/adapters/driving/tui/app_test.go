package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/threatfeed-cli/internal/core/domain"
	"github.com/custodia-labs/threatfeed-cli/internal/core/ports/driven"
)

type stubFeeds struct {
	feeds []domain.Feed
}

func (s *stubFeeds) List(_ context.Context) ([]domain.Feed, error) { return s.feeds, nil }
func (s *stubFeeds) Get(_ context.Context, _ string) (*domain.Feed, error) {
	return nil, domain.ErrNotFound
}
func (s *stubFeeds) Create(_ context.Context, feedType domain.FeedType, title, description string) (*domain.Feed, error) {
	return &domain.Feed{ID: "fd-new", Type: feedType, Title: title, Description: description}, nil
}
func (s *stubFeeds) Delete(_ context.Context, _ string) error { return nil }
func (s *stubFeeds) LastFeedID() string                       { return "" }

type stubReconciler struct {
	domains []domain.Domain
}

func (s *stubReconciler) StreamDomains(_ context.Context, _ string) (<-chan domain.Domain, <-chan error) {
	domainsCh := make(chan domain.Domain)
	errsCh := make(chan error, 1)
	close(domainsCh)
	close(errsCh)
	return domainsCh, errsCh
}
func (s *stubReconciler) AllDomains(_ context.Context, _ string) ([]domain.Domain, error) {
	return s.domains, nil
}
func (s *stubReconciler) SyncFromSource(_ context.Context, _ string, _ driven.DomainSource) (*domain.OperationResult, error) {
	return domain.NewOperationResult(), nil
}
func (s *stubReconciler) AddDomains(_ context.Context, _ string, _ []string) (*domain.OperationResult, error) {
	return domain.NewOperationResult(), nil
}
func (s *stubReconciler) RemoveDomains(_ context.Context, _ string, _ []string) (*domain.OperationResult, error) {
	return domain.NewOperationResult(), nil
}

func newTestApp() *App {
	return NewApp(&Ports{
		Feeds:      &stubFeeds{feeds: []domain.Feed{{ID: "fd-1", Title: "Blocked domains", DomainCount: 2}}},
		Reconciler: &stubReconciler{domains: []domain.Domain{"evil.example.com", "phish.example.org"}},
	})
}

func keyMsg(s string) tea.KeyMsg {
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{}
}

func TestApp_StartsOnMenu(t *testing.T) {
	app := newTestApp()
	assert.Equal(t, stateMenu, app.state)
	assert.Contains(t, app.View(), "threatfeed")
	assert.Contains(t, app.View(), "Browse feeds")
}

func TestApp_MenuNavigation(t *testing.T) {
	app := newTestApp()

	model, _ := app.Update(keyMsg("down"))
	app = model.(*App)
	assert.Equal(t, 1, app.cursor)

	model, _ = app.Update(keyMsg("k"))
	app = model.(*App)
	assert.Equal(t, 0, app.cursor)
}

func TestApp_BrowseFeedsFlow(t *testing.T) {
	app := newTestApp()

	// Select "Browse feeds" and run the resulting command.
	model, cmd := app.Update(keyMsg("enter"))
	app = model.(*App)
	require.NotNil(t, cmd)
	assert.True(t, app.loading)

	model, _ = app.Update(cmd())
	app = model.(*App)
	assert.Equal(t, stateFeeds, app.state)
	assert.False(t, app.loading)
	assert.Contains(t, app.View(), "fd-1")

	// Drill into the feed's domains.
	model, cmd = app.Update(keyMsg("enter"))
	app = model.(*App)
	require.NotNil(t, cmd)

	model, _ = app.Update(cmd())
	app = model.(*App)
	assert.Equal(t, stateDomains, app.state)
	assert.Contains(t, app.View(), "evil.example.com")

	// Back out to the feed list.
	model, _ = app.Update(keyMsg("esc"))
	app = model.(*App)
	assert.Equal(t, stateFeeds, app.state)
}

func TestApp_ErrorIsRendered(t *testing.T) {
	app := newTestApp()

	model, _ := app.Update(errMsg{domain.ErrAuthRequired})
	app = model.(*App)
	assert.Contains(t, app.View(), "Error:")
}

func TestApp_CreateValidatesLocally(t *testing.T) {
	app := newTestApp()
	app.state = stateCreate
	app.inputs[0].SetValue("short")
	app.inputs[1].SetValue("long enough description")
	app.focusIdx = len(app.inputs) - 1

	model, cmd := app.Update(keyMsg("enter"))
	app = model.(*App)
	assert.Nil(t, cmd)
	assert.ErrorIs(t, app.err, domain.ErrInvalidInput)
	assert.Equal(t, stateCreate, app.state)
}

func TestApp_QuitKeys(t *testing.T) {
	app := newTestApp()

	_, cmd := app.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
