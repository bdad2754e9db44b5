package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/threatfeed-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/threatfeed-cli/internal/core/domain"
)

// viewState identifies which view is currently active.
type viewState int

const (
	// stateMenu is the main navigation menu.
	stateMenu viewState = iota
	// stateFeeds lists all feeds.
	stateFeeds
	// stateDomains lists the domains of the selected feed.
	stateDomains
	// stateCreate is the feed creation form.
	stateCreate
)

// menuItems are the top-level navigation entries.
var menuItems = []string{
	"Browse feeds",
	"Create feed",
	"Quit",
}

// maxVisibleDomains caps how many domains the detail view renders.
const maxVisibleDomains = 500

// Messages carrying async results back into Update.
type (
	feedsLoadedMsg   struct{ feeds []domain.Feed }
	domainsLoadedMsg struct{ domains []domain.Domain }
	feedCreatedMsg   struct{ feed *domain.Feed }
	feedDeletedMsg   struct{ id string }
	errMsg           struct{ err error }
)

// App is the TUI application model following the Elm architecture.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	state  viewState
	cursor int

	feeds    []domain.Feed
	selected *domain.Feed
	domains  []domain.Domain

	// Create form inputs: title, then description.
	inputs     []textinput.Model
	focusIdx   int
	spinner    spinner.Model
	loading    bool
	statusLine string
	err        error

	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) *App {
	s := styles.DefaultStyles()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = s.Selected

	title := textinput.New()
	title.Placeholder = "Title (8-255 characters)"
	title.CharLimit = domain.MaxFieldLength
	title.Focus()

	description := textinput.New()
	description.Placeholder = "Description (8-255 characters)"
	description.CharLimit = domain.MaxFieldLength

	return &App{
		ports:   ports,
		ctx:     context.Background(),
		styles:  s,
		state:   stateMenu,
		inputs:  []textinput.Model{title, description},
		spinner: sp,
	}
}

// WithContext sets the context used for service calls.
func (a *App) WithContext(ctx context.Context) *App {
	if ctx != nil {
		a.ctx = ctx
	}
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.spinner.Tick
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case feedsLoadedMsg:
		a.loading = false
		a.err = nil
		a.feeds = msg.feeds
		a.cursor = 0
		a.state = stateFeeds
		return a, nil

	case domainsLoadedMsg:
		a.loading = false
		a.err = nil
		a.domains = msg.domains
		a.state = stateDomains
		return a, nil

	case feedCreatedMsg:
		a.loading = false
		a.err = nil
		a.statusLine = fmt.Sprintf("Created feed %s", msg.feed.ID)
		a.resetCreateForm()
		return a, a.loadFeeds()

	case feedDeletedMsg:
		a.loading = false
		a.err = nil
		a.statusLine = fmt.Sprintf("Deleted feed %s", msg.id)
		return a, a.loadFeeds()

	case errMsg:
		a.loading = false
		a.err = msg.err
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit, except while typing in the create form.
	if a.state != stateCreate {
		switch msg.String() {
		case "q", "ctrl+c":
			return a, tea.Quit
		}
	} else if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	switch a.state {
	case stateMenu:
		return a.handleMenuKey(msg)
	case stateFeeds:
		return a.handleFeedsKey(msg)
	case stateDomains:
		return a.handleDomainsKey(msg)
	case stateCreate:
		return a.handleCreateKey(msg)
	}
	return a, nil
}

func (a *App) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(menuItems)-1 {
			a.cursor++
		}
	case "enter":
		switch a.cursor {
		case 0:
			a.loading = true
			return a, a.loadFeeds()
		case 1:
			a.state = stateCreate
			a.focusIdx = 0
			a.inputs[0].Focus()
		case 2:
			return a, tea.Quit
		}
	}
	return a, nil
}

func (a *App) handleFeedsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.feeds)-1 {
			a.cursor++
		}
	case "enter":
		if len(a.feeds) == 0 {
			return a, nil
		}
		a.selected = &a.feeds[a.cursor]
		a.loading = true
		return a, a.loadDomains(a.selected.ID)
	case "d":
		if len(a.feeds) == 0 {
			return a, nil
		}
		a.loading = true
		return a, a.deleteFeed(a.feeds[a.cursor].ID)
	case "r":
		a.loading = true
		return a, a.loadFeeds()
	case "esc":
		a.state = stateMenu
		a.cursor = 0
	}
	return a, nil
}

func (a *App) handleDomainsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		a.state = stateFeeds
	}
	return a, nil
}

func (a *App) handleCreateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.resetCreateForm()
		a.state = stateMenu
		return a, nil

	case "tab", "shift+tab", "up", "down":
		a.inputs[a.focusIdx].Blur()
		if msg.String() == "shift+tab" || msg.String() == "up" {
			a.focusIdx--
		} else {
			a.focusIdx++
		}
		if a.focusIdx < 0 {
			a.focusIdx = len(a.inputs) - 1
		}
		a.focusIdx %= len(a.inputs)
		return a, a.inputs[a.focusIdx].Focus()

	case "enter":
		if a.focusIdx < len(a.inputs)-1 {
			a.inputs[a.focusIdx].Blur()
			a.focusIdx++
			return a, a.inputs[a.focusIdx].Focus()
		}
		title := strings.TrimSpace(a.inputs[0].Value())
		description := strings.TrimSpace(a.inputs[1].Value())
		if err := domain.ValidateNewFeed(domain.FeedTypeCSV, title, description); err != nil {
			a.err = err
			return a, nil
		}
		a.loading = true
		return a, a.createFeed(title, description)
	}

	var cmd tea.Cmd
	a.inputs[a.focusIdx], cmd = a.inputs[a.focusIdx].Update(msg)
	return a, cmd
}

func (a *App) resetCreateForm() {
	for i := range a.inputs {
		a.inputs[i].SetValue("")
		a.inputs[i].Blur()
	}
	a.focusIdx = 0
	a.inputs[0].Focus()
}

// Commands.

func (a *App) loadFeeds() tea.Cmd {
	return func() tea.Msg {
		if a.ports == nil || a.ports.Feeds == nil {
			return errMsg{errors.New("feed service not configured")}
		}
		feeds, err := a.ports.Feeds.List(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return feedsLoadedMsg{feeds}
	}
}

func (a *App) loadDomains(feedID string) tea.Cmd {
	return func() tea.Msg {
		if a.ports == nil || a.ports.Reconciler == nil {
			return errMsg{errors.New("reconciler not configured")}
		}
		domains, err := a.ports.Reconciler.AllDomains(a.ctx, feedID)
		if err != nil {
			return errMsg{err}
		}
		return domainsLoadedMsg{domains}
	}
}

func (a *App) createFeed(title, description string) tea.Cmd {
	return func() tea.Msg {
		if a.ports == nil || a.ports.Feeds == nil {
			return errMsg{errors.New("feed service not configured")}
		}
		feed, err := a.ports.Feeds.Create(a.ctx, domain.FeedTypeCSV, title, description)
		if err != nil {
			return errMsg{err}
		}
		return feedCreatedMsg{feed}
	}
}

func (a *App) deleteFeed(id string) tea.Cmd {
	return func() tea.Msg {
		if a.ports == nil || a.ports.Feeds == nil {
			return errMsg{errors.New("feed service not configured")}
		}
		if err := a.ports.Feeds.Delete(a.ctx, id); err != nil {
			return errMsg{err}
		}
		return feedDeletedMsg{id}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	switch a.state {
	case stateMenu:
		a.viewMenu(&b)
	case stateFeeds:
		a.viewFeeds(&b)
	case stateDomains:
		a.viewDomains(&b)
	case stateCreate:
		a.viewCreate(&b)
	}

	if a.loading {
		b.WriteString("\n" + a.spinner.View() + a.styles.Muted.Render(" working..."))
	}
	if a.err != nil {
		b.WriteString("\n" + a.styles.Error.Render("Error: "+a.err.Error()))
	}
	if a.statusLine != "" {
		b.WriteString("\n" + a.styles.Success.Render(a.statusLine))
	}
	return b.String()
}

func (a *App) viewMenu(b *strings.Builder) {
	b.WriteString(a.styles.Title.Render("threatfeed") + "\n\n")
	for i, item := range menuItems {
		if i == a.cursor {
			b.WriteString(a.styles.Selected.Render("> "+item) + "\n")
		} else {
			b.WriteString(a.styles.Normal.Render("  "+item) + "\n")
		}
	}
	b.WriteString(a.styles.Help.Render("↑/↓ navigate · enter select · q quit"))
}

func (a *App) viewFeeds(b *strings.Builder) {
	b.WriteString(a.styles.Title.Render("Feeds") + "\n\n")

	if len(a.feeds) == 0 {
		b.WriteString(a.styles.Muted.Render("No feeds yet.") + "\n")
	}
	for i := range a.feeds {
		feed := &a.feeds[i]
		line := fmt.Sprintf("%s  %s (%d domains)", feed.ID, feed.Title, feed.DomainCount)
		if i == a.cursor {
			b.WriteString(a.styles.Selected.Render("> "+line) + "\n")
		} else {
			b.WriteString(a.styles.Normal.Render("  "+line) + "\n")
		}
	}
	b.WriteString(a.styles.Help.Render("enter view · d delete · r refresh · esc back · q quit"))
}

func (a *App) viewDomains(b *strings.Builder) {
	title := "Domains"
	if a.selected != nil {
		title = fmt.Sprintf("Domains in %s", a.selected.ID)
	}
	b.WriteString(a.styles.Title.Render(title) + "\n\n")

	if len(a.domains) == 0 {
		b.WriteString(a.styles.Muted.Render("Feed is empty.") + "\n")
	}
	for i, d := range a.domains {
		if i == maxVisibleDomains {
			b.WriteString(a.styles.Muted.Render(fmt.Sprintf("  ... and %d more", len(a.domains)-i)) + "\n")
			break
		}
		b.WriteString(a.styles.Normal.Render("  "+string(d)) + "\n")
	}
	b.WriteString(a.styles.Help.Render("esc back · q quit"))
}

func (a *App) viewCreate(b *strings.Builder) {
	b.WriteString(a.styles.Title.Render("Create feed") + "\n\n")
	for i := range a.inputs {
		b.WriteString(a.inputs[i].View() + "\n")
	}
	b.WriteString(a.styles.Help.Render("tab next field · enter submit · esc cancel"))
}
