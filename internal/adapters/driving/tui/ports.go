// Package tui provides an interactive terminal user interface for
// browsing and managing threat feeds. It implements a driving adapter
// following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/threatfeed-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Feeds manages feed lifecycle.
	Feeds driving.FeedService

	// Reconciler enumerates and mutates feed contents.
	Reconciler driving.Reconciler
}
