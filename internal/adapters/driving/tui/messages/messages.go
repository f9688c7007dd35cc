// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/viewsync/internal/core/domain"
)

// EngineEvents carries the bus events published since the last delivery,
// in publication order.
type EngineEvents struct {
	Events []domain.Event
}

// GraphReloaded is sent after the graph source changed and was reloaded.
type GraphReloaded struct {
	Graph *domain.Graph
}

// CommandCompleted carries the result of a command panel run.
type CommandCompleted struct {
	Text    string
	Summary string
	Err     error
}

// Focus identifies which area receives key presses.
type Focus int

const (
	// FocusModel is the element list standing in for the 3D model view.
	FocusModel Focus = iota
	// FocusGraph is the node-link neighborhood view.
	FocusGraph
	// FocusCommand is the command panel input.
	FocusCommand
)

// String returns the string representation of the focus area.
func (f Focus) String() string {
	switch f {
	case FocusModel:
		return "model"
	case FocusGraph:
		return "graph"
	case FocusCommand:
		return "command"
	default:
		return "unknown"
	}
}

// Pane returns the layout pane behind the focus area.
// The command panel has no pane and returns false.
func (f Focus) Pane() (domain.PaneID, bool) {
	switch f {
	case FocusModel:
		return domain.PanePrimary, true
	case FocusGraph:
		return domain.PaneSecondary, true
	default:
		return "", false
	}
}
