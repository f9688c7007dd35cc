// Package tui provides an interactive terminal user interface for viewsync.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/viewsync/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Engine is the shared selection and layout state.
	Engine driving.SyncEngine

	// Graph resolves element ids. Optional.
	Graph driving.GraphService

	// Command runs command panel input. Optional; the panel is disabled
	// without it.
	Command driving.CommandService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(engine driving.SyncEngine, graph driving.GraphService, command driving.CommandService) *Ports {
	return &Ports{
		Engine:  engine,
		Graph:   graph,
		Command: command,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Engine == nil {
		return ErrMissingEngine
	}
	return nil
}
