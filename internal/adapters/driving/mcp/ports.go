package mcp

import (
	"github.com/custodia-labs/viewsync/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Engine is the shared selection and layout state.
	Engine driving.SyncEngine

	// Graph resolves element ids. Optional.
	Graph driving.GraphService

	// Command runs command panel text. Optional.
	Command driving.CommandService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Engine == nil {
		return ErrMissingEngine
	}
	return nil
}
