package web

import (
	"errors"

	"github.com/custodia-labs/viewsync/internal/core/ports/driving"
)

// ErrMissingEngine is returned when the sync engine is not provided.
var ErrMissingEngine = errors.New("web: sync engine is required")

// Ports aggregates the driving ports the web view uses.
type Ports struct {
	// Engine is the shared selection and layout state.
	Engine driving.SyncEngine

	// Graph resolves element ids. Optional.
	Graph driving.GraphService

	// Command runs command panel text. Optional.
	Command driving.CommandService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Engine == nil {
		return ErrMissingEngine
	}
	return nil
}
