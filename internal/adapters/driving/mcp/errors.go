// Package mcp provides an MCP (Model Context Protocol) server adapter for viewsync.
// It lets AI assistants act as one more view over the synchronization engine.
package mcp

import "errors"

var (
	// ErrMissingEngine is returned when the sync engine is not provided.
	ErrMissingEngine = errors.New("mcp: sync engine is required")

	// ErrMissingCommandService is returned by run_command when no command
	// service is configured.
	ErrMissingCommandService = errors.New("mcp: command service is not configured")
)
