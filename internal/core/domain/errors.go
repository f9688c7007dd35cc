package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Storage Errors.

	// ErrStorageUnavailable indicates the durable key-value backend cannot be used
	// (disabled, read-only, or out of quota).
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrCorruptRecord indicates a persisted record failed to parse or validate.
	ErrCorruptRecord = errors.New("corrupt record")

	// Graph Errors.

	// ErrInvalidGraph indicates the graph data source failed validation.
	ErrInvalidGraph = errors.New("invalid graph")

	// Command Errors.

	// ErrUnknownCommand indicates the command interpreter could not map the input
	// to an operation.
	ErrUnknownCommand = errors.New("unknown command")
)
