package tui

import "errors"

// ErrMissingEngine is returned when the sync engine is not provided.
var ErrMissingEngine = errors.New("tui: sync engine is required")

// ErrCommandDisabled is shown when a command is entered without a command service.
var ErrCommandDisabled = errors.New("tui: command panel is disabled")
