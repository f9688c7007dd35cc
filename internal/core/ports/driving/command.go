package driving

import "context"

// CommandService runs command panel input against the engine.
type CommandService interface {
	// Execute interprets text and applies it.
	// Returns a short summary for display.
	Execute(ctx context.Context, text string) (string, error)
}
