package driven

import (
	"context"

	"github.com/custodia-labs/viewsync/internal/core/domain"
)

// CommandInterpreter turns free-text command panel input into a structured
// operation. It is an opaque external service; the in-repo grammar adapter
// is one implementation.
type CommandInterpreter interface {
	// Interpret maps text to a command.
	// Returns an error wrapping domain.ErrUnknownCommand for unrecognised input.
	Interpret(ctx context.Context, text string) (domain.Command, error)
}
