package driven

import (
	"context"

	"github.com/custodia-labs/viewsync/internal/core/domain"
)

// GraphSource provides the node-link dataset views resolve elements against.
// The synchronization engine never calls it; only views and the command
// service do.
type GraphSource interface {
	// Load reads and validates the graph.
	// Returns an error wrapping domain.ErrInvalidGraph when validation fails.
	Load(ctx context.Context) (*domain.Graph, error)

	// Watch calls onChange after the underlying data changes.
	// It blocks until ctx is cancelled.
	Watch(ctx context.Context, onChange func()) error
}
