package driving

import (
	"context"

	"github.com/custodia-labs/viewsync/internal/core/domain"
)

// GraphService lets views resolve element ids into graph nodes.
type GraphService interface {
	// Graph returns the current graph. Never nil.
	Graph() *domain.Graph

	// Resolve returns the node for id, or domain.ErrNotFound.
	Resolve(id domain.ElementID) (*domain.Node, error)

	// Neighbors returns the ids adjacent to id.
	Neighbors(id domain.ElementID) []domain.ElementID

	// Filter returns the ids of nodes matching f.
	Filter(f domain.Filter) []domain.ElementID

	// Reload re-reads the graph from its source.
	Reload(ctx context.Context) error

	// Watch reloads on every source change and reports the new graph.
	// It blocks until ctx is cancelled.
	Watch(ctx context.Context, onReload func(*domain.Graph)) error
}
