package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/viewsync/internal/core/domain"
	"github.com/custodia-labs/viewsync/internal/core/ports/driven"
	"github.com/custodia-labs/viewsync/internal/core/ports/driving"
	"github.com/custodia-labs/viewsync/internal/logger"
)

// Ensure GraphService implements the interface.
var _ driving.GraphService = (*GraphService)(nil)

// GraphService holds the current graph and answers view lookups.
// A failed reload keeps the previous graph.
type GraphService struct {
	source driven.GraphSource

	mu    sync.RWMutex
	graph *domain.Graph
}

// NewGraphService creates a service over source. A nil source serves an
// empty graph.
func NewGraphService(source driven.GraphSource) *GraphService {
	return &GraphService{
		source: source,
		graph:  domain.NewGraph(nil, nil),
	}
}

// Graph returns the current graph. Callers must treat it as read-only.
func (s *GraphService) Graph() *domain.Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph
}

// Resolve returns the node for id.
func (s *GraphService) Resolve(id domain.ElementID) (*domain.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.graph.Node(id)
	if !ok {
		return nil, fmt.Errorf("node %s: %w", id, domain.ErrNotFound)
	}
	return n, nil
}

// Neighbors returns the ids adjacent to id.
func (s *GraphService) Neighbors(id domain.ElementID) []domain.ElementID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph.Neighbors(id)
}

// Filter returns the ids of matching nodes in graph order.
// An empty filter matches nothing.
func (s *GraphService) Filter(f domain.Filter) []domain.ElementID {
	if f.IsEmpty() {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []domain.ElementID
	for i := range s.graph.Nodes {
		if f.Matches(&s.graph.Nodes[i]) {
			ids = append(ids, s.graph.Nodes[i].ID)
		}
	}
	return ids
}

// Reload re-reads the graph from the source.
func (s *GraphService) Reload(ctx context.Context) error {
	if s.source == nil {
		return nil
	}
	g, err := s.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("reload graph: %w", err)
	}
	g.Reindex()

	s.mu.Lock()
	s.graph = g
	s.mu.Unlock()

	logger.Debug("graph loaded: %d nodes, %d edges", len(g.Nodes), len(g.Edges))
	return nil
}

// Watch reloads the graph whenever the source reports a change and calls
// onReload with the new graph. It blocks until ctx is cancelled.
func (s *GraphService) Watch(ctx context.Context, onReload func(*domain.Graph)) error {
	if s.source == nil {
		<-ctx.Done()
		return nil
	}
	return s.source.Watch(ctx, func() {
		if err := s.Reload(ctx); err != nil {
			logger.WithFields(logger.Fields{"error": err}).Warn("graph reload failed, keeping previous graph")
			return
		}
		if onReload != nil {
			onReload(s.Graph())
		}
	})
}
