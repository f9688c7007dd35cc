package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/viewsync/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/viewsync/internal/core/domain"
	"github.com/custodia-labs/viewsync/internal/core/services"
)

type staticSource struct {
	graph *domain.Graph
}

func (s *staticSource) Load(_ context.Context) (*domain.Graph, error) {
	return domain.NewGraph(s.graph.Nodes, s.graph.Edges), nil
}

func (s *staticSource) Watch(ctx context.Context, _ func()) error {
	<-ctx.Done()
	return nil
}

func sampleGraph() *domain.Graph {
	return domain.NewGraph(
		[]domain.Node{
			{ID: "room-1", Type: "space", Properties: map[string]string{"name": "Lobby", "level": "1"}},
			{ID: "wall-42", Type: "wall", Properties: map[string]string{"name": "North wall"}},
			{ID: "wall-43", Type: "wall"},
			{ID: "pipe-7", Type: "pipe"},
		},
		[]domain.Edge{
			{ID: "e1", Source: "room-1", Target: "wall-42", Type: "bounds"},
			{ID: "e2", Source: "room-1", Target: "wall-43", Type: "bounds"},
			{ID: "e3", Source: "wall-42", Target: "pipe-7", Type: "hosts"},
		},
	)
}

func newFixture(t *testing.T) (*services.Engine, *services.GraphService) {
	t.Helper()
	engine := services.NewEngine(memory.NewPreferenceStore())
	t.Cleanup(func() { _ = engine.Close() })
	graph := services.NewGraphService(&staticSource{graph: sampleGraph()})
	require.NoError(t, graph.Reload(context.Background()))
	return engine, graph
}
