package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/viewsync/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/viewsync/internal/core/domain"
	"github.com/custodia-labs/viewsync/internal/core/services"
)

// mockGraphService is a mock implementation of driving.GraphService.
type mockGraphService struct {
	graph *domain.Graph
	err   error
}

func newMockGraphService() *mockGraphService {
	return &mockGraphService{graph: domain.NewGraph(
		[]domain.Node{
			{ID: "wall-42", Type: "wall", Properties: map[string]string{"name": "North wall"}},
			{ID: "room-1", Type: "space"},
		},
		[]domain.Edge{{ID: "e1", Source: "room-1", Target: "wall-42", Type: "bounds"}},
	)}
}

func (m *mockGraphService) Graph() *domain.Graph {
	return m.graph
}

func (m *mockGraphService) Resolve(id domain.ElementID) (*domain.Node, error) {
	if m.err != nil {
		return nil, m.err
	}
	n, ok := m.graph.Node(id)
	if !ok {
		return nil, fmt.Errorf("element %s: %w", id, domain.ErrNotFound)
	}
	return n, nil
}

func (m *mockGraphService) Neighbors(id domain.ElementID) []domain.ElementID {
	return m.graph.Neighbors(id)
}

func (m *mockGraphService) Filter(f domain.Filter) []domain.ElementID {
	var ids []domain.ElementID
	for i := range m.graph.Nodes {
		if f.Matches(&m.graph.Nodes[i]) {
			ids = append(ids, m.graph.Nodes[i].ID)
		}
	}
	return ids
}

func (m *mockGraphService) Reload(_ context.Context) error {
	return m.err
}

func (m *mockGraphService) Watch(ctx context.Context, _ func(*domain.Graph)) error {
	<-ctx.Done()
	return nil
}

// mockCommandService is a mock implementation of driving.CommandService.
type mockCommandService struct {
	summary string
	err     error
	seen    []string
}

func (m *mockCommandService) Execute(_ context.Context, text string) (string, error) {
	m.seen = append(m.seen, text)
	return m.summary, m.err
}

// newTestServer builds a server over a real engine with in-memory storage.
func newTestServer(ports *Ports) (*Server, *services.Engine) {
	engine := services.NewEngine(memory.NewPreferenceStore())
	if ports == nil {
		ports = &Ports{}
	}
	ports.Engine = engine
	server, err := NewServer(ports)
	if err != nil {
		panic(err)
	}
	return server, engine
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}
