package services

import (
	"bytes"
	"context"
	"os"
	"sync"
	"testing"

	"github.com/custodia-labs/viewsync/internal/core/domain"
	"github.com/custodia-labs/viewsync/internal/logger"
)

// captureLog redirects the diagnostic log into a buffer for the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	t.Cleanup(func() { logger.SetOutput(os.Stderr) })
	return &buf
}

// recorder collects bus events in delivery order.
type recorder struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *recorder) handle(ev domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) all() []domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Event(nil), r.events...)
}

func (r *recorder) named(name domain.EventName) []domain.Event {
	var out []domain.Event
	for _, ev := range r.all() {
		if ev.Name() == name {
			out = append(out, ev)
		}
	}
	return out
}

func (r *recorder) names() []domain.EventName {
	var out []domain.EventName
	for _, ev := range r.all() {
		out = append(out, ev.Name())
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// mockGraphSource serves a fixed graph and fires onChange on demand.
type mockGraphSource struct {
	mu      sync.Mutex
	graph   *domain.Graph
	loadErr error
	loads   int
	changes chan struct{}
}

func newMockGraphSource(g *domain.Graph) *mockGraphSource {
	return &mockGraphSource{graph: g, changes: make(chan struct{}, 1)}
}

func (m *mockGraphSource) Load(_ context.Context) (*domain.Graph, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return domain.NewGraph(m.graph.Nodes, m.graph.Edges), nil
}

func (m *mockGraphSource) Watch(ctx context.Context, onChange func()) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-m.changes:
			onChange()
		}
	}
}

func (m *mockGraphSource) set(g *domain.Graph, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.graph = g
	m.loadErr = err
}

// stubInterpreter returns a fixed command.
type stubInterpreter struct {
	cmd  domain.Command
	err  error
	seen []string
}

func (s *stubInterpreter) Interpret(_ context.Context, text string) (domain.Command, error) {
	s.seen = append(s.seen, text)
	return s.cmd, s.err
}

// sampleGraph is a small building: a room with a wall and a heating system.
func sampleGraph() *domain.Graph {
	return domain.NewGraph(
		[]domain.Node{
			{ID: "room-1", Type: "space", Properties: map[string]string{"name": "Lobby", "level": "1"}},
			{ID: "wall-42", Type: "wall", Properties: map[string]string{"name": "North wall", "level": "1"}},
			{ID: "wall-43", Type: "Wall", Properties: map[string]string{"level": "2"}},
			{ID: "pipe-7", Type: "pipe"},
			{ID: "hvac", Type: "HeatingSystem"},
		},
		[]domain.Edge{
			{ID: "e1", Source: "room-1", Target: "wall-42", Type: "bounds"},
			{ID: "e2", Source: "room-1", Target: "wall-43", Type: "bounds"},
			{ID: "e3", Source: "pipe-7", Target: "hvac", Type: "partOf"},
			{ID: "e4", Source: "wall-42", Target: "pipe-7", Type: "hosts"},
		},
	)
}
