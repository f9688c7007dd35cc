package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/viewsync/internal/adapters/driven/command/grammar"
	"github.com/custodia-labs/viewsync/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/viewsync/internal/core/domain"
	"github.com/custodia-labs/viewsync/internal/core/services"
)

// run executes the root command with args and returns everything printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runWithInput(t, "", args...)
}

func runWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// staticSource serves a fixed graph.
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

// testServices wires real services over in-memory adapters and installs
// them for the duration of the test.
func testServices(t *testing.T) *Services {
	t.Helper()

	eng := services.NewEngine(memory.NewPreferenceStore())
	graph := services.NewGraphService(&staticSource{graph: domain.NewGraph(
		[]domain.Node{
			{ID: "room-1", Type: "space", Properties: map[string]string{"name": "Lobby"}},
			{ID: "wall-42", Type: "Wall"},
			{ID: "wall-43", Type: "Wall"},
		},
		[]domain.Edge{{ID: "e1", Source: "room-1", Target: "wall-42", Type: "bounds"}},
	)})
	require.NoError(t, graph.Reload(context.Background()))

	svcs := &Services{
		Engine:   eng,
		Graph:    graph,
		Command:  services.NewCommandService(eng, graph, grammar.New()),
		Settings: services.NewSettingsService(memory.NewConfigStore()),
		Close:    eng.Close,
	}
	SetServices(svcs)
	t.Cleanup(func() { SetServices(nil) })
	return svcs
}
