package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/viewsync/internal/core/domain"
)

const buildingYAML = `
nodes:
  - id: room-1
    type: space
    properties:
      name: Lobby
      level: 1
      area: 42.5
  - id: wall-42
    type: wall
    properties:
      fireRated: true
edges:
  - id: e1
    source: room-1
    target: wall-42
    type: bounds
`

const buildingJSON = `{
	"nodes": [
		{"id": "room-1", "type": "space", "properties": {"name": "Lobby", "level": 1}},
		{"id": "wall-42", "type": "wall"}
	],
	"edges": [{"id": "e1", "source": "room-1", "target": "wall-42", "type": "bounds"}]
}`

func writeGraph(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestSource_LoadYAML(t *testing.T) {
	src := NewSource(writeGraph(t, "building.yaml", buildingYAML))

	g, err := src.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, g.Nodes, 2)
	room, ok := g.Node("room-1")
	require.True(t, ok)
	assert.Equal(t, "Lobby", room.Label())
	assert.Equal(t, "1", room.Properties["level"])
	assert.Equal(t, "42.5", room.Properties["area"])

	wall, _ := g.Node("wall-42")
	assert.Equal(t, "true", wall.Properties["fireRated"])
	assert.Equal(t, []domain.ElementID{"wall-42"}, g.Neighbors("room-1"))
}

func TestSource_LoadJSON(t *testing.T) {
	src := NewSource(writeGraph(t, "building.json", buildingJSON))

	g, err := src.Load(context.Background())
	require.NoError(t, err)

	room, ok := g.Node("room-1")
	require.True(t, ok)
	assert.Equal(t, "1", room.Properties["level"])
	assert.Len(t, g.Edges, 1)
}

func TestSource_LoadMissingFile(t *testing.T) {
	src := NewSource(filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := src.Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSource_LoadCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSource("whatever.yaml").Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse("g.json", []byte(`{"nodes": [`))
	assert.ErrorIs(t, err, domain.ErrInvalidGraph)

	_, err = Parse("g.yaml", []byte("nodes: [unclosed"))
	assert.ErrorIs(t, err, domain.ErrInvalidGraph)
}

func TestParse_ValidationIssues(t *testing.T) {
	data := `
nodes:
  - id: a
  - id: a
edges:
  - id: e1
    source: a
    target: ghost
`
	_, err := Parse("g.yaml", []byte(data))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidGraph)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	kinds := make([]domain.GraphIssueKind, 0, len(verr.Issues))
	for _, issue := range verr.Issues {
		kinds = append(kinds, issue.Kind)
	}
	assert.Contains(t, kinds, domain.IssueDuplicateNode)
	assert.Contains(t, kinds, domain.IssueDanglingEdge)
	assert.Contains(t, err.Error(), "g.yaml")
}

func TestSource_WatchReportsWrites(t *testing.T) {
	path := writeGraph(t, "building.yaml", buildingYAML)
	src := NewSource(path, WithWatchDelay(20*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var changes atomic.Int32
	done := make(chan error, 1)
	go func() { done <- src.Watch(ctx, func() { changes.Add(1) }) }()

	// Give the watcher time to register before writing.
	time.Sleep(50 * time.Millisecond)
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte(buildingYAML), 0600))
	}

	assert.Eventually(t, func() bool { return changes.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	// Writes to other files in the directory are ignored.
	before := changes.Load()
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.yaml"), []byte("x"), 0600))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, before, changes.Load())

	cancel()
	assert.NoError(t, <-done)
}

func TestSource_WatchMissingDirectory(t *testing.T) {
	src := NewSource(filepath.Join(t.TempDir(), "no", "such", "g.yaml"))

	err := src.Watch(context.Background(), func() {})
	assert.Error(t, err)
}
