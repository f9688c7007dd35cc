package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGraph() *Graph {
	return NewGraph(
		[]Node{
			{ID: "wall-42", Type: "wall", Properties: map[string]string{"name": "North wall", "level": "2"}},
			{ID: "space-1", Type: "space", Properties: map[string]string{"level": "2"}},
			{ID: "pipe-7", Type: "pipe"},
		},
		[]Edge{
			{ID: "e1", Source: "wall-42", Target: "space-1", Type: "bounds"},
			{ID: "e2", Source: "pipe-7", Target: "wall-42", Type: "penetrates"},
		},
	)
}

func TestGraph_Validate_Clean(t *testing.T) {
	assert.Empty(t, sampleGraph().Validate())
}

func TestGraph_Validate_Issues(t *testing.T) {
	g := NewGraph(
		[]Node{{ID: "a"}, {ID: "a"}, {ID: ""}},
		[]Edge{
			{ID: "e1", Source: "a", Target: "missing"},
			{ID: "e1", Source: "a", Target: "a"},
		},
	)

	issues := g.Validate()

	kinds := make(map[GraphIssueKind]int)
	for _, issue := range issues {
		kinds[issue.Kind]++
	}
	assert.Equal(t, 1, kinds[IssueDuplicateNode])
	assert.Equal(t, 1, kinds[IssueEmptyID])
	assert.Equal(t, 1, kinds[IssueDuplicateEdge])
	assert.Equal(t, 1, kinds[IssueDanglingEdge])
}

func TestGraph_Node(t *testing.T) {
	g := sampleGraph()

	n, ok := g.Node("wall-42")
	require.True(t, ok)
	assert.Equal(t, "North wall", n.Label())

	n, ok = g.Node("pipe-7")
	require.True(t, ok)
	assert.Equal(t, "pipe-7", n.Label())

	_, ok = g.Node("door-1")
	assert.False(t, ok)
}

func TestGraph_Neighbors(t *testing.T) {
	g := sampleGraph()

	assert.Equal(t, []ElementID{"pipe-7", "space-1"}, g.Neighbors("wall-42"))
	assert.Equal(t, []ElementID{"wall-42"}, g.Neighbors("space-1"))
	assert.Empty(t, g.Neighbors("door-1"))
}

func TestGraph_NodesByTypeAndTypes(t *testing.T) {
	g := sampleGraph()

	walls := g.NodesByType("WALL")
	require.Len(t, walls, 1)
	assert.Equal(t, ElementID("wall-42"), walls[0].ID)
	assert.Equal(t, []string{"pipe", "space", "wall"}, g.Types())
}

func TestFilter_Matches(t *testing.T) {
	g := sampleGraph()
	wall, _ := g.Node("wall-42")

	assert.True(t, Filter{}.Matches(wall))
	assert.True(t, Filter{Type: "wall"}.Matches(wall))
	assert.True(t, Filter{Property: "level", Value: "2"}.Matches(wall))
	assert.False(t, Filter{Type: "space"}.Matches(wall))
	assert.False(t, Filter{Property: "level", Value: "3"}.Matches(wall))
	assert.True(t, Filter{}.IsEmpty())
}
