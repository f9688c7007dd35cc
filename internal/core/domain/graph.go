package domain

import (
	"fmt"
	"sort"
	"strings"
)

// Node is a graph vertex describing a building element.
type Node struct {
	// ID matches the ElementID used by every view.
	ID ElementID `json:"id" yaml:"id"`

	// Type is the element kind (e.g. "wall", "space", "pipe").
	Type string `json:"type" yaml:"type"`

	// Properties holds free-form element attributes.
	Properties map[string]string `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// Label returns the human-readable name of the node.
// Uses the "name" property when present, otherwise the ID.
func (n *Node) Label() string {
	if name := n.Properties["name"]; name != "" {
		return name
	}
	return n.ID.String()
}

// Edge is a directed relationship between two nodes.
type Edge struct {
	ID     string    `json:"id" yaml:"id"`
	Source ElementID `json:"source" yaml:"source"`
	Target ElementID `json:"target" yaml:"target"`
	Type   string    `json:"type" yaml:"type"`
}

// GraphIssueKind classifies a graph validation problem.
type GraphIssueKind string

// Available graph issue kinds.
const (
	IssueDuplicateNode GraphIssueKind = "duplicate_node"
	IssueDuplicateEdge GraphIssueKind = "duplicate_edge"
	IssueDanglingEdge  GraphIssueKind = "dangling_edge"
	IssueEmptyID       GraphIssueKind = "empty_id"
)

// GraphIssue is a single validation problem.
type GraphIssue struct {
	Kind    GraphIssueKind
	Subject string
	Detail  string
}

// String returns the issue as a single line.
func (i GraphIssue) String() string {
	if i.Detail == "" {
		return fmt.Sprintf("%s: %s", i.Kind, i.Subject)
	}
	return fmt.Sprintf("%s: %s (%s)", i.Kind, i.Subject, i.Detail)
}

// Graph is the node-link data source that views query.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`

	index map[ElementID]int
}

// NewGraph creates a graph and builds its lookup index.
func NewGraph(nodes []Node, edges []Edge) *Graph {
	g := &Graph{Nodes: nodes, Edges: edges}
	g.Reindex()
	return g
}

// Reindex rebuilds the id lookup. The first node wins on duplicate ids.
func (g *Graph) Reindex() {
	g.index = make(map[ElementID]int, len(g.Nodes))
	for i := range g.Nodes {
		if _, exists := g.index[g.Nodes[i].ID]; !exists {
			g.index[g.Nodes[i].ID] = i
		}
	}
}

// Validate reports duplicate node ids, duplicate edge ids, empty ids and
// edges whose endpoints are not nodes.
func (g *Graph) Validate() []GraphIssue {
	var issues []GraphIssue

	seenNodes := make(map[ElementID]struct{}, len(g.Nodes))
	for i := range g.Nodes {
		id := g.Nodes[i].ID
		if id == "" {
			issues = append(issues, GraphIssue{Kind: IssueEmptyID, Subject: fmt.Sprintf("node[%d]", i)})
			continue
		}
		if _, dup := seenNodes[id]; dup {
			issues = append(issues, GraphIssue{Kind: IssueDuplicateNode, Subject: id.String()})
			continue
		}
		seenNodes[id] = struct{}{}
	}

	seenEdges := make(map[string]struct{}, len(g.Edges))
	for i, e := range g.Edges {
		subject := e.ID
		if subject == "" {
			subject = fmt.Sprintf("edge[%d]", i)
		} else if _, dup := seenEdges[e.ID]; dup {
			issues = append(issues, GraphIssue{Kind: IssueDuplicateEdge, Subject: e.ID})
		} else {
			seenEdges[e.ID] = struct{}{}
		}
		if _, ok := seenNodes[e.Source]; !ok {
			issues = append(issues, GraphIssue{
				Kind: IssueDanglingEdge, Subject: subject,
				Detail: "unknown source " + e.Source.String(),
			})
		}
		if _, ok := seenNodes[e.Target]; !ok {
			issues = append(issues, GraphIssue{
				Kind: IssueDanglingEdge, Subject: subject,
				Detail: "unknown target " + e.Target.String(),
			})
		}
	}

	return issues
}

// Node returns the node with the given id.
func (g *Graph) Node(id ElementID) (*Node, bool) {
	if g.index == nil {
		g.Reindex()
	}
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return &g.Nodes[i], true
}

// Neighbors returns the ids connected to id by an edge in either direction,
// sorted and de-duplicated.
func (g *Graph) Neighbors(id ElementID) []ElementID {
	set := make(map[ElementID]struct{})
	for _, e := range g.Edges {
		switch id {
		case e.Source:
			set[e.Target] = struct{}{}
		case e.Target:
			set[e.Source] = struct{}{}
		}
	}
	delete(set, id)
	return SortedIDs(set)
}

// NodesByType returns the nodes of type t, compared case-insensitively.
func (g *Graph) NodesByType(t string) []Node {
	var out []Node
	for i := range g.Nodes {
		if strings.EqualFold(g.Nodes[i].Type, t) {
			out = append(out, g.Nodes[i])
		}
	}
	return out
}

// Types returns the distinct node types, sorted.
func (g *Graph) Types() []string {
	set := make(map[string]struct{})
	for i := range g.Nodes {
		set[g.Nodes[i].Type] = struct{}{}
	}
	types := make([]string, 0, len(set))
	for t := range set {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Filter selects graph nodes. Empty fields match everything.
type Filter struct {
	// Type matches Node.Type case-insensitively.
	Type string

	// Property and Value match Node.Properties[Property] == Value.
	Property string
	Value    string
}

// IsEmpty returns true if the filter has no criteria.
func (f Filter) IsEmpty() bool {
	return f.Type == "" && f.Property == ""
}

// Matches reports whether n satisfies the filter.
func (f Filter) Matches(n *Node) bool {
	if f.Type != "" && !strings.EqualFold(n.Type, f.Type) {
		return false
	}
	if f.Property != "" && n.Properties[f.Property] != f.Value {
		return false
	}
	return true
}
