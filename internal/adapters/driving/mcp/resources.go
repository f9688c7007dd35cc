package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/viewsync/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for viewsync resources.
	uriScheme = "viewsync://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "state",
		Name:        "state",
		Description: "Current selection, highlights and pane layout",
		MIMEType:    "application/json",
	}, s.handleStateResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "graph",
		Name:        "graph",
		Description: "The building element graph views resolve ids against",
		MIMEType:    "application/json",
	}, s.handleGraphResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "elements/{elementId}",
		Name:        "element",
		Description: "A single element with its neighbors and view state",
		MIMEType:    "application/json",
	}, s.handleElementResource)
}

// handleStateResource returns the engine snapshot.
func (s *Server) handleStateResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.state())
}

// handleGraphResource returns the loaded graph, or an empty one.
func (s *Server) handleGraphResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	graph := domain.NewGraph(nil, nil)
	if s.ports.Graph != nil {
		graph = s.ports.Graph.Graph()
	}

	type graphInfo struct {
		Nodes []domain.Node `json:"nodes"`
		Edges []domain.Edge `json:"edges"`
	}
	info := graphInfo{Nodes: graph.Nodes, Edges: graph.Edges}
	if info.Nodes == nil {
		info.Nodes = []domain.Node{}
	}
	if info.Edges == nil {
		info.Edges = []domain.Edge{}
	}
	return jsonResource(req.Params.URI, info)
}

// handleElementResource returns one element resolved through the graph.
func (s *Server) handleElementResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Graph == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	id := extractElementID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	node, err := s.ports.Graph.Resolve(id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("resolving element: %w", err)
	}

	type elementInfo struct {
		Node      *domain.Node           `json:"node"`
		Neighbors []domain.ElementID     `json:"neighbors"`
		Selected  bool                   `json:"selected"`
		Highlight *domain.HighlightStyle `json:"highlight,omitempty"`
	}

	snap := s.ports.Engine.Snapshot()
	info := elementInfo{
		Node:      node,
		Neighbors: s.ports.Graph.Neighbors(id),
		Selected:  snap.IsSelected(id),
	}
	if info.Neighbors == nil {
		info.Neighbors = []domain.ElementID{}
	}
	if style, ok := snap.Highlight(id); ok {
		info.Highlight = &style
	}
	return jsonResource(req.Params.URI, info)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractElementID extracts the element ID from a URI like viewsync://elements/{elementId}.
func extractElementID(uri string) domain.ElementID {
	const prefix = uriScheme + "elements/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return domain.ElementID(strings.TrimPrefix(uri, prefix))
}
