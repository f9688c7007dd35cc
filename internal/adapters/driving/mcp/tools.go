package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/viewsync/internal/core/domain"
)

// SelectInput is the input schema for the select_element tool.
type SelectInput struct {
	ID       string `json:"id" jsonschema:"the element id to select"`
	Source   string `json:"source,omitempty" jsonschema:"originating view: model, graph or control (default control)"`
	Deselect bool   `json:"deselect,omitempty" jsonschema:"remove the element from the selection instead"`
}

// HighlightInput is the input schema for the highlight_elements tool.
type HighlightInput struct {
	IDs       []string `json:"ids" jsonschema:"element ids to highlight"`
	Category  string   `json:"category,omitempty" jsonschema:"space, element, system or pipe (default element)"`
	Intensity string   `json:"intensity,omitempty" jsonschema:"preview, selected or result (default selected)"`
	Color     string   `json:"color,omitempty" jsonschema:"colour token; empty uses the palette"`
}

// LayoutInput is the input schema for the set_layout tool.
type LayoutInput struct {
	Action  string  `json:"action" jsonschema:"divider, maximize, minimize, restore or reset"`
	Pane    string  `json:"pane,omitempty" jsonschema:"primary (model) or secondary (graph)"`
	Divider float64 `json:"divider,omitempty" jsonschema:"divider ratio for the divider action"`
}

// CommandInput is the input schema for the run_command tool.
type CommandInput struct {
	Text string `json:"text" jsonschema:"command panel text, e.g. 'find wall' or 'maximize model'"`
}

// CommandOutput is the output schema for the run_command tool.
type CommandOutput struct {
	Summary string      `json:"summary"`
	State   StateOutput `json:"state"`
}

// EmptyInput is used by tools that take no arguments.
type EmptyInput struct{}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "select_element",
		Description: "Select or deselect a building element in every view",
	}, s.handleSelect)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "highlight_elements",
		Description: "Apply a highlight style to elements",
	}, s.handleHighlight)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "clear_highlights",
		Description: "Clear the selection, highlights and hover",
	}, s.handleClear)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "set_layout",
		Description: "Move the divider or maximize, minimize, restore or reset the panes",
	}, s.handleLayout)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "run_command",
		Description: "Run command panel text against the views",
	}, s.handleCommand)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_state",
		Description: "Return the current selection, highlights and layout",
	}, s.handleGetState)
}

func (s *Server) handleSelect(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SelectInput,
) (*mcp.CallToolResult, StateOutput, error) {
	if input.ID == "" {
		return nil, StateOutput{}, fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}

	source := domain.SourceControl
	if input.Source != "" {
		source = domain.Source(input.Source)
		if !source.IsValid() {
			return nil, StateOutput{}, fmt.Errorf("%w: unknown source %q", domain.ErrInvalidInput, input.Source)
		}
	}

	id := domain.ElementID(input.ID)
	if input.Deselect {
		s.ports.Engine.DeselectElement(id, source)
	} else {
		s.ports.Engine.SelectElement(id, source)
	}
	return nil, s.state(), nil
}

func (s *Server) handleHighlight(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input HighlightInput,
) (*mcp.CallToolResult, StateOutput, error) {
	if len(input.IDs) == 0 {
		return nil, StateOutput{}, fmt.Errorf("%w: ids are required", domain.ErrInvalidInput)
	}

	category := domain.HighlightCategory(input.Category)
	if category == "" {
		category = domain.CategoryElement
	}
	intensity := domain.HighlightIntensity(input.Intensity)
	if intensity == "" {
		intensity = domain.IntensitySelected
	}
	style, err := domain.NewHighlightStyle(input.Color, category, intensity)
	if err != nil {
		return nil, StateOutput{}, err
	}

	ids := make([]domain.ElementID, len(input.IDs))
	for i, id := range input.IDs {
		ids[i] = domain.ElementID(id)
	}
	s.ports.Engine.HighlightElements(ids, style)
	return nil, s.state(), nil
}

func (s *Server) handleClear(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, StateOutput, error) {
	s.ports.Engine.ClearHighlights()
	return nil, s.state(), nil
}

func (s *Server) handleLayout(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input LayoutInput,
) (*mcp.CallToolResult, StateOutput, error) {
	engine := s.ports.Engine

	switch input.Action {
	case "divider":
		engine.SetDividerPosition(input.Divider)
		return nil, s.state(), nil
	case "reset":
		engine.ResetLayout()
		return nil, s.state(), nil
	case "maximize", "minimize", "restore":
	default:
		return nil, StateOutput{}, fmt.Errorf("%w: unknown action %q", domain.ErrInvalidInput, input.Action)
	}

	pane, ok := domain.ParsePaneID(input.Pane)
	if !ok {
		return nil, StateOutput{}, fmt.Errorf("%w: unknown pane %q", domain.ErrInvalidInput, input.Pane)
	}
	switch input.Action {
	case "maximize":
		engine.MaximizePane(pane)
	case "minimize":
		engine.MinimizePane(pane)
	default:
		engine.RestorePane(pane)
	}
	return nil, s.state(), nil
}

func (s *Server) handleCommand(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CommandInput,
) (*mcp.CallToolResult, CommandOutput, error) {
	if s.ports.Command == nil {
		return nil, CommandOutput{}, ErrMissingCommandService
	}

	summary, err := s.ports.Command.Execute(ctx, input.Text)
	if err != nil {
		return nil, CommandOutput{}, fmt.Errorf("running command: %w", err)
	}
	return nil, CommandOutput{Summary: summary, State: s.state()}, nil
}

func (s *Server) handleGetState(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, StateOutput, error) {
	return nil, s.state(), nil
}

func (s *Server) state() StateOutput {
	return stateFrom(s.ports.Engine.Snapshot())
}
