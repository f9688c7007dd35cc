package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/viewsync/internal/core/domain"
)

func TestServer_handleSelect(t *testing.T) {
	ctx := context.Background()

	t.Run("selects with control source by default", func(t *testing.T) {
		server, engine := newTestServer(nil)
		var got []domain.Event
		engine.SubscribeAll(func(ev domain.Event) { got = append(got, ev) })

		_, out, err := server.handleSelect(ctx, nil, SelectInput{ID: "wall-42"})

		require.NoError(t, err)
		assert.Equal(t, []string{"wall-42"}, out.Selection)
		require.Len(t, got, 1)
		sel, ok := got[0].(domain.SelectionChanged)
		require.True(t, ok)
		assert.Equal(t, domain.SourceControl, sel.Source)
	})

	t.Run("model source requests focus", func(t *testing.T) {
		server, engine := newTestServer(nil)
		var focus int
		engine.Subscribe(domain.EventFocusRequested, func(domain.Event) { focus++ })

		_, _, err := server.handleSelect(ctx, nil, SelectInput{ID: "wall-42", Source: "model"})

		require.NoError(t, err)
		assert.Equal(t, 1, focus)
	})

	t.Run("deselect removes the element", func(t *testing.T) {
		server, engine := newTestServer(nil)
		engine.SelectElement("wall-42", domain.SourceGraph)

		_, out, err := server.handleSelect(ctx, nil, SelectInput{ID: "wall-42", Deselect: true})

		require.NoError(t, err)
		assert.Empty(t, out.Selection)
	})

	t.Run("rejects empty id and unknown source", func(t *testing.T) {
		server, _ := newTestServer(nil)

		_, _, err := server.handleSelect(ctx, nil, SelectInput{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, _, err = server.handleSelect(ctx, nil, SelectInput{ID: "a", Source: "camera"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleHighlight(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to element/selected with palette colour", func(t *testing.T) {
		server, _ := newTestServer(nil)

		_, out, err := server.handleHighlight(ctx, nil, HighlightInput{IDs: []string{"wall-43", "wall-42"}})

		require.NoError(t, err)
		require.Len(t, out.Highlights, 2)
		assert.Equal(t, "wall-42", out.Highlights[0].ID)
		assert.Equal(t, "element", out.Highlights[0].Category)
		assert.Equal(t, "selected", out.Highlights[0].Intensity)
		assert.Equal(t, domain.DefaultHighlightColor(domain.CategoryElement, domain.IntensitySelected), out.Highlights[0].Color)
	})

	t.Run("explicit style", func(t *testing.T) {
		server, _ := newTestServer(nil)

		_, out, err := server.handleHighlight(ctx, nil, HighlightInput{
			IDs: []string{"room-1"}, Category: "space", Intensity: "result", Color: "#ff0000",
		})

		require.NoError(t, err)
		require.Len(t, out.Highlights, 1)
		assert.Equal(t, HighlightOutput{ID: "room-1", Color: "#ff0000", Category: "space", Intensity: "result"}, out.Highlights[0])
	})

	t.Run("rejects invalid style", func(t *testing.T) {
		server, engine := newTestServer(nil)

		_, _, err := server.handleHighlight(ctx, nil, HighlightInput{IDs: []string{"a"}, Category: "roof"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Empty(t, engine.Snapshot().Highlights)
	})

	t.Run("rejects empty ids", func(t *testing.T) {
		server, _ := newTestServer(nil)
		_, _, err := server.handleHighlight(ctx, nil, HighlightInput{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleClear(t *testing.T) {
	server, engine := newTestServer(nil)
	engine.SelectElement("wall-42", domain.SourceModel)
	engine.SetHoveredElement("room-1")

	_, out, err := server.handleClear(context.Background(), nil, EmptyInput{})

	require.NoError(t, err)
	assert.Empty(t, out.Selection)
	assert.Empty(t, out.Highlights)
	assert.Empty(t, out.Hovered)
}

func TestServer_handleLayout(t *testing.T) {
	ctx := context.Background()

	t.Run("divider is clamped", func(t *testing.T) {
		server, _ := newTestServer(nil)
		_, out, err := server.handleLayout(ctx, nil, LayoutInput{Action: "divider", Divider: 0.95})
		require.NoError(t, err)
		assert.InDelta(t, domain.DefaultMaxRatio, out.Layout.DividerPosition, 1e-9)
	})

	t.Run("maximize accepts pane aliases", func(t *testing.T) {
		server, _ := newTestServer(nil)
		_, out, err := server.handleLayout(ctx, nil, LayoutInput{Action: "maximize", Pane: "graph"})
		require.NoError(t, err)
		assert.Equal(t, "minimized", out.Layout.Primary)
		assert.Equal(t, "maximized", out.Layout.Secondary)
	})

	t.Run("minimize is refused when the other pane is minimized", func(t *testing.T) {
		server, engine := newTestServer(nil)
		engine.MinimizePane(domain.PanePrimary)

		_, out, err := server.handleLayout(ctx, nil, LayoutInput{Action: "minimize", Pane: "secondary"})

		require.NoError(t, err)
		assert.Equal(t, "minimized", out.Layout.Primary)
		assert.Equal(t, "normal", out.Layout.Secondary)
	})

	t.Run("restore and reset", func(t *testing.T) {
		server, engine := newTestServer(nil)
		engine.SetDividerPosition(0.3)
		engine.MaximizePane(domain.PanePrimary)

		_, out, err := server.handleLayout(ctx, nil, LayoutInput{Action: "restore", Pane: "model"})
		require.NoError(t, err)
		assert.InDelta(t, 0.3, out.Layout.DividerPosition, 1e-9)

		_, out, err = server.handleLayout(ctx, nil, LayoutInput{Action: "reset"})
		require.NoError(t, err)
		assert.InDelta(t, domain.DefaultDividerPosition, out.Layout.DividerPosition, 1e-9)
	})

	t.Run("rejects unknown action and pane", func(t *testing.T) {
		server, _ := newTestServer(nil)

		_, _, err := server.handleLayout(ctx, nil, LayoutInput{Action: "spin"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)

		_, _, err = server.handleLayout(ctx, nil, LayoutInput{Action: "maximize", Pane: "sidebar"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("returns summary and state", func(t *testing.T) {
		cmd := &mockCommandService{summary: "found 2 elements"}
		server, _ := newTestServer(&Ports{Command: cmd})

		_, out, err := server.handleCommand(ctx, nil, CommandInput{Text: "find wall"})

		require.NoError(t, err)
		assert.Equal(t, "found 2 elements", out.Summary)
		assert.Equal(t, []string{"find wall"}, cmd.seen)
	})

	t.Run("missing command service", func(t *testing.T) {
		server, _ := newTestServer(nil)
		_, _, err := server.handleCommand(ctx, nil, CommandInput{Text: "clear"})
		assert.ErrorIs(t, err, ErrMissingCommandService)
	})

	t.Run("wraps interpreter errors", func(t *testing.T) {
		server, _ := newTestServer(&Ports{Command: &mockCommandService{err: domain.ErrUnknownCommand}})

		_, _, err := server.handleCommand(ctx, nil, CommandInput{Text: "explode"})

		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUnknownCommand))
		assert.Contains(t, err.Error(), "running command")
	})
}

func TestServer_handleGetState(t *testing.T) {
	server, engine := newTestServer(nil)
	engine.SelectElement("b", domain.SourceGraph)
	engine.SelectElement("a", domain.SourceGraph)

	_, out, err := server.handleGetState(context.Background(), nil, EmptyInput{})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out.Selection)
	assert.Equal(t, engine.Snapshot().Revision, out.Revision)
	assert.Equal(t, "normal", out.Layout.Primary)
}
