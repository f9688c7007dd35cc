package grammar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/viewsync/internal/core/domain"
)

func TestInterpreter_Interpret(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.Command
	}{
		{
			name: "select one",
			text: "select wall-42",
			want: domain.Command{Op: domain.OpSelect, ElementIDs: []domain.ElementID{"wall-42"}},
		},
		{
			name: "select many with commas",
			text: "SELECT wall-42, Wall-43",
			want: domain.Command{Op: domain.OpSelect, ElementIDs: []domain.ElementID{"wall-42", "Wall-43"}},
		},
		{
			name: "deselect alias",
			text: "unselect pipe-7",
			want: domain.Command{Op: domain.OpDeselect, ElementIDs: []domain.ElementID{"pipe-7"}},
		},
		{
			name: "highlight defaults",
			text: "highlight room-1",
			want: domain.Command{
				Op:         domain.OpHighlight,
				ElementIDs: []domain.ElementID{"room-1"},
				Style:      domain.HighlightStyle{Category: domain.CategoryElement, Intensity: domain.IntensitySelected},
			},
		},
		{
			name: "highlight with style and colour",
			text: "hl room-1 as Space/Preview color #ff0000",
			want: domain.Command{
				Op:         domain.OpHighlight,
				ElementIDs: []domain.ElementID{"room-1"},
				Style:      domain.HighlightStyle{Color: "#ff0000", Category: domain.CategorySpace, Intensity: domain.IntensityPreview},
			},
		},
		{
			name: "highlight category only",
			text: "highlight pipe-7 as pipe",
			want: domain.Command{
				Op:         domain.OpHighlight,
				ElementIDs: []domain.ElementID{"pipe-7"},
				Style:      domain.HighlightStyle{Category: domain.CategoryPipe, Intensity: domain.IntensitySelected},
			},
		},
		{
			name: "find type",
			text: "find wall",
			want: domain.Command{Op: domain.OpFind, Filter: domain.Filter{Type: "wall"}},
		},
		{
			name: "find property",
			text: "show level=2",
			want: domain.Command{Op: domain.OpFind, Filter: domain.Filter{Property: "level", Value: "2"}},
		},
		{
			name: "find type and property",
			text: "find wall level=1",
			want: domain.Command{Op: domain.OpFind, Filter: domain.Filter{Type: "wall", Property: "level", Value: "1"}},
		},
		{
			name: "find type as key",
			text: "find type=Wall level=1",
			want: domain.Command{Op: domain.OpFind, Filter: domain.Filter{Type: "Wall", Property: "level", Value: "1"}},
		},
		{
			name: "clear",
			text: "  clear  ",
			want: domain.Command{Op: domain.OpClear},
		},
		{
			name: "maximize alias",
			text: "max Model",
			want: domain.Command{Op: domain.OpMaximize, Pane: domain.PanePrimary},
		},
		{
			name: "minimize",
			text: "minimize graph",
			want: domain.Command{Op: domain.OpMinimize, Pane: domain.PaneSecondary},
		},
		{
			name: "restore",
			text: "restore secondary",
			want: domain.Command{Op: domain.OpRestore, Pane: domain.PaneSecondary},
		},
		{
			name: "divider ratio",
			text: "divider 0.3",
			want: domain.Command{Op: domain.OpDivider, Divider: 0.3},
		},
		{
			name: "divider percent",
			text: "split 40%",
			want: domain.Command{Op: domain.OpDivider, Divider: 0.4},
		},
		{
			name: "reset",
			text: "reset",
			want: domain.Command{Op: domain.OpResetViews},
		},
	}

	interp := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := interp.Interpret(context.Background(), tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want.Op, got.Op)
			assert.Equal(t, tt.want.ElementIDs, got.ElementIDs)
			assert.Equal(t, tt.want.Style, got.Style)
			assert.Equal(t, tt.want.Pane, got.Pane)
			assert.InDelta(t, tt.want.Divider, got.Divider, 1e-9)
			assert.Equal(t, tt.want.Filter, got.Filter)
		})
	}
}

func TestInterpreter_UnknownCommand(t *testing.T) {
	for _, text := range []string{"", "   ", "explode wall-42", "zoom"} {
		t.Run(text, func(t *testing.T) {
			_, err := New().Interpret(context.Background(), text)
			assert.ErrorIs(t, err, domain.ErrUnknownCommand)
		})
	}
}

func TestInterpreter_InvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"select without ids", "select"},
		{"deselect without ids", "deselect"},
		{"highlight without ids", "highlight as space/result"},
		{"highlight dangling as", "highlight wall-42 as"},
		{"highlight dangling color", "highlight wall-42 color"},
		{"highlight unknown category", "highlight wall-42 as roof/result"},
		{"highlight unknown intensity", "highlight wall-42 as space/loud"},
		{"find without criteria", "find"},
		{"find two types", "find wall pipe"},
		{"find two properties", "find a=1 b=2"},
		{"find empty key", "find =1"},
		{"clear with args", "clear all"},
		{"reset with args", "reset now"},
		{"maximize without pane", "maximize"},
		{"maximize unknown pane", "maximize sidebar"},
		{"restore two panes", "restore model graph"},
		{"divider missing", "divider"},
		{"divider not a number", "divider half"},
	}
	interp := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := interp.Interpret(context.Background(), tt.text)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestInterpreter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Interpret(ctx, "select wall-42")
	assert.ErrorIs(t, err, context.Canceled)
}
