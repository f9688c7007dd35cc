package mcp

import (
	"sort"

	"github.com/custodia-labs/viewsync/internal/core/domain"
)

// StateOutput is the engine snapshot as returned by every tool.
type StateOutput struct {
	Revision   uint64            `json:"revision"`
	Selection  []string          `json:"selection"`
	Highlights []HighlightOutput `json:"highlights"`
	Hovered    string            `json:"hovered,omitempty"`
	Layout     LayoutOutput      `json:"layout"`
}

// HighlightOutput is one highlighted element.
type HighlightOutput struct {
	ID        string `json:"id"`
	Color     string `json:"color"`
	Category  string `json:"category"`
	Intensity string `json:"intensity"`
}

// LayoutOutput is the pane layout.
type LayoutOutput struct {
	DividerPosition float64 `json:"divider_position"`
	Primary         string  `json:"primary"`
	Secondary       string  `json:"secondary"`
}

// stateFrom flattens a snapshot. Highlights are sorted by id.
func stateFrom(snap domain.Snapshot) StateOutput {
	out := StateOutput{
		Revision:   snap.Revision,
		Selection:  make([]string, len(snap.Selection)),
		Highlights: make([]HighlightOutput, 0, len(snap.Highlights)),
		Hovered:    snap.Hovered.String(),
		Layout: LayoutOutput{
			DividerPosition: snap.Layout.DividerPosition,
			Primary:         snap.Layout.PaneStates.Primary.String(),
			Secondary:       snap.Layout.PaneStates.Secondary.String(),
		},
	}
	for i, id := range snap.Selection {
		out.Selection[i] = id.String()
	}
	for id, style := range snap.Highlights {
		out.Highlights = append(out.Highlights, HighlightOutput{
			ID:        id.String(),
			Color:     style.Color,
			Category:  style.Category.String(),
			Intensity: style.Intensity.String(),
		})
	}
	sort.Slice(out.Highlights, func(i, j int) bool { return out.Highlights[i].ID < out.Highlights[j].ID })
	return out
}
