package domain

import "sort"

// LayoutState is the full layout, including the cached pre-maximize divider.
type LayoutState struct {
	DividerPosition         float64    `json:"dividerPosition"`
	PreviousDividerPosition float64    `json:"previousDividerPosition"`
	PaneStates              PaneStates `json:"paneStates"`
}

// DefaultLayoutState returns the compiled-in layout.
func DefaultLayoutState() LayoutState {
	return LayoutState{
		DividerPosition:         DefaultDividerPosition,
		PreviousDividerPosition: DefaultDividerPosition,
		PaneStates:              DefaultPaneStates(),
	}
}

// Preferences returns the persisted subset of the layout.
func (l LayoutState) Preferences(timestamp int64) LayoutPreferences {
	return LayoutPreferences{
		DividerPosition: l.DividerPosition,
		PaneStates:      l.PaneStates,
		Timestamp:       timestamp,
	}
}

// Snapshot is a read-only copy of the engine state.
// Slices and maps are owned by the snapshot; mutating them never affects
// the engine.
type Snapshot struct {
	// Revision increments on every mutation.
	Revision uint64 `json:"revision"`

	// Selection is the selected set, sorted for stable display.
	Selection []ElementID `json:"selection"`

	// Highlights maps elements to their current style.
	Highlights map[ElementID]HighlightStyle `json:"highlights"`

	// Hovered is the previewed element, or empty when nothing is hovered.
	Hovered ElementID `json:"hovered,omitempty"`

	// Layout is the current pane layout.
	Layout LayoutState `json:"layout"`
}

// IsSelected reports whether id is in the selection.
func (s Snapshot) IsSelected(id ElementID) bool {
	i := sort.Search(len(s.Selection), func(i int) bool { return s.Selection[i] >= id })
	return i < len(s.Selection) && s.Selection[i] == id
}

// Highlight returns the style of id, if any.
func (s Snapshot) Highlight(id ElementID) (HighlightStyle, bool) {
	style, ok := s.Highlights[id]
	return style, ok
}

// SortedIDs returns the ids of a set sorted ascending.
func SortedIDs(set map[ElementID]struct{}) []ElementID {
	ids := make([]ElementID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
