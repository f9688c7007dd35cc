package services

import "github.com/custodia-labs/viewsync/internal/core/domain"

// SelectionModel is the authoritative selection, highlight and hover state.
// It performs no I/O and emits nothing; the Engine wraps it with locking
// and bus announcements.
type SelectionModel struct {
	selected   map[domain.ElementID]struct{}
	highlights map[domain.ElementID]domain.HighlightStyle
	hovered    domain.ElementID
}

// NewSelectionModel creates an empty model.
func NewSelectionModel() *SelectionModel {
	return &SelectionModel{
		selected:   make(map[domain.ElementID]struct{}),
		highlights: make(map[domain.ElementID]domain.HighlightStyle),
	}
}

// Select adds id to the selection. Reports whether the set changed.
func (m *SelectionModel) Select(id domain.ElementID) bool {
	if _, ok := m.selected[id]; ok {
		return false
	}
	m.selected[id] = struct{}{}
	return true
}

// Deselect removes id from the selection. Reports whether the set changed.
func (m *SelectionModel) Deselect(id domain.ElementID) bool {
	if _, ok := m.selected[id]; !ok {
		return false
	}
	delete(m.selected, id)
	return true
}

// Highlight sets style on every id; the last write for an id wins.
func (m *SelectionModel) Highlight(ids []domain.ElementID, style domain.HighlightStyle) {
	for _, id := range ids {
		m.highlights[id] = style
	}
}

// SetHovered replaces the hovered element. Empty clears it.
func (m *SelectionModel) SetHovered(id domain.ElementID) {
	m.hovered = id
}

// Clear empties selection, highlights and hover.
func (m *SelectionModel) Clear() {
	m.selected = make(map[domain.ElementID]struct{})
	m.highlights = make(map[domain.ElementID]domain.HighlightStyle)
	m.hovered = ""
}

// IsSelected reports whether id is selected.
func (m *SelectionModel) IsSelected(id domain.ElementID) bool {
	_, ok := m.selected[id]
	return ok
}

// Selection returns the selected ids, sorted.
func (m *SelectionModel) Selection() []domain.ElementID {
	return domain.SortedIDs(m.selected)
}

// Highlights returns a copy of the highlight map.
func (m *SelectionModel) Highlights() map[domain.ElementID]domain.HighlightStyle {
	out := make(map[domain.ElementID]domain.HighlightStyle, len(m.highlights))
	for id, s := range m.highlights {
		out[id] = s
	}
	return out
}

// Hovered returns the hovered element, or empty.
func (m *SelectionModel) Hovered() domain.ElementID {
	return m.hovered
}
