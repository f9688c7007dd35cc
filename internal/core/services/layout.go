package services

import (
	"errors"

	"github.com/custodia-labs/viewsync/internal/core/domain"
)

// errOtherPaneMinimized is returned when minimizing would hide both panes.
var errOtherPaneMinimized = errors.New("other pane is already minimized")

// errUnknownPane is returned for a PaneID outside the two known panes.
var errUnknownPane = errors.New("unknown pane")

// LayoutMachine is the two-pane layout state machine.
//
// Every transition keeps two invariants: the panes are never both
// minimized, and the divider stays inside the bounds.
type LayoutMachine struct {
	bounds domain.LayoutBounds
	state  domain.LayoutState
}

// NewLayoutMachine creates a machine in the default layout.
// Invalid bounds fall back to the compiled-in defaults.
func NewLayoutMachine(bounds domain.LayoutBounds) *LayoutMachine {
	if !bounds.IsValid() {
		bounds = domain.DefaultLayoutBounds()
	}
	m := &LayoutMachine{bounds: bounds}
	m.state = m.defaults()
	return m
}

func (m *LayoutMachine) defaults() domain.LayoutState {
	s := domain.DefaultLayoutState()
	s.DividerPosition = m.bounds.Clamp(s.DividerPosition)
	s.PreviousDividerPosition = s.DividerPosition
	return s
}

// Bounds returns the divider bounds.
func (m *LayoutMachine) Bounds() domain.LayoutBounds {
	return m.bounds
}

// State returns the current layout.
func (m *LayoutMachine) State() domain.LayoutState {
	return m.state
}

// Hydrate replaces the layout with persisted preferences.
// Records that break an invariant are ignored; the divider is clamped.
func (m *LayoutMachine) Hydrate(p domain.LayoutPreferences) bool {
	if !p.PaneStates.IsValid() {
		return false
	}
	divider := m.bounds.Clamp(p.DividerPosition)
	m.state = domain.LayoutState{
		DividerPosition:         divider,
		PreviousDividerPosition: divider,
		PaneStates:              p.PaneStates,
	}
	return true
}

// SetDividerPosition clamps x into the bounds and returns both panes to
// normal. Reports whether the layout changed.
func (m *LayoutMachine) SetDividerPosition(x float64) bool {
	next := m.state
	next.DividerPosition = m.bounds.Clamp(x)
	next.PaneStates = domain.DefaultPaneStates()
	return m.commit(next)
}

// MaximizePane maximizes p and minimizes the other pane.
func (m *LayoutMachine) MaximizePane(p domain.PaneID) (bool, error) {
	if !p.IsValid() {
		return false, errUnknownPane
	}
	next := m.state
	next.PreviousDividerPosition = m.state.DividerPosition
	next.PaneStates = domain.PaneStates{}.
		With(p, domain.PaneMaximized).
		With(p.Other(), domain.PaneMinimized)
	return m.commit(next), nil
}

// MinimizePane minimizes p. It is refused when the other pane is already
// minimized. The other pane is normalised to normal.
func (m *LayoutMachine) MinimizePane(p domain.PaneID) (bool, error) {
	if !p.IsValid() {
		return false, errUnknownPane
	}
	if m.state.PaneStates.Get(p.Other()) == domain.PaneMinimized {
		return false, errOtherPaneMinimized
	}
	next := m.state
	next.PreviousDividerPosition = m.state.DividerPosition
	next.PaneStates = domain.PaneStates{}.
		With(p, domain.PaneMinimized).
		With(p.Other(), domain.PaneNormal)
	return m.commit(next), nil
}

// RestorePane returns both panes to normal, whichever pane p names, and
// restores the divider cached before the last maximize or minimize.
func (m *LayoutMachine) RestorePane(p domain.PaneID) (bool, error) {
	if !p.IsValid() {
		return false, errUnknownPane
	}
	next := m.state
	next.DividerPosition = m.bounds.Clamp(m.state.PreviousDividerPosition)
	next.PaneStates = domain.DefaultPaneStates()
	return m.commit(next), nil
}

// Reset restores the compiled-in layout.
func (m *LayoutMachine) Reset() bool {
	return m.commit(m.defaults())
}

func (m *LayoutMachine) commit(next domain.LayoutState) bool {
	if next == m.state {
		return false
	}
	m.state = next
	return true
}
