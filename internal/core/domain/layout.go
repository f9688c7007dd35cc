package domain

import "math"

// Layout defaults.
const (
	// DefaultMinRatio is the smallest divider position.
	DefaultMinRatio = 0.2

	// DefaultMaxRatio is the largest divider position.
	DefaultMaxRatio = 0.8

	// DefaultDividerPosition splits the two panes evenly.
	DefaultDividerPosition = 0.5
)

// PaneID identifies one of the two dashboard panes.
type PaneID string

// Available panes.
const (
	// PanePrimary is the model (3D) pane.
	PanePrimary PaneID = "primary"

	// PaneSecondary is the graph pane.
	PaneSecondary PaneID = "secondary"
)

// IsValid returns true if the pane is recognised.
func (p PaneID) IsValid() bool {
	return p == PanePrimary || p == PaneSecondary
}

// Other returns the opposite pane.
func (p PaneID) Other() PaneID {
	if p == PanePrimary {
		return PaneSecondary
	}
	return PanePrimary
}

// String returns the string representation.
func (p PaneID) String() string {
	return string(p)
}

// ParsePaneID maps a pane name or its alias ("model", "graph") to a PaneID.
func ParsePaneID(s string) (PaneID, bool) {
	switch s {
	case "primary", "model", "3d":
		return PanePrimary, true
	case "secondary", "graph":
		return PaneSecondary, true
	default:
		return "", false
	}
}

// PaneState is the visibility state of a single pane.
type PaneState string

// Available pane states.
const (
	PaneNormal    PaneState = "normal"
	PaneMaximized PaneState = "maximized"
	PaneMinimized PaneState = "minimized"
)

// IsValid returns true if the pane state is recognised.
func (s PaneState) IsValid() bool {
	switch s {
	case PaneNormal, PaneMaximized, PaneMinimized:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s PaneState) String() string {
	return string(s)
}

// PaneStates holds the state of both panes.
type PaneStates struct {
	Primary   PaneState `json:"primary"`
	Secondary PaneState `json:"secondary"`
}

// DefaultPaneStates returns both panes in the normal state.
func DefaultPaneStates() PaneStates {
	return PaneStates{Primary: PaneNormal, Secondary: PaneNormal}
}

// Get returns the state of pane p.
func (ps PaneStates) Get(p PaneID) PaneState {
	if p == PanePrimary {
		return ps.Primary
	}
	return ps.Secondary
}

// With returns a copy with pane p set to state s.
func (ps PaneStates) With(p PaneID, s PaneState) PaneStates {
	if p == PanePrimary {
		ps.Primary = s
	} else {
		ps.Secondary = s
	}
	return ps
}

// IsValid returns true if both states are recognised and at least one pane
// is visible.
func (ps PaneStates) IsValid() bool {
	if !ps.Primary.IsValid() || !ps.Secondary.IsValid() {
		return false
	}
	return !ps.BothMinimized()
}

// BothMinimized reports a state with no visible working pane.
func (ps PaneStates) BothMinimized() bool {
	return ps.Primary == PaneMinimized && ps.Secondary == PaneMinimized
}

// LayoutBounds is the allowed range of the divider position.
type LayoutBounds struct {
	Min float64
	Max float64
}

// DefaultLayoutBounds returns the compiled-in bounds.
func DefaultLayoutBounds() LayoutBounds {
	return LayoutBounds{Min: DefaultMinRatio, Max: DefaultMaxRatio}
}

// IsValid returns true if the bounds form a non-empty range inside (0, 1).
func (b LayoutBounds) IsValid() bool {
	if math.IsNaN(b.Min) || math.IsNaN(b.Max) {
		return false
	}
	return b.Min > 0 && b.Max < 1 && b.Min < b.Max
}

// Contains reports whether x lies inside the bounds.
func (b LayoutBounds) Contains(x float64) bool {
	return !math.IsNaN(x) && x >= b.Min && x <= b.Max
}

// Clamp forces x into the bounds.
// NaN maps to the default divider (or the midpoint when the default lies
// outside the bounds); infinities map to the nearest bound.
func (b LayoutBounds) Clamp(x float64) float64 {
	if math.IsNaN(x) {
		if b.Contains(DefaultDividerPosition) {
			return DefaultDividerPosition
		}
		return (b.Min + b.Max) / 2
	}
	return math.Min(math.Max(x, b.Min), b.Max)
}

// LayoutPreferences is the persisted subset of layout state.
// Selection, highlights and hover are session-transient and never persisted.
type LayoutPreferences struct {
	// DividerPosition is the normalised split between the panes.
	DividerPosition float64 `json:"dividerPosition"`

	// PaneStates holds the maximize/minimize state of both panes.
	PaneStates PaneStates `json:"paneStates"`

	// Timestamp is when the record was written, in epoch milliseconds.
	Timestamp int64 `json:"timestamp"`
}

// DefaultLayoutPreferences returns the compiled-in default layout.
func DefaultLayoutPreferences() LayoutPreferences {
	return LayoutPreferences{
		DividerPosition: DefaultDividerPosition,
		PaneStates:      DefaultPaneStates(),
	}
}

// Valid returns true if the record satisfies both layout invariants for the
// given bounds.
func (p LayoutPreferences) Valid(bounds LayoutBounds) bool {
	return bounds.Contains(p.DividerPosition) && p.PaneStates.IsValid()
}
