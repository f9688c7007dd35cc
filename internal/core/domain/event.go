package domain

// EventName identifies a synchronization bus event.
type EventName string

// Available bus events.
const (
	// EventSelectionChanged fires on every select, deselect and clear.
	EventSelectionChanged EventName = "selection-changed"

	// EventHighlightChanged fires on every highlight write.
	EventHighlightChanged EventName = "highlight-changed"

	// EventFocusRequested asks graph-like views to centre on nodes.
	EventFocusRequested EventName = "focus-requested"

	// EventLayoutChanged fires after a layout transition that changed state.
	EventLayoutChanged EventName = "layout-changed"
)

// String returns the string representation.
func (n EventName) String() string {
	return string(n)
}

// AllEventNames returns every event the bus can emit.
func AllEventNames() []EventName {
	return []EventName{
		EventSelectionChanged,
		EventHighlightChanged,
		EventFocusRequested,
		EventLayoutChanged,
	}
}

// Event is a one-way, fire-and-forget bus payload.
type Event interface {
	// Name returns the event name subscribers register for.
	Name() EventName

	// EventID returns the unique id of this emission.
	EventID() string
}

// SelectionChangeType distinguishes a selection write from a full clear.
type SelectionChangeType string

// Available selection change types.
const (
	SelectionSelect SelectionChangeType = "select"
	SelectionClear  SelectionChangeType = "clear"
)

// SelectionChanged is emitted on every SelectElement, DeselectElement and
// ClearHighlights.
type SelectionChanged struct {
	ID         string              `json:"id"`
	Type       SelectionChangeType `json:"type"`
	Source     Source              `json:"source"`
	ElementIDs []ElementID         `json:"elementIds"`
	Timestamp  int64               `json:"timestamp"`
}

// Name implements Event.
func (e SelectionChanged) Name() EventName { return EventSelectionChanged }

// EventID implements Event.
func (e SelectionChanged) EventID() string { return e.ID }

// HighlightChanged is emitted on every HighlightElements.
type HighlightChanged struct {
	ID             string         `json:"id"`
	NodeIDs        []ElementID    `json:"nodeIds"`
	HighlightStyle HighlightStyle `json:"highlightStyle"`
}

// Name implements Event.
func (e HighlightChanged) Name() EventName { return EventHighlightChanged }

// EventID implements Event.
func (e HighlightChanged) EventID() string { return e.ID }

// FocusRequested asks graph-like views to centre on the given nodes.
type FocusRequested struct {
	ID      string      `json:"id"`
	NodeIDs []ElementID `json:"nodeIds"`
	Animate bool        `json:"animate"`
}

// Name implements Event.
func (e FocusRequested) Name() EventName { return EventFocusRequested }

// EventID implements Event.
func (e FocusRequested) EventID() string { return e.ID }

// LayoutChanged carries the layout after a transition.
type LayoutChanged struct {
	ID              string     `json:"id"`
	Reason          string     `json:"reason"`
	DividerPosition float64    `json:"dividerPosition"`
	PaneStates      PaneStates `json:"paneStates"`
}

// Name implements Event.
func (e LayoutChanged) Name() EventName { return EventLayoutChanged }

// EventID implements Event.
func (e LayoutChanged) EventID() string { return e.ID }
