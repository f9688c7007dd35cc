package driving

import "github.com/custodia-labs/viewsync/internal/core/domain"

// EventHandler receives a bus event. It runs synchronously in the goroutine
// that performed the mutation.
type EventHandler func(domain.Event)

// SelectionService mutates the shared selection/highlight model.
// None of these operations fail: element ids are opaque and unknown ids are
// accepted.
type SelectionService interface {
	// SelectElement adds id to the selection and announces it.
	SelectElement(id domain.ElementID, source domain.Source)

	// DeselectElement removes id from the selection and announces it.
	DeselectElement(id domain.ElementID, source domain.Source)

	// HighlightElements sets style on every id, replacing previous styles.
	HighlightElements(ids []domain.ElementID, style domain.HighlightStyle)

	// SetHoveredElement replaces the hovered element. Empty clears it.
	// Hover is not broadcast.
	SetHoveredElement(id domain.ElementID)

	// ClearHighlights empties selection, highlights and hover in one step.
	ClearHighlights()
}

// LayoutService drives the two-pane layout state machine.
// Requests that would break a layout invariant are refused silently and
// reported on the diagnostic log.
type LayoutService interface {
	// SetDividerPosition clamps and stores x and returns both panes to normal.
	SetDividerPosition(x float64)

	// MaximizePane maximizes p and minimizes the other pane.
	MaximizePane(p domain.PaneID)

	// MinimizePane minimizes p unless the other pane is already minimized.
	MinimizePane(p domain.PaneID)

	// RestorePane returns both panes to normal and restores the divider.
	RestorePane(p domain.PaneID)

	// ResetLayout restores the default layout and clears selection state.
	ResetLayout()
}

// SyncEngine is the cross-view synchronization engine every view drives.
type SyncEngine interface {
	SelectionService
	LayoutService

	// Snapshot returns a read-only copy of the current state.
	Snapshot() domain.Snapshot

	// Subscribe registers handler for one event name.
	// The returned function unsubscribes; calling it twice is harmless.
	Subscribe(name domain.EventName, handler EventHandler) func()

	// SubscribeAll registers handler for every event.
	SubscribeAll(handler EventHandler) func()
}
