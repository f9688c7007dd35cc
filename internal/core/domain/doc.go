// Package domain defines the core entities shared by every viewsync view.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ElementID: An opaque identifier shared by the model and graph views
//   - HighlightStyle: A visual annotation applied to an element
//   - PaneStates / LayoutBounds: The two-pane split the dashboard arbitrates
//   - LayoutPreferences: The persisted subset of layout state
//   - Snapshot: A read-only copy of the engine state
//   - Event: Payloads broadcast on the synchronization bus
//   - Graph: The node/edge data source views resolve elements against
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
