// Package services implements the driving port interfaces.
//
// The Engine is the synchronization core: it owns the selection model, the
// pane layout machine, the event bus and the preference service. The graph,
// command and settings services are consumers that views use alongside it.
//
// Services depend only on ports; adapters are injected by the caller.
package services
