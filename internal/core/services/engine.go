package services

import (
	"sync"
	"time"

	"github.com/custodia-labs/viewsync/internal/core/domain"
	"github.com/custodia-labs/viewsync/internal/core/ports/driven"
	"github.com/custodia-labs/viewsync/internal/core/ports/driving"
	"github.com/custodia-labs/viewsync/internal/logger"
)

// Verify interface compliance.
var _ driving.SyncEngine = (*Engine)(nil)

// Layout change reasons carried on layout-changed events.
const (
	ReasonDivider  = "divider"
	ReasonMaximize = "maximize"
	ReasonMinimize = "minimize"
	ReasonRestore  = "restore"
	ReasonReset    = "reset"
)

// EngineOption configures an Engine.
type EngineOption func(*engineConfig)

type engineConfig struct {
	bounds    domain.LayoutBounds
	saveDelay time.Duration
	now       func() time.Time
	bus       *Bus
}

// WithLayoutBounds sets the divider bounds. Invalid bounds are ignored.
func WithLayoutBounds(b domain.LayoutBounds) EngineOption {
	return func(c *engineConfig) {
		if b.IsValid() {
			c.bounds = b
		}
	}
}

// WithPersistDelay debounces preference writes by d.
func WithPersistDelay(d time.Duration) EngineOption {
	return func(c *engineConfig) { c.saveDelay = d }
}

// WithClock overrides the clock used for event and record timestamps.
func WithClock(now func() time.Time) EngineOption {
	return func(c *engineConfig) {
		if now != nil {
			c.now = now
		}
	}
}

// WithBus shares an existing bus instead of creating one.
func WithBus(b *Bus) EngineOption {
	return func(c *engineConfig) {
		if b != nil {
			c.bus = b
		}
	}
}

// Engine synchronizes selection, highlight, hover and pane layout across
// views.
//
// Every public operation runs under one mutex and queues its events in
// mutation order. The queue is drained outside the mutex by one goroutine at
// a time, so handlers may read Snapshot or call back into the engine and
// every subscriber sees events in the order the state changed. A re-entrant
// call's events are delivered after the event being handled, before the
// outermost call returns. When operations race, the goroutine already
// draining delivers the others' events.
type Engine struct {
	mu        sync.Mutex
	selection *SelectionModel
	layout    *LayoutMachine
	prefs     *PreferenceService
	bus       *Bus
	now       func() time.Time
	revision  uint64

	// pending is guarded by mu; dispatch is held while draining it.
	pending  []domain.Event
	dispatch sync.Mutex
}

// NewEngine creates an engine persisting its layout to store and hydrates
// the layout from it. A nil store keeps preferences in the process only.
func NewEngine(store driven.PreferenceStore, opts ...EngineOption) *Engine {
	cfg := engineConfig{
		bounds: domain.DefaultLayoutBounds(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.bus == nil {
		cfg.bus = NewBus()
	}

	e := &Engine{
		selection: NewSelectionModel(),
		layout:    NewLayoutMachine(cfg.bounds),
		bus:       cfg.bus,
		now:       cfg.now,
		prefs: NewPreferenceService(store, cfg.bounds,
			WithSaveDelay(cfg.saveDelay),
			WithPreferenceClock(cfg.now)),
	}

	if !e.layout.Hydrate(e.prefs.Load()) {
		logger.Warn("persisted layout breaks pane invariants, using defaults")
	}
	return e
}

// Preferences returns the preference service backing the engine.
func (e *Engine) Preferences() *PreferenceService {
	return e.prefs
}

// Bus returns the engine's event bus.
func (e *Engine) Bus() *Bus {
	return e.bus
}

// Subscribe registers handler for events named name.
func (e *Engine) Subscribe(name domain.EventName, handler driving.EventHandler) func() {
	return e.bus.Subscribe(name, handler)
}

// SubscribeAll registers handler for every event.
func (e *Engine) SubscribeAll(handler driving.EventHandler) func() {
	return e.bus.SubscribeAll(handler)
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() domain.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() domain.Snapshot {
	return domain.Snapshot{
		Revision:   e.revision,
		Selection:  e.selection.Selection(),
		Highlights: e.selection.Highlights(),
		Hovered:    e.selection.Hovered(),
		Layout:     e.layout.State(),
	}
}

// Close writes any pending preferences.
func (e *Engine) Close() error {
	e.prefs.Flush()
	return nil
}

// apply runs fn under the lock, persists the layout and queues whatever
// events fn returned, then drains the queue once the lock is released.
func (e *Engine) apply(fn func() []domain.Event) {
	e.mu.Lock()
	events := fn()
	if len(events) > 0 {
		e.revision++
		e.pending = append(e.pending, events...)
	}
	e.prefs.Save(e.layout.State().Preferences(0))
	e.mu.Unlock()

	e.drain()
}

// drain publishes queued events in order. If another goroutine is already
// draining, or this one is inside a handler, it returns and leaves the
// events to the active drainer.
func (e *Engine) drain() {
	for {
		if !e.dispatch.TryLock() {
			return
		}
		for {
			e.mu.Lock()
			batch := e.pending
			e.pending = nil
			e.mu.Unlock()
			if len(batch) == 0 {
				break
			}
			e.bus.Publish(batch...)
		}
		e.dispatch.Unlock()

		// Events queued between the last empty check and the unlock would
		// otherwise wait for the next operation.
		e.mu.Lock()
		more := len(e.pending) > 0
		e.mu.Unlock()
		if !more {
			return
		}
	}
}

// SelectElement adds id to the selection. A repeat selection still
// announces itself so views can re-focus.
func (e *Engine) SelectElement(id domain.ElementID, source domain.Source) {
	e.apply(func() []domain.Event {
		e.selection.Select(id)
		return e.selectionEvents(domain.SelectionSelect, source, id)
	})
}

// DeselectElement removes id from the selection.
func (e *Engine) DeselectElement(id domain.ElementID, source domain.Source) {
	e.apply(func() []domain.Event {
		e.selection.Deselect(id)
		return []domain.Event{e.selectionChanged(domain.SelectionSelect, source)}
	})
}

// HighlightElements sets style on each id. A style with an unknown category
// or intensity is refused; an empty color is filled per category.
func (e *Engine) HighlightElements(ids []domain.ElementID, style domain.HighlightStyle) {
	if len(ids) == 0 {
		return
	}
	if !style.IsValid() {
		logger.WithFields(logger.Fields{
			"category":  style.Category,
			"intensity": style.Intensity,
		}).Warn("highlight refused: invalid style")
		return
	}
	style = style.WithDefaults()
	nodeIDs := append([]domain.ElementID(nil), ids...)

	e.apply(func() []domain.Event {
		e.selection.Highlight(nodeIDs, style)
		return []domain.Event{domain.HighlightChanged{
			ID:             newEventID(),
			NodeIDs:        nodeIDs,
			HighlightStyle: style,
		}}
	})
}

// SetHoveredElement replaces the hovered element. Nothing is published.
func (e *Engine) SetHoveredElement(id domain.ElementID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.selection.Hovered() == id {
		return
	}
	e.selection.SetHovered(id)
	e.revision++
}

// ClearHighlights empties selection, highlights and hover in one step.
func (e *Engine) ClearHighlights() {
	e.apply(func() []domain.Event {
		e.selection.Clear()
		return []domain.Event{e.selectionChanged(domain.SelectionClear, domain.SourceControl)}
	})
}

// SetDividerPosition clamps x and returns both panes to normal.
func (e *Engine) SetDividerPosition(x float64) {
	e.apply(func() []domain.Event {
		if !e.layout.SetDividerPosition(x) {
			return nil
		}
		return []domain.Event{e.layoutChanged(ReasonDivider)}
	})
}

// MaximizePane maximizes p and minimizes the other pane.
func (e *Engine) MaximizePane(p domain.PaneID) {
	e.layoutOp(ReasonMaximize, p, e.layout.MaximizePane)
}

// MinimizePane minimizes p unless the other pane is already minimized.
func (e *Engine) MinimizePane(p domain.PaneID) {
	e.layoutOp(ReasonMinimize, p, e.layout.MinimizePane)
}

// RestorePane returns both panes to normal and restores the divider.
func (e *Engine) RestorePane(p domain.PaneID) {
	e.layoutOp(ReasonRestore, p, e.layout.RestorePane)
}

func (e *Engine) layoutOp(reason string, p domain.PaneID, op func(domain.PaneID) (bool, error)) {
	e.apply(func() []domain.Event {
		changed, err := op(p)
		if err != nil {
			logger.WithFields(logger.Fields{
				"op":     reason,
				"pane":   p,
				"reason": err.Error(),
			}).Warn("layout transition refused")
			return nil
		}
		if !changed {
			return nil
		}
		return []domain.Event{e.layoutChanged(reason)}
	})
}

// ResetLayout restores the default layout and clears selection state.
func (e *Engine) ResetLayout() {
	e.apply(func() []domain.Event {
		e.selection.Clear()
		events := []domain.Event{e.selectionChanged(domain.SelectionClear, domain.SourceControl)}
		if e.layout.Reset() {
			events = append(events, e.layoutChanged(ReasonReset))
		}
		return events
	})
}

// selectionEvents builds the announcement of a selection write: always a
// selection-changed, plus a focus request when the model view originated it.
func (e *Engine) selectionEvents(t domain.SelectionChangeType, source domain.Source, id domain.ElementID) []domain.Event {
	events := []domain.Event{e.selectionChanged(t, source)}
	if source.RequestsFocus() {
		events = append(events, domain.FocusRequested{
			ID:      newEventID(),
			NodeIDs: []domain.ElementID{id},
			Animate: true,
		})
	}
	return events
}

func (e *Engine) selectionChanged(t domain.SelectionChangeType, source domain.Source) domain.SelectionChanged {
	return domain.SelectionChanged{
		ID:         newEventID(),
		Type:       t,
		Source:     source,
		ElementIDs: e.selection.Selection(),
		Timestamp:  e.now().UnixMilli(),
	}
}

func (e *Engine) layoutChanged(reason string) domain.LayoutChanged {
	s := e.layout.State()
	return domain.LayoutChanged{
		ID:              newEventID(),
		Reason:          reason,
		DividerPosition: s.DividerPosition,
		PaneStates:      s.PaneStates,
	}
}
