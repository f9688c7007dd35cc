package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/custodia-labs/viewsync/internal/core/domain"
	"github.com/custodia-labs/viewsync/internal/core/ports/driven"
	"github.com/custodia-labs/viewsync/internal/core/services/schemas"
	"github.com/custodia-labs/viewsync/internal/debounce"
	"github.com/custodia-labs/viewsync/internal/logger"
)

// LayoutKey is the storage key of the persisted layout record.
const LayoutKey = "viewsync.layout"

const layoutSchemaURL = "layout.schema.json"

// maxTimestampMillis is the largest representable date, 100 million days
// after the epoch.
const maxTimestampMillis = 8.64e15

// layoutSchema is compiled once; the embedded schema is fixed at build time.
var (
	layoutSchemaOnce sync.Once
	layoutSchema     *jsonschema.Schema
	layoutSchemaErr  error
)

func compiledLayoutSchema() (*jsonschema.Schema, error) {
	layoutSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(layoutSchemaURL, bytes.NewReader(schemas.Layout)); err != nil {
			layoutSchemaErr = fmt.Errorf("failed to add layout schema resource: %w", err)
			return
		}
		layoutSchema, layoutSchemaErr = compiler.Compile(layoutSchemaURL)
		if layoutSchemaErr != nil {
			layoutSchemaErr = fmt.Errorf("failed to compile layout schema: %w", layoutSchemaErr)
		}
	})
	return layoutSchema, layoutSchemaErr
}

// layoutRecord is the wire form. Timestamp is decoded as a JSON number so
// records written by other clients with fractional milliseconds still load.
type layoutRecord struct {
	DividerPosition float64           `json:"dividerPosition"`
	PaneStates      domain.PaneStates `json:"paneStates"`
	Timestamp       float64           `json:"timestamp,omitempty"`
}

// PreferenceOption configures a PreferenceService.
type PreferenceOption func(*PreferenceService)

// WithSaveDelay debounces writes by d. Zero writes synchronously.
func WithSaveDelay(d time.Duration) PreferenceOption {
	return func(s *PreferenceService) {
		if d > 0 {
			s.debouncer = debounce.New(d)
		} else {
			s.debouncer = nil
		}
	}
}

// WithPreferenceClock overrides the clock used for record timestamps.
func WithPreferenceClock(now func() time.Time) PreferenceOption {
	return func(s *PreferenceService) {
		if now != nil {
			s.now = now
		}
	}
}

// PreferenceService loads and saves the layout record.
//
// Neither Load nor Save ever returns an error: storage failures degrade to
// the default layout and a warning on the diagnostic log.
type PreferenceService struct {
	store     driven.PreferenceStore
	bounds    domain.LayoutBounds
	now       func() time.Time
	debouncer *debounce.Debouncer

	mu        sync.Mutex
	pending   *domain.LayoutPreferences
	last      *domain.LayoutPreferences
	writes    int
	lastError error
}

// NewPreferenceService creates a service over store. The bounds decide which
// persisted dividers are accepted on Load.
func NewPreferenceService(store driven.PreferenceStore, bounds domain.LayoutBounds, opts ...PreferenceOption) *PreferenceService {
	if !bounds.IsValid() {
		bounds = domain.DefaultLayoutBounds()
	}
	s := &PreferenceService{
		store:  store,
		bounds: bounds,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the persisted preferences, or the defaults when the record is
// absent, unreadable, fails validation, or carries an out-of-bounds divider.
func (s *PreferenceService) Load() domain.LayoutPreferences {
	if s.store == nil {
		return domain.DefaultLayoutPreferences()
	}

	data, err := s.store.Get(LayoutKey)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.WithFields(logger.Fields{"key": LayoutKey, "error": err}).
				Warn("layout preferences unreadable, using defaults")
		} else {
			logger.Debug("no persisted layout under %s", LayoutKey)
		}
		return domain.DefaultLayoutPreferences()
	}

	prefs, err := s.decode(data)
	if err != nil {
		logger.WithFields(logger.Fields{"key": LayoutKey, "error": err}).
			Warn("layout preferences rejected, using defaults")
		return domain.DefaultLayoutPreferences()
	}

	s.mu.Lock()
	s.last = &prefs
	s.mu.Unlock()
	return prefs
}

// decode parses and validates a stored record.
func (s *PreferenceService) decode(data []byte) (domain.LayoutPreferences, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.LayoutPreferences{}, fmt.Errorf("%w: %v", domain.ErrCorruptRecord, err)
	}

	schema, err := compiledLayoutSchema()
	if err != nil {
		return domain.LayoutPreferences{}, err
	}
	if err := schema.Validate(doc); err != nil {
		return domain.LayoutPreferences{}, fmt.Errorf("%w: %v", domain.ErrCorruptRecord, err)
	}

	var rec layoutRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.LayoutPreferences{}, fmt.Errorf("%w: %v", domain.ErrCorruptRecord, err)
	}

	if rec.Timestamp < 0 || rec.Timestamp > maxTimestampMillis {
		return domain.LayoutPreferences{}, fmt.Errorf("%w: timestamp %v out of range", domain.ErrCorruptRecord, rec.Timestamp)
	}

	prefs := domain.LayoutPreferences{
		DividerPosition: rec.DividerPosition,
		PaneStates:      rec.PaneStates,
		Timestamp:       int64(rec.Timestamp),
	}
	if prefs.PaneStates.BothMinimized() {
		return domain.LayoutPreferences{}, fmt.Errorf("%w: both panes minimized", domain.ErrCorruptRecord)
	}
	if !s.bounds.Contains(prefs.DividerPosition) {
		return domain.LayoutPreferences{}, fmt.Errorf("%w: divider %v outside [%v, %v]",
			domain.ErrCorruptRecord, prefs.DividerPosition, s.bounds.Min, s.bounds.Max)
	}
	return prefs, nil
}

// Save records prefs. Identical records, ignoring the timestamp, are not
// rewritten. With a save delay the write happens later; the caller never
// waits for it.
func (s *PreferenceService) Save(prefs domain.LayoutPreferences) {
	if s.store == nil {
		return
	}

	s.mu.Lock()
	if s.pending == nil && s.last != nil && samePreferences(*s.last, prefs) {
		s.mu.Unlock()
		return
	}
	s.pending = &prefs
	s.mu.Unlock()

	if s.debouncer == nil {
		s.writePending()
		return
	}
	s.debouncer.Trigger(s.writePending)
}

// Flush writes any pending record immediately.
func (s *PreferenceService) Flush() {
	if s.debouncer != nil {
		s.debouncer.Cancel()
	}
	s.writePending()
}

// Pending reports whether a record is waiting to be written.
func (s *PreferenceService) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Writes returns the number of successful writes.
func (s *PreferenceService) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// LastError returns the most recent write failure, if any.
func (s *PreferenceService) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

func (s *PreferenceService) writePending() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return
	}
	prefs := *s.pending
	s.pending = nil

	if s.last != nil && samePreferences(*s.last, prefs) {
		return
	}

	prefs.Timestamp = s.now().UnixMilli()
	data, err := json.Marshal(layoutRecord{
		DividerPosition: prefs.DividerPosition,
		PaneStates:      prefs.PaneStates,
		Timestamp:       float64(prefs.Timestamp),
	})
	if err != nil {
		s.lastError = err
		logger.WithFields(logger.Fields{"key": LayoutKey, "error": err}).
			Warn("layout preferences not encoded")
		return
	}

	if err := s.store.Put(LayoutKey, data); err != nil {
		s.lastError = err
		logger.WithFields(logger.Fields{"key": LayoutKey, "error": err}).
			Warn("layout preferences not saved")
		return
	}

	s.last = &prefs
	s.writes++
	s.lastError = nil
	logger.Debug("saved layout divider=%.3f primary=%s secondary=%s",
		prefs.DividerPosition, prefs.PaneStates.Primary, prefs.PaneStates.Secondary)
}

func samePreferences(a, b domain.LayoutPreferences) bool {
	return a.DividerPosition == b.DividerPosition && a.PaneStates == b.PaneStates
}
