package services

import (
	"fmt"
	"strconv"

	"github.com/custodia-labs/viewsync/internal/core/domain"
	"github.com/custodia-labs/viewsync/internal/core/ports/driven"
	"github.com/custodia-labs/viewsync/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyStorageBackend   = "storage.backend"
	keyStorageDir       = "storage.dir"
	keyStorageSaveDelay = "storage.save_delay_ms"
	keyLayoutMinRatio   = "layout.min_ratio"
	keyLayoutMaxRatio   = "layout.max_ratio"
	keyGraphPath        = "graph.path"
	keyGraphWatch       = "graph.watch"
	keyWebAddr          = "web.addr"
	keyLogVerbose       = "log.verbose"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to the defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Storage: domain.StorageSettings{
			Backend:     s.getBackend(defaults.Storage.Backend),
			Dir:         s.configStore.GetString(keyStorageDir), // Empty means the default data dir
			SaveDelayMS: s.getNonNegativeInt(keyStorageSaveDelay, defaults.Storage.SaveDelayMS),
		},
		Layout: s.getLayout(defaults.Layout),
		Graph: domain.GraphSettings{
			Path:  s.configStore.GetString(keyGraphPath),
			Watch: s.getBool(keyGraphWatch, defaults.Graph.Watch),
		},
		Web: domain.WebSettings{
			Addr: s.getString(keyWebAddr, defaults.Web.Addr),
		},
		Verbose: s.getBool(keyLogVerbose, defaults.Verbose),
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if !settings.Storage.Backend.IsValid() {
		return fmt.Errorf("%w: storage backend %q", domain.ErrInvalidInput, settings.Storage.Backend)
	}
	if !settings.Layout.Bounds().IsValid() {
		return fmt.Errorf("%w: layout bounds", domain.ErrInvalidInput)
	}

	values := []struct {
		key   string
		value any
	}{
		{keyStorageBackend, settings.Storage.Backend.String()},
		{keyStorageDir, settings.Storage.Dir},
		{keyStorageSaveDelay, settings.Storage.SaveDelayMS},
		{keyLayoutMinRatio, settings.Layout.MinRatio},
		{keyLayoutMaxRatio, settings.Layout.MaxRatio},
		{keyGraphPath, settings.Graph.Path},
		{keyGraphWatch, settings.Graph.Watch},
		{keyWebAddr, settings.Web.Addr},
		{keyLogVerbose, settings.Verbose},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set updates a single setting from its string form.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case keyStorageBackend:
		backend := domain.StorageBackend(value)
		if !backend.IsValid() {
			return fmt.Errorf("%w: storage backend %q (want memory, file or sqlite)", domain.ErrInvalidInput, value)
		}
		settings.Storage.Backend = backend
	case keyStorageDir:
		settings.Storage.Dir = value
	case keyStorageSaveDelay:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		settings.Storage.SaveDelayMS = n
	case keyLayoutMinRatio, keyLayoutMaxRatio:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		next := settings.Layout
		if key == keyLayoutMinRatio {
			next.MinRatio = f
		} else {
			next.MaxRatio = f
		}
		b := domain.LayoutBounds{Min: next.MinRatio, Max: next.MaxRatio}
		if !b.IsValid() {
			return fmt.Errorf("%w: layout bounds must satisfy 0 < min < max < 1", domain.ErrInvalidInput)
		}
		settings.Layout = next
	case keyGraphPath:
		settings.Graph.Path = value
	case keyGraphWatch, keyLogVerbose:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		if key == keyGraphWatch {
			settings.Graph.Watch = b
		} else {
			settings.Verbose = b
		}
	case keyWebAddr:
		if value == "" {
			return fmt.Errorf("%w: %s must not be empty", domain.ErrInvalidInput, key)
		}
		settings.Web.Addr = value
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys returns the recognised setting keys in display order.
func (s *SettingsService) Keys() []string {
	return []string{
		keyStorageBackend,
		keyStorageDir,
		keyStorageSaveDelay,
		keyLayoutMinRatio,
		keyLayoutMaxRatio,
		keyGraphPath,
		keyGraphWatch,
		keyWebAddr,
		keyLogVerbose,
	}
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getNonNegativeInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	val := s.configStore.GetInt(key)
	if val < 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	val := s.configStore.GetString(keyStorageBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.StorageBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

// getLayout reads both ratios; a pair that does not form valid bounds is
// replaced as a whole.
func (s *SettingsService) getLayout(defaultVal domain.LayoutSettings) domain.LayoutSettings {
	l := domain.LayoutSettings{
		MinRatio: defaultVal.MinRatio,
		MaxRatio: defaultVal.MaxRatio,
	}
	if _, ok := s.configStore.Get(keyLayoutMinRatio); ok {
		l.MinRatio = s.configStore.GetFloat(keyLayoutMinRatio)
	}
	if _, ok := s.configStore.Get(keyLayoutMaxRatio); ok {
		l.MaxRatio = s.configStore.GetFloat(keyLayoutMaxRatio)
	}
	if !(domain.LayoutBounds{Min: l.MinRatio, Max: l.MaxRatio}).IsValid() {
		return defaultVal
	}
	return l
}
