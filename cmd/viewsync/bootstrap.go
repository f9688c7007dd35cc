package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	configfile "github.com/custodia-labs/viewsync/internal/adapters/driven/config/file"
	"github.com/custodia-labs/viewsync/internal/adapters/driven/command/grammar"
	graphfile "github.com/custodia-labs/viewsync/internal/adapters/driven/graph/file"
	"github.com/custodia-labs/viewsync/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/viewsync/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/viewsync/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/viewsync/internal/adapters/driving/cli"
	"github.com/custodia-labs/viewsync/internal/core/domain"
	"github.com/custodia-labs/viewsync/internal/core/ports/driven"
	"github.com/custodia-labs/viewsync/internal/core/services"
	"github.com/custodia-labs/viewsync/internal/logger"
)

// bootstrap wires the adapters and services named by the settings file.
func bootstrap(ctx context.Context, opts cli.Options) (*cli.Services, error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		dir, err := configfile.DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	configStore, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	if settings.Verbose && !opts.Verbose {
		logger.SetVerbose(true)
	}

	dataDir := settings.Storage.Dir
	if dataDir == "" {
		dataDir = filepath.Join(configDir, "data")
	}
	store, closeStore, err := openPreferenceStore(settings.Storage.Backend, dataDir)
	if err != nil {
		return nil, err
	}

	engine := services.NewEngine(store,
		services.WithLayoutBounds(settings.Layout.Bounds()),
		services.WithPersistDelay(time.Duration(settings.Storage.SaveDelayMS)*time.Millisecond),
	)

	var source driven.GraphSource
	if settings.Graph.Path != "" {
		source = graphfile.NewSource(settings.Graph.Path)
	}
	graphService := services.NewGraphService(source)
	if err := graphService.Reload(ctx); err != nil {
		logger.WithFields(logger.Fields{"path": settings.Graph.Path, "error": err}).
			Warn("graph not loaded, views start empty")
	}

	logger.WithFields(logger.Fields{
		"backend": settings.Storage.Backend,
		"data":    dataDir,
		"nodes":   len(graphService.Graph().Nodes),
	}).Debug("viewsync ready")

	return &cli.Services{
		Engine:   engine,
		Graph:    graphService,
		Command:  services.NewCommandService(engine, graphService, grammar.New()),
		Settings: settingsService,
		Close: func() error {
			return errors.Join(engine.Close(), closeStore())
		},
	}, nil
}

// openPreferenceStore returns the store for backend and its closer.
func openPreferenceStore(backend domain.StorageBackend, dataDir string) (driven.PreferenceStore, func() error, error) {
	noop := func() error { return nil }

	switch backend {
	case domain.StorageMemory:
		return memory.NewPreferenceStore(), noop, nil
	case domain.StorageSQLite:
		db, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return db.PreferenceStore(), db.Close, nil
	default:
		store, err := file.NewPreferenceStore(dataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening file store: %w", err)
		}
		return store, noop, nil
	}
}
