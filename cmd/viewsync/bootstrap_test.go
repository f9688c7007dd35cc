package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/viewsync/internal/adapters/driving/cli"
	"github.com/custodia-labs/viewsync/internal/core/domain"
)

func TestBootstrap_Defaults(t *testing.T) {
	dir := t.TempDir()

	svcs, err := bootstrap(context.Background(), cli.Options{ConfigDir: dir})
	require.NoError(t, err)
	defer svcs.Close()

	assert.Equal(t, domain.DefaultDividerPosition, svcs.Engine.Snapshot().Layout.DividerPosition)
	assert.Empty(t, svcs.Graph.Graph().Nodes)
	assert.NotNil(t, svcs.Command)
}

func TestBootstrap_LayoutSurvivesRestart(t *testing.T) {
	for _, backend := range []string{"file", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			dir := t.TempDir()
			svcs, err := bootstrap(context.Background(), cli.Options{ConfigDir: dir})
			require.NoError(t, err)
			require.NoError(t, svcs.Settings.Set("storage.backend", backend))
			require.NoError(t, svcs.Close())

			svcs, err = bootstrap(context.Background(), cli.Options{ConfigDir: dir})
			require.NoError(t, err)
			svcs.Engine.SetDividerPosition(0.35)
			require.NoError(t, svcs.Close())

			svcs, err = bootstrap(context.Background(), cli.Options{ConfigDir: dir})
			require.NoError(t, err)
			defer svcs.Close()
			assert.InDelta(t, 0.35, svcs.Engine.Snapshot().Layout.DividerPosition, 1e-9)
		})
	}
}

func TestBootstrap_MemoryBackendForgets(t *testing.T) {
	dir := t.TempDir()
	svcs, err := bootstrap(context.Background(), cli.Options{ConfigDir: dir})
	require.NoError(t, err)
	require.NoError(t, svcs.Settings.Set("storage.backend", "memory"))
	require.NoError(t, svcs.Close())

	svcs, err = bootstrap(context.Background(), cli.Options{ConfigDir: dir})
	require.NoError(t, err)
	svcs.Engine.SetDividerPosition(0.35)
	require.NoError(t, svcs.Close())

	svcs, err = bootstrap(context.Background(), cli.Options{ConfigDir: dir})
	require.NoError(t, err)
	defer svcs.Close()
	assert.Equal(t, domain.DefaultDividerPosition, svcs.Engine.Snapshot().Layout.DividerPosition)
}

func TestBootstrap_LoadsGraph(t *testing.T) {
	dir := t.TempDir()
	graphPath := filepath.Join(dir, "building.yaml")
	require.NoError(t, os.WriteFile(graphPath, []byte("nodes:\n  - id: wall-42\n    type: wall\n"), 0o600))

	svcs, err := bootstrap(context.Background(), cli.Options{ConfigDir: dir})
	require.NoError(t, err)
	require.NoError(t, svcs.Settings.Set("graph.path", graphPath))
	require.NoError(t, svcs.Close())

	svcs, err = bootstrap(context.Background(), cli.Options{ConfigDir: dir})
	require.NoError(t, err)
	defer svcs.Close()

	_, err = svcs.Graph.Resolve("wall-42")
	assert.NoError(t, err)
}

func TestBootstrap_MissingGraphIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	svcs, err := bootstrap(context.Background(), cli.Options{ConfigDir: dir})
	require.NoError(t, err)
	require.NoError(t, svcs.Settings.Set("graph.path", filepath.Join(dir, "missing.yaml")))
	require.NoError(t, svcs.Close())

	svcs, err = bootstrap(context.Background(), cli.Options{ConfigDir: dir})
	require.NoError(t, err)
	defer svcs.Close()
	assert.Empty(t, svcs.Graph.Graph().Nodes)
}

func TestOpenPreferenceStore(t *testing.T) {
	for _, backend := range domain.AllStorageBackends() {
		t.Run(backend.String(), func(t *testing.T) {
			store, closeStore, err := openPreferenceStore(backend, t.TempDir())
			require.NoError(t, err)
			defer closeStore()

			require.NoError(t, store.Put("k", []byte("v")))
			got, err := store.Get("k")
			require.NoError(t, err)
			assert.Equal(t, []byte("v"), got)
		})
	}
}
