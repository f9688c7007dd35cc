// Package cli provides the viewsync command line interface.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/viewsync/internal/core/ports/driving"
	"github.com/custodia-labs/viewsync/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services wired in by SetServices or the bootstrap.
var (
	engine          driving.SyncEngine
	graphService    driving.GraphService
	commandService  driving.CommandService
	settingsService driving.SettingsService
	closeServices   func() error
)

// Services bundles the core services the commands drive.
type Services struct {
	Engine   driving.SyncEngine
	Graph    driving.GraphService
	Command  driving.CommandService
	Settings driving.SettingsService

	// Close flushes pending writes and releases storage. Optional.
	Close func() error
}

// Options are the global flags handed to the bootstrap.
type Options struct {
	ConfigDir string
	Verbose   bool
}

// BootstrapFunc builds the services once flags are parsed.
type BootstrapFunc func(ctx context.Context, opts Options) (*Services, error)

var bootstrap BootstrapFunc

var rootCmd = &cobra.Command{
	Use:   "viewsync",
	Short: "Cross-view selection and layout sync",
	Long: `viewsync keeps a 3D model view, a graph view and a command panel in
agreement about which building elements are selected, highlighted and
hovered, and how the two-pane layout is split.

The layout survives restarts. Views attach through the terminal UI, the
web server or the MCP server.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("config-dir", "", "configuration directory (default ~/.viewsync)")
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// SetBootstrap registers the function that builds services before any
// command runs.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// SetServices injects services directly, bypassing the bootstrap.
func SetServices(s *Services) {
	if s == nil {
		engine, graphService, commandService, settingsService, closeServices = nil, nil, nil, nil, nil
		return
	}
	engine = s.Engine
	graphService = s.Graph
	commandService = s.Command
	settingsService = s.Settings
	closeServices = s.Close
}

func initServices(cmd *cobra.Command, _ []string) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("getting verbose flag: %w", err)
	}
	logger.SetVerbose(verbose)

	if engine != nil || bootstrap == nil {
		return nil
	}

	configDir, err := cmd.Flags().GetString("config-dir")
	if err != nil {
		return fmt.Errorf("getting config-dir flag: %w", err)
	}

	svcs, err := bootstrap(cmd.Context(), Options{ConfigDir: configDir, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("starting viewsync: %w", err)
	}
	SetServices(svcs)
	return nil
}

// Execute runs the root command and closes the services afterwards.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if closeServices != nil {
		if cerr := closeServices(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing services: %w", cerr))
		}
	}
	return err
}

func requireEngine() error {
	if engine == nil {
		return errors.New("sync engine not configured")
	}
	return nil
}
