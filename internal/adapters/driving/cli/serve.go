package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/viewsync/internal/adapters/driving/web"
	"github.com/custodia-labs/viewsync/internal/core/domain"
	"github.com/custodia-labs/viewsync/internal/core/services"
	"github.com/custodia-labs/viewsync/internal/logger"
)

// portProbeRange is how many ports above the configured one serve tries.
const portProbeRange = 100

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web view server",
	Long: `Start the HTTP server that hosts the browser dashboard and the JSON API.

The dashboard receives state over server-sent events. If the configured
port is taken, the next free port is used.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from web.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := requireEngine(); err != nil {
		return err
	}

	settings := domain.DefaultAppSettings()
	if settingsService != nil {
		s, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		settings = *s
	}

	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return fmt.Errorf("getting addr flag: %w", err)
	}
	if addr == "" {
		addr = settings.Web.Addr
	}
	addr, err = resolveAddr(addr)
	if err != nil {
		return err
	}

	server, err := web.NewServer(&web.Ports{
		Engine:  engine,
		Graph:   graphService,
		Command: commandService,
	})
	if err != nil {
		return err
	}
	defer server.Close()

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		return server.Run(ctx, addr)
	})
	if graphService != nil && settings.Graph.Watch {
		g.Go(func() error {
			return graphService.Watch(ctx, func(graph *domain.Graph) {
				logger.Info("graph reloaded: %d nodes", len(graph.Nodes))
				server.NotifyGraphChanged()
			})
		})
	}

	cmd.Printf("viewsync listening on http://%s\n", addr)
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}

// resolveAddr keeps addr when its port is free, otherwise moves to the next
// free port above it.
func resolveAddr(addr string) (string, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("invalid listen address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", fmt.Errorf("invalid port in %q: %w", addr, err)
	}
	if port == 0 {
		return addr, nil
	}
	free, err := services.FindAvailablePort(host, port, port+portProbeRange)
	if err != nil {
		return "", err
	}
	if free != port {
		logger.Warn("port %d in use, using %d", port, free)
	}
	return net.JoinHostPort(host, strconv.Itoa(free)), nil
}
