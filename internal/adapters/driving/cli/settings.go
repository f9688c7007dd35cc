package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/viewsync/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure storage, layout bounds, the graph file and the web
server address.

Changes take effect the next time viewsync starts.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a single setting",
	Long: `Set a single setting by key.

Keys:
  storage.backend        memory, file or sqlite
  storage.dir            data directory
  storage.save_delay_ms  debounce for layout writes
  layout.min_ratio       lower divider bound
  layout.max_ratio       upper divider bound
  graph.path             YAML or JSON graph file
  graph.watch            reload the graph when the file changes
  web.addr               web server listen address
  log.verbose            debug logging`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsStorageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Choose the storage backend",
	Long:  `Pick where layout preferences are persisted.`,
	RunE:  runSettingsStorage,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsStorageCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend.Description())
	cmd.Printf("  Dir: %s\n", orDefault(settings.Storage.Dir, "~/.viewsync/data"))
	cmd.Printf("  Save delay: %dms\n", settings.Storage.SaveDelayMS)
	cmd.Println()

	cmd.Println("[Layout]")
	b := settings.Layout.Bounds()
	cmd.Printf("  Divider bounds: %.2f - %.2f\n", b.Min, b.Max)
	cmd.Println()

	cmd.Println("[Graph]")
	cmd.Printf("  Path: %s\n", orDefault(settings.Graph.Path, "(not set)"))
	cmd.Printf("  Watch: %s\n", yesNo(settings.Graph.Watch))
	cmd.Println()

	cmd.Println("[Web]")
	cmd.Printf("  Address: %s\n", settings.Web.Addr)
	cmd.Println()

	cmd.Println("[Log]")
	cmd.Printf("  Verbose: %s\n", yesNo(settings.Verbose))

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			cmd.Printf("Known keys: %s\n", strings.Join(settingsService.Keys(), ", "))
		}
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("%s set to %s\n", key, value)
	return nil
}

func runSettingsStorage(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Select Storage Backend")
	cmd.Println("----------------------")
	backends := domain.AllStorageBackends()
	current := 1
	for i, b := range backends {
		if b == settings.Storage.Backend {
			current = i + 1
		}
		cmd.Printf("  %d. %s\n", i+1, b.Description())
	}
	cmd.Printf("\nEnter choice [%d]: ", current)
	idx := parseChoice(readLine(reader), len(backends), current)
	selected := backends[idx-1]

	if err := settingsService.Set("storage.backend", selected.String()); err != nil {
		return fmt.Errorf("failed to set storage backend: %w", err)
	}
	cmd.Printf("Storage backend set to: %s\n", selected.Description())

	if selected == domain.StorageMemory {
		cmd.Println("\nNote: layout preferences will not survive a restart.")
	}
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
