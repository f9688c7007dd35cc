package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/viewsync/internal/adapters/driving/tui"
)

// ErrNotATerminal is returned when the TUI is started without a terminal.
var ErrNotATerminal = errors.New("the terminal UI needs an interactive terminal")

// isTerminal is replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal UI.

The left pane lists model elements, the right pane shows the graph
neighbourhood of the focused element, and the command panel accepts the
same commands as 'viewsync exec'.

Controls:
  ↑/k, ↓/j - Move (previews the element)
  Space    - Select / deselect
  Enter    - Centre the graph on the element
  Tab      - Switch pane
  /        - Filter the model pane
  :        - Command panel
  m, n, r  - Maximize, minimize, restore the focused pane
  <, >     - Move the divider
  0        - Reset the layout
  x        - Clear selection and highlights
  ?        - Toggle help
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if err := requireEngine(); err != nil {
		return err
	}
	if !isTerminal() {
		return ErrNotATerminal
	}

	app, err := tui.NewApp(tui.NewPorts(engine, graphService, commandService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	defer app.Close()

	app.WithContext(cmd.Context())
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
