package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/viewsync/internal/core/domain"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Inspect and change the two-pane layout",
	Long: `Inspect and change the persisted two-pane layout.

Panes are named primary (also model or 3d) and secondary (also graph).`,
	RunE: runLayoutShow,
}

var layoutShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current layout",
	RunE:  runLayoutShow,
}

var layoutResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default layout",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := requireEngine(); err != nil {
			return err
		}
		engine.ResetLayout()
		return runLayoutShow(cmd, nil)
	},
}

var layoutDividerCmd = &cobra.Command{
	Use:   "set-divider <position>",
	Short: "Move the divider",
	Long: `Move the divider to a fraction of the width, such as 0.3 or 30%.
Positions outside the configured bounds are clamped.`,
	Args: cobra.ExactArgs(1),
	RunE: runLayoutDivider,
}

var layoutMaximizeCmd = &cobra.Command{
	Use:   "maximize <pane>",
	Short: "Maximize a pane",
	Args:  cobra.ExactArgs(1),
	RunE:  paneCommand(domain.OpMaximize),
}

var layoutMinimizeCmd = &cobra.Command{
	Use:   "minimize <pane>",
	Short: "Minimize a pane",
	Args:  cobra.ExactArgs(1),
	RunE:  paneCommand(domain.OpMinimize),
}

var layoutRestoreCmd = &cobra.Command{
	Use:   "restore <pane>",
	Short: "Return both panes to normal",
	Args:  cobra.ExactArgs(1),
	RunE:  paneCommand(domain.OpRestore),
}

func init() {
	layoutCmd.AddCommand(layoutShowCmd)
	layoutCmd.AddCommand(layoutResetCmd)
	layoutCmd.AddCommand(layoutDividerCmd)
	layoutCmd.AddCommand(layoutMaximizeCmd)
	layoutCmd.AddCommand(layoutMinimizeCmd)
	layoutCmd.AddCommand(layoutRestoreCmd)
	rootCmd.AddCommand(layoutCmd)
}

func runLayoutShow(cmd *cobra.Command, _ []string) error {
	if err := requireEngine(); err != nil {
		return err
	}

	l := engine.Snapshot().Layout
	cmd.Printf("Divider:   %.2f\n", l.DividerPosition)
	cmd.Printf("Primary:   %s\n", l.PaneStates.Primary)
	cmd.Printf("Secondary: %s\n", l.PaneStates.Secondary)
	if l.PaneStates != domain.DefaultPaneStates() {
		cmd.Printf("Restores:  %.2f\n", l.PreviousDividerPosition)
	}
	return nil
}

func runLayoutDivider(cmd *cobra.Command, args []string) error {
	if err := requireEngine(); err != nil {
		return err
	}

	x, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	engine.SetDividerPosition(x)
	return runLayoutShow(cmd, nil)
}

func paneCommand(op domain.CommandOp) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := requireEngine(); err != nil {
			return err
		}

		pane, ok := domain.ParsePaneID(strings.ToLower(args[0]))
		if !ok {
			return fmt.Errorf("%w: unknown pane %q (want primary or secondary)", domain.ErrInvalidInput, args[0])
		}

		before := engine.Snapshot().Layout.PaneStates
		switch op {
		case domain.OpMaximize:
			engine.MaximizePane(pane)
		case domain.OpMinimize:
			engine.MinimizePane(pane)
		default:
			engine.RestorePane(pane)
		}

		after := engine.Snapshot().Layout.PaneStates
		if op == domain.OpMinimize && after == before && after.Get(pane) != domain.PaneMinimized {
			cmd.Printf("Cannot minimize %s: the other pane is minimized.\n", pane)
		}
		return runLayoutShow(cmd, nil)
	}
}

// parsePosition accepts a fraction ("0.3") or a percentage ("30%").
func parsePosition(s string) (float64, error) {
	s = strings.TrimSpace(s)
	scale := 1.0
	if strings.HasSuffix(s, "%") {
		s = strings.TrimSuffix(s, "%")
		scale = 100
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: divider position %q", domain.ErrInvalidInput, s)
	}
	return x / scale, nil
}
