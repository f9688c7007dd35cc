package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var execCmd = &cobra.Command{
	Use:   "exec <command...>",
	Short: "Run a command panel command",
	Long: `Run one command panel command against the shared state, as the control
view would.

Examples:
  viewsync exec select wall-42
  viewsync exec highlight wall-42,wall-43 as pipe/result
  viewsync exec find type=Wall
  viewsync exec maximize graph`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func init() {
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	if commandService == nil {
		return errors.New("command service not configured")
	}

	summary, err := commandService.Execute(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("command failed: %w", err)
	}
	cmd.Println(summary)
	return nil
}
