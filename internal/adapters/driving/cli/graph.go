package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	graphfile "github.com/custodia-labs/viewsync/internal/adapters/driven/graph/file"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Inspect the element graph",
	RunE:  runGraphShow,
}

var graphShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Summarise the loaded graph",
	RunE:  runGraphShow,
}

var graphValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check a graph file for errors",
	Long: `Parse a YAML or JSON graph file and report every problem found: missing
or duplicate node ids, and edges pointing at unknown nodes.

Without a path, the configured graph.path is checked.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGraphValidate,
}

func init() {
	graphCmd.AddCommand(graphShowCmd)
	graphCmd.AddCommand(graphValidateCmd)
	rootCmd.AddCommand(graphCmd)
}

func runGraphShow(cmd *cobra.Command, _ []string) error {
	if graphService == nil {
		return errors.New("graph service not configured")
	}

	g := graphService.Graph()
	if len(g.Nodes) == 0 {
		cmd.Println("No graph loaded. Set one with 'viewsync settings set graph.path <file>'.")
		return nil
	}

	cmd.Printf("%d nodes, %d edges\n", len(g.Nodes), len(g.Edges))
	for _, t := range g.Types() {
		cmd.Printf("  %-20s %d\n", t, len(g.NodesByType(t)))
	}
	return nil
}

func runGraphValidate(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else if settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		path = settings.Graph.Path
	}
	if path == "" {
		return errors.New("no graph file given and graph.path is not set")
	}

	g, err := graphfile.NewSource(path).Load(cmd.Context())
	if err != nil {
		var verr *graphfile.ValidationError
		if errors.As(err, &verr) {
			cmd.Printf("%s: %d issue(s)\n", path, len(verr.Issues))
			for _, issue := range verr.Issues {
				cmd.Printf("  - %s\n", issue)
			}
			return errors.New("graph is invalid")
		}
		return fmt.Errorf("failed to load graph: %w", err)
	}

	cmd.Printf("%s: ok (%d nodes, %d edges)\n", path, len(g.Nodes), len(g.Edges))
	return nil
}
