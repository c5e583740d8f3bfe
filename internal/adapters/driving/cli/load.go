package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load [file.ifc]",
	Short: "Load an IFC model and build its index",
	Long: `Parses the IFC file, builds the room/classification index and records
the load in the model catalog. Loading the same content twice reuses
the existing session.`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	session, err := sessionService.Load(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	rememberModel(args[0])

	stats := session.Index.Stats
	cmd.Printf("Loaded %s\n", session.Path)
	cmd.Printf("  Zones:   %d\n", stats.Zones)
	cmd.Printf("  Items:   %d\n", stats.Items)
	if stats.Skipped > 0 {
		cmd.Printf("  Skipped: %d malformed units\n", stats.Skipped)
	}
	return nil
}
