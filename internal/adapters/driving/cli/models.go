package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List previously loaded models",
	Long:  `Shows the load catalog: every model file loaded so far with its zone and item counts.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		records, err := catalogStore.ListLoads(cmd.Context())
		if err != nil {
			return fmt.Errorf("reading catalog: %w", err)
		}
		if len(records) == 0 {
			cmd.Println("No models loaded yet.")
			return nil
		}
		for _, rec := range records {
			cmd.Printf("%s  zones=%d items=%d  %s\n",
				rec.LoadedAt.Format("2006-01-02 15:04"), rec.Zones, rec.Items, rec.Path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
