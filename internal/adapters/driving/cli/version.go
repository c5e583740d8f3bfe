package cli

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the talk2bim version",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("talk2bim %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
