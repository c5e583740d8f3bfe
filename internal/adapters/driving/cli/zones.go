package cli

import (
	"github.com/spf13/cobra"
)

var (
	zonesModel    string
	overviewModel string
)

var zonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "List the rooms of the loaded model",
	RunE:  runZones,
}

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Per-room category counts for the loaded model",
	RunE:  runOverview,
}

func init() {
	zonesCmd.Flags().StringVarP(&zonesModel, "model", "m", "", "model file (defaults to the last loaded model)")
	overviewCmd.Flags().StringVarP(&overviewModel, "model", "m", "", "model file (defaults to the last loaded model)")
	rootCmd.AddCommand(zonesCmd)
	rootCmd.AddCommand(overviewCmd)
}

func runZones(cmd *cobra.Command, _ []string) error {
	session, err := ensureSession(cmd, zonesModel)
	if err != nil {
		return err
	}
	cmd.Println(queryService.Answer("liste räume", session.Index))
	return nil
}

func runOverview(cmd *cobra.Command, _ []string) error {
	session, err := ensureSession(cmd, overviewModel)
	if err != nil {
		return err
	}
	cmd.Println(queryService.Answer("übersicht", session.Index))
	return nil
}
