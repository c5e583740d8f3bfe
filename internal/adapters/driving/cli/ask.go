package cli

import (
	"github.com/spf13/cobra"
)

var askModel string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the loaded model",
	Long: `Answers a free-text question against the model index. Questions are
matched against a fixed pattern set; 'talk2bim ask hilfe' lists all
supported phrasings.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askModel, "model", "m", "", "model file (defaults to the last loaded model)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	session, err := ensureSession(cmd, askModel)
	if err != nil {
		return err
	}
	cmd.Println(queryService.Answer(args[0], session.Index))
	return nil
}
