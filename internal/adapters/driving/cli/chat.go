package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bauwerk-labs/talk2bim/internal/adapters/driving/tui"
	"github.com/bauwerk-labs/talk2bim/internal/logger"
)

var (
	chatModel string
	chatWatch bool
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the interactive chat",
	Long: `Opens a terminal chat against the loaded model. Questions are answered
the same way as with "ask". With --watch the model file is watched and
the index rebuilt whenever the file changes.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatModel, "model", "m", "", "model file (defaults to the last loaded model)")
	chatCmd.Flags().BoolVarP(&chatWatch, "watch", "w", false, "reload the model when the file changes")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if _, err := ensureSession(cmd, chatModel); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if chatWatch {
		go func() {
			if err := sessionService.Watch(ctx); err != nil && ctx.Err() == nil {
				logger.Warn("watch stopped: %v", err)
			}
		}()
	}

	app, err := tui.NewApp(&tui.Ports{
		Session: sessionService,
		Query:   queryService,
	})
	if err != nil {
		return fmt.Errorf("creating chat: %w", err)
	}

	app.WithContext(ctx)
	if err := app.Run(); err != nil {
		return fmt.Errorf("chat error: %w", err)
	}
	return nil
}
