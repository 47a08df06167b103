package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaharia-lab/fanout/internal/config"
	"github.com/shaharia-lab/fanout/internal/logger"
)

// NewPublishCmd returns the "publish" subcommand that sends one message.
func NewPublishCmd(cfg *config.AppConfig) *cobra.Command {
	var category, content string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a message to the subscribers of a category",
		Long: `Publish a message and deliver it to every user subscribed to its
category over each of the user's channels.

Examples:
  fanout publish --category SPORTS --content "Match starts at 8pm"
  fanout publish -c finance -m "Rates unchanged"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cfg, logger.NewConsoleLogger(os.Stderr, cfg.SlogLevel()), nil)
			if err != nil {
				return err
			}
			defer a.Close()

			msg, err := a.messages.CreateMessage(cmd.Context(), category, content)
			if err != nil {
				return err
			}
			sent, err := a.messages.CountSent(cmd.Context(), msg.ID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "message #%d (%s) delivered %d notification(s)\n", msg.ID, msg.Category, sent)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Message category (SPORTS, FINANCE, MOVIES)")
	cmd.Flags().StringVarP(&content, "content", "m", "", "Message content")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}
