package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaharia-lab/fanout/internal/config"
)

// NewRootCmd returns the fanout root command with every subcommand attached.
func NewRootCmd(cfg *config.AppConfig) *cobra.Command {
	root := &cobra.Command{
		Use:           "fanout",
		Short:         "Category subscription notification dispatcher",
		Long:          "Fanout publishes category messages and delivers them to subscribed users over email, SMS and push.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(NewWebCmd(cfg))
	root.AddCommand(NewPublishCmd(cfg))
	root.AddCommand(NewSeedCmd(cfg))
	root.AddCommand(NewStatsCmd(cfg))
	root.AddCommand(NewVersionCmd())
	return root
}

// Execute loads the configuration and runs the root command.
func Execute() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := NewRootCmd(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
