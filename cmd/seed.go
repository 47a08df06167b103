package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaharia-lab/fanout/internal/config"
	"github.com/shaharia-lab/fanout/internal/logger"
)

// NewSeedCmd returns the "seed" subcommand that imports users from a YAML file.
func NewSeedCmd(cfg *config.AppConfig) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import users from a YAML file",
		Long: `Import users, their category subscriptions and their channels from a
YAML file. Users whose email already exists are skipped.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				file = cfg.UsersFile
			}
			if file == "" {
				return errors.New("--file is required (or set FANOUT_USERS_FILE)")
			}

			a, err := newApp(cfg, logger.NewConsoleLogger(os.Stderr, cfg.SlogLevel()), nil)
			if err != nil {
				return err
			}
			defer a.Close()

			return importUsers(cmd.Context(), a, file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the YAML user file")
	return cmd
}

func importUsers(ctx context.Context, a *app, file string) error {
	fixtures, err := config.LoadUserFixtures(file)
	if err != nil {
		return err
	}
	imported, err := a.users.ImportUsers(ctx, fixtures)
	if err != nil {
		return fmt.Errorf("importing users from %s: %w", file, err)
	}
	a.logger.Info("users imported", "file", file, "imported", imported, "skipped", len(fixtures)-imported)
	return nil
}
