package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/shaharia-lab/fanout/internal/config"
	"github.com/shaharia-lab/fanout/internal/logger"
	"github.com/shaharia-lab/fanout/internal/storage"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	totalStyle  = cellStyle.Bold(true)
)

// NewStatsCmd returns the "stats" subcommand that prints delivery outcomes.
func NewStatsCmd(cfg *config.AppConfig) *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show notification delivery stats per channel",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				lipgloss.SetColorProfile(termenv.Ascii)
			}

			a, err := newApp(cfg, logger.NewConsoleLogger(os.Stderr, cfg.SlogLevel()), nil)
			if err != nil {
				return err
			}
			defer a.Close()

			stats, err := a.notifications.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderStats(stats))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable ANSI styling")
	return cmd
}

// renderStats draws one row per channel plus a total row.
func renderStats(stats *storage.NotificationStats) string {
	rows := make([][]string, 0, len(storage.Channels())+1)
	for _, ch := range storage.Channels() {
		cs := stats.ByChannel[ch]
		rows = append(rows, []string{string(ch), itoa(cs.Total), itoa(cs.Sent), itoa(cs.Failed)})
	}
	rows = append(rows, []string{"TOTAL", itoa(stats.Total), itoa(stats.Sent), itoa(stats.Failed)})
	last := len(rows) - 1

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("CHANNEL", "TOTAL", "SENT", "FAILED").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch row {
			case table.HeaderRow:
				return headerStyle
			case last:
				return totalStyle
			default:
				return cellStyle
			}
		})
	return t.Render()
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
