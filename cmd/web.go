package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/shaharia-lab/fanout/internal/api"
	"github.com/shaharia-lab/fanout/internal/build"
	"github.com/shaharia-lab/fanout/internal/config"
	"github.com/shaharia-lab/fanout/internal/logger"
	"github.com/shaharia-lab/fanout/internal/scheduler"
	"github.com/shaharia-lab/fanout/internal/server"
	"github.com/shaharia-lab/fanout/internal/telemetry"
)

// NewWebCmd returns the "web" subcommand that starts the HTTP server.
func NewWebCmd(cfg *config.AppConfig) *cobra.Command {
	var port int
	var usersFile string

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Start the Fanout API server",
		Long: `Start the Fanout HTTP server. Messages posted to /api/messages are
delivered to every user subscribed to the message category.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// CLI flags override env config.
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("users-file") {
				cfg.UsersFile = usersFile
			}

			serverURL := fmt.Sprintf("http://localhost:%d", cfg.Port)
			logFile := filepath.Join(cfg.LogDir(), "system.log")
			printBanner(build.Version, serverURL, logFile)

			if err := runWeb(cfg); err != nil {
				fmt.Fprintf(os.Stderr, "An error occurred. Please check the logs at: %s\n", logFile)
				return err
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", cfg.Port, "HTTP server port (overrides PORT env var)")
	cmd.Flags().StringVar(&usersFile, "users-file", cfg.UsersFile, "YAML user file imported on startup (overrides FANOUT_USERS_FILE)")

	return cmd
}

func runWeb(cfg *config.AppConfig) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	sysLogger, logCloser, err := logger.NewSystemLogger(cfg.LogDir(), cfg.SlogLevel())
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logCloser.Close() //nolint:errcheck

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	tel, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName:    "fanout",
		ServiceVersion: build.Version,
		Endpoint:       cfg.OTLPEndpoint,
		Insecure:       cfg.OTLPInsecure,
		Registerer:     registry,
	})
	if err != nil {
		sysLogger.Error("telemetry setup failed", "error", err)
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			sysLogger.Warn("flushing telemetry", "error", err)
		}
	}()
	sysLogger = tel.Logger(sysLogger, "fanout")

	sysLogger.Info("fanout starting",
		slog.Int("port", cfg.Port),
		slog.String("data_dir", cfg.DataDir),
		slog.String("version", build.Version),
		slog.String("commit", build.CommitSHA),
		slog.String("build_date", build.BuildDate),
	)

	a, err := newApp(cfg, sysLogger, registry)
	if err != nil {
		sysLogger.Error("startup failed", "error", err)
		return err
	}
	defer a.Close()

	if cfg.UsersFile != "" {
		if err := importUsers(ctx, a, cfg.UsersFile); err != nil {
			sysLogger.Error("importing users", "file", cfg.UsersFile, "error", err)
			return err
		}
	}

	sched, err := scheduler.New(sysLogger)
	if err != nil {
		return err
	}
	if cfg.StatsInterval > 0 || cfg.StatsCron != "" {
		job := scheduler.NewStatsJob(a.notifications, sysLogger, registry)
		if err := sched.Add(job, scheduler.Schedule{Every: cfg.StatsInterval, Cron: cfg.StatsCron}); err != nil {
			return fmt.Errorf("scheduling stats job: %w", err)
		}
	}
	sched.Start()
	defer func() {
		if err := sched.Stop(); err != nil {
			sysLogger.Warn("stopping scheduler", "error", err)
		}
	}()

	apiSrv := api.New(a.messages, a.notifications, a.users, sysLogger)
	srv := server.New(apiSrv, server.Config{
		Port:        cfg.Port,
		CORSOrigins: cfg.CORSOrigins,
		Registry:    registry,
	}, sysLogger)

	sysLogger.Info("server ready", "url", fmt.Sprintf("http://localhost:%d", cfg.Port))
	return srv.Run(ctx)
}

// printBanner writes the startup banner to stdout. All structured logs go to
// the log file instead.
func printBanner(version, serverURL, logFile string) {
	fmt.Print(`
  __                        _
 / _| __ _ _ __   ___  _   _| |_
| |_ / _` + "`" + ` | '_ \ / _ \| | | | __|
|  _| (_| | | | | (_) | |_| | |_
|_|  \__,_|_| |_|\___/ \__,_|\__|

`)
	fmt.Printf("Fanout %s running.\n", version)
	fmt.Printf("API: %s/api\n", serverURL)
	fmt.Printf("Logs: %s\n\n", logFile)
}
