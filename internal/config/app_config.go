package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// AppConfig holds all application-level configuration loaded from environment variables.
type AppConfig struct {
	// Port is the HTTP server port. Defaults to 8990.
	Port int `envconfig:"PORT" default:"8990"`

	// DataDir is the root data directory. Defaults to ~/.fanout.
	DataDir string `envconfig:"FANOUT_DATA_DIR"`

	// LogLevel sets the minimum log level (debug, info, warn, error). Defaults to info.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// DatabasePath overrides the SQLite file location (<data>/fanout.db).
	DatabasePath string `envconfig:"FANOUT_DB_PATH"`

	// UsersFile is a YAML user fixture imported on startup when set.
	UsersFile string `envconfig:"FANOUT_USERS_FILE"`

	// DispatchConcurrency is the number of users processed in parallel per message.
	DispatchConcurrency int `envconfig:"FANOUT_DISPATCH_CONCURRENCY" default:"1"`

	// StatsInterval is how often delivery stats are logged. Zero disables the job.
	StatsInterval time.Duration `envconfig:"FANOUT_STATS_INTERVAL" default:"5m"`

	// StatsCron is a cron expression for the stats job. It wins over StatsInterval.
	StatsCron string `envconfig:"FANOUT_STATS_CRON"`

	// CORSOrigins lists the origins allowed to call the API.
	CORSOrigins []string `envconfig:"FANOUT_CORS_ORIGINS" default:"*"`

	// OperatorEmail receives a dispatch report after each message when set.
	OperatorEmail string `envconfig:"FANOUT_OPERATOR_EMAIL"`

	// OTLPEndpoint is the OTLP/gRPC collector (host:port). Empty disables export.
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTLPInsecure bool   `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`

	SMTPHost       string `envconfig:"SMTP_HOST"`
	SMTPPort       int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername   string `envconfig:"SMTP_USERNAME"`
	SMTPPassword   string `envconfig:"SMTP_PASSWORD"`
	SMTPFrom       string `envconfig:"SMTP_FROM"`
	SMTPEncryption string `envconfig:"SMTP_ENCRYPTION" default:"starttls"`

	SMSGatewayURL   string `envconfig:"SMS_GATEWAY_URL"`
	SMSGatewayToken string `envconfig:"SMS_GATEWAY_TOKEN"`

	PushGatewayURL string `envconfig:"PUSH_GATEWAY_URL"`
	PushGatewayKey string `envconfig:"PUSH_GATEWAY_KEY"`
}

// Load reads AppConfig from environment variables using envconfig.
// DataDir defaults to ~/.fanout if not set.
func Load() (*AppConfig, error) {
	var c AppConfig
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		c.DataDir = filepath.Join(home, ".fanout")
	}
	if c.DispatchConcurrency < 1 {
		c.DispatchConcurrency = 1
	}
	return &c, nil
}

// SlogLevel converts the LogLevel string to a slog.Level.
// Unknown values default to slog.LevelInfo.
func (c *AppConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogDir returns the path to the log directory (<data>/logs).
func (c *AppConfig) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// DBPath returns the SQLite database file path.
func (c *AppConfig) DBPath() string {
	if c.DatabasePath != "" {
		return c.DatabasePath
	}
	return filepath.Join(c.DataDir, "fanout.db")
}
