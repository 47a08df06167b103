package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		want     slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"unknown defaults to info", "unknown", slog.LevelInfo},
		{"empty defaults to info", "", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &AppConfig{LogLevel: tt.logLevel}
			assert.Equal(t, tt.want, c.SlogLevel())
		})
	}
}

func TestAppConfig_Paths(t *testing.T) {
	c := &AppConfig{DataDir: "/data"}
	assert.Equal(t, "/data/logs", c.LogDir())
	assert.Equal(t, "/data/fanout.db", c.DBPath())

	c.DatabasePath = "/var/lib/fanout/prod.db"
	assert.Equal(t, "/var/lib/fanout/prod.db", c.DBPath())
}

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("FANOUT_DATA_DIR", "/tmp/test-fanout")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("FANOUT_DISPATCH_CONCURRENCY", "0")
	t.Setenv("FANOUT_STATS_INTERVAL", "30s")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMS_GATEWAY_URL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/test-fanout", cfg.DataDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 1, cfg.DispatchConcurrency)
	assert.Equal(t, 30*time.Second, cfg.StatsInterval)
	assert.Equal(t, "smtp.example.com", cfg.SMTPHost)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, "starttls", cfg.SMTPEncryption)
	assert.Empty(t, cfg.SMSGatewayURL)
}

func TestLoad_DefaultDataDir(t *testing.T) {
	t.Setenv("FANOUT_DATA_DIR", "")
	t.Setenv("HOME", "/home/tester")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/home/tester/.fanout", cfg.DataDir)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}
