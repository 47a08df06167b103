package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaharia-lab/fanout/internal/logger"
)

func TestNewSystemLogger(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	log, closer, err := logger.NewSystemLogger(dir, slog.LevelInfo)
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("message dispatched", "id", 4)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, "system.log"))
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "message dispatched", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.EqualValues(t, 4, entry["id"])
}

func TestNewSystemLogger_BadDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	_, _, err := logger.NewSystemLogger(filepath.Join(file, "logs"), slog.LevelInfo)
	require.Error(t, err)
}

func TestNewConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewConsoleLogger(&buf, slog.LevelWarn)

	log.Info("quiet")
	log.Warn("loud", "channel", "SMS")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
	assert.Contains(t, buf.String(), "channel=SMS")
}
