package telemetry

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestSetup_PrometheusBridge(t *testing.T) {
	reg := prometheus.NewRegistry()
	p, err := Setup(context.Background(), Config{ServiceVersion: "test", Registerer: reg})
	require.NoError(t, err)
	defer func() { require.NoError(t, p.Shutdown(context.Background())) }()

	counter, err := otel.Meter("fanout-test").Int64Counter("bridge_probe")
	require.NoError(t, err)
	counter.Add(context.Background(), 2)

	families, err := reg.Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range families {
		if mf.GetName() == "bridge_probe_total" {
			found = true
		}
	}
	assert.True(t, found, "bridged counter should be gathered")
}

func TestLogger_WithoutExporterReturnsBase(t *testing.T) {
	p, err := Setup(context.Background(), Config{})
	require.NoError(t, err)
	defer func() { _ = p.Shutdown(context.Background()) }()

	base := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	assert.Same(t, base, p.Logger(base, "fanout"))

	var nilProvider *Provider
	assert.Same(t, base, nilProvider.Logger(base, "fanout"))
	assert.NoError(t, nilProvider.Shutdown(context.Background()))
}

func TestTeeHandler(t *testing.T) {
	var info, debug bytes.Buffer
	h := &teeHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug}),
	}}
	logger := slog.New(h).With("component", "test").WithGroup("g")

	logger.Debug("only debug")
	logger.Info("both", "k", "v")

	assert.NotContains(t, info.String(), "only debug")
	assert.Contains(t, info.String(), "both")
	assert.Contains(t, info.String(), "component=test")
	assert.Contains(t, info.String(), "g.k=v")
	assert.Contains(t, debug.String(), "only debug")
	assert.Contains(t, debug.String(), "both")
}
