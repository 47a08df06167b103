package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/shaharia-lab/fanout/internal/storage"
)

// StatsSource supplies aggregated delivery outcomes.
type StatsSource interface {
	Stats(ctx context.Context) (*storage.NotificationStats, error)
}

// StatsJob logs the notification delivery stats and publishes them as gauges.
type StatsJob struct {
	source StatsSource
	logger *slog.Logger
	stored *prometheus.GaugeVec
}

// NewStatsJob creates a StatsJob reading from source. Gauges are registered
// on reg when it is not nil.
func NewStatsJob(source StatsSource, logger *slog.Logger, reg prometheus.Registerer) *StatsJob {
	if logger == nil {
		logger = slog.Default()
	}
	j := &StatsJob{
		source: source,
		logger: logger,
		stored: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "fanout",
			Name:      "notifications_stored",
			Help:      "Recorded notifications by channel and outcome, as of the last stats run.",
		}, []string{"channel", "outcome"}),
	}
	if reg != nil {
		reg.MustRegister(j.stored)
	}
	return j
}

// Name returns the job name.
func (j *StatsJob) Name() string { return "notification-stats" }

// Run reads the current stats once.
func (j *StatsJob) Run(ctx context.Context) error {
	stats, err := j.source.Stats(ctx)
	if err != nil {
		return fmt.Errorf("reading notification stats: %w", err)
	}

	for _, ch := range storage.Channels() {
		cs := stats.ByChannel[ch]
		j.stored.WithLabelValues(string(ch), "sent").Set(float64(cs.Sent))
		j.stored.WithLabelValues(string(ch), "failed").Set(float64(cs.Failed))
	}

	j.logger.Info("notification stats",
		"total", stats.Total,
		"sent", stats.Sent,
		"failed", stats.Failed,
	)
	return nil
}
