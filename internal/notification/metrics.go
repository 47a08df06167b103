package notification

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/shaharia-lab/fanout/internal/storage"
)

// Metrics counts delivery attempts per channel.
type Metrics struct {
	attempted *prometheus.CounterVec
	sent      *prometheus.CounterVec
	failed    *prometheus.CounterVec
}

// NewMetrics creates the dispatcher counters and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		attempted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fanout",
			Name:      "notifications_attempted_total",
			Help:      "Notifications recorded and handed to a channel sender.",
		}, []string{"channel"}),
		sent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fanout",
			Name:      "notifications_sent_total",
			Help:      "Notifications delivered successfully.",
		}, []string{"channel"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fanout",
			Name:      "notifications_failed_total",
			Help:      "Notifications whose delivery failed.",
		}, []string{"channel"}),
	}
	if reg != nil {
		reg.MustRegister(m.attempted, m.sent, m.failed)
	}
	return m
}

func (m *Metrics) observeAttempt(ch storage.Channel) {
	if m != nil {
		m.attempted.WithLabelValues(string(ch)).Inc()
	}
}

func (m *Metrics) observeResult(ch storage.Channel, ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.sent.WithLabelValues(string(ch)).Inc()
		return
	}
	m.failed.WithLabelValues(string(ch)).Inc()
}
