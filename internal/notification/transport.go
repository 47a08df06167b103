// Package notification fans a message out to subscribed users over email, SMS
// and push. Channel senders decide eligibility and wrap a Transport that does
// the actual transmission; the Dispatcher drives the fan-out and records every
// attempt.
package notification

import (
	"context"
	"log/slog"

	"github.com/shaharia-lab/fanout/internal/storage"
)

// Envelope is the content handed to a Transport for one delivery.
type Envelope struct {
	Channel storage.Channel
	// To is the channel-specific address: an email address, a phone number or
	// a user ID for push.
	To string
	// Subject is the email subject or the push title. SMS has none.
	Subject string
	Body    string
}

// Transport is the interface for delivery backends.
type Transport interface {
	// Name returns the transport identifier (e.g. "smtp").
	Name() string
	// Transmit delivers the envelope. A non-nil error means nothing was delivered.
	Transmit(ctx context.Context, env Envelope) error
}

// LogTransport simulates delivery by writing the envelope to the log. It is
// used for channels whose backend is not configured.
type LogTransport struct {
	logger *slog.Logger
}

// NewLogTransport creates a LogTransport writing to logger.
func NewLogTransport(logger *slog.Logger) *LogTransport {
	return &LogTransport{logger: logger}
}

// Name returns the transport identifier.
func (t *LogTransport) Name() string { return "log" }

// Transmit logs the envelope and always succeeds.
func (t *LogTransport) Transmit(ctx context.Context, env Envelope) error {
	t.logger.InfoContext(ctx, "simulated delivery",
		slog.String("channel", string(env.Channel)),
		slog.String("to", env.To),
		slog.String("subject", env.Subject),
		slog.Int("body_bytes", len(env.Body)),
	)
	return nil
}
