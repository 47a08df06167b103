package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shaharia-lab/fanout/internal/storage"
)

// ChannelSender delivers notifications over one channel.
type ChannelSender interface {
	// Channel returns the channel this sender was constructed for.
	Channel() storage.Channel
	// CanDeliver reports whether user can receive notifications on this
	// channel. It has no side effects.
	CanDeliver(user *storage.User) bool
	// Send attempts delivery of n. On success it marks n as sent and returns
	// true. On any failure it returns false and leaves n untouched.
	Send(ctx context.Context, n *storage.Notification) bool
}

// ConfigError reports a sender or dispatcher wiring mistake. It is only ever
// returned at construction time.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "notification config: " + e.Reason
}

// channelSender holds what the email, SMS and push senders share. Each
// concrete sender supplies the contact lookup and the envelope layout.
type channelSender struct {
	channel   storage.Channel
	transport Transport
	logger    *slog.Logger
	now       func() time.Time

	// contact returns the channel address of u, or "" if u has none.
	contact  func(u *storage.User) string
	envelope func(n *storage.Notification, to string) Envelope
}

func newChannelSender(
	channel storage.Channel,
	transport Transport,
	logger *slog.Logger,
	contact func(*storage.User) string,
	envelope func(*storage.Notification, string) Envelope,
) (channelSender, error) {
	if transport == nil {
		return channelSender{}, &ConfigError{Reason: fmt.Sprintf("%s sender has no transport", channel)}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return channelSender{
		channel:   channel,
		transport: transport,
		logger:    logger.With("component", "sender", "channel", string(channel)),
		now:       time.Now,
		contact:   contact,
		envelope:  envelope,
	}, nil
}

// Channel returns the channel this sender delivers on.
func (s *channelSender) Channel() storage.Channel { return s.channel }

// CanDeliver reports whether user opted into this channel and has the contact
// details it needs.
func (s *channelSender) CanDeliver(user *storage.User) bool {
	if user == nil || !user.Channels.Has(s.channel) {
		return false
	}
	return s.contact(user) != ""
}

// Send transmits n through the transport and marks it sent on success.
func (s *channelSender) Send(ctx context.Context, n *storage.Notification) bool {
	if n == nil || n.Message == nil || n.Channel != s.channel || !s.CanDeliver(n.User) {
		return false
	}

	env := s.envelope(n, s.contact(n.User))
	if err := s.transmit(ctx, env); err != nil {
		s.logger.WarnContext(ctx, "delivery failed",
			"transport", s.transport.Name(),
			"user_id", n.User.ID,
			"message_id", n.Message.ID,
			"error", err,
		)
		return false
	}

	n.MarkSent(s.now().UTC())
	s.logger.DebugContext(ctx, "delivered",
		"transport", s.transport.Name(),
		"user_id", n.User.ID,
		"message_id", n.Message.ID,
	)
	return true
}

// transmit calls the transport, turning a panic into an error.
func (s *channelSender) transmit(ctx context.Context, env Envelope) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transport %s panicked: %v", s.transport.Name(), r)
		}
	}()
	return s.transport.Transmit(ctx, env)
}
