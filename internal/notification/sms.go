package notification

import (
	"log/slog"

	"github.com/shaharia-lab/fanout/internal/storage"
)

// SMSSender delivers notifications as text messages to a user's phone number.
type SMSSender struct {
	channelSender
}

// NewSMSSender creates an SMSSender on top of transport.
func NewSMSSender(transport Transport, logger *slog.Logger) (*SMSSender, error) {
	base, err := newChannelSender(storage.ChannelSMS, transport, logger, smsContact, smsEnvelope)
	if err != nil {
		return nil, err
	}
	return &SMSSender{channelSender: base}, nil
}

func smsContact(u *storage.User) string { return u.PhoneNumber }

func smsEnvelope(n *storage.Notification, to string) Envelope {
	return Envelope{
		Channel: storage.ChannelSMS,
		To:      to,
		Body:    n.Message.Content,
	}
}
