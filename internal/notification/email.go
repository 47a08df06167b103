package notification

import (
	"log/slog"

	"github.com/shaharia-lab/fanout/internal/storage"
)

// EmailSender delivers notifications to a user's email address.
type EmailSender struct {
	channelSender
}

// NewEmailSender creates an EmailSender on top of transport.
func NewEmailSender(transport Transport, logger *slog.Logger) (*EmailSender, error) {
	base, err := newChannelSender(storage.ChannelEmail, transport, logger, emailContact, emailEnvelope)
	if err != nil {
		return nil, err
	}
	return &EmailSender{channelSender: base}, nil
}

func emailContact(u *storage.User) string { return u.Email }

func emailEnvelope(n *storage.Notification, to string) Envelope {
	return Envelope{
		Channel: storage.ChannelEmail,
		To:      to,
		Subject: buildSubject(string(n.Message.Category)),
		Body:    n.Message.Content,
	}
}
