package notification

import (
	"log/slog"
	"strconv"

	"github.com/shaharia-lab/fanout/internal/storage"
)

// PushSender delivers push notifications addressed by user ID. It needs no
// contact field beyond a persisted user.
type PushSender struct {
	channelSender
}

// NewPushSender creates a PushSender on top of transport.
func NewPushSender(transport Transport, logger *slog.Logger) (*PushSender, error) {
	base, err := newChannelSender(storage.ChannelPush, transport, logger, pushContact, pushEnvelope)
	if err != nil {
		return nil, err
	}
	return &PushSender{channelSender: base}, nil
}

func pushContact(u *storage.User) string {
	if u.ID <= 0 {
		return ""
	}
	return strconv.FormatInt(u.ID, 10)
}

func pushEnvelope(n *storage.Notification, to string) Envelope {
	return Envelope{
		Channel: storage.ChannelPush,
		To:      to,
		Subject: string(n.Message.Category),
		Body:    n.Message.Content,
	}
}
