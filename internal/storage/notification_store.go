package storage

import (
	"context"
	"time"
)

// Notification records a single delivery attempt of one message to one user
// over one channel. Sent and SentAt are the only fields that change after
// creation, and only from (false, nil) to (true, time).
type Notification struct {
	ID        int64      `json:"id"`
	Message   *Message   `json:"message"`
	User      *User      `json:"user"`
	Channel   Channel    `json:"channel"`
	Sent      bool       `json:"sent"`
	CreatedAt time.Time  `json:"created_at"`
	SentAt    *time.Time `json:"sent_at,omitempty"`
}

// MarkSent flags the notification as delivered at the given time. Both fields
// are set together; calling it on an already sent notification does nothing.
func (n *Notification) MarkSent(at time.Time) {
	if n.Sent {
		return
	}
	sentAt := at
	n.SentAt = &sentAt
	n.Sent = true
}

// ChannelStats aggregates notification outcomes for one channel.
type ChannelStats struct {
	Total  int64 `json:"total"`
	Sent   int64 `json:"sent"`
	Failed int64 `json:"failed"`
}

// NotificationStats aggregates notification outcomes across all channels.
type NotificationStats struct {
	Total     int64                    `json:"total_notifications"`
	Sent      int64                    `json:"sent_notifications"`
	Failed    int64                    `json:"failed_notifications"`
	ByChannel map[Channel]ChannelStats `json:"by_channel"`
}

// NotificationStore defines the interface for persisting delivery attempts.
//
// Notifications returned by the List and Get methods carry the referenced
// Message and the user's contact fields; the user's subscription and channel
// sets are not loaded.
type NotificationStore interface {
	// SaveNotification inserts the notification when its ID is zero and
	// assigns the new ID on the passed instance. Otherwise it updates the
	// delivery state of the existing row with that ID.
	SaveNotification(ctx context.Context, n *Notification) (*Notification, error)
	// GetNotification returns the notification with the given ID, or nil if not found.
	GetNotification(ctx context.Context, id int64) (*Notification, error)
	// ListNotifications returns notifications newest first.
	ListNotifications(ctx context.Context, limit, offset int) ([]*Notification, error)
	// CountNotifications returns the total number of notifications.
	CountNotifications(ctx context.Context) (int64, error)
	// ListNotificationsBySent returns the notifications with the given sent flag, newest first.
	ListNotificationsBySent(ctx context.Context, sent bool) ([]*Notification, error)
	// ListNotificationsByChannel returns the notifications of one channel, newest first.
	ListNotificationsByChannel(ctx context.Context, channel Channel) ([]*Notification, error)
	// ListNotificationsForUser returns the notifications addressed to a user, newest first.
	ListNotificationsForUser(ctx context.Context, userID int64) ([]*Notification, error)
	// CountSentForMessage returns how many notifications of a message were delivered.
	CountSentForMessage(ctx context.Context, messageID int64) (int64, error)
	// Stats aggregates delivery outcomes.
	Stats(ctx context.Context) (*NotificationStats, error)
}
