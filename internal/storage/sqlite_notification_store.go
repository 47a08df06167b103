package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// notificationSelect joins each notification with its message and the
// recipient's contact fields.
const notificationSelect = `
	SELECT n.id, n.channel, n.sent, n.created_at, n.sent_at,
	       m.id, m.category, m.content, m.created_at,
	       u.id, u.name, u.email, u.phone_number
	FROM notifications n
	JOIN messages m ON m.id = n.message_id
	JOIN users u ON u.id = n.user_id`

// SQLiteNotificationStore implements NotificationStore backed by SQLite.
type SQLiteNotificationStore struct {
	db *sql.DB
}

// NewSQLiteNotificationStore returns a new SQLiteNotificationStore.
func NewSQLiteNotificationStore(db *sql.DB) *SQLiteNotificationStore {
	return &SQLiteNotificationStore{db: db}
}

// SaveNotification inserts n when it has no ID, otherwise updates the
// delivery state of the row with n's ID. The update never clears a delivered
// flag that is already stored.
func (s *SQLiteNotificationStore) SaveNotification(ctx context.Context, n *Notification) (*Notification, error) {
	if n.Message == nil || n.Message.ID == 0 {
		return nil, errors.New("saving notification: message is not persisted")
	}
	if n.User == nil || n.User.ID == 0 {
		return nil, errors.New("saving notification: user is not persisted")
	}
	if !n.Channel.Valid() {
		return nil, fmt.Errorf("saving notification: unknown channel %q", n.Channel)
	}

	if n.ID == 0 {
		if n.CreatedAt.IsZero() {
			n.CreatedAt = time.Now().UTC()
		}
		res, err := s.db.ExecContext(ctx, `
			INSERT INTO notifications (message_id, user_id, channel, sent, created_at, sent_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			n.Message.ID, n.User.ID, n.Channel, n.Sent, n.CreatedAt, n.SentAt,
		)
		if err != nil {
			return nil, fmt.Errorf("inserting notification: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("reading notification id: %w", err)
		}
		n.ID = id
		return n, nil
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE notifications
		SET sent = MAX(sent, ?), sent_at = COALESCE(sent_at, ?)
		WHERE id = ?`,
		n.Sent, n.SentAt, n.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating notification %d: %w", n.ID, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return nil, fmt.Errorf("notification %d not found", n.ID)
	}
	return n, nil
}

// GetNotification returns the notification with the given ID, or nil if not found.
func (s *SQLiteNotificationStore) GetNotification(ctx context.Context, id int64) (*Notification, error) {
	row := s.db.QueryRowContext(ctx, notificationSelect+` WHERE n.id = ?`, id)
	n, err := scanNotification(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting notification %d: %w", id, err)
	}
	return n, nil
}

// ListNotifications returns notifications, most recently created first.
func (s *SQLiteNotificationStore) ListNotifications(ctx context.Context, limit, offset int) ([]*Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.queryNotifications(ctx,
		notificationSelect+` ORDER BY n.id DESC LIMIT ? OFFSET ?`,
		limit, offset)
}

// CountNotifications returns the total number of notification rows.
func (s *SQLiteNotificationStore) CountNotifications(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notifications`).Scan(&total); err != nil {
		return 0, fmt.Errorf("counting notifications: %w", err)
	}
	return total, nil
}

// ListNotificationsBySent returns the notifications with the given sent flag.
func (s *SQLiteNotificationStore) ListNotificationsBySent(ctx context.Context, sent bool) ([]*Notification, error) {
	return s.queryNotifications(ctx,
		notificationSelect+` WHERE n.sent = ? ORDER BY n.id DESC`, sent)
}

// ListNotificationsByChannel returns the notifications of one channel.
func (s *SQLiteNotificationStore) ListNotificationsByChannel(ctx context.Context, channel Channel) ([]*Notification, error) {
	return s.queryNotifications(ctx,
		notificationSelect+` WHERE n.channel = ? ORDER BY n.id DESC`, channel)
}

// ListNotificationsForUser returns the notifications addressed to userID.
func (s *SQLiteNotificationStore) ListNotificationsForUser(ctx context.Context, userID int64) ([]*Notification, error) {
	return s.queryNotifications(ctx,
		notificationSelect+` WHERE n.user_id = ? ORDER BY n.id DESC`, userID)
}

// CountSentForMessage returns how many notifications of messageID were delivered.
func (s *SQLiteNotificationStore) CountSentForMessage(ctx context.Context, messageID int64) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE message_id = ? AND sent = 1`, messageID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting sent notifications of message %d: %w", messageID, err)
	}
	return count, nil
}

// Stats aggregates delivery outcomes per channel and overall.
func (s *SQLiteNotificationStore) Stats(ctx context.Context) (*NotificationStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT channel, COUNT(*), COALESCE(SUM(sent), 0)
		FROM notifications
		GROUP BY channel`)
	if err != nil {
		return nil, fmt.Errorf("querying notification stats: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	stats := &NotificationStats{ByChannel: make(map[Channel]ChannelStats)}
	for rows.Next() {
		var ch Channel
		var cs ChannelStats
		if err := rows.Scan(&ch, &cs.Total, &cs.Sent); err != nil {
			return nil, fmt.Errorf("scanning notification stats row: %w", err)
		}
		cs.Failed = cs.Total - cs.Sent
		stats.ByChannel[ch] = cs
		stats.Total += cs.Total
		stats.Sent += cs.Sent
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notification stats rows: %w", err)
	}
	stats.Failed = stats.Total - stats.Sent
	return stats, nil
}

func (s *SQLiteNotificationStore) queryNotifications(ctx context.Context, query string, args ...any) ([]*Notification, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying notifications: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	notifications := make([]*Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning notification row: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notification rows: %w", err)
	}
	return notifications, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNotification(row rowScanner) (*Notification, error) {
	n := &Notification{Message: &Message{}, User: &User{}}
	var sentAt sql.NullTime
	err := row.Scan(
		&n.ID, &n.Channel, &n.Sent, &n.CreatedAt, &sentAt,
		&n.Message.ID, &n.Message.Category, &n.Message.Content, &n.Message.CreatedAt,
		&n.User.ID, &n.User.Name, &n.User.Email, &n.User.PhoneNumber,
	)
	if err != nil {
		return nil, err
	}
	if sentAt.Valid {
		t := sentAt.Time
		n.SentAt = &t
	}
	return n, nil
}
