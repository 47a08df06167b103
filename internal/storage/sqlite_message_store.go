package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLiteMessageStore implements MessageStore backed by SQLite.
type SQLiteMessageStore struct {
	db *sql.DB
}

// NewSQLiteMessageStore returns a new SQLiteMessageStore.
func NewSQLiteMessageStore(db *sql.DB) *SQLiteMessageStore {
	return &SQLiteMessageStore{db: db}
}

// SaveMessage inserts msg and fills in its ID and CreatedAt. Saving a message
// that already has an ID is rejected because messages are immutable.
func (s *SQLiteMessageStore) SaveMessage(ctx context.Context, msg *Message) (*Message, error) {
	if msg.ID != 0 {
		return nil, fmt.Errorf("message %d already saved", msg.ID)
	}
	if !msg.Category.Valid() {
		return nil, fmt.Errorf("saving message: unknown category %q", msg.Category)
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (category, content, created_at)
		VALUES (?, ?, ?)`,
		msg.Category, msg.Content, msg.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading message id: %w", err)
	}
	msg.ID = id
	return msg, nil
}

// GetMessage returns the message with the given ID, or nil if not found.
func (s *SQLiteMessageStore) GetMessage(ctx context.Context, id int64) (*Message, error) {
	m := &Message{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, category, content, created_at
		FROM messages WHERE id = ?`, id,
	).Scan(&m.ID, &m.Category, &m.Content, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting message %d: %w", id, err)
	}
	return m, nil
}

// ListMessages returns all messages, most recently saved first.
func (s *SQLiteMessageStore) ListMessages(ctx context.Context) ([]*Message, error) {
	return s.queryMessages(ctx, `
		SELECT id, category, content, created_at
		FROM messages
		ORDER BY id DESC`)
}

// ListMessagesByCategory returns the messages of one category, most recently
// saved first.
func (s *SQLiteMessageStore) ListMessagesByCategory(ctx context.Context, category Category) ([]*Message, error) {
	return s.queryMessages(ctx, `
		SELECT id, category, content, created_at
		FROM messages
		WHERE category = ?
		ORDER BY id DESC`, category)
}

func (s *SQLiteMessageStore) queryMessages(ctx context.Context, query string, args ...any) ([]*Message, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	messages := make([]*Message, 0)
	for rows.Next() {
		m := &Message{}
		if err := rows.Scan(&m.ID, &m.Category, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message row: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating message rows: %w", err)
	}
	return messages, nil
}
