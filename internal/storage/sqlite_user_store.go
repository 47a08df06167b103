package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
)

// SQLiteUserStore implements UserStore backed by SQLite.
type SQLiteUserStore struct {
	db *sql.DB
}

// NewSQLiteUserStore returns a new SQLiteUserStore.
func NewSQLiteUserStore(db *sql.DB) *SQLiteUserStore {
	return &SQLiteUserStore{db: db}
}

// SaveUser inserts or replaces a user together with its subscription and
// channel sets in a single transaction.
func (s *SQLiteUserStore) SaveUser(ctx context.Context, user *User) (*User, error) {
	for c := range user.Subscriptions {
		if !c.Valid() {
			return nil, fmt.Errorf("saving user: unknown category %q", c)
		}
	}
	for c := range user.Channels {
		if !c.Valid() {
			return nil, fmt.Errorf("saving user: unknown channel %q", c)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin save user: %w", err)
	}
	id, err := saveUserTx(ctx, tx, user)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Printf("failed to rollback user save: %v", rbErr)
		}
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit save user: %w", err)
	}
	user.ID = id
	return user, nil
}

// saveUserTx writes user inside tx and returns its ID. user itself is not
// modified, so a rolled back insert leaves it unsaved.
func saveUserTx(ctx context.Context, tx *sql.Tx, user *User) (int64, error) {
	id := user.ID
	if id == 0 {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO users (name, email, phone_number) VALUES (?, ?, ?)`,
			user.Name, user.Email, user.PhoneNumber,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting user: %w", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return 0, fmt.Errorf("reading user id: %w", err)
		}
	} else {
		res, err := tx.ExecContext(ctx, `
			UPDATE users SET name = ?, email = ?, phone_number = ? WHERE id = ?`,
			user.Name, user.Email, user.PhoneNumber, id,
		)
		if err != nil {
			return 0, fmt.Errorf("updating user %d: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return 0, fmt.Errorf("user %d not found", id)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM user_subscriptions WHERE user_id = ?`, id); err != nil {
			return 0, fmt.Errorf("clearing subscriptions of user %d: %w", id, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM user_channels WHERE user_id = ?`, id); err != nil {
			return 0, fmt.Errorf("clearing channels of user %d: %w", id, err)
		}
	}

	for c := range user.Subscriptions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_subscriptions (user_id, category) VALUES (?, ?)`, id, c,
		); err != nil {
			return 0, fmt.Errorf("inserting subscription %s of user %d: %w", c, id, err)
		}
	}
	for c := range user.Channels {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_channels (user_id, channel) VALUES (?, ?)`, id, c,
		); err != nil {
			return 0, fmt.Errorf("inserting channel %s of user %d: %w", c, id, err)
		}
	}
	return id, nil
}

// GetUser returns the user with the given ID, or nil if not found.
func (s *SQLiteUserStore) GetUser(ctx context.Context, id int64) (*User, error) {
	u := &User{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, phone_number FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PhoneNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %d: %w", id, err)
	}
	if err := s.loadSets(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ListUsers returns all users ordered by ID.
func (s *SQLiteUserStore) ListUsers(ctx context.Context) ([]*User, error) {
	return s.queryUsers(ctx, `
		SELECT id, name, email, phone_number FROM users ORDER BY id`)
}

// FindUsersBySubscription returns the users subscribed to category, ordered by ID.
func (s *SQLiteUserStore) FindUsersBySubscription(ctx context.Context, category Category) ([]*User, error) {
	return s.queryUsers(ctx, `
		SELECT u.id, u.name, u.email, u.phone_number
		FROM users u
		JOIN user_subscriptions us ON us.user_id = u.id
		WHERE us.category = ?
		ORDER BY u.id`, category)
}

func (s *SQLiteUserStore) queryUsers(ctx context.Context, query string, args ...any) ([]*User, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}

	users := make([]*User, 0)
	for rows.Next() {
		u := &User{}
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PhoneNumber); err != nil {
			rows.Close() //nolint:errcheck,gosec
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		rows.Close() //nolint:errcheck,gosec
		return nil, fmt.Errorf("iterating user rows: %w", err)
	}
	// The pool holds a single connection, so rows must be released before the
	// per-user set queries below.
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("closing user rows: %w", err)
	}

	for _, u := range users {
		if err := s.loadSets(ctx, u); err != nil {
			return nil, err
		}
	}
	return users, nil
}

// loadSets populates the subscription and channel sets of u.
func (s *SQLiteUserStore) loadSets(ctx context.Context, u *User) error {
	subs, err := s.queryStrings(ctx, `SELECT category FROM user_subscriptions WHERE user_id = ?`, u.ID)
	if err != nil {
		return fmt.Errorf("loading subscriptions of user %d: %w", u.ID, err)
	}
	u.Subscriptions = make(CategorySet, len(subs))
	for _, c := range subs {
		u.Subscriptions[Category(c)] = struct{}{}
	}

	chans, err := s.queryStrings(ctx, `SELECT channel FROM user_channels WHERE user_id = ?`, u.ID)
	if err != nil {
		return fmt.Errorf("loading channels of user %d: %w", u.ID, err)
	}
	u.Channels = make(ChannelSet, len(chans))
	for _, c := range chans {
		u.Channels[Channel(c)] = struct{}{}
	}
	return nil
}

func (s *SQLiteUserStore) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
