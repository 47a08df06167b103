package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shaharia-lab/fanout/internal/config"
	"github.com/shaharia-lab/fanout/internal/eventbus"
	"github.com/shaharia-lab/fanout/internal/storage"
)

// UserService manages the recipients of notifications.
type UserService interface {
	ListUsers(ctx context.Context) ([]*storage.User, error)
	GetUser(ctx context.Context, id int64) (*storage.User, error)
	// ImportUsers validates every fixture, then saves the ones whose email is
	// not already taken. It returns the number of users created.
	ImportUsers(ctx context.Context, fixtures []config.UserFixture) (int, error)
}

type userService struct {
	store     storage.UserStore
	publisher EventPublisher
	logger    *slog.Logger
}

// NewUserService returns a UserService backed by store. publisher may be nil.
func NewUserService(store storage.UserStore, publisher EventPublisher, logger *slog.Logger) UserService {
	return &userService{store: store, publisher: publisher, logger: logger}
}

func (s *userService) ListUsers(ctx context.Context) ([]*storage.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (*storage.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting user %d: %w", id, err)
	}
	if user == nil {
		return nil, &NotFoundError{Resource: "user", ID: strconv.FormatInt(id, 10)}
	}
	return user, nil
}

func (s *userService) ImportUsers(ctx context.Context, fixtures []config.UserFixture) (int, error) {
	users := make([]*storage.User, 0, len(fixtures))
	for i, f := range fixtures {
		u, err := userFromFixture(f)
		if err != nil {
			return 0, &ValidationError{Field: fmt.Sprintf("users[%d]", i), Message: err.Error()}
		}
		users = append(users, u)
	}

	existing, err := s.store.ListUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing existing users: %w", err)
	}
	taken := make(map[string]bool, len(existing))
	for _, u := range existing {
		if u.Email != "" {
			taken[strings.ToLower(u.Email)] = true
		}
	}

	created := 0
	for _, u := range users {
		key := strings.ToLower(u.Email)
		if u.Email != "" && taken[key] {
			s.logger.Debug("user already exists, skipping", "email", u.Email)
			continue
		}
		if _, err := s.store.SaveUser(ctx, u); err != nil {
			return created, fmt.Errorf("saving user %q: %w", u.Name, err)
		}
		if u.Email != "" {
			taken[key] = true
		}
		created++
	}

	s.logger.Info("users imported", "created", created, "skipped", len(users)-created)
	if s.publisher != nil {
		s.publisher.Publish(eventbus.EventUsersSeeded, map[string]string{
			"count": strconv.Itoa(created),
		})
	}
	return created, nil
}

func userFromFixture(f config.UserFixture) (*storage.User, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return nil, errors.New("name is required")
	}

	subs := storage.NewCategorySet()
	for _, raw := range f.Subscriptions {
		c, err := storage.ParseCategory(raw)
		if err != nil {
			return nil, err
		}
		subs[c] = struct{}{}
	}
	channels := storage.NewChannelSet()
	for _, raw := range f.Channels {
		c, err := storage.ParseChannel(raw)
		if err != nil {
			return nil, err
		}
		channels[c] = struct{}{}
	}

	return &storage.User{
		Name:          name,
		Email:         strings.TrimSpace(f.Email),
		PhoneNumber:   strings.TrimSpace(f.PhoneNumber),
		Subscriptions: subs,
		Channels:      channels,
	}, nil
}
