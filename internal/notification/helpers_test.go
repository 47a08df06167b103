package notification_test

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/shaharia-lab/fanout/internal/notification"
	"github.com/shaharia-lab/fanout/internal/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubTransport records envelopes and fails or panics on demand.
type stubTransport struct {
	mu        sync.Mutex
	err       error
	panicWith any
	envelopes []notification.Envelope
}

func (s *stubTransport) Name() string { return "stub" }

func (s *stubTransport) Transmit(_ context.Context, env notification.Envelope) error {
	if s.panicWith != nil {
		panic(s.panicWith)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.envelopes = append(s.envelopes, env)
	return s.err
}

func (s *stubTransport) sent() []notification.Envelope {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]notification.Envelope, len(s.envelopes))
	copy(out, s.envelopes)
	return out
}

func newUser(id int64, categories []storage.Category, channels ...storage.Channel) *storage.User {
	return &storage.User{
		ID:            id,
		Name:          "user",
		Email:         "user@example.com",
		PhoneNumber:   "+15550100",
		Subscriptions: storage.NewCategorySet(categories...),
		Channels:      storage.NewChannelSet(channels...),
	}
}

func sportsMessage() *storage.Message {
	return &storage.Message{ID: 11, Category: storage.CategorySports, Content: "match tonight"}
}
