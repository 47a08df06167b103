package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/shaharia-lab/fanout/internal/storage"
)

// MockDispatcher is a mock implementation of service.Dispatcher.
type MockDispatcher struct {
	mock.Mock
}

//nolint:revive
func (m *MockDispatcher) ProcessNotifications(ctx context.Context, msg *storage.Message, users []*storage.User) []*storage.Notification {
	args := m.Called(ctx, msg, users)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*storage.Notification)
}

// MockEventPublisher is a mock implementation of service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

//nolint:revive
func (m *MockEventPublisher) Publish(eventType string, payload map[string]string) {
	m.Called(eventType, payload)
}
