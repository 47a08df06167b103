package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/shaharia-lab/fanout/internal/storage"
)

// MockNotificationStore is a mock implementation of storage.NotificationStore.
type MockNotificationStore struct {
	mock.Mock
}

//nolint:revive
func (m *MockNotificationStore) SaveNotification(ctx context.Context, n *storage.Notification) (*storage.Notification, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Notification), args.Error(1)
}

//nolint:revive
func (m *MockNotificationStore) GetNotification(ctx context.Context, id int64) (*storage.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Notification), args.Error(1)
}

//nolint:revive
func (m *MockNotificationStore) ListNotifications(ctx context.Context, limit, offset int) ([]*storage.Notification, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.Notification), args.Error(1)
}

//nolint:revive
func (m *MockNotificationStore) CountNotifications(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

//nolint:revive
func (m *MockNotificationStore) ListNotificationsBySent(ctx context.Context, sent bool) ([]*storage.Notification, error) {
	args := m.Called(ctx, sent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.Notification), args.Error(1)
}

//nolint:revive
func (m *MockNotificationStore) ListNotificationsByChannel(ctx context.Context, channel storage.Channel) ([]*storage.Notification, error) {
	args := m.Called(ctx, channel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.Notification), args.Error(1)
}

//nolint:revive
func (m *MockNotificationStore) ListNotificationsForUser(ctx context.Context, userID int64) ([]*storage.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.Notification), args.Error(1)
}

//nolint:revive
func (m *MockNotificationStore) CountSentForMessage(ctx context.Context, messageID int64) (int64, error) {
	args := m.Called(ctx, messageID)
	return args.Get(0).(int64), args.Error(1)
}

//nolint:revive
func (m *MockNotificationStore) Stats(ctx context.Context) (*storage.NotificationStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.NotificationStats), args.Error(1)
}
