package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/shaharia-lab/fanout/internal/service"
	"github.com/shaharia-lab/fanout/internal/storage"
)

// MockNotificationLogService is a mock implementation of service.NotificationLogService.
type MockNotificationLogService struct {
	mock.Mock
}

//nolint:revive
func (m *MockNotificationLogService) List(ctx context.Context, page, size int) (*service.NotificationPage, error) {
	args := m.Called(ctx, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.NotificationPage), args.Error(1)
}

//nolint:revive
func (m *MockNotificationLogService) ListBySent(ctx context.Context, sent bool) ([]*storage.Notification, error) {
	args := m.Called(ctx, sent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.Notification), args.Error(1)
}

//nolint:revive
func (m *MockNotificationLogService) ListByChannel(ctx context.Context, channel string) ([]*storage.Notification, error) {
	args := m.Called(ctx, channel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.Notification), args.Error(1)
}

//nolint:revive
func (m *MockNotificationLogService) ListForUser(ctx context.Context, userID int64) ([]*storage.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.Notification), args.Error(1)
}

//nolint:revive
func (m *MockNotificationLogService) Stats(ctx context.Context) (*storage.NotificationStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.NotificationStats), args.Error(1)
}
