package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/shaharia-lab/fanout/internal/storage"
)

// MockMessageService is a mock implementation of service.MessageService.
type MockMessageService struct {
	mock.Mock
}

//nolint:revive
func (m *MockMessageService) CreateMessage(ctx context.Context, category, content string) (*storage.Message, error) {
	args := m.Called(ctx, category, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Message), args.Error(1)
}

//nolint:revive
func (m *MockMessageService) ListMessages(ctx context.Context) ([]*storage.Message, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.Message), args.Error(1)
}

//nolint:revive
func (m *MockMessageService) GetMessage(ctx context.Context, id int64) (*storage.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Message), args.Error(1)
}

//nolint:revive
func (m *MockMessageService) ListByCategory(ctx context.Context, category string) ([]*storage.Message, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.Message), args.Error(1)
}

//nolint:revive
func (m *MockMessageService) CountSent(ctx context.Context, messageID int64) (int64, error) {
	args := m.Called(ctx, messageID)
	return args.Get(0).(int64), args.Error(1)
}
