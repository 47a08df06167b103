package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/shaharia-lab/fanout/internal/storage"
)

// MockMessageStore is a mock implementation of storage.MessageStore.
type MockMessageStore struct {
	mock.Mock
}

//nolint:revive
func (m *MockMessageStore) SaveMessage(ctx context.Context, msg *storage.Message) (*storage.Message, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Message), args.Error(1)
}

//nolint:revive
func (m *MockMessageStore) GetMessage(ctx context.Context, id int64) (*storage.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.Message), args.Error(1)
}

//nolint:revive
func (m *MockMessageStore) ListMessages(ctx context.Context) ([]*storage.Message, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.Message), args.Error(1)
}

//nolint:revive
func (m *MockMessageStore) ListMessagesByCategory(ctx context.Context, category storage.Category) ([]*storage.Message, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.Message), args.Error(1)
}
