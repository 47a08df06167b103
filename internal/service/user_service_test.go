package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shaharia-lab/fanout/internal/config"
	"github.com/shaharia-lab/fanout/internal/eventbus"
	"github.com/shaharia-lab/fanout/internal/service"
	svcmocks "github.com/shaharia-lab/fanout/internal/service/mocks"
	"github.com/shaharia-lab/fanout/internal/storage"
	"github.com/shaharia-lab/fanout/internal/storage/mocks"
)

func TestImportUsers(t *testing.T) {
	store := new(mocks.MockUserStore)
	publisher := new(svcmocks.MockEventPublisher)

	store.On("ListUsers", mock.Anything).Return([]*storage.User{
		{ID: 1, Name: "Existing", Email: "ana@example.com"},
	}, nil)
	var saved []*storage.User
	store.On("SaveUser", mock.Anything, mock.AnythingOfType("*storage.User")).
		Run(func(args mock.Arguments) {
			saved = append(saved, args.Get(1).(*storage.User))
		}).
		Return(&storage.User{}, nil)
	publisher.On("Publish", eventbus.EventUsersSeeded, map[string]string{"count": "2"}).Return()

	svc := service.NewUserService(store, publisher, discardLogger())
	created, err := svc.ImportUsers(context.Background(), []config.UserFixture{
		{Name: "Ana again", Email: "ANA@example.com", Subscriptions: []string{"SPORTS"}, Channels: []string{"EMAIL"}},
		{Name: "Bo", Email: "bo@example.com", PhoneNumber: " +15550100 ", Subscriptions: []string{"finance", "MOVIES"}, Channels: []string{"sms", "PUSH_NOTIFICATION"}},
		{Name: "Cy", Subscriptions: []string{"MOVIES"}, Channels: []string{"PUSH"}},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, created)
	require.Len(t, saved, 2)
	assert.Equal(t, "Bo", saved[0].Name)
	assert.Equal(t, "+15550100", saved[0].PhoneNumber)
	assert.True(t, saved[0].Subscriptions.Has(storage.CategoryFinance))
	assert.True(t, saved[0].Channels.Has(storage.ChannelPush))
	assert.True(t, saved[0].Channels.Has(storage.ChannelSMS))
	assert.Equal(t, "Cy", saved[1].Name)
	publisher.AssertExpectations(t)
}

func TestImportUsers_ValidationStopsEverything(t *testing.T) {
	tests := []struct {
		name    string
		fixture config.UserFixture
	}{
		{"missing name", config.UserFixture{Name: " "}},
		{"unknown category", config.UserFixture{Name: "A", Subscriptions: []string{"GOSSIP"}}},
		{"unknown channel", config.UserFixture{Name: "A", Channels: []string{"FAX"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mocks.MockUserStore)
			svc := service.NewUserService(store, nil, discardLogger())

			_, err := svc.ImportUsers(context.Background(), []config.UserFixture{
				{Name: "Valid"},
				tt.fixture,
			})

			var valErr *service.ValidationError
			require.ErrorAs(t, err, &valErr)
			assert.Equal(t, "users[1]", valErr.Field)
			store.AssertNotCalled(t, "SaveUser", mock.Anything, mock.Anything)
		})
	}
}

func TestImportUsers_SaveError(t *testing.T) {
	store := new(mocks.MockUserStore)
	store.On("ListUsers", mock.Anything).Return([]*storage.User{}, nil)
	store.On("SaveUser", mock.Anything, mock.Anything).Return(&storage.User{}, nil).Once()
	store.On("SaveUser", mock.Anything, mock.Anything).Return(nil, errors.New("constraint")).Once()

	svc := service.NewUserService(store, nil, discardLogger())
	created, err := svc.ImportUsers(context.Background(), []config.UserFixture{
		{Name: "One"}, {Name: "Two"},
	})

	require.Error(t, err)
	assert.Equal(t, 1, created)
}

func TestGetUser(t *testing.T) {
	store := new(mocks.MockUserStore)
	store.On("GetUser", mock.Anything, int64(1)).Return(&storage.User{ID: 1}, nil)
	store.On("GetUser", mock.Anything, int64(2)).Return(nil, nil)

	svc := service.NewUserService(store, nil, discardLogger())

	u, err := svc.GetUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)

	_, err = svc.GetUser(context.Background(), 2)
	var nf *service.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "user", nf.Resource)
}

func TestListUsers_Error(t *testing.T) {
	store := new(mocks.MockUserStore)
	store.On("ListUsers", mock.Anything).Return(nil, errors.New("db error"))

	_, err := service.NewUserService(store, nil, discardLogger()).ListUsers(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing users")
}
