package notification

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shaharia-lab/fanout/internal/storage"
	"github.com/shaharia-lab/fanout/internal/storage/mocks"
)

type countingTransport struct{ err error }

func (c countingTransport) Name() string { return "counting" }

func (c countingTransport) Transmit(context.Context, Envelope) error { return c.err }

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.observeAttempt(storage.ChannelEmail)
		m.observeResult(storage.ChannelEmail, true)
	})
}

func TestDispatcher_RecordsMetrics(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	email, err := NewEmailSender(countingTransport{}, logger)
	require.NoError(t, err)
	sms, err := NewSMSSender(countingTransport{err: errors.New("rejected")}, logger)
	require.NoError(t, err)
	push, err := NewPushSender(countingTransport{}, logger)
	require.NoError(t, err)

	store := &mocks.MockNotificationStore{}
	store.On("SaveNotification", mock.Anything, mock.Anything).Return(nil, nil)

	d, err := NewDispatcher(store, logger, []ChannelSender{email, sms, push}, WithMetrics(metrics))
	require.NoError(t, err)

	user := &storage.User{
		ID:            3,
		Email:         "a@example.com",
		PhoneNumber:   "+15550101",
		Subscriptions: storage.NewCategorySet(storage.CategoryMovies),
		Channels:      storage.NewChannelSet(storage.ChannelEmail, storage.ChannelSMS),
	}
	msg := &storage.Message{ID: 1, Category: storage.CategoryMovies, Content: "trailer"}
	d.ProcessNotifications(context.Background(), msg, []*storage.User{user})

	assert.InDelta(t, 1, testutil.ToFloat64(metrics.attempted.WithLabelValues("EMAIL")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.attempted.WithLabelValues("SMS")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.sent.WithLabelValues("EMAIL")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(metrics.sent.WithLabelValues("SMS")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.failed.WithLabelValues("SMS")), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(metrics.attempted.WithLabelValues("PUSH")), 0)

	count, err := testutil.GatherAndCount(reg, "fanout_notifications_attempted_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}
