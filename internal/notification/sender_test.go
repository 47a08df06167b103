package notification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaharia-lab/fanout/internal/notification"
	"github.com/shaharia-lab/fanout/internal/storage"
)

func newSenders(t *testing.T, tr notification.Transport) (email, sms, push notification.ChannelSender) {
	t.Helper()
	e, err := notification.NewEmailSender(tr, discardLogger())
	require.NoError(t, err)
	s, err := notification.NewSMSSender(tr, discardLogger())
	require.NoError(t, err)
	p, err := notification.NewPushSender(tr, discardLogger())
	require.NoError(t, err)
	return e, s, p
}

func TestSenders_Channel(t *testing.T) {
	email, sms, push := newSenders(t, &stubTransport{})
	assert.Equal(t, storage.ChannelEmail, email.Channel())
	assert.Equal(t, storage.ChannelSMS, sms.Channel())
	assert.Equal(t, storage.ChannelPush, push.Channel())
}

func TestSenders_CanDeliver(t *testing.T) {
	email, sms, push := newSenders(t, &stubTransport{})
	all := []storage.Channel{storage.ChannelEmail, storage.ChannelSMS, storage.ChannelPush}
	cats := []storage.Category{storage.CategorySports}

	noEmail := newUser(1, cats, all...)
	noEmail.Email = ""
	noPhone := newUser(1, cats, all...)
	noPhone.PhoneNumber = ""
	unsaved := newUser(0, cats, all...)

	tests := []struct {
		name   string
		sender notification.ChannelSender
		user   *storage.User
		want   bool
	}{
		{"email nil user", email, nil, false},
		{"email not opted in", email, newUser(1, cats, storage.ChannelSMS), false},
		{"email missing address", email, noEmail, false},
		{"email eligible", email, newUser(1, cats, all...), true},
		{"sms missing phone", sms, noPhone, false},
		{"sms eligible without email", sms, noEmail, true},
		{"sms not opted in", sms, newUser(1, cats, storage.ChannelEmail), false},
		{"push unsaved user", push, unsaved, false},
		{"push eligible without contacts", push, func() *storage.User {
			u := newUser(5, cats, storage.ChannelPush)
			u.Email, u.PhoneNumber = "", ""
			return u
		}(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sender.CanDeliver(tt.user))
			// Repeated calls give the same answer.
			assert.Equal(t, tt.want, tt.sender.CanDeliver(tt.user))
		})
	}
}

func TestSend_Envelopes(t *testing.T) {
	msg := sportsMessage()
	user := newUser(42, []storage.Category{storage.CategorySports},
		storage.ChannelEmail, storage.ChannelSMS, storage.ChannelPush)

	tests := []struct {
		channel storage.Channel
		want    notification.Envelope
	}{
		{storage.ChannelEmail, notification.Envelope{
			Channel: storage.ChannelEmail, To: "user@example.com",
			Subject: "Notification: SPORTS", Body: "match tonight",
		}},
		{storage.ChannelSMS, notification.Envelope{
			Channel: storage.ChannelSMS, To: "+15550100", Body: "match tonight",
		}},
		{storage.ChannelPush, notification.Envelope{
			Channel: storage.ChannelPush, To: "42", Subject: "SPORTS", Body: "match tonight",
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.channel), func(t *testing.T) {
			tr := &stubTransport{}
			email, sms, push := newSenders(t, tr)
			sender := map[storage.Channel]notification.ChannelSender{
				storage.ChannelEmail: email,
				storage.ChannelSMS:   sms,
				storage.ChannelPush:  push,
			}[tt.channel]

			before := time.Now().UTC().Add(-time.Second)
			n := &storage.Notification{ID: 1, Message: msg, User: user, Channel: tt.channel}
			require.True(t, sender.Send(context.Background(), n))

			assert.True(t, n.Sent)
			require.NotNil(t, n.SentAt)
			assert.True(t, n.SentAt.After(before))
			require.Len(t, tr.sent(), 1)
			assert.Equal(t, tt.want, tr.sent()[0])
		})
	}
}

func TestSend_TransportErrorLeavesNotificationUnsent(t *testing.T) {
	tr := &stubTransport{err: errors.New("connection refused")}
	email, _, _ := newSenders(t, tr)
	n := &storage.Notification{
		ID:      1,
		Message: sportsMessage(),
		User:    newUser(1, nil, storage.ChannelEmail),
		Channel: storage.ChannelEmail,
	}

	assert.False(t, email.Send(context.Background(), n))
	assert.False(t, n.Sent)
	assert.Nil(t, n.SentAt)
}

func TestSend_TransportPanicIsContained(t *testing.T) {
	tr := &stubTransport{panicWith: "boom"}
	_, sms, _ := newSenders(t, tr)
	n := &storage.Notification{
		ID:      1,
		Message: sportsMessage(),
		User:    newUser(1, nil, storage.ChannelSMS),
		Channel: storage.ChannelSMS,
	}

	var ok bool
	require.NotPanics(t, func() { ok = sms.Send(context.Background(), n) })
	assert.False(t, ok)
	assert.False(t, n.Sent)
	assert.Nil(t, n.SentAt)
}

func TestSend_RejectsMismatchedOrIneligible(t *testing.T) {
	tr := &stubTransport{}
	email, _, push := newSenders(t, tr)
	user := newUser(1, nil, storage.ChannelEmail)

	t.Run("channel mismatch", func(t *testing.T) {
		n := &storage.Notification{ID: 1, Message: sportsMessage(), User: user, Channel: storage.ChannelPush}
		assert.False(t, email.Send(context.Background(), n))
		assert.False(t, n.Sent)
	})

	t.Run("user not opted in", func(t *testing.T) {
		n := &storage.Notification{ID: 2, Message: sportsMessage(), User: user, Channel: storage.ChannelPush}
		assert.False(t, push.Send(context.Background(), n))
		assert.False(t, n.Sent)
	})

	t.Run("nil notification", func(t *testing.T) {
		assert.False(t, email.Send(context.Background(), nil))
	})

	assert.Empty(t, tr.sent())
}

func TestNewSender_NilTransport(t *testing.T) {
	_, err := notification.NewEmailSender(nil, discardLogger())
	var cfgErr *notification.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Error(), "EMAIL")

	_, err = notification.NewSMSSender(nil, nil)
	require.ErrorAs(t, err, &cfgErr)
	_, err = notification.NewPushSender(nil, nil)
	require.ErrorAs(t, err, &cfgErr)
}
