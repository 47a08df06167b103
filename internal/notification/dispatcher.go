package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/shaharia-lab/fanout/internal/storage"
)

var tracer = otel.Tracer("github.com/shaharia-lab/fanout/internal/notification")

// Dispatcher fans a message out to every eligible (user, channel) pair and
// records each attempt in the notification store.
type Dispatcher struct {
	store       storage.NotificationStore
	senders     map[storage.Channel]ChannelSender
	logger      *slog.Logger
	metrics     *Metrics
	concurrency int
	now         func() time.Time
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithConcurrency processes up to n users in parallel. Values below 2 keep
// processing sequential.
func WithConcurrency(n int) DispatcherOption {
	return func(d *Dispatcher) { d.concurrency = n }
}

// WithMetrics records attempt outcomes on m.
func WithMetrics(m *Metrics) DispatcherOption {
	return func(d *Dispatcher) { d.metrics = m }
}

// NewDispatcher builds a Dispatcher from one sender per channel. Every known
// channel must have exactly one sender.
func NewDispatcher(
	store storage.NotificationStore,
	logger *slog.Logger,
	senders []ChannelSender,
	opts ...DispatcherOption,
) (*Dispatcher, error) {
	if store == nil {
		return nil, &ConfigError{Reason: "dispatcher has no notification store"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	byChannel := make(map[storage.Channel]ChannelSender, len(senders))
	for _, s := range senders {
		if s == nil {
			return nil, &ConfigError{Reason: "nil channel sender"}
		}
		ch := s.Channel()
		if !ch.Valid() {
			return nil, &ConfigError{Reason: fmt.Sprintf("sender declares unknown channel %q", ch)}
		}
		if _, dup := byChannel[ch]; dup {
			return nil, &ConfigError{Reason: fmt.Sprintf("more than one sender for channel %s", ch)}
		}
		byChannel[ch] = s
	}
	for _, ch := range storage.Channels() {
		if _, ok := byChannel[ch]; !ok {
			return nil, &ConfigError{Reason: fmt.Sprintf("no sender for channel %s", ch)}
		}
	}

	d := &Dispatcher{
		store:       store,
		senders:     byChannel,
		logger:      logger.With("component", "dispatcher"),
		concurrency: 1,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// ProcessNotifications delivers msg to every user subscribed to its category
// over each channel they can receive, and returns the notifications that were
// delivered. Failed attempts stay recorded with sent=false and are not
// returned.
func (d *Dispatcher) ProcessNotifications(ctx context.Context, msg *storage.Message, users []*storage.User) []*storage.Notification {
	delivered := make([]*storage.Notification, 0)
	if msg == nil || len(users) == 0 {
		return delivered
	}

	ctx, span := tracer.Start(ctx, "notification.dispatch", trace.WithAttributes(
		attribute.Int64("message.id", msg.ID),
		attribute.String("message.category", string(msg.Category)),
		attribute.Int("users", len(users)),
	))
	defer func() {
		span.SetAttributes(attribute.Int("delivered", len(delivered)))
		span.End()
	}()

	if d.concurrency <= 1 {
		for _, u := range users {
			delivered = append(delivered, d.processUser(ctx, msg, u)...)
		}
		return delivered
	}

	// Pairs never fail the group; each user's outcome is recorded on its own.
	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(d.concurrency)
	for _, u := range users {
		g.Go(func() error {
			out := d.processUser(ctx, msg, u)
			if len(out) == 0 {
				return nil
			}
			mu.Lock()
			delivered = append(delivered, out...)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return delivered
}

func (d *Dispatcher) processUser(ctx context.Context, msg *storage.Message, u *storage.User) []*storage.Notification {
	if u == nil || !u.Subscriptions.Has(msg.Category) {
		return nil
	}

	var delivered []*storage.Notification
	for ch := range u.Channels {
		sender, ok := d.senders[ch]
		if !ok || !sender.CanDeliver(u) {
			continue
		}
		if n := d.deliver(ctx, sender, msg, u); n != nil {
			delivered = append(delivered, n)
		}
	}
	return delivered
}

// deliver records the attempt, sends it and records the outcome. It returns
// the notification only when it was delivered.
func (d *Dispatcher) deliver(ctx context.Context, sender ChannelSender, msg *storage.Message, u *storage.User) *storage.Notification {
	ch := sender.Channel()
	ctx, span := tracer.Start(ctx, "notification.deliver", trace.WithAttributes(
		attribute.String("channel", string(ch)),
		attribute.Int64("user.id", u.ID),
	))
	defer span.End()

	n := &storage.Notification{
		Message:   msg,
		User:      u,
		Channel:   ch,
		CreatedAt: d.now().UTC(),
	}

	if _, err := d.store.SaveNotification(ctx, n); err != nil {
		d.logger.ErrorContext(ctx, "recording notification attempt",
			"message_id", msg.ID, "user_id", u.ID, "channel", string(ch), "error", err)
		span.SetStatus(codes.Error, "recording attempt failed")
		return nil
	}

	d.metrics.observeAttempt(ch)
	ok := sender.Send(ctx, n)
	d.metrics.observeResult(ch, ok)
	span.SetAttributes(attribute.Bool("sent", ok))
	if !ok {
		span.SetStatus(codes.Error, "delivery failed")
		return nil
	}

	if _, err := d.store.SaveNotification(ctx, n); err != nil {
		d.logger.ErrorContext(ctx, "recording delivered notification",
			"notification_id", n.ID, "channel", string(ch), "error", err)
	}
	return n
}
