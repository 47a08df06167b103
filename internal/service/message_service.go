package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shaharia-lab/fanout/internal/eventbus"
	"github.com/shaharia-lab/fanout/internal/storage"
)

// Dispatcher fans a message out to a set of users. It is satisfied by
// *notification.Dispatcher.
type Dispatcher interface {
	ProcessNotifications(ctx context.Context, msg *storage.Message, users []*storage.User) []*storage.Notification
}

// MessageService publishes messages and exposes the message history.
type MessageService interface {
	// CreateMessage saves a new message and delivers it to every subscriber of
	// its category. Delivery failures are recorded, not returned.
	CreateMessage(ctx context.Context, category, content string) (*storage.Message, error)
	ListMessages(ctx context.Context) ([]*storage.Message, error)
	GetMessage(ctx context.Context, id int64) (*storage.Message, error)
	ListByCategory(ctx context.Context, category string) ([]*storage.Message, error)
	// CountSent returns how many notifications of a message were delivered.
	CountSent(ctx context.Context, messageID int64) (int64, error)
}

type messageService struct {
	messages      storage.MessageStore
	users         storage.UserStore
	notifications storage.NotificationStore
	dispatcher    Dispatcher
	publisher     EventPublisher
	logger        *slog.Logger
}

// NewMessageService returns a MessageService. publisher may be nil.
func NewMessageService(
	messages storage.MessageStore,
	users storage.UserStore,
	notifications storage.NotificationStore,
	dispatcher Dispatcher,
	publisher EventPublisher,
	logger *slog.Logger,
) MessageService {
	return &messageService{
		messages:      messages,
		users:         users,
		notifications: notifications,
		dispatcher:    dispatcher,
		publisher:     publisher,
		logger:        logger,
	}
}

func (s *messageService) CreateMessage(ctx context.Context, category, content string) (*storage.Message, error) {
	cat, err := parseCategory(category)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, &ValidationError{Field: "content", Message: "content is required"}
	}

	msg, err := s.messages.SaveMessage(ctx, &storage.Message{Category: cat, Content: content})
	if err != nil {
		return nil, fmt.Errorf("saving message: %w", err)
	}

	users, err := s.users.FindUsersBySubscription(ctx, cat)
	if err != nil {
		return nil, fmt.Errorf("finding subscribers of %s: %w", cat, err)
	}

	delivered := s.dispatcher.ProcessNotifications(ctx, msg, users)
	s.logger.Info("message dispatched",
		"id", msg.ID,
		"category", string(cat),
		"recipients", len(users),
		"delivered", len(delivered),
	)

	if s.publisher != nil {
		s.publisher.Publish(eventbus.EventMessageDispatched, map[string]string{
			"message_id": strconv.FormatInt(msg.ID, 10),
			"category":   string(cat),
			"recipients": strconv.Itoa(len(users)),
			"delivered":  strconv.Itoa(len(delivered)),
		})
	}
	return msg, nil
}

func (s *messageService) ListMessages(ctx context.Context) ([]*storage.Message, error) {
	messages, err := s.messages.ListMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	return messages, nil
}

func (s *messageService) GetMessage(ctx context.Context, id int64) (*storage.Message, error) {
	msg, err := s.messages.GetMessage(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting message %d: %w", id, err)
	}
	if msg == nil {
		return nil, &NotFoundError{Resource: "message", ID: strconv.FormatInt(id, 10)}
	}
	return msg, nil
}

func (s *messageService) ListByCategory(ctx context.Context, category string) ([]*storage.Message, error) {
	cat, err := parseCategory(category)
	if err != nil {
		return nil, err
	}
	messages, err := s.messages.ListMessagesByCategory(ctx, cat)
	if err != nil {
		return nil, fmt.Errorf("listing %s messages: %w", cat, err)
	}
	return messages, nil
}

func (s *messageService) CountSent(ctx context.Context, messageID int64) (int64, error) {
	count, err := s.notifications.CountSentForMessage(ctx, messageID)
	if err != nil {
		return 0, fmt.Errorf("counting sent notifications: %w", err)
	}
	return count, nil
}

func parseCategory(category string) (storage.Category, error) {
	if strings.TrimSpace(category) == "" {
		return "", &ValidationError{Field: "category", Message: "category is required"}
	}
	cat, err := storage.ParseCategory(category)
	if err != nil {
		return "", &ValidationError{Field: "category", Message: err.Error()}
	}
	return cat, nil
}
