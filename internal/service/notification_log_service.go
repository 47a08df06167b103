package service

import (
	"context"
	"fmt"
	"math"

	"github.com/shaharia-lab/fanout/internal/storage"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// NotificationPage is one page of the notification log.
type NotificationPage struct {
	Notifications []*storage.Notification `json:"notifications"`
	CurrentPage   int                     `json:"current_page"`
	TotalItems    int64                   `json:"total_items"`
	TotalPages    int                     `json:"total_pages"`
}

// NotificationLogService gives read access to recorded delivery attempts.
type NotificationLogService interface {
	// List returns a page of notifications, newest first. page is zero-based;
	// size defaults to 10 and is capped at 100.
	List(ctx context.Context, page, size int) (*NotificationPage, error)
	ListBySent(ctx context.Context, sent bool) ([]*storage.Notification, error)
	ListByChannel(ctx context.Context, channel string) ([]*storage.Notification, error)
	ListForUser(ctx context.Context, userID int64) ([]*storage.Notification, error)
	Stats(ctx context.Context) (*storage.NotificationStats, error)
}

type notificationLogService struct {
	store storage.NotificationStore
}

// NewNotificationLogService returns a NotificationLogService backed by store.
func NewNotificationLogService(store storage.NotificationStore) NotificationLogService {
	return &notificationLogService{store: store}
}

func (s *notificationLogService) List(ctx context.Context, page, size int) (*NotificationPage, error) {
	if page < 0 {
		return nil, &ValidationError{Field: "page", Message: "page must not be negative"}
	}
	switch {
	case size <= 0:
		size = defaultPageSize
	case size > maxPageSize:
		size = maxPageSize
	}

	if page > math.MaxInt/size {
		return nil, &ValidationError{Field: "page", Message: "page is out of range"}
	}

	total, err := s.store.CountNotifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting notifications: %w", err)
	}
	items, err := s.store.ListNotifications(ctx, size, page*size)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}

	return &NotificationPage{
		Notifications: items,
		CurrentPage:   page,
		TotalItems:    total,
		TotalPages:    int((total + int64(size) - 1) / int64(size)),
	}, nil
}

func (s *notificationLogService) ListBySent(ctx context.Context, sent bool) ([]*storage.Notification, error) {
	items, err := s.store.ListNotificationsBySent(ctx, sent)
	if err != nil {
		return nil, fmt.Errorf("listing notifications by sent=%t: %w", sent, err)
	}
	return items, nil
}

func (s *notificationLogService) ListByChannel(ctx context.Context, channel string) ([]*storage.Notification, error) {
	ch, err := storage.ParseChannel(channel)
	if err != nil {
		return nil, &ValidationError{Field: "channel", Message: err.Error()}
	}
	items, err := s.store.ListNotificationsByChannel(ctx, ch)
	if err != nil {
		return nil, fmt.Errorf("listing %s notifications: %w", ch, err)
	}
	return items, nil
}

func (s *notificationLogService) ListForUser(ctx context.Context, userID int64) ([]*storage.Notification, error) {
	items, err := s.store.ListNotificationsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing notifications of user %d: %w", userID, err)
	}
	return items, nil
}

func (s *notificationLogService) Stats(ctx context.Context) (*storage.NotificationStats, error) {
	stats, err := s.store.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("computing notification stats: %w", err)
	}
	return stats, nil
}
