package storage

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Category is the topic of a message. Users subscribe to categories.
type Category string

// Category constants. The set is closed; ParseCategory rejects anything else.
const (
	CategorySports  Category = "SPORTS"
	CategoryFinance Category = "FINANCE"
	CategoryMovies  Category = "MOVIES"
)

// Categories returns every known category in declaration order.
func Categories() []Category {
	return []Category{CategorySports, CategoryFinance, CategoryMovies}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategorySports, CategoryFinance, CategoryMovies:
		return true
	}
	return false
}

// ParseCategory converts a case-insensitive name into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// Message is a piece of content published into a category. It is immutable
// once saved.
type Message struct {
	ID        int64     `json:"id"`
	Category  Category  `json:"category"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageStore defines the persistence interface for messages.
type MessageStore interface {
	// SaveMessage inserts a new message, assigning its ID and creation time.
	SaveMessage(ctx context.Context, msg *Message) (*Message, error)
	// GetMessage returns the message with the given ID, or nil if not found.
	GetMessage(ctx context.Context, id int64) (*Message, error)
	// ListMessages returns all messages, newest first.
	ListMessages(ctx context.Context) ([]*Message, error)
	// ListMessagesByCategory returns the messages of one category, newest first.
	ListMessagesByCategory(ctx context.Context, category Category) ([]*Message, error)
}
