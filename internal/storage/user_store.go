package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Channel is a delivery mechanism a user can opt into.
type Channel string

// Channel constants. The set is closed; ParseChannel rejects anything else.
const (
	ChannelEmail Channel = "EMAIL"
	ChannelSMS   Channel = "SMS"
	ChannelPush  Channel = "PUSH"
)

// legacyPushChannel is the name older clients use for ChannelPush.
const legacyPushChannel = "PUSH_NOTIFICATION"

// Channels returns every known channel in declaration order.
func Channels() []Channel {
	return []Channel{ChannelEmail, ChannelSMS, ChannelPush}
}

// Valid reports whether c is one of the known channels.
func (c Channel) Valid() bool {
	switch c {
	case ChannelEmail, ChannelSMS, ChannelPush:
		return true
	}
	return false
}

// ParseChannel converts a case-insensitive name into a Channel.
func ParseChannel(s string) (Channel, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == legacyPushChannel {
		return ChannelPush, nil
	}
	c := Channel(name)
	if !c.Valid() {
		return "", fmt.Errorf("unknown channel %q", s)
	}
	return c, nil
}

// CategorySet is an unordered set of categories.
type CategorySet map[Category]struct{}

// NewCategorySet builds a set from the given categories.
func NewCategorySet(categories ...Category) CategorySet {
	s := make(CategorySet, len(categories))
	for _, c := range categories {
		s[c] = struct{}{}
	}
	return s
}

// Has reports membership. A nil set contains nothing.
func (s CategorySet) Has(c Category) bool {
	_, ok := s[c]
	return ok
}

// Sorted returns the members in lexical order.
func (s CategorySet) Sorted() []Category {
	out := make([]Category, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MarshalJSON encodes the set as a sorted array.
func (s CategorySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array of category names.
func (s *CategorySet) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return err
	}
	set := make(CategorySet, len(names))
	for _, n := range names {
		c, err := ParseCategory(n)
		if err != nil {
			return err
		}
		set[c] = struct{}{}
	}
	*s = set
	return nil
}

// ChannelSet is an unordered set of channels.
type ChannelSet map[Channel]struct{}

// NewChannelSet builds a set from the given channels.
func NewChannelSet(channels ...Channel) ChannelSet {
	s := make(ChannelSet, len(channels))
	for _, c := range channels {
		s[c] = struct{}{}
	}
	return s
}

// Has reports membership. A nil set contains nothing.
func (s ChannelSet) Has(c Channel) bool {
	_, ok := s[c]
	return ok
}

// Sorted returns the members in lexical order.
func (s ChannelSet) Sorted() []Channel {
	out := make([]Channel, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// MarshalJSON encodes the set as a sorted array.
func (s ChannelSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array of channel names.
func (s *ChannelSet) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return err
	}
	set := make(ChannelSet, len(names))
	for _, n := range names {
		c, err := ParseChannel(n)
		if err != nil {
			return err
		}
		set[c] = struct{}{}
	}
	*s = set
	return nil
}

// User is a recipient. Email and PhoneNumber are optional; an empty string
// means the contact is not known.
type User struct {
	ID            int64       `json:"id"`
	Name          string      `json:"name"`
	Email         string      `json:"email,omitempty"`
	PhoneNumber   string      `json:"phone_number,omitempty"`
	Subscriptions CategorySet `json:"subscriptions"`
	Channels      ChannelSet  `json:"channels"`
}

// UserStore defines the persistence interface for users and their
// subscriptions.
type UserStore interface {
	// SaveUser inserts the user when ID is zero, otherwise replaces the
	// stored row and its subscription and channel sets.
	SaveUser(ctx context.Context, user *User) (*User, error)
	// GetUser returns the user with the given ID, or nil if not found.
	GetUser(ctx context.Context, id int64) (*User, error)
	// ListUsers returns all users ordered by ID.
	ListUsers(ctx context.Context) ([]*User, error)
	// FindUsersBySubscription returns the users subscribed to category,
	// ordered by ID.
	FindUsersBySubscription(ctx context.Context, category Category) ([]*User, error)
}
