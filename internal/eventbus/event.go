package eventbus

import "time"

// Event types published by the application.
const (
	// EventMessageDispatched follows every message fan-out. Payload keys:
	// message_id, category, recipients, delivered.
	EventMessageDispatched = "message.dispatched"
	// EventUsersSeeded follows a user fixture import. Payload keys: count.
	EventUsersSeeded = "users.seeded"
)

// Event represents an application event published to the bus.
type Event struct {
	Type      string            `json:"type"`
	Timestamp time.Time         `json:"timestamp"`
	Payload   map[string]string `json:"payload"`
}

// Listener is a function that handles an event.
type Listener func(Event)

// Only wraps l so it is called for events of the given type alone.
func Only(eventType string, l Listener) Listener {
	return func(e Event) {
		if e.Type == eventType {
			l(e)
		}
	}
}
