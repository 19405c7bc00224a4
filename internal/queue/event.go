// Package queue defines the property events exchanged over the message
// broker, plus their publisher and the background consumer.
package queue

// Actions carried by PropertyEvent.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// PropertyEvent is published after every successful property mutation. It
// carries enough information for downstream consumers to log, notify or feed
// analytics without querying the primary database.
type PropertyEvent struct {
	Action     string  `json:"action"`
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	Price      float64 `json:"price"`
	Actor      string  `json:"actor"`
	OccurredAt string  `json:"occurred_at"`
}
