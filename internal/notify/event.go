// Package notify fans domain events out to connected viewers and the durable
// event stream. Publishing is best-effort everywhere: a fan-out failure must
// never fail or roll back the business operation that produced the event.
package notify

import (
	"context"
	"time"
)

// Kind names a domain event.
type Kind string

const (
	KindNewDonation Kind = "new_donation"
	KindNewChild    Kind = "new_child"
	KindLogin       Kind = "login"
)

// Event is the envelope broadcast to all sinks.
type Event struct {
	Kind    Kind           `json:"kind"`
	At      time.Time      `json:"at"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Publisher broadcasts one event.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
