// Package events defines the outbound event port. Lifecycle events are
// published best-effort after the owning write commits; a broker failure
// never fails the request.
package events

import (
	"context"
	"time"
)

const (
	TypeBookingConfirmed = "booking.confirmed"
	TypeBookingCancelled = "booking.cancelled"
	TypePoolCreated      = "pool.created"
)

type Event struct {
	Type       string    `json:"type"`
	Key        string    `json:"key"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Discard is used when no broker is configured.
type Discard struct{}

func (Discard) Publish(context.Context, Event) error { return nil }
