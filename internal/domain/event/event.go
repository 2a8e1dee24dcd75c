// Package event defines the cart domain events and their storage codec.
package event

import "time"

// Payload is one variant of a cart domain event.
type Payload interface {
	EventType() string
}

// Envelope is an immutable fact about one cart at a given stream version.
type Envelope struct {
	CartID        int64
	Version       int
	OccurredAtUTC time.Time
	CausedBy      string
	Payload       Payload
}

func (e Envelope) EventType() string {
	if e.Payload == nil {
		return ""
	}
	return e.Payload.EventType()
}
