package entity

import (
	"github.com/google/uuid"
)

// Booking links one user to one event. At most one booking may exist per
// (event_id, user_id) pair.
type Booking struct {
	BaseSimple
	EventID uuid.UUID `db:"event_id"`
	UserID  string    `db:"user_id"`
}

// BookingWithEvent is a booking joined with its event for history listings.
type BookingWithEvent struct {
	Booking
	Event Event
}
