package entity

import (
	"time"
)

// Event is a hostable, capacity-limited happening. OwnerID is the identity
// provider's opaque user id and is immutable after creation. BookedCount is a
// denormalized running total of active bookings, maintained by the booking
// usecase; 0 <= booked_count <= max_guests.
type Event struct {
	BaseSimple
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Location    string    `db:"location"`
	Latitude    *float64  `db:"latitude"`
	Longitude   *float64  `db:"longitude"`
	Date        time.Time `db:"date"`
	OwnerID     string    `db:"owner_id"`
	MaxGuests   int       `db:"max_guests"`
	BookedCount int       `db:"booked_count"`
	ImageURL    string    `db:"image_url"`
}
