package usecase

import "errors"

// Failure taxonomy surfaced by the services. Handlers map these to HTTP
// status codes with errors.Is; anything else is a transport/unknown failure.
var (
	// ErrNotFound - the referenced event or booking does not exist
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized - ownership mismatch on the requested record
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAlreadyBooked - the user already holds a booking for this event
	ErrAlreadyBooked = errors.New("already booked")

	// ErrSoldOut - the event has no free spots left
	ErrSoldOut = errors.New("sold out")
)
