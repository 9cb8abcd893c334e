package response

import (
	"time"

	"event-booking/internal/data/entity"
)

type BookingResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type BookingWithEventResponse struct {
	BookingResponse
	Event EventResponse `json:"event"`
}

// BookingStatusResponse answers "is this user booked on this event"; a
// missing booking is an explicit negative, not an error.
type BookingStatusResponse struct {
	Booked  bool             `json:"booked"`
	Booking *BookingResponse `json:"booking,omitempty"`
}

func BookingToResponse(booking *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:        booking.ID.String(),
		EventID:   booking.EventID.String(),
		UserID:    booking.UserID,
		CreatedAt: booking.CreatedAt,
	}
}

func BookingWithEventToResponse(bw *entity.BookingWithEvent) BookingWithEventResponse {
	return BookingWithEventResponse{
		BookingResponse: BookingToResponse(&bw.Booking),
		Event:           EventToResponse(&bw.Event),
	}
}
