package response

import (
	"time"

	"event-booking/internal/data/entity"
)

type EventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Date        time.Time `json:"date"`
	OwnerID     string    `json:"owner_id"`
	MaxGuests   int       `json:"max_guests"`
	BookedCount int       `json:"booked_count"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func EventToResponse(event *entity.Event) EventResponse {
	return EventResponse{
		ID:          event.ID.String(),
		Title:       event.Title,
		Description: event.Description,
		Location:    event.Location,
		Latitude:    event.Latitude,
		Longitude:   event.Longitude,
		Date:        event.Date,
		OwnerID:     event.OwnerID,
		MaxGuests:   event.MaxGuests,
		BookedCount: event.BookedCount,
		ImageURL:    event.ImageURL,
		CreatedAt:   event.CreatedAt,
	}
}

func EventsToResponse(events []*entity.Event) []EventResponse {
	responses := make([]EventResponse, len(events))
	for i, event := range events {
		responses[i] = EventToResponse(event)
	}
	return responses
}
