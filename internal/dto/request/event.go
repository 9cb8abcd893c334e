package request

type CreateEventRequest struct {
	Title       string   `json:"title" validate:"required,min=3,max=120"`
	Description string   `json:"description" validate:"max=2000"`
	Location    string   `json:"location" validate:"max=500"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Date        string   `json:"date" validate:"required"`
	MaxGuests   int      `json:"max_guests" validate:"required,gt=0"`
	ImageURL    string   `json:"image_url" validate:"omitempty,url"`
}

// UpdateEventRequest is a partial update; nil fields keep their stored value.
// owner_id and booked_count are never owner-editable.
type UpdateEventRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=3,max=120"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Location    *string  `json:"location,omitempty" validate:"omitempty,max=500"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Date        *string  `json:"date,omitempty"`
	MaxGuests   *int     `json:"max_guests,omitempty" validate:"omitempty,gt=0"`
	ImageURL    *string  `json:"image_url,omitempty" validate:"omitempty,url"`
}
