package repository

import (
	"event-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Event   EventRepository
	Booking BookingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Event:   NewEventRepository(db, log),
		Booking: NewBookingRepository(db, log),
	}
}
