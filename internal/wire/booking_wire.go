package wire

import (
	"event-booking/internal/adaptor"
	"event-booking/pkg/middleware"
	"event-booking/pkg/utils"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	jwks *keyfunc.JWKS,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(jwks, config.Auth, log))

		// POST /api/bookings - Reserve a spot
		r.Post("/api/bookings", bookingHandler.Create)

		// DELETE /api/bookings/{id} - Cancel own booking
		r.Delete("/api/bookings/{id}", bookingHandler.Delete)

		// GET /api/bookings/{id} - Own booking with its event
		r.Get("/api/bookings/{id}", bookingHandler.GetByID)

		// GET /api/events/{id}/booking - Is the caller booked on this event
		r.Get("/api/events/{id}/booking", bookingHandler.CheckUserBooking)

		// GET /api/my/bookings - Booking history, newest first
		r.Get("/api/my/bookings", bookingHandler.ListMine)
	})
}
