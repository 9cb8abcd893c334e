package wire

import (
	"event-booking/internal/adaptor"
	"event-booking/pkg/middleware"
	"event-booking/pkg/utils"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireEvent(
	r chi.Router,
	eventHandler *adaptor.EventHandler,
	feedHandler *adaptor.FeedHandler,
	jwks *keyfunc.JWKS,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/events - Upcoming events listing
	r.Get("/api/events", eventHandler.ListUpcoming)

	// GET /api/events/feed - Realtime change feed (SSE)
	r.Get("/api/events/feed", feedHandler.StreamEvents)

	// GET /api/events/{id} - Event details
	r.Get("/api/events/{id}", eventHandler.GetByID)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(jwks, config.Auth, log))

		// POST /api/events - Create event
		r.Post("/api/events", eventHandler.Create)

		// PUT /api/events/{id} - Edit own event
		r.Put("/api/events/{id}", eventHandler.Update)

		// DELETE /api/events/{id} - Delete own event (cascades bookings)
		r.Delete("/api/events/{id}", eventHandler.Delete)

		// GET /api/my/events - Events the caller hosts
		r.Get("/api/my/events", eventHandler.ListMine)
	})
}
