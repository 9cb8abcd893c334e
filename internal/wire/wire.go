package wire

import (
	"net/http"

	"event-booking/internal/adaptor"
	"event-booking/internal/data/repository"
	"event-booking/internal/feed"
	"event-booking/internal/usecase"
	"event-booking/pkg/middleware"
	"event-booking/pkg/utils"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the assembled application
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies
func Wiring(repo *repository.Repository, bus *feed.Bus, events usecase.UpcomingCache, jwks *keyfunc.JWKS, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, bus, events, config, logger)
	handler := adaptor.NewHandler(service, bus, logger)

	router := setupRouter(handler, jwks, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the chi router
func setupRouter(
	handler *adaptor.Handler,
	jwks *keyfunc.JWKS,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireEvent(r, handler.Event, handler.Feed, jwks, config, logger)
	wireBooking(r, handler.Booking, jwks, config, logger)
	wireNickname(r, handler.Nickname)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
