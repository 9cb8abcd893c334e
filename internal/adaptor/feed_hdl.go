package adaptor

import (
	"encoding/json"
	"fmt"
	"net/http"

	"event-booking/internal/feed"
	"event-booking/pkg/utils"

	"go.uber.org/zap"
)

type FeedHandler struct {
	bus *feed.Bus
	log *zap.Logger
}

func NewFeedHandler(bus *feed.Bus, log *zap.Logger) *FeedHandler {
	return &FeedHandler{
		bus: bus,
		log: log.With(zap.String("handler", "feed")),
	}
}

// StreamEvents handles GET /api/events/feed (public). Streams event changes
// as server-sent events until the client disconnects; the subscription is
// released with the request context. An optional event_id query param
// narrows the stream to one event.
func (h *FeedHandler) StreamEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.ResponseInternalError(w, "Streaming not supported")
		return
	}

	eventID := r.URL.Query().Get("event_id")
	ctx := r.Context()

	changes, err := h.bus.Subscribe(ctx, eventID)
	if err != nil {
		h.log.Error("Failed to subscribe to event feed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	h.log.Info("Feed subscriber connected",
		zap.String("event_id", eventID),
		zap.String("remote", r.RemoteAddr),
	)

	for {
		select {
		case <-ctx.Done():
			h.log.Info("Feed subscriber disconnected", zap.String("remote", r.RemoteAddr))
			return
		case change, ok := <-changes:
			if !ok {
				return
			}

			payload, err := json.Marshal(change)
			if err != nil {
				h.log.Warn("Failed to encode event change", zap.Error(err))
				continue
			}

			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
