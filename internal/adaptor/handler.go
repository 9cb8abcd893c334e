package adaptor

import (
	"event-booking/internal/feed"
	"event-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Event    *EventHandler
	Booking  *BookingHandler
	Nickname *NicknameHandler
	Feed     *FeedHandler
}

func NewHandler(service *usecase.Service, bus *feed.Bus, log *zap.Logger) *Handler {
	return &Handler{
		Event:    NewEventHandler(service.Event, log),
		Booking:  NewBookingHandler(service.Booking, log),
		Nickname: NewNicknameHandler(service.Nickname, log),
		Feed:     NewFeedHandler(bus, log),
	}
}
