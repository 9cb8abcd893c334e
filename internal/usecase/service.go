package usecase

import (
	"event-booking/internal/data/repository"
	"event-booking/internal/feed"
	"event-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Event    EventService
	Booking  BookingService
	Nickname NicknameService
}

func NewService(repo *repository.Repository, bus *feed.Bus, events UpcomingCache, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Event:    NewEventService(repo, bus, events, log),
		Booking:  NewBookingService(repo, bus, log),
		Nickname: NewNicknameService(config.Nickname, log),
	}
}
