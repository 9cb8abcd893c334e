package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"event-booking/internal/data/entity"
	"event-booking/internal/data/repository"
	"event-booking/internal/dto/request"
	"event-booking/internal/dto/response"
	"event-booking/internal/feed"
	"event-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventService interface {
	CreateEvent(ctx context.Context, ownerID string, req *request.CreateEventRequest) (*response.EventResponse, error)
	GetEventByID(ctx context.Context, eventID string) (*response.EventResponse, error)
	ListUpcomingEvents(ctx context.Context) ([]response.EventResponse, error)
	ListOwnerEvents(ctx context.Context, ownerID string) ([]response.EventResponse, error)
	UpdateEvent(ctx context.Context, ownerID, eventID string, req *request.UpdateEventRequest) (*response.EventResponse, error)
	DeleteEvent(ctx context.Context, ownerID, eventID string) error
}

// UpcomingCache holds the serialized upcoming listing between refetches.
// A nil cache disables caching entirely.
type UpcomingCache interface {
	GetUpcoming(ctx context.Context) ([]byte, bool)
	SetUpcoming(ctx context.Context, payload []byte)
	InvalidateUpcoming(ctx context.Context)
}

type eventService struct {
	repo   *repository.Repository
	bus    *feed.Bus
	events UpcomingCache
	log    *zap.Logger
}

func NewEventService(repo *repository.Repository, bus *feed.Bus, events UpcomingCache, log *zap.Logger) EventService {
	return &eventService{
		repo:   repo,
		bus:    bus,
		events: events,
		log:    log.With(zap.String("service", "event")),
	}
}

func (s *eventService) CreateEvent(ctx context.Context, ownerID string, req *request.CreateEventRequest) (*response.EventResponse, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("create event: %w", ErrUnauthorized)
	}

	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create event validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date format %s: %w", req.Date, err)
	}

	event := &entity.Event{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Date:        date,
		OwnerID:     ownerID,
		MaxGuests:   req.MaxGuests,
		BookedCount: 0,
		ImageURL:    req.ImageURL,
	}

	if err := s.repo.Event.Create(ctx, event); err != nil {
		s.log.Error("Failed to create event",
			zap.Error(err),
			zap.String("owner_id", ownerID),
		)
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.log.Info("Event created",
		zap.String("event_id", event.ID.String()),
		zap.String("owner_id", ownerID),
		zap.Int("max_guests", event.MaxGuests),
	)

	resp := response.EventToResponse(event)
	_ = s.bus.Publish(feed.EventChange{Type: feed.ChangeInsert, New: &resp})

	return &resp, nil
}

func (s *eventService) GetEventByID(ctx context.Context, eventID string) (*response.EventResponse, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", eventID, err)
	}

	event, err := s.repo.Event.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("event %s: %w", eventID, ErrNotFound)
	}

	resp := response.EventToResponse(event)
	return &resp, nil
}

// ListUpcomingEvents serves from the cache when warm; otherwise queries the
// store and repopulates it. The listing is ascending by date, date >= now.
func (s *eventService) ListUpcomingEvents(ctx context.Context) ([]response.EventResponse, error) {
	if s.events != nil {
		if payload, ok := s.events.GetUpcoming(ctx); ok {
			var cached []response.EventResponse
			if err := json.Unmarshal(payload, &cached); err == nil {
				return cached, nil
			}
			s.log.Warn("Dropping unreadable upcoming events cache entry")
			s.events.InvalidateUpcoming(ctx)
		}
	}

	events, err := s.repo.Event.FindUpcoming(ctx, time.Now())
	if err != nil {
		s.log.Error("Failed to list upcoming events", zap.Error(err))
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}

	responses := response.EventsToResponse(events)

	if s.events != nil {
		if payload, err := json.Marshal(responses); err == nil {
			s.events.SetUpcoming(ctx, payload)
		}
	}

	return responses, nil
}

func (s *eventService) ListOwnerEvents(ctx context.Context, ownerID string) ([]response.EventResponse, error) {
	events, err := s.repo.Event.FindByOwner(ctx, ownerID)
	if err != nil {
		s.log.Error("Failed to list owner events",
			zap.Error(err),
			zap.String("owner_id", ownerID),
		)
		return nil, fmt.Errorf("list owner events: %w", err)
	}

	return response.EventsToResponse(events), nil
}

func (s *eventService) UpdateEvent(ctx context.Context, ownerID, eventID string, req *request.UpdateEventRequest) (*response.EventResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update event validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", eventID, err)
	}

	event, err := s.repo.Event.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("event %s: %w", eventID, ErrNotFound)
	}
	if event.OwnerID != ownerID {
		s.log.Warn("Event update ownership mismatch",
			zap.String("event_id", eventID),
			zap.String("owner_id", event.OwnerID),
			zap.String("caller_id", ownerID),
		)
		return nil, fmt.Errorf("event %s: %w", eventID, ErrUnauthorized)
	}

	old := *event

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Latitude != nil {
		event.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		event.Longitude = req.Longitude
	}
	if req.Date != nil {
		date, err := time.Parse(time.RFC3339, *req.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date format %s: %w", *req.Date, err)
		}
		event.Date = date
	}
	if req.MaxGuests != nil {
		if *req.MaxGuests < event.BookedCount {
			return nil, fmt.Errorf("cannot reduce max_guests below booked count %d", event.BookedCount)
		}
		event.MaxGuests = *req.MaxGuests
	}
	if req.ImageURL != nil {
		event.ImageURL = *req.ImageURL
	}

	if err := s.repo.Event.Update(ctx, event); err != nil {
		s.log.Error("Failed to update event",
			zap.Error(err),
			zap.String("event_id", eventID),
		)
		return nil, fmt.Errorf("update event: %w", err)
	}

	s.log.Info("Event updated", zap.String("event_id", eventID))

	oldResp := response.EventToResponse(&old)
	newResp := response.EventToResponse(event)
	_ = s.bus.Publish(feed.EventChange{Type: feed.ChangeUpdate, New: &newResp, Old: &oldResp})

	return &newResp, nil
}

// DeleteEvent removes the event and cascades to its bookings in one
// transaction, so no booking can outlive its event.
func (s *eventService) DeleteEvent(ctx context.Context, ownerID, eventID string) error {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return fmt.Errorf("invalid event ID format %s: %w", eventID, err)
	}

	event, err := s.repo.Event.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find event: %w", err)
	}
	if event == nil {
		return fmt.Errorf("event %s: %w", eventID, ErrNotFound)
	}
	if event.OwnerID != ownerID {
		s.log.Warn("Event delete ownership mismatch",
			zap.String("event_id", eventID),
			zap.String("owner_id", event.OwnerID),
			zap.String("caller_id", ownerID),
		)
		return fmt.Errorf("event %s: %w", eventID, ErrUnauthorized)
	}

	if err := s.repo.Event.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete event",
			zap.Error(err),
			zap.String("event_id", eventID),
		)
		return fmt.Errorf("delete event: %w", err)
	}

	s.log.Info("Event deleted",
		zap.String("event_id", eventID),
		zap.String("owner_id", ownerID),
	)

	oldResp := response.EventToResponse(event)
	_ = s.bus.Publish(feed.EventChange{Type: feed.ChangeDelete, Old: &oldResp})

	return nil
}
