package usecase

import (
	"context"
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

type BookingService interface {
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	DeleteBooking(ctx context.Context, userID, bookingID string) error
	CheckUserBooking(ctx context.Context, userID, eventID string) (*response.BookingStatusResponse, error)
	GetUserBookings(ctx context.Context, userID string) ([]response.BookingWithEventResponse, error)
	GetBookingByID(ctx context.Context, userID, bookingID string) (*response.BookingWithEventResponse, error)
}

type bookingService struct {
	repo *repository.Repository
	bus  *feed.Bus
	log  *zap.Logger
}

func NewBookingService(repo *repository.Repository, bus *feed.Bus, log *zap.Logger) BookingService {
	return &bookingService{
		repo: repo,
		bus:  bus,
		log:  log.With(zap.String("service", "booking")),
	}
}

// CreateBooking reserves one spot for the user. The counter increment is a
// conditional update, so two sessions racing for the last spot cannot push
// booked_count past max_guests; the loser gets ErrSoldOut. If the increment
// fails after the booking row was inserted, the row is deleted again before
// the error is surfaced, so no orphan booking survives a partial failure.
func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if userID == "" {
		return nil, fmt.Errorf("create booking: %w", ErrUnauthorized)
	}

	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", req.EventID, err)
	}

	// One booking per user per event
	existing, err := s.repo.Booking.FindByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("check existing booking: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("event %s: %w", req.EventID, ErrAlreadyBooked)
	}

	// Capacity check
	event, err := s.repo.Event.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("find event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("event %s: %w", req.EventID, ErrNotFound)
	}
	if event.BookedCount >= event.MaxGuests {
		return nil, fmt.Errorf("event %s: %w", req.EventID, ErrSoldOut)
	}

	booking := &entity.Booking{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		EventID: eventID,
		UserID:  userID,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("event_id", req.EventID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	// Counter update; roll the booking back if it cannot be applied
	bumped, err := s.repo.Event.IncrementBookedCount(ctx, eventID)
	if err != nil {
		s.rollbackBooking(ctx, booking)
		return nil, fmt.Errorf("increment booked count: %w", err)
	}
	if !bumped {
		// Lost the race for the last spot
		s.rollbackBooking(ctx, booking)
		return nil, fmt.Errorf("event %s: %w", req.EventID, ErrSoldOut)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("event_id", req.EventID),
		zap.String("user_id", userID),
	)

	s.publishCounterChange(event, event.BookedCount+1)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

// DeleteBooking cancels the user's booking. Deleting an already-deleted
// booking fails with ErrNotFound rather than silently succeeding. The
// counter decrement is clamped at zero.
func (s *bookingService) DeleteBooking(ctx context.Context, userID, bookingID string) error {
	if userID == "" {
		return fmt.Errorf("delete booking: %w", ErrUnauthorized)
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}
	if booking.UserID != userID {
		s.log.Warn("Booking delete ownership mismatch",
			zap.String("booking_id", bookingID),
			zap.String("user_id", userID),
		)
		return fmt.Errorf("booking %s: %w", bookingID, ErrUnauthorized)
	}

	if err := s.repo.Booking.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	if err := s.repo.Event.DecrementBookedCount(ctx, booking.EventID); err != nil {
		s.log.Error("Booking deleted but counter decrement failed",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("event_id", booking.EventID.String()),
		)
		return fmt.Errorf("decrement booked count: %w", err)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("event_id", booking.EventID.String()),
		zap.String("user_id", userID),
	)

	event, err := s.repo.Event.FindByID(ctx, booking.EventID)
	if err != nil || event == nil {
		// The cancellation itself stands; feed consumers resync on their
		// next refetch
		s.log.Warn("Skipping feed publish after booking delete",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("event_id", booking.EventID.String()),
		)
		return nil
	}

	eventResp := response.EventToResponse(event)
	_ = s.bus.Publish(feed.EventChange{Type: feed.ChangeUpdate, New: &eventResp})

	return nil
}

// CheckUserBooking is a pure lookup; a missing booking is an explicit
// negative result, not an error.
func (s *bookingService) CheckUserBooking(ctx context.Context, userID, eventID string) (*response.BookingStatusResponse, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID format %s: %w", eventID, err)
	}

	booking, err := s.repo.Booking.FindByEventAndUser(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("check user booking: %w", err)
	}

	if booking == nil {
		return &response.BookingStatusResponse{Booked: false}, nil
	}

	resp := response.BookingToResponse(booking)
	return &response.BookingStatusResponse{Booked: true, Booking: &resp}, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string) ([]response.BookingWithEventResponse, error) {
	bookings, err := s.repo.Booking.FindByUserWithEvents(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	responses := make([]response.BookingWithEventResponse, len(bookings))
	for i, bw := range bookings {
		responses[i] = response.BookingWithEventToResponse(bw)
	}

	return responses, nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, userID, bookingID string) (*response.BookingWithEventResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID format %s: %w", bookingID, err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	// A foreign booking is indistinguishable from a missing one
	if booking == nil || booking.UserID != userID {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}

	event, err := s.repo.Event.FindByID(ctx, booking.EventID)
	if err != nil {
		return nil, fmt.Errorf("find event for booking: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("event for booking %s: %w", bookingID, ErrNotFound)
	}

	resp := response.BookingWithEventToResponse(&entity.BookingWithEvent{
		Booking: *booking,
		Event:   *event,
	})
	return &resp, nil
}

// rollbackBooking compensates a partially applied create. Best effort: if
// the delete fails too, the orphan row is logged for manual cleanup.
func (s *bookingService) rollbackBooking(ctx context.Context, booking *entity.Booking) {
	if err := s.repo.Booking.Delete(ctx, booking.ID, booking.UserID); err != nil {
		s.log.Error("Failed to roll back booking after counter failure",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("event_id", booking.EventID.String()),
		)
	}
}

// publishCounterChange emits the event with its post-increment count. The
// count is derived from the row read earlier in the request, so under
// concurrent bookings it can trail the stored value; feed consumers resync
// with a full refetch.
func (s *bookingService) publishCounterChange(event *entity.Event, newCount int) {
	oldResp := response.EventToResponse(event)
	newResp := oldResp
	newResp.BookedCount = newCount

	_ = s.bus.Publish(feed.EventChange{
		Type: feed.ChangeUpdate,
		New:  &newResp,
		Old:  &oldResp,
	})
}
