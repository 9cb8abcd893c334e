package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"event-booking/internal/data/entity"
	"event-booking/internal/data/repository"

	"github.com/google/uuid"
)

// fakeStore backs the fake repositories with in-memory state and failure
// injection for the partial-failure paths.
type fakeStore struct {
	mu       sync.Mutex
	events   map[uuid.UUID]*entity.Event
	bookings map[uuid.UUID]*entity.Booking

	incrementErr  error // transport failure on the counter update
	incrementFull bool  // counter update loses the capacity race
	findEventErr  error // transport failure on event lookups
}

func newFakeRepo() (*repository.Repository, *fakeStore) {
	s := &fakeStore{
		events:   make(map[uuid.UUID]*entity.Event),
		bookings: make(map[uuid.UUID]*entity.Booking),
	}
	return &repository.Repository{
		Event:   &fakeEventRepo{s: s},
		Booking: &fakeBookingRepo{s: s},
	}, s
}

func (s *fakeStore) addEvent(ownerID string, maxGuests, bookedCount int) *entity.Event {
	s.mu.Lock()
	defer s.mu.Unlock()

	event := &entity.Event{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Title:       "Test event",
		Date:        time.Now().Add(24 * time.Hour),
		OwnerID:     ownerID,
		MaxGuests:   maxGuests,
		BookedCount: bookedCount,
	}
	s.events[event.ID] = event
	return event
}

func (s *fakeStore) bookedCount(eventID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if event, ok := s.events[eventID]; ok {
		return event.BookedCount
	}
	return -1
}

func (s *fakeStore) forceDate(eventID uuid.UUID, date time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[eventID]
	if !ok {
		return fmt.Errorf("event %s not found", eventID)
	}
	event.Date = date
	return nil
}

func (s *fakeStore) forceBookedCount(eventID uuid.UUID, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[eventID]
	if !ok {
		return fmt.Errorf("event %s not found", eventID)
	}
	event.BookedCount = count
	return nil
}

type fakeEventRepo struct {
	s *fakeStore
}

func (r *fakeEventRepo) Create(ctx context.Context, event *entity.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	copied := *event
	r.s.events[event.ID] = &copied
	return nil
}

func (r *fakeEventRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.findEventErr != nil {
		return nil, r.s.findEventErr
	}
	event, ok := r.s.events[id]
	if !ok {
		return nil, nil
	}
	copied := *event
	return &copied, nil
}

func (r *fakeEventRepo) FindUpcoming(ctx context.Context, from time.Time) ([]*entity.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var events []*entity.Event
	for _, event := range r.s.events {
		if !event.Date.Before(from) {
			copied := *event
			events = append(events, &copied)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	return events, nil
}

func (r *fakeEventRepo) FindByOwner(ctx context.Context, ownerID string) ([]*entity.Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var events []*entity.Event
	for _, event := range r.s.events {
		if event.OwnerID == ownerID {
			copied := *event
			events = append(events, &copied)
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	return events, nil
}

func (r *fakeEventRepo) Update(ctx context.Context, event *entity.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.events[event.ID]
	if !ok {
		return fmt.Errorf("event %s not found", event.ID.String())
	}

	stored.Title = event.Title
	stored.Description = event.Description
	stored.Location = event.Location
	stored.Latitude = event.Latitude
	stored.Longitude = event.Longitude
	stored.Date = event.Date
	stored.MaxGuests = event.MaxGuests
	stored.ImageURL = event.ImageURL
	return nil
}

func (r *fakeEventRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.events[id]; !ok {
		return fmt.Errorf("event %s not found", id.String())
	}

	// Cascade, like the SQL transaction does
	for bookingID, booking := range r.s.bookings {
		if booking.EventID == id {
			delete(r.s.bookings, bookingID)
		}
	}
	delete(r.s.events, id)
	return nil
}

func (r *fakeEventRepo) IncrementBookedCount(ctx context.Context, id uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.incrementErr != nil {
		return false, r.s.incrementErr
	}
	if r.s.incrementFull {
		return false, nil
	}

	event, ok := r.s.events[id]
	if !ok || event.BookedCount >= event.MaxGuests {
		return false, nil
	}
	event.BookedCount++
	return true, nil
}

func (r *fakeEventRepo) DecrementBookedCount(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if event, ok := r.s.events[id]; ok && event.BookedCount > 0 {
		event.BookedCount--
	}
	return nil
}

type fakeBookingRepo struct {
	s *fakeStore
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	copied := *booking
	r.s.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	booking, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeBookingRepo) FindByEventAndUser(ctx context.Context, eventID uuid.UUID, userID string) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, booking := range r.s.bookings {
		if booking.EventID == eventID && booking.UserID == userID {
			copied := *booking
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) FindByUserWithEvents(ctx context.Context, userID string) ([]*entity.BookingWithEvent, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var bookings []*entity.BookingWithEvent
	for _, booking := range r.s.bookings {
		if booking.UserID != userID {
			continue
		}
		event, ok := r.s.events[booking.EventID]
		if !ok {
			continue
		}
		bookings = append(bookings, &entity.BookingWithEvent{
			Booking: *booking,
			Event:   *event,
		})
	}
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}

func (r *fakeBookingRepo) CountByEventID(ctx context.Context, eventID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var count int64
	for _, booking := range r.s.bookings {
		if booking.EventID == eventID {
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	booking, ok := r.s.bookings[id]
	if !ok || booking.UserID != userID {
		return fmt.Errorf("booking %s not found", id.String())
	}
	delete(r.s.bookings, id)
	return nil
}
