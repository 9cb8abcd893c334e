package usecase

import (
	"context"
	"testing"
	"time"

	"event-booking/internal/data/repository"
	"event-booking/internal/dto/request"
	"event-booking/internal/feed"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeUpcomingCache records the cache interactions the service makes.
type fakeUpcomingCache struct {
	payload     []byte
	sets        int
	invalidates int
}

func (c *fakeUpcomingCache) GetUpcoming(ctx context.Context) ([]byte, bool) {
	if c.payload == nil {
		return nil, false
	}
	return c.payload, true
}

func (c *fakeUpcomingCache) SetUpcoming(ctx context.Context, payload []byte) {
	c.payload = payload
	c.sets++
}

func (c *fakeUpcomingCache) InvalidateUpcoming(ctx context.Context) {
	c.payload = nil
	c.invalidates++
}

func newTestEventService(t *testing.T, cache UpcomingCache) (EventService, *fakeStore, *repository.Repository, *feed.Bus) {
	t.Helper()

	repo, store := newFakeRepo()
	bus := feed.NewBus(zap.NewNop())
	t.Cleanup(func() { bus.Close() })

	return NewEventService(repo, bus, cache, zap.NewNop()), store, repo, bus
}

func ptr[T any](v T) *T { return &v }

func validCreateRequest() *request.CreateEventRequest {
	return &request.CreateEventRequest{
		Title:     "Rooftop concert",
		Location:  "Jakarta",
		Date:      time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		MaxGuests: 25,
	}
}

func TestCreateEventStartsEmpty(t *testing.T) {
	svc, store, _, _ := newTestEventService(t, nil)

	created, err := svc.CreateEvent(context.Background(), "owner_1", validCreateRequest())
	require.NoError(t, err)
	assert.Equal(t, "owner_1", created.OwnerID)
	assert.Equal(t, 25, created.MaxGuests)
	assert.Equal(t, 0, created.BookedCount)
	assert.Equal(t, 0, store.bookedCount(mustParseID(t, created.ID)))
}

func TestCreateEventValidation(t *testing.T) {
	svc, _, _, _ := newTestEventService(t, nil)
	ctx := context.Background()

	req := validCreateRequest()
	req.Title = "ab"
	_, err := svc.CreateEvent(ctx, "owner_1", req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	req = validCreateRequest()
	req.MaxGuests = 0
	_, err = svc.CreateEvent(ctx, "owner_1", req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	req = validCreateRequest()
	req.Date = "tomorrow"
	_, err = svc.CreateEvent(ctx, "owner_1", req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date format")
}

func TestCreateEventPublishesInsert(t *testing.T) {
	svc, _, _, bus := newTestEventService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := bus.Subscribe(ctx, "")
	require.NoError(t, err)

	created, err := svc.CreateEvent(ctx, "owner_1", validCreateRequest())
	require.NoError(t, err)

	select {
	case change := <-changes:
		assert.Equal(t, feed.ChangeInsert, change.Type)
		require.NotNil(t, change.New)
		assert.Equal(t, created.ID, change.New.ID)
		assert.Nil(t, change.Old)
	case <-time.After(2 * time.Second):
		t.Fatal("no feed change received for created event")
	}
}

func TestGetEventByID(t *testing.T) {
	svc, store, _, _ := newTestEventService(t, nil)
	ctx := context.Background()
	event := store.addEvent("owner_1", 10, 3)

	got, err := svc.GetEventByID(ctx, event.ID.String())
	require.NoError(t, err)
	assert.Equal(t, event.ID.String(), got.ID)
	assert.Equal(t, 3, got.BookedCount)

	_, err = svc.GetEventByID(ctx, "8a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetEventByID(ctx, "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid event ID format")
}

func TestListUpcomingEventsCacheMissThenHit(t *testing.T) {
	cache := &fakeUpcomingCache{}
	svc, store, _, _ := newTestEventService(t, cache)
	ctx := context.Background()
	event := store.addEvent("owner_1", 10, 0)

	// Miss: hits the store and warms the cache
	listed, err := svc.ListUpcomingEvents(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, event.ID.String(), listed[0].ID)
	assert.Equal(t, 1, cache.sets)

	// Hit: served from the cached payload even after the store changes
	store.addEvent("owner_2", 10, 0)
	listed, err = svc.ListUpcomingEvents(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 1, cache.sets)
}

func TestListUpcomingEventsDropsCorruptCache(t *testing.T) {
	cache := &fakeUpcomingCache{payload: []byte("{not json")}
	svc, store, _, _ := newTestEventService(t, cache)
	store.addEvent("owner_1", 10, 0)

	listed, err := svc.ListUpcomingEvents(context.Background())
	require.NoError(t, err)
	assert.Len(t, listed, 1)
	assert.Equal(t, 1, cache.invalidates)
	assert.Equal(t, 1, cache.sets)
}

func TestListUpcomingEventsExcludesPast(t *testing.T) {
	svc, store, _, _ := newTestEventService(t, nil)

	past := store.addEvent("owner_1", 10, 0)
	require.NoError(t, store.forceDate(past.ID, time.Now().Add(-time.Hour)))
	upcoming := store.addEvent("owner_1", 10, 0)

	listed, err := svc.ListUpcomingEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, upcoming.ID.String(), listed[0].ID)
}

func TestListOwnerEvents(t *testing.T) {
	svc, store, _, _ := newTestEventService(t, nil)

	mine := store.addEvent("owner_1", 10, 0)
	store.addEvent("owner_2", 10, 0)

	listed, err := svc.ListOwnerEvents(context.Background(), "owner_1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, mine.ID.String(), listed[0].ID)
}

func TestUpdateEventPartial(t *testing.T) {
	svc, store, _, _ := newTestEventService(t, nil)
	ctx := context.Background()
	event := store.addEvent("owner_1", 10, 0)

	updated, err := svc.UpdateEvent(ctx, "owner_1", event.ID.String(), &request.UpdateEventRequest{
		Title: ptr("Renamed event"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed event", updated.Title)
	// Untouched fields keep their stored values
	assert.Equal(t, 10, updated.MaxGuests)
	assert.Equal(t, event.Location, updated.Location)
}

func TestUpdateEventOwnershipAndMaxGuestsFloor(t *testing.T) {
	svc, store, _, _ := newTestEventService(t, nil)
	ctx := context.Background()
	event := store.addEvent("owner_1", 10, 4)

	_, err := svc.UpdateEvent(ctx, "owner_2", event.ID.String(), &request.UpdateEventRequest{
		Title: ptr("Hijacked"),
	})
	require.ErrorIs(t, err, ErrUnauthorized)

	// Capacity can never drop below the spots already taken
	_, err = svc.UpdateEvent(ctx, "owner_1", event.ID.String(), &request.UpdateEventRequest{
		MaxGuests: ptr(3),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot reduce max_guests")

	updated, err := svc.UpdateEvent(ctx, "owner_1", event.ID.String(), &request.UpdateEventRequest{
		MaxGuests: ptr(4),
	})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.MaxGuests)
}

func TestDeleteEventCascadesBookings(t *testing.T) {
	cache := &fakeUpcomingCache{}
	svc, store, repo, bus := newTestEventService(t, cache)
	ctx := context.Background()
	event := store.addEvent("owner_1", 10, 0)

	bookingSvc := NewBookingService(repo, bus, zap.NewNop())
	booking, err := bookingSvc.CreateBooking(ctx, "guest_1", &request.CreateBookingRequest{EventID: event.ID.String()})
	require.NoError(t, err)

	require.ErrorIs(t, svc.DeleteEvent(ctx, "owner_2", event.ID.String()), ErrUnauthorized)
	require.NoError(t, svc.DeleteEvent(ctx, "owner_1", event.ID.String()))

	_, err = svc.GetEventByID(ctx, event.ID.String())
	require.ErrorIs(t, err, ErrNotFound)

	// The booking cannot outlive its event
	_, err = bookingSvc.GetBookingByID(ctx, "guest_1", booking.ID)
	require.ErrorIs(t, err, ErrNotFound)
	count, err := repo.Booking.CountByEventID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func mustParseID(t *testing.T, id string) uuid.UUID {
	t.Helper()
	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	return parsed
}
