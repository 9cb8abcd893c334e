package feed

import (
	"context"
	"testing"
	"time"

	"event-booking/internal/dto/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestBus(t *testing.T) *Bus {
	t.Helper()
	bus := NewBus(zap.NewNop())
	t.Cleanup(func() { bus.Close() })
	return bus
}

func eventChange(changeType ChangeType, eventID string) EventChange {
	resp := &response.EventResponse{ID: eventID, Title: "Test event"}
	change := EventChange{Type: changeType}
	if changeType == ChangeDelete {
		change.Old = resp
	} else {
		change.New = resp
	}
	return change
}

func receiveChange(t *testing.T, changes <-chan EventChange) EventChange {
	t.Helper()
	select {
	case change, ok := <-changes:
		require.True(t, ok, "subscription closed unexpectedly")
		return change
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event change")
		return EventChange{}
	}
}

func TestPublishSubscribeRoundtrip(t *testing.T) {
	bus := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := bus.Subscribe(ctx, "")
	require.NoError(t, err)

	published := eventChange(ChangeInsert, "event-1")
	require.NoError(t, bus.Publish(published))

	got := receiveChange(t, changes)
	assert.Equal(t, ChangeInsert, got.Type)
	require.NotNil(t, got.New)
	assert.Equal(t, "event-1", got.New.ID)
	assert.Nil(t, got.Old)
}

func TestSubscribeFiltersByEventID(t *testing.T) {
	bus := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := bus.Subscribe(ctx, "event-2")
	require.NoError(t, err)

	require.NoError(t, bus.Publish(eventChange(ChangeUpdate, "event-1")))
	require.NoError(t, bus.Publish(eventChange(ChangeUpdate, "event-2")))
	require.NoError(t, bus.Publish(eventChange(ChangeDelete, "event-3")))
	require.NoError(t, bus.Publish(eventChange(ChangeDelete, "event-2")))

	// Delivery across separate publishes is unordered; only the filtered
	// set is guaranteed
	first := receiveChange(t, changes)
	second := receiveChange(t, changes)

	assert.Equal(t, "event-2", first.EventID())
	assert.Equal(t, "event-2", second.EventID())
	assert.ElementsMatch(t,
		[]ChangeType{ChangeUpdate, ChangeDelete},
		[]ChangeType{first.Type, second.Type},
	)
}

func TestSubscribeFanOut(t *testing.T) {
	bus := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first, err := bus.Subscribe(ctx, "")
	require.NoError(t, err)
	second, err := bus.Subscribe(ctx, "")
	require.NoError(t, err)

	require.NoError(t, bus.Publish(eventChange(ChangeInsert, "event-1")))

	assert.Equal(t, "event-1", receiveChange(t, first).EventID())
	assert.Equal(t, "event-1", receiveChange(t, second).EventID())
}

func TestSubscribeClosedOnCancel(t *testing.T) {
	bus := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())

	changes, err := bus.Subscribe(ctx, "")
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-changes:
		assert.False(t, ok, "channel should be closed after cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after context cancel")
	}
}

func TestEventChangeEventID(t *testing.T) {
	newResp := &response.EventResponse{ID: "new-id"}
	oldResp := &response.EventResponse{ID: "old-id"}

	assert.Equal(t, "new-id", EventChange{Type: ChangeUpdate, New: newResp, Old: oldResp}.EventID())
	assert.Equal(t, "old-id", EventChange{Type: ChangeDelete, Old: oldResp}.EventID())
	assert.Equal(t, "", EventChange{Type: ChangeDelete}.EventID())
}
