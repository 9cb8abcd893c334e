package feed

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingInvalidator struct {
	mu    sync.Mutex
	calls int
}

func (c *countingInvalidator) InvalidateUpcoming(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
}

func (c *countingInvalidator) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestCacheInvalidatorDropsCacheOnChange(t *testing.T) {
	bus := newTestBus(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cache := &countingInvalidator{}
	require.NoError(t, RunCacheInvalidator(ctx, bus, cache, zap.NewNop()))

	require.NoError(t, bus.Publish(eventChange(ChangeInsert, "event-1")))
	require.NoError(t, bus.Publish(eventChange(ChangeDelete, "event-1")))

	require.Eventually(t, func() bool {
		return cache.count() == 2
	}, 2*time.Second, 10*time.Millisecond)
}
