package feed

import (
	"context"

	"go.uber.org/zap"
)

type UpcomingInvalidator interface {
	InvalidateUpcoming(ctx context.Context)
}

// RunCacheInvalidator drops the cached upcoming listing whenever any event
// changes, so the next listing refetches fresh state. Runs until ctx is
// cancelled.
func RunCacheInvalidator(ctx context.Context, bus *Bus, cache UpcomingInvalidator, log *zap.Logger) error {
	changes, err := bus.Subscribe(ctx, "")
	if err != nil {
		return err
	}

	go func() {
		for change := range changes {
			log.Debug("Invalidating upcoming events cache",
				zap.String("event_id", change.EventID()),
				zap.String("change_type", string(change.Type)),
			)
			cache.InvalidateUpcoming(ctx)
		}
	}()

	return nil
}
