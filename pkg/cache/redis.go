package cache

import (
	"context"
	"time"

	"event-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const upcomingEventsKey = "events:upcoming"

// Client wraps redis.Client
type Client struct {
	*redis.Client
}

func NewClient(config utils.RedisConfig) *Client {
	return &Client{
		Client: redis.NewClient(&redis.Options{
			Addr:     config.Addr,
			Password: config.Password,
			DB:       config.DB,
		}),
	}
}

// EventCache holds the serialized upcoming-events listing. Cache failures
// are logged and treated as misses; they never fail the request.
type EventCache struct {
	client *Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewEventCache(client *Client, ttl time.Duration, log *zap.Logger) *EventCache {
	return &EventCache{
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("cache", "events")),
	}
}

func (c *EventCache) GetUpcoming(ctx context.Context) ([]byte, bool) {
	payload, err := c.client.Get(ctx, upcomingEventsKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("Failed to read upcoming events cache", zap.Error(err))
		return nil, false
	}

	return payload, true
}

func (c *EventCache) SetUpcoming(ctx context.Context, payload []byte) {
	if err := c.client.Set(ctx, upcomingEventsKey, payload, c.ttl).Err(); err != nil {
		c.log.Warn("Failed to write upcoming events cache", zap.Error(err))
	}
}

func (c *EventCache) InvalidateUpcoming(ctx context.Context) {
	if err := c.client.Del(ctx, upcomingEventsKey).Err(); err != nil {
		c.log.Warn("Failed to invalidate upcoming events cache", zap.Error(err))
	}
}
