package feed

import (
	"context"
	"encoding/json"

	"event-booking/internal/dto/response"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"go.uber.org/zap"
)

const topicEventChanges = "event-changes"

type ChangeType string

const (
	ChangeInsert ChangeType = "INSERT"
	ChangeUpdate ChangeType = "UPDATE"
	ChangeDelete ChangeType = "DELETE"
)

// EventChange is the payload delivered to feed subscribers. New is nil on
// DELETE, Old is nil on INSERT.
type EventChange struct {
	Type ChangeType              `json:"event_type"`
	New  *response.EventResponse `json:"new,omitempty"`
	Old  *response.EventResponse `json:"old,omitempty"`
}

// EventID returns the id of the changed event row.
func (c EventChange) EventID() string {
	if c.New != nil {
		return c.New.ID
	}
	if c.Old != nil {
		return c.Old.ID
	}
	return ""
}

// Bus fans event changes out to any number of subscribers. Delivery is
// in-process and best-effort; clients resync with a full refetch.
type Bus struct {
	pubsub *gochannel.GoChannel
	log    *zap.Logger
}

func NewBus(log *zap.Logger) *Bus {
	pubsub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NopLogger{},
	)

	return &Bus{
		pubsub: pubsub,
		log:    log.With(zap.String("component", "feed")),
	}
}

func (b *Bus) Publish(change EventChange) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := b.pubsub.Publish(topicEventChanges, msg); err != nil {
		b.log.Error("Failed to publish event change",
			zap.Error(err),
			zap.String("event_id", change.EventID()),
			zap.String("change_type", string(change.Type)),
		)
		return err
	}

	return nil
}

// Subscribe returns a channel of event changes. The subscription is released
// by cancelling ctx; the returned channel is closed afterwards. An empty
// eventID delivers every change, otherwise only changes to that event.
func (b *Bus) Subscribe(ctx context.Context, eventID string) (<-chan EventChange, error) {
	messages, err := b.pubsub.Subscribe(ctx, topicEventChanges)
	if err != nil {
		return nil, err
	}

	out := make(chan EventChange)
	go func() {
		defer close(out)
		for msg := range messages {
			var change EventChange
			if err := json.Unmarshal(msg.Payload, &change); err != nil {
				b.log.Warn("Dropping malformed event change", zap.Error(err))
				msg.Ack()
				continue
			}
			msg.Ack()

			if eventID != "" && change.EventID() != eventID {
				continue
			}

			select {
			case out <- change:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func (b *Bus) Close() error {
	return b.pubsub.Close()
}
