package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Envelope is the wire form of an event on the in-process bus.
type Envelope struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// LocalBus publishes events on an in-process watermill channel.
type LocalBus struct {
	pubSub *gochannel.GoChannel
	topic  string
}

func NewLocalBus(pubSub *gochannel.GoChannel, topic string) *LocalBus {
	return &LocalBus{pubSub: pubSub, topic: topic}
}

func (b *LocalBus) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(Envelope{
		Type:       event.EventType(),
		Data:       event.Payload(),
		OccurredAt: event.Timestamp(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return b.pubSub.Publish(b.topic, msg)
}

func (b *LocalBus) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return b.pubSub.Subscribe(ctx, b.topic)
}
