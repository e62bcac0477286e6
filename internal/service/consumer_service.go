package service

import (
	"context"
	"encoding/json"

	"notez-be/internal/pkg/logger"
	"notez-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// EventSource is the subscribing side of the in-process bus.
type EventSource interface {
	Subscribe(ctx context.Context) (<-chan *message.Message, error)
}

// consumerService writes every note lifecycle event to the activity log.
type consumerService struct {
	source   EventSource
	activity logger.ILogger
	logger   logger.ILogger
}

func NewConsumerService(source EventSource, activity logger.ILogger, log logger.ILogger) IConsumerService {
	return &consumerService{
		source:   source,
		activity: activity,
		logger:   log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.source.Subscribe(ctx)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var envelope events.Envelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		cs.logger.Warn("Consumer", "failed to unmarshal event", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err,
		})
		// invalid payloads would be redelivered forever
		msg.Ack()
		return
	}

	cs.activity.Info("Activity", envelope.Type, map[string]interface{}{
		"note_id":     envelope.Data["note_id"],
		"actor_id":    envelope.Data["actor_id"],
		"occurred_at": envelope.OccurredAt,
	})
	msg.Ack()
}
