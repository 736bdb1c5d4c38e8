package service

import (
	"context"
	"encoding/json"

	"ai-renamer-be/internal/pkg/logger"
	"ai-renamer-be/internal/websocket"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// NotificationDelivery pushes a typed message to a user's live connections.
// Implemented by the websocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, msgType string, data interface{})
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	delivery NotificationDelivery,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		delivery:   delivery,
		logger:     log,
	}
}

// Consume subscribes and returns; delivery runs until ctx is cancelled.
func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
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
	var payload NotificationMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("ConsumerService", "Failed to unmarshal notification", map[string]interface{}{"error": err.Error()})
		// Ack invalid messages to prevent infinite redelivery.
		msg.Ack()
		return
	}

	cs.delivery.Send(payload.UserId, websocket.TypeNotification, payload.Notification)
	msg.Ack()
}
