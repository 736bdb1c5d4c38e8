package service

import (
	"context"

	"ai-renamer-be/internal/pkg/logger"
	"ai-renamer-be/internal/websocket"
	"ai-renamer-be/pkg/events"
	pktNats "ai-renamer-be/pkg/nats"

	"github.com/google/uuid"
)

// EventSource is the subscribing half of the event bus.
type EventSource interface {
	Subscribe(ctx context.Context, subject, durableName string, handler pktNats.EventHandler) error
}

// NotificationService relays workspace domain events from the bus to the
// owning user's websocket, so every instance's activity reaches the browser.
type NotificationService struct {
	subscriber EventSource
	delivery   NotificationDelivery
	logger     logger.ILogger
}

func NewNotificationService(sub EventSource, delivery NotificationDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

func (s *NotificationService) Start(ctx context.Context) error {
	if err := s.subscriber.Subscribe(ctx, pktNats.Subject(">"), "workspace-event-relay", s.handleEvent); err != nil {
		s.logger.Error("NotificationService", "Failed to start event subscriber", map[string]interface{}{"error": err.Error()})
		return err
	}
	s.logger.Info("NotificationService", "Relaying events to websocket clients", nil)
	return nil
}

func (s *NotificationService) handleEvent(_ context.Context, event events.Event) error {
	raw, _ := events.UserOf(event)
	userID, err := uuid.Parse(raw)
	if err != nil {
		// Not addressed to a user, nothing to relay.
		s.logger.Debug("NotificationService", "Skipping event without user", map[string]interface{}{"type": event.EventType()})
		return nil
	}

	s.delivery.Send(userID, websocket.TypeEvent, map[string]interface{}{
		"event":       event.EventType(),
		"occurred_at": event.Timestamp(),
		"payload":     event.Payload(),
	})
	return nil
}
