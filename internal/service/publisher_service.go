package service

import (
	"context"
	"encoding/json"

	"ai-renamer-be/pkg/workspace"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// NotificationMessage is what travels on the notification topic.
type NotificationMessage struct {
	UserId       uuid.UUID              `json:"user_id"`
	Notification workspace.Notification `json:"notification"`
}

type IPublisherService interface {
	PublishNotification(ctx context.Context, userId uuid.UUID, n workspace.Notification) error
}

type publisherService struct {
	topicName string
	publisher message.Publisher
}

func NewPublisherService(topicName string, publisher message.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
	}
}

func (ps *publisherService) PublishNotification(ctx context.Context, userId uuid.UUID, n workspace.Notification) error {
	payload, err := json.Marshal(NotificationMessage{UserId: userId, Notification: n})
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return ps.publisher.Publish(ps.topicName, msg)
}
