package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/yukikurage/feedback-management-api/internal/models"
)

const EventNotificationCreated = "notification.created"

// NotificationEvent is published for every stored notification.
type NotificationEvent struct {
	EventType      string    `json:"event_type"`
	NotificationID uint64    `json:"notification_id"`
	UserID         uint64    `json:"user_id"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"created_at"`
}

// Publisher forwards committed notifications to downstream consumers.
type Publisher interface {
	PublishNotifications(ctx context.Context, notifications []models.Notification) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes one message per notification, keyed by recipient so
// a consumer sees each user's notifications in order.
type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}

	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func (p *KafkaPublisher) PublishNotifications(ctx context.Context, notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(notifications))
	for _, n := range notifications {
		data, err := json.Marshal(NotificationEvent{
			EventType:      EventNotificationCreated,
			NotificationID: n.ID,
			UserID:         n.UserID,
			Message:        n.Message,
			CreatedAt:      n.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal notification event: %w", err)
		}

		messages = append(messages, kafka.Message{
			Key:   []byte(strconv.FormatUint(n.UserID, 10)),
			Value: data,
			Time:  time.Now(),
		})
	}

	if err := p.writer.WriteMessages(ctx, messages...); err != nil {
		return fmt.Errorf("failed to send notification events: %w", err)
	}
	return nil
}

// NopPublisher drops every event. It is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishNotifications(context.Context, []models.Notification) error {
	return nil
}

func (NopPublisher) Close() error {
	return nil
}
