package services

import (
	"context"
	"fmt"

	"github.com/yukikurage/feedback-management-api/internal/events"
	"github.com/yukikurage/feedback-management-api/internal/models"
	"github.com/yukikurage/feedback-management-api/internal/repository"
	"go.uber.org/zap"
)

// NotifyFunc stores one notification per recipient inside the current transaction.
type NotifyFunc func(message string, recipientIDs ...uint64) error

// Notifier writes notification rows together with the write that triggered
// them and forwards the committed rows to the event publisher.
type Notifier struct {
	publisher events.Publisher
	logger    *zap.Logger
}

func NewNotifier(publisher events.Publisher, logger *zap.Logger) *Notifier {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Notifier{
		publisher: publisher,
		logger:    logger,
	}
}

// Within runs fn in one transaction. Notifications created through notify
// are committed or rolled back with fn's writes and published after commit.
func (n *Notifier) Within(ctx context.Context, store repository.Store, fn func(tx repository.Store, notify NotifyFunc) error) error {
	var created []models.Notification

	err := store.Transaction(func(tx repository.Store) error {
		created = nil
		notify := func(message string, recipientIDs ...uint64) error {
			if len(recipientIDs) == 0 {
				return nil
			}
			batch := make([]models.Notification, 0, len(recipientIDs))
			for _, id := range recipientIDs {
				batch = append(batch, models.Notification{UserID: id, Message: message})
			}
			if err := tx.Notifications().CreateBatch(batch); err != nil {
				return fmt.Errorf("failed to create notifications: %w", err)
			}
			created = append(created, batch...)
			return nil
		}
		return fn(tx, notify)
	})
	if err != nil {
		return err
	}

	n.publish(ctx, created)
	return nil
}

func (n *Notifier) publish(ctx context.Context, notifications []models.Notification) {
	if len(notifications) == 0 {
		return
	}
	if err := n.publisher.PublishNotifications(ctx, notifications); err != nil {
		n.logger.Warn("failed to publish notification events",
			zap.Int("count", len(notifications)),
			zap.Error(err),
		)
	}
}

// teamIDs returns the IDs of a manager's direct reports.
func teamIDs(tx repository.Store, managerID uint64) ([]uint64, error) {
	members, err := tx.Users().ListByManager(managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	ids := make([]uint64, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	return ids, nil
}
