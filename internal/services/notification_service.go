package services

import (
	"fmt"

	"github.com/yukikurage/feedback-management-api/internal/models"
	"github.com/yukikurage/feedback-management-api/internal/repository"
	"github.com/yukikurage/feedback-management-api/internal/utils"
)

// NotificationService exposes a user's own notifications
type NotificationService struct {
	store repository.Store
}

func NewNotificationService(store repository.Store) *NotificationService {
	return &NotificationService{store: store}
}

// List returns the user's notifications newest first along with the total
// count. A nil page returns all of them.
func (s *NotificationService) List(user *models.User, page *utils.PaginationParams) ([]models.Notification, int64, error) {
	items, total, err := s.store.Notifications().ListByUser(user.ID, page)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return items, total, nil
}

// MarkRead marks one of the user's notifications as read
func (s *NotificationService) MarkRead(user *models.User, notificationID uint64) (*models.Notification, error) {
	notification, err := s.store.Notifications().FindByID(notificationID)
	if err != nil {
		return nil, lookupError(err, ErrNotificationNotFound, "notification")
	}
	if err := hideUnauthorized(notification.UserID == user.ID, ErrNotificationNotFound); err != nil {
		return nil, err
	}

	if err := s.store.Notifications().MarkRead(notification.ID); err != nil {
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}
	notification.IsRead = true
	return notification, nil
}

// MarkAllRead marks every unread notification of the user as read and
// returns how many changed.
func (s *NotificationService) MarkAllRead(user *models.User) (int64, error) {
	n, err := s.store.Notifications().MarkAllRead(user.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return n, nil
}
