package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yukikurage/feedback-management-api/internal/models"
	"github.com/yukikurage/feedback-management-api/internal/policy"
	"github.com/yukikurage/feedback-management-api/internal/repository"
)

// AnnouncementService handles manager announcements to their team
type AnnouncementService struct {
	store    repository.Store
	notifier *Notifier
}

func NewAnnouncementService(store repository.Store, notifier *Notifier) *AnnouncementService {
	return &AnnouncementService{
		store:    store,
		notifier: notifier,
	}
}

// UpdateAnnouncementInput is a partial update of an announcement
type UpdateAnnouncementInput struct {
	Title    *string
	Content  *string
	IsActive *bool
}

// Create publishes an announcement and notifies every direct report
func (s *AnnouncementService) Create(ctx context.Context, manager *models.User, title, content string) (*models.Announcement, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}

	announcement := &models.Announcement{
		ManagerID: manager.ID,
		Title:     title,
		Content:   content,
		IsActive:  true,
	}
	message := fmt.Sprintf("New announcement from %s: %s", manager.Name, title)

	err := s.notifier.Within(ctx, s.store, func(tx repository.Store, notify NotifyFunc) error {
		if err := tx.Announcements().Create(announcement); err != nil {
			return fmt.Errorf("failed to create announcement: %w", err)
		}
		ids, err := teamIDs(tx, manager.ID)
		if err != nil {
			return err
		}
		return notify(message, ids...)
	})
	if err != nil {
		return nil, err
	}

	return s.reload(announcement.ID)
}

// ListTeam returns every announcement the manager wrote, inactive included
func (s *AnnouncementService) ListTeam(manager *models.User) ([]models.Announcement, error) {
	items, err := s.store.Announcements().ListByManager(manager.ID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return items, nil
}

// ListMine returns the active announcements of the employee's manager
func (s *AnnouncementService) ListMine(employee *models.User) ([]models.Announcement, error) {
	if employee.ManagerID == nil {
		return []models.Announcement{}, nil
	}
	items, err := s.store.Announcements().ListByManager(*employee.ManagerID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return items, nil
}

// Get returns one announcement visible to viewer
func (s *AnnouncementService) Get(viewer *models.User, announcementID uint64) (*models.Announcement, error) {
	announcement, err := s.reload(announcementID)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewAnnouncement(viewer, announcement) {
		return nil, ErrAnnouncementAccessDenied
	}
	return announcement, nil
}

// Update edits an announcement. A changed title or content notifies the team again.
func (s *AnnouncementService) Update(ctx context.Context, manager *models.User, announcementID uint64, input UpdateAnnouncementInput) (*models.Announcement, error) {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if input.Content != nil && strings.TrimSpace(*input.Content) == "" {
		return nil, ErrContentRequired
	}

	announcement, err := s.owned(manager, announcementID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		announcement.Title = *input.Title
	}
	if input.Content != nil {
		announcement.Content = *input.Content
	}
	if input.IsActive != nil {
		announcement.IsActive = *input.IsActive
	}
	renotify := input.Title != nil || input.Content != nil
	message := fmt.Sprintf("Announcement updated by %s: %s", manager.Name, announcement.Title)

	err = s.notifier.Within(ctx, s.store, func(tx repository.Store, notify NotifyFunc) error {
		if err := tx.Announcements().Update(announcement); err != nil {
			return fmt.Errorf("failed to update announcement: %w", err)
		}
		if !renotify {
			return nil
		}
		ids, err := teamIDs(tx, manager.ID)
		if err != nil {
			return err
		}
		return notify(message, ids...)
	})
	if err != nil {
		return nil, err
	}

	return s.reload(announcement.ID)
}

// Delete removes an announcement owned by manager
func (s *AnnouncementService) Delete(manager *models.User, announcementID uint64) error {
	announcement, err := s.owned(manager, announcementID)
	if err != nil {
		return err
	}
	if err := s.store.Announcements().Delete(announcement.ID); err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	return nil
}

func (s *AnnouncementService) owned(manager *models.User, announcementID uint64) (*models.Announcement, error) {
	announcement, err := s.store.Announcements().FindByID(announcementID)
	if err != nil {
		return nil, lookupError(err, ErrAnnouncementNotFound, "announcement")
	}
	if err := hideUnauthorized(announcement.ManagerID == manager.ID, ErrAnnouncementNotFound); err != nil {
		return nil, err
	}
	return announcement, nil
}

func (s *AnnouncementService) reload(announcementID uint64) (*models.Announcement, error) {
	announcement, err := s.store.Announcements().FindByID(announcementID, "Manager")
	if err != nil {
		return nil, lookupError(err, ErrAnnouncementNotFound, "announcement")
	}
	return announcement, nil
}
