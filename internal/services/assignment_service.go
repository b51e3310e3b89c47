package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/yukikurage/feedback-management-api/internal/constants"
	"github.com/yukikurage/feedback-management-api/internal/models"
	"github.com/yukikurage/feedback-management-api/internal/policy"
	"github.com/yukikurage/feedback-management-api/internal/repository"
	"github.com/yukikurage/feedback-management-api/internal/storage"
	"go.uber.org/zap"
)

var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDueDate accepts RFC3339, a zone-less timestamp or a bare date.
// An empty value means no due date.
func ParseDueDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, ErrInvalidDueDate
}

// AssignmentService handles files managers hand out to their team
type AssignmentService struct {
	store    repository.Store
	notifier *Notifier
	files    fileKeeper
}

func NewAssignmentService(store repository.Store, notifier *Notifier, files storage.FileStore, logger *zap.Logger) *AssignmentService {
	return &AssignmentService{
		store:    store,
		notifier: notifier,
		files:    fileKeeper{files: files, logger: logger},
	}
}

// UploadAssignmentInput represents an assignment upload
type UploadAssignmentInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	File        storage.Upload
}

// UpdateAssignmentInput is a partial update of assignment metadata.
// ClearDueDate removes the due date and takes precedence over DueDate.
type UpdateAssignmentInput struct {
	Title        *string
	Description  *string
	DueDate      *time.Time
	ClearDueDate bool
	IsActive     *bool
}

// Upload stores an assignment and notifies every direct report
func (s *AssignmentService) Upload(ctx context.Context, manager *models.User, input UploadAssignmentInput) (*models.Assignment, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	stored, err := s.files.store(ctx, constants.StorageKindAssignment, manager.ID, input.File, constants.AssignmentMIMETypes)
	if err != nil {
		return nil, err
	}

	assignment := &models.Assignment{
		ManagerID:   manager.ID,
		Title:       input.Title,
		Description: input.Description,
		StoredFile:  stored,
		DueDate:     input.DueDate,
		IsActive:    true,
	}
	message := fmt.Sprintf("New assignment uploaded: '%s'", assignment.Title)

	err = s.notifier.Within(ctx, s.store, func(tx repository.Store, notify NotifyFunc) error {
		if err := tx.Assignments().Create(assignment); err != nil {
			return fmt.Errorf("failed to create assignment: %w", err)
		}
		ids, err := teamIDs(tx, manager.ID)
		if err != nil {
			return err
		}
		return notify(message, ids...)
	})
	if err != nil {
		s.files.discard(ctx, stored.FilePath)
		return nil, err
	}

	return s.reload(assignment.ID)
}

// ListTeam returns the manager's assignments with their submission counts
func (s *AssignmentService) ListTeam(manager *models.User) ([]models.Assignment, map[uint64]int64, error) {
	items, err := s.store.Assignments().ListByManager(manager.ID, false)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	ids := make([]uint64, 0, len(items))
	for _, a := range items {
		ids = append(ids, a.ID)
	}
	counts, err := s.store.Submissions().CountByAssignments(ids)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count submissions: %w", err)
	}
	return items, counts, nil
}

// ListMine returns the active assignments of the employee's manager
func (s *AssignmentService) ListMine(employee *models.User) ([]models.Assignment, error) {
	if employee.ManagerID == nil {
		return []models.Assignment{}, nil
	}
	items, err := s.store.Assignments().ListByManager(*employee.ManagerID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return items, nil
}

// Get returns an assignment of the viewer's team. The submission count is
// only filled in for the owning manager.
func (s *AssignmentService) Get(viewer *models.User, assignmentID uint64) (*models.Assignment, int64, error) {
	assignment, err := s.accessible(viewer, assignmentID)
	if err != nil {
		return nil, 0, err
	}
	if !viewer.IsManager() {
		return assignment, 0, nil
	}

	counts, err := s.store.Submissions().CountByAssignments([]uint64{assignment.ID})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count submissions: %w", err)
	}
	return assignment, counts[assignment.ID], nil
}

// Download opens the assignment's file. The caller closes the reader.
func (s *AssignmentService) Download(ctx context.Context, viewer *models.User, assignmentID uint64) (*models.Assignment, io.ReadCloser, error) {
	assignment, err := s.accessible(viewer, assignmentID)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.files.open(ctx, assignment.StoredFile)
	if err != nil {
		return nil, nil, err
	}
	return assignment, rc, nil
}

// Update edits assignment metadata
func (s *AssignmentService) Update(manager *models.User, assignmentID uint64, input UpdateAssignmentInput) (*models.Assignment, error) {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, ErrTitleRequired
	}

	assignment, err := s.owned(manager, assignmentID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		assignment.Title = *input.Title
	}
	if input.Description != nil {
		assignment.Description = *input.Description
	}
	switch {
	case input.ClearDueDate:
		assignment.DueDate = nil
	case input.DueDate != nil:
		assignment.DueDate = input.DueDate
	}
	if input.IsActive != nil {
		assignment.IsActive = *input.IsActive
	}

	if err := s.store.Assignments().Update(assignment); err != nil {
		return nil, fmt.Errorf("failed to update assignment: %w", err)
	}
	return s.reload(assignment.ID)
}

// Delete removes an assignment together with its submissions and comments,
// then discards every backing file.
func (s *AssignmentService) Delete(ctx context.Context, manager *models.User, assignmentID uint64) error {
	assignment, err := s.owned(manager, assignmentID)
	if err != nil {
		return err
	}

	var submissions []models.Submission
	err = s.store.Transaction(func(tx repository.Store) error {
		var err error
		submissions, err = tx.Submissions().ListByAssignment(assignment.ID)
		if err != nil {
			return fmt.Errorf("failed to list submissions: %w", err)
		}
		if err := tx.Submissions().DeleteByAssignment(assignment.ID); err != nil {
			return fmt.Errorf("failed to delete submissions: %w", err)
		}
		if err := tx.AssignmentComments().DeleteByAssignment(assignment.ID); err != nil {
			return fmt.Errorf("failed to delete assignment comments: %w", err)
		}
		if err := tx.Assignments().Delete(assignment.ID); err != nil {
			return fmt.Errorf("failed to delete assignment: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.files.discard(ctx, assignment.StoredFile.FilePath)
	for _, sub := range submissions {
		s.files.discard(ctx, sub.StoredFile.FilePath)
	}
	return nil
}

// accessible loads an assignment the viewer's team may see.
func (s *AssignmentService) accessible(viewer *models.User, assignmentID uint64) (*models.Assignment, error) {
	assignment, err := s.reload(assignmentID)
	if err != nil {
		return nil, err
	}
	if !policy.CanAccessAssignment(viewer, assignment) {
		return nil, ErrAssignmentAccessDenied
	}
	return assignment, nil
}

func (s *AssignmentService) owned(manager *models.User, assignmentID uint64) (*models.Assignment, error) {
	assignment, err := s.store.Assignments().FindByID(assignmentID)
	if err != nil {
		return nil, lookupError(err, ErrAssignmentNotFound, "assignment")
	}
	if err := hideUnauthorized(assignment.ManagerID == manager.ID, ErrAssignmentNotFound); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *AssignmentService) reload(assignmentID uint64) (*models.Assignment, error) {
	assignment, err := s.store.Assignments().FindByID(assignmentID, "Manager")
	if err != nil {
		return nil, lookupError(err, ErrAssignmentNotFound, "assignment")
	}
	return assignment, nil
}
