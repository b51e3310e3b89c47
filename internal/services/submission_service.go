package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yukikurage/feedback-management-api/internal/constants"
	"github.com/yukikurage/feedback-management-api/internal/models"
	"github.com/yukikurage/feedback-management-api/internal/policy"
	"github.com/yukikurage/feedback-management-api/internal/repository"
	"github.com/yukikurage/feedback-management-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var submissionPreloads = []string{"Employee", "Assignment"}

// SubmissionService handles work employees hand in for assignments
type SubmissionService struct {
	store    repository.Store
	notifier *Notifier
	files    fileKeeper
}

func NewSubmissionService(store repository.Store, notifier *Notifier, files storage.FileStore, logger *zap.Logger) *SubmissionService {
	return &SubmissionService{
		store:    store,
		notifier: notifier,
		files:    fileKeeper{files: files, logger: logger},
	}
}

// UploadSubmissionInput represents a submission upload
type UploadSubmissionInput struct {
	AssignmentID uint64
	Title        string
	Description  string
	File         storage.Upload
}

// UpdateSubmissionInput is a partial update of submission metadata
type UpdateSubmissionInput struct {
	Title       *string
	Description *string
}

// Upload stores the employee's single submission for an assignment and
// notifies the assignment's manager.
func (s *SubmissionService) Upload(ctx context.Context, employee *models.User, input UploadSubmissionInput) (*models.Submission, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	assignment, err := s.store.Assignments().FindByID(input.AssignmentID)
	if err != nil {
		return nil, lookupError(err, ErrAssignmentNotFound, "assignment")
	}
	if !employee.ReportsTo(assignment.ManagerID) {
		return nil, ErrAssignmentNotInTeam
	}
	if !assignment.IsActive {
		return nil, ErrAssignmentInactive
	}

	if _, err := s.store.Submissions().FindByAssignmentAndEmployee(assignment.ID, employee.ID); err == nil {
		return nil, ErrDuplicateSubmission
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing submission: %w", err)
	}

	stored, err := s.files.store(ctx, constants.StorageKindSubmission, employee.ID, input.File, constants.AssignmentMIMETypes)
	if err != nil {
		return nil, err
	}

	submission := &models.Submission{
		AssignmentID: assignment.ID,
		EmployeeID:   employee.ID,
		Title:        input.Title,
		Description:  input.Description,
		StoredFile:   stored,
	}
	message := fmt.Sprintf("Employee '%s' has submitted work for assignment: '%s'", employee.Name, assignment.Title)

	err = s.notifier.Within(ctx, s.store, func(tx repository.Store, notify NotifyFunc) error {
		if err := tx.Submissions().Create(submission); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateSubmission
			}
			return fmt.Errorf("failed to create submission: %w", err)
		}
		return notify(message, assignment.ManagerID)
	})
	if err != nil {
		s.files.discard(ctx, stored.FilePath)
		return nil, err
	}

	return s.reload(submission.ID)
}

// ListByAssignment returns every submission for an assignment the manager owns
func (s *SubmissionService) ListByAssignment(manager *models.User, assignmentID uint64) ([]models.Submission, error) {
	assignment, err := s.store.Assignments().FindByID(assignmentID)
	if err != nil {
		return nil, lookupError(err, ErrAssignmentNotFound, "assignment")
	}
	if err := hideUnauthorized(assignment.ManagerID == manager.ID, ErrAssignmentNotFound); err != nil {
		return nil, err
	}

	items, err := s.store.Submissions().ListByAssignment(assignment.ID, submissionPreloads...)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return items, nil
}

// ListMine returns the employee's submissions
func (s *SubmissionService) ListMine(employee *models.User) ([]models.Submission, error) {
	items, err := s.store.Submissions().ListByEmployee(employee.ID, submissionPreloads...)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return items, nil
}

// Get returns a submission visible to viewer
func (s *SubmissionService) Get(viewer *models.User, submissionID uint64) (*models.Submission, error) {
	submission, err := s.reload(submissionID)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewSubmission(viewer, submission, &submission.Assignment) {
		return nil, ErrSubmissionAccessDenied
	}
	return submission, nil
}

// Download opens the submission's file. The caller closes the reader.
func (s *SubmissionService) Download(ctx context.Context, viewer *models.User, submissionID uint64) (*models.Submission, io.ReadCloser, error) {
	submission, err := s.Get(viewer, submissionID)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.files.open(ctx, submission.StoredFile)
	if err != nil {
		return nil, nil, err
	}
	return submission, rc, nil
}

// Update edits the submitter's title and description
func (s *SubmissionService) Update(employee *models.User, submissionID uint64, input UpdateSubmissionInput) (*models.Submission, error) {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, ErrTitleRequired
	}

	submission, err := s.owned(employee, submissionID)
	if err != nil {
		return nil, err
	}
	if input.Title != nil {
		submission.Title = *input.Title
	}
	if input.Description != nil {
		submission.Description = *input.Description
	}

	if err := s.store.Submissions().Update(submission); err != nil {
		return nil, fmt.Errorf("failed to update submission: %w", err)
	}
	return s.reload(submission.ID)
}

// Delete removes the submission row and then its file
func (s *SubmissionService) Delete(ctx context.Context, employee *models.User, submissionID uint64) error {
	submission, err := s.owned(employee, submissionID)
	if err != nil {
		return err
	}
	if err := s.store.Submissions().Delete(submission.ID); err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}
	s.files.discard(ctx, submission.StoredFile.FilePath)
	return nil
}

func (s *SubmissionService) owned(employee *models.User, submissionID uint64) (*models.Submission, error) {
	submission, err := s.store.Submissions().FindByID(submissionID)
	if err != nil {
		return nil, lookupError(err, ErrSubmissionNotFound, "submission")
	}
	if err := hideUnauthorized(submission.EmployeeID == employee.ID, ErrSubmissionNotFound); err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *SubmissionService) reload(submissionID uint64) (*models.Submission, error) {
	submission, err := s.store.Submissions().FindByID(submissionID, submissionPreloads...)
	if err != nil {
		return nil, lookupError(err, ErrSubmissionNotFound, "submission")
	}
	return submission, nil
}
