package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yukikurage/feedback-management-api/internal/models"
	"github.com/yukikurage/feedback-management-api/internal/policy"
	"github.com/yukikurage/feedback-management-api/internal/repository"
)

// AssignmentCommentService handles the discussion thread of an assignment
type AssignmentCommentService struct {
	store    repository.Store
	notifier *Notifier
}

func NewAssignmentCommentService(store repository.Store, notifier *Notifier) *AssignmentCommentService {
	return &AssignmentCommentService{
		store:    store,
		notifier: notifier,
	}
}

// Create adds a comment. An employee comment notifies the manager, a manager
// comment notifies every direct report.
func (s *AssignmentCommentService) Create(ctx context.Context, author *models.User, assignmentID uint64, content string) (*models.AssignmentComment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}

	assignment, err := s.accessible(author, assignmentID)
	if err != nil {
		return nil, err
	}

	comment := &models.AssignmentComment{
		AssignmentID: assignment.ID,
		AuthorID:     author.ID,
		Content:      content,
	}

	err = s.notifier.Within(ctx, s.store, func(tx repository.Store, notify NotifyFunc) error {
		if err := tx.AssignmentComments().Create(comment); err != nil {
			return fmt.Errorf("failed to create assignment comment: %w", err)
		}
		if author.IsEmployee() {
			return notify(fmt.Sprintf("New comment on assignment '%s' by %s", assignment.Title, author.Name), assignment.ManagerID)
		}
		ids, err := teamIDs(tx, assignment.ManagerID)
		if err != nil {
			return err
		}
		return notify(fmt.Sprintf("Manager %s commented on assignment '%s'", author.Name, assignment.Title), ids...)
	})
	if err != nil {
		return nil, err
	}

	return s.reload(comment.ID)
}

// ListByAssignment returns the thread of an assignment, oldest first
func (s *AssignmentCommentService) ListByAssignment(viewer *models.User, assignmentID uint64) ([]models.AssignmentComment, error) {
	assignment, err := s.accessible(viewer, assignmentID)
	if err != nil {
		return nil, err
	}

	items, err := s.store.AssignmentComments().ListByAssignment(assignment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignment comments: %w", err)
	}
	return items, nil
}

// Update changes the content of the caller's own comment
func (s *AssignmentCommentService) Update(author *models.User, commentID uint64, content string) (*models.AssignmentComment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}

	comment, err := s.authored(author, commentID)
	if err != nil {
		return nil, err
	}
	comment.Content = content
	if err := s.store.AssignmentComments().Update(comment); err != nil {
		return nil, fmt.Errorf("failed to update assignment comment: %w", err)
	}
	return s.reload(comment.ID)
}

// Delete removes the caller's own comment
func (s *AssignmentCommentService) Delete(author *models.User, commentID uint64) error {
	comment, err := s.authored(author, commentID)
	if err != nil {
		return err
	}
	if err := s.store.AssignmentComments().Delete(comment.ID); err != nil {
		return fmt.Errorf("failed to delete assignment comment: %w", err)
	}
	return nil
}

func (s *AssignmentCommentService) accessible(user *models.User, assignmentID uint64) (*models.Assignment, error) {
	assignment, err := s.store.Assignments().FindByID(assignmentID)
	if err != nil {
		return nil, lookupError(err, ErrAssignmentNotFound, "assignment")
	}
	if !policy.CanAccessAssignment(user, assignment) {
		return nil, ErrAssignmentAccessDenied
	}
	return assignment, nil
}

func (s *AssignmentCommentService) authored(author *models.User, commentID uint64) (*models.AssignmentComment, error) {
	comment, err := s.store.AssignmentComments().FindByID(commentID)
	if err != nil {
		return nil, lookupError(err, ErrAssignmentCommentNotFound, "assignment comment")
	}
	if !policy.IsAuthor(author, comment.AuthorID) {
		return nil, ErrNotCommentAuthor
	}
	return comment, nil
}

func (s *AssignmentCommentService) reload(commentID uint64) (*models.AssignmentComment, error) {
	comment, err := s.store.AssignmentComments().FindByID(commentID, "Author")
	if err != nil {
		return nil, lookupError(err, ErrAssignmentCommentNotFound, "assignment comment")
	}
	return comment, nil
}
