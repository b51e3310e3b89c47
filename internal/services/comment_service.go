package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yukikurage/feedback-management-api/internal/constants"
	"github.com/yukikurage/feedback-management-api/internal/models"
	"github.com/yukikurage/feedback-management-api/internal/policy"
	"github.com/yukikurage/feedback-management-api/internal/repository"
)

// CommentService handles employee comments on manager feedback
type CommentService struct {
	store    repository.Store
	notifier *Notifier
}

func NewCommentService(store repository.Store, notifier *Notifier) *CommentService {
	return &CommentService{
		store:    store,
		notifier: notifier,
	}
}

// Create adds a comment to feedback the employee received and notifies its manager
func (s *CommentService) Create(ctx context.Context, employee *models.User, feedbackID uint64, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}

	feedback, err := s.store.Feedback().FindByID(feedbackID)
	if err != nil {
		return nil, lookupError(err, ErrFeedbackNotFound, "feedback")
	}
	if err := hideUnauthorized(feedback.EmployeeID == employee.ID, ErrFeedbackNotFound); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		FeedbackID: feedback.ID,
		EmployeeID: employee.ID,
		Content:    content,
	}
	message := fmt.Sprintf("Employee '%s' has commented on feedback #%d: \"%s\"",
		employee.Name, feedback.ID, commentPreview(content))

	err = s.notifier.Within(ctx, s.store, func(tx repository.Store, notify NotifyFunc) error {
		if err := tx.Comments().Create(comment); err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
		return notify(message, feedback.ManagerID)
	})
	if err != nil {
		return nil, err
	}

	return s.reload(comment.ID)
}

// ListByFeedback returns the comments on feedback visible to viewer, oldest first
func (s *CommentService) ListByFeedback(viewer *models.User, feedbackID uint64) ([]models.Comment, error) {
	feedback, err := s.store.Feedback().FindByID(feedbackID)
	if err != nil {
		return nil, lookupError(err, ErrFeedbackNotFound, "feedback")
	}
	if !policy.CanViewFeedback(viewer, feedback) {
		return nil, ErrCommentAccessDenied
	}

	comments, err := s.store.Comments().ListByFeedback(feedback.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// Update changes the content of the caller's own comment
func (s *CommentService) Update(ctx context.Context, employee *models.User, commentID uint64, content string) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrContentRequired
	}

	comment, feedback, err := s.ownComment(employee, commentID)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	message := fmt.Sprintf("Employee '%s' has updated their comment on feedback #%d: \"%s\"",
		employee.Name, feedback.ID, commentPreview(content))

	err = s.notifier.Within(ctx, s.store, func(tx repository.Store, notify NotifyFunc) error {
		if err := tx.Comments().Update(comment); err != nil {
			return fmt.Errorf("failed to update comment: %w", err)
		}
		return notify(message, feedback.ManagerID)
	})
	if err != nil {
		return nil, err
	}

	return s.reload(comment.ID)
}

// Delete removes the caller's own comment
func (s *CommentService) Delete(ctx context.Context, employee *models.User, commentID uint64) error {
	comment, feedback, err := s.ownComment(employee, commentID)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("Employee '%s' has deleted their comment on feedback #%d.", employee.Name, feedback.ID)
	return s.notifier.Within(ctx, s.store, func(tx repository.Store, notify NotifyFunc) error {
		if err := tx.Comments().Delete(comment.ID); err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}
		return notify(message, feedback.ManagerID)
	})
}

func (s *CommentService) ownComment(employee *models.User, commentID uint64) (*models.Comment, *models.Feedback, error) {
	comment, err := s.store.Comments().FindByID(commentID)
	if err != nil {
		return nil, nil, lookupError(err, ErrCommentNotFound, "comment")
	}
	if err := hideUnauthorized(policy.IsAuthor(employee, comment.EmployeeID), ErrCommentNotFound); err != nil {
		return nil, nil, err
	}

	feedback, err := s.store.Feedback().FindByID(comment.FeedbackID)
	if err != nil {
		return nil, nil, lookupError(err, ErrFeedbackNotFound, "feedback")
	}
	return comment, feedback, nil
}

func (s *CommentService) reload(commentID uint64) (*models.Comment, error) {
	comment, err := s.store.Comments().FindByID(commentID, "Employee")
	if err != nil {
		return nil, lookupError(err, ErrCommentNotFound, "comment")
	}
	return comment, nil
}

// commentPreview truncates content for notification messages.
func commentPreview(content string) string {
	runes := []rune(content)
	if len(runes) <= constants.CommentPreviewLength {
		return content
	}
	return string(runes[:constants.CommentPreviewLength]) + "..."
}
