package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yukikurage/feedback-management-api/internal/models"
	"github.com/yukikurage/feedback-management-api/internal/policy"
	"github.com/yukikurage/feedback-management-api/internal/report"
	"github.com/yukikurage/feedback-management-api/internal/repository"
)

var feedbackPreloads = []string{"Employee", "Manager"}

// FeedbackService handles manager feedback business logic
type FeedbackService struct {
	store     repository.Store
	notifier  *Notifier
	aiService *AIService
}

// NewFeedbackService creates a new FeedbackService. aiService may be nil.
func NewFeedbackService(store repository.Store, notifier *Notifier, aiService *AIService) *FeedbackService {
	return &FeedbackService{
		store:     store,
		notifier:  notifier,
		aiService: aiService,
	}
}

// CreateFeedbackInput represents input for creating feedback
type CreateFeedbackInput struct {
	EmployeeID     uint64
	Strengths      string
	AreasToImprove string
	Sentiment      models.Sentiment
	IsAnonymous    bool
}

// UpdateFeedbackInput represents a partial feedback update. Nil fields are left untouched.
type UpdateFeedbackInput struct {
	Strengths      *string
	AreasToImprove *string
	Sentiment      *models.Sentiment
	Acknowledged   *bool
	IsAnonymous    *bool
}

// HasContent reports whether the update touches strengths, areas to improve or sentiment.
func (in UpdateFeedbackInput) HasContent() bool {
	return in.Strengths != nil || in.AreasToImprove != nil || in.Sentiment != nil
}

// ApplyFeedbackUpdate applies in to fb. Any content field resets the
// acknowledgment and an explicit Acknowledged is then ignored; without
// content fields Acknowledged is applied as given.
func ApplyFeedbackUpdate(fb *models.Feedback, in UpdateFeedbackInput) {
	if in.Strengths != nil {
		fb.Strengths = *in.Strengths
	}
	if in.AreasToImprove != nil {
		fb.AreasToImprove = *in.AreasToImprove
	}
	if in.Sentiment != nil {
		fb.Sentiment = *in.Sentiment
	}
	if in.IsAnonymous != nil {
		fb.IsAnonymous = *in.IsAnonymous
	}

	if in.HasContent() {
		fb.Acknowledged = false
	} else if in.Acknowledged != nil {
		fb.Acknowledged = *in.Acknowledged
	}
}

// Create stores feedback from a manager for one of their direct reports
func (s *FeedbackService) Create(manager *models.User, input CreateFeedbackInput) (*models.Feedback, error) {
	if strings.TrimSpace(input.Strengths) == "" || strings.TrimSpace(input.AreasToImprove) == "" {
		return nil, ErrFeedbackContentRequired
	}
	if !input.Sentiment.Valid() {
		return nil, ErrInvalidSentiment
	}

	employee, err := s.store.Users().FindByID(input.EmployeeID)
	if err != nil {
		return nil, lookupError(err, ErrEmployeeNotInTeam, "employee")
	}
	if err := hideUnauthorized(policy.IsManagerOf(manager, employee), ErrEmployeeNotInTeam); err != nil {
		return nil, err
	}

	feedback := &models.Feedback{
		EmployeeID:     employee.ID,
		ManagerID:      manager.ID,
		Strengths:      input.Strengths,
		AreasToImprove: input.AreasToImprove,
		Sentiment:      input.Sentiment,
		IsAnonymous:    input.IsAnonymous,
	}
	if err := s.store.Feedback().Create(feedback); err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	return s.reload(feedback.ID)
}

// ListForEmployee returns the feedback an employee received. Employees may
// only list their own, managers only their direct reports'.
func (s *FeedbackService) ListForEmployee(viewer *models.User, employeeID uint64) ([]models.Feedback, error) {
	if viewer.IsEmployee() {
		if viewer.ID != employeeID {
			return nil, ErrFeedbackAccessDenied
		}
	} else {
		employee, err := s.store.Users().FindByID(employeeID)
		if err != nil {
			return nil, lookupError(err, ErrFeedbackAccessDenied, "employee")
		}
		if !policy.IsManagerOf(viewer, employee) {
			return nil, ErrFeedbackAccessDenied
		}
	}

	items, err := s.store.Feedback().ListByEmployee(employeeID, feedbackPreloads...)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return items, nil
}

// Get returns one feedback entry visible to viewer
func (s *FeedbackService) Get(viewer *models.User, feedbackID uint64) (*models.Feedback, error) {
	feedback, err := s.reload(feedbackID)
	if err != nil {
		return nil, err
	}
	if err := hideUnauthorized(policy.CanViewFeedback(viewer, feedback), ErrFeedbackNotFound); err != nil {
		return nil, err
	}
	return feedback, nil
}

// Update lets the authoring manager change feedback
func (s *FeedbackService) Update(manager *models.User, feedbackID uint64, input UpdateFeedbackInput) (*models.Feedback, error) {
	if input.Sentiment != nil && !input.Sentiment.Valid() {
		return nil, ErrInvalidSentiment
	}

	feedback, err := s.store.Feedback().FindByID(feedbackID)
	if err != nil {
		return nil, lookupError(err, ErrFeedbackNotFound, "feedback")
	}
	if err := hideUnauthorized(feedback.ManagerID == manager.ID, ErrFeedbackNotFound); err != nil {
		return nil, err
	}

	ApplyFeedbackUpdate(feedback, input)
	if err := s.store.Feedback().Update(feedback); err != nil {
		return nil, fmt.Errorf("failed to update feedback: %w", err)
	}

	return s.reload(feedback.ID)
}

// Acknowledge marks feedback as read by the employee it was written for
func (s *FeedbackService) Acknowledge(employee *models.User, feedbackID uint64) (*models.Feedback, error) {
	feedback, err := s.store.Feedback().FindByID(feedbackID)
	if err != nil {
		return nil, lookupError(err, ErrFeedbackNotFound, "feedback")
	}
	if err := hideUnauthorized(feedback.EmployeeID == employee.ID, ErrFeedbackNotFound); err != nil {
		return nil, err
	}

	acknowledged := true
	ApplyFeedbackUpdate(feedback, UpdateFeedbackInput{Acknowledged: &acknowledged})
	if err := s.store.Feedback().Update(feedback); err != nil {
		return nil, fmt.Errorf("failed to acknowledge feedback: %w", err)
	}

	return s.reload(feedback.ID)
}

// RequestFeedback notifies the employee's manager that feedback was requested
func (s *FeedbackService) RequestFeedback(ctx context.Context, employee *models.User) error {
	if employee.ManagerID == nil {
		return ErrNoManager
	}

	message := fmt.Sprintf("Employee '%s' has requested feedback.", employee.Name)
	return s.notifier.Within(ctx, s.store, func(_ repository.Store, notify NotifyFunc) error {
		return notify(message, *employee.ManagerID)
	})
}

// ExportFeedback renders one feedback entry as PDF
func (s *FeedbackService) ExportFeedback(viewer *models.User, feedbackID uint64) ([]byte, string, error) {
	feedback, err := s.Get(viewer, feedbackID)
	if err != nil {
		return nil, "", err
	}

	pdf, err := report.FeedbackReport(feedback.Employee.Name, []models.Feedback{*feedback})
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("feedback_%d.pdf", feedback.ID), nil
}

// ExportEmployeeFeedback renders every feedback entry of a direct report as PDF
func (s *FeedbackService) ExportEmployeeFeedback(manager *models.User, employeeID uint64) ([]byte, string, error) {
	employee, items, err := s.teamFeedback(manager, employeeID)
	if err != nil {
		return nil, "", err
	}

	pdf, err := report.FeedbackReport(employee.Name, items)
	if err != nil {
		return nil, "", err
	}
	return pdf, fmt.Sprintf("feedback_report_%d.pdf", employee.ID), nil
}

// Summarize produces an AI digest of a direct report's feedback
func (s *FeedbackService) Summarize(ctx context.Context, manager *models.User, employeeID uint64) (string, int, error) {
	if s.aiService == nil {
		return "", 0, ErrAIServiceNotConfigured
	}

	employee, items, err := s.teamFeedback(manager, employeeID)
	if err != nil {
		return "", 0, err
	}

	summary, err := s.aiService.SummarizeFeedback(ctx, employee.Name, items)
	if err != nil {
		return "", 0, err
	}
	return summary, len(items), nil
}

func (s *FeedbackService) teamFeedback(manager *models.User, employeeID uint64) (*models.User, []models.Feedback, error) {
	employee, err := s.store.Users().FindByID(employeeID)
	if err != nil {
		return nil, nil, lookupError(err, ErrEmployeeNotInTeam, "employee")
	}
	if err := hideUnauthorized(policy.IsManagerOf(manager, employee), ErrEmployeeNotInTeam); err != nil {
		return nil, nil, err
	}

	items, err := s.store.Feedback().ListByEmployee(employee.ID, feedbackPreloads...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	if len(items) == 0 {
		return nil, nil, ErrNoFeedback
	}
	return employee, items, nil
}

func (s *FeedbackService) reload(feedbackID uint64) (*models.Feedback, error) {
	feedback, err := s.store.Feedback().FindByID(feedbackID, feedbackPreloads...)
	if err != nil {
		return nil, lookupError(err, ErrFeedbackNotFound, "feedback")
	}
	return feedback, nil
}
