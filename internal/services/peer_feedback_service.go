package services

import (
	"fmt"
	"strings"

	"github.com/yukikurage/feedback-management-api/internal/models"
	"github.com/yukikurage/feedback-management-api/internal/policy"
	"github.com/yukikurage/feedback-management-api/internal/repository"
)

var peerFeedbackPreloads = []string{"FromEmployee", "ToEmployee"}

// PeerFeedbackService handles feedback exchanged between employees of one team
type PeerFeedbackService struct {
	store repository.Store
}

func NewPeerFeedbackService(store repository.Store) *PeerFeedbackService {
	return &PeerFeedbackService{store: store}
}

// CreatePeerFeedbackInput represents input for creating peer feedback
type CreatePeerFeedbackInput struct {
	ToEmployeeID   uint64
	Strengths      string
	AreasToImprove string
	Sentiment      models.Sentiment
	IsAnonymous    bool
}

// UpdatePeerFeedbackInput is a partial update. Unlike manager feedback, the
// fields are applied independently of each other.
type UpdatePeerFeedbackInput struct {
	Strengths      *string
	AreasToImprove *string
	Sentiment      *models.Sentiment
	Acknowledged   *bool
	IsAnonymous    *bool
}

// Create stores feedback from sender to a teammate
func (s *PeerFeedbackService) Create(sender *models.User, input CreatePeerFeedbackInput) (*models.PeerFeedback, error) {
	if strings.TrimSpace(input.Strengths) == "" || strings.TrimSpace(input.AreasToImprove) == "" {
		return nil, ErrFeedbackContentRequired
	}
	if !input.Sentiment.Valid() {
		return nil, ErrInvalidSentiment
	}
	if input.ToEmployeeID == sender.ID {
		return nil, ErrSelfFeedback
	}

	recipient, err := s.store.Users().FindByID(input.ToEmployeeID)
	if err != nil {
		return nil, lookupError(err, ErrRecipientNotFound, "recipient")
	}
	if !recipient.IsEmployee() || !policy.SameTeam(sender, recipient) {
		return nil, ErrNotTeamMember
	}

	feedback := &models.PeerFeedback{
		FromEmployeeID: sender.ID,
		ToEmployeeID:   recipient.ID,
		Strengths:      input.Strengths,
		AreasToImprove: input.AreasToImprove,
		Sentiment:      input.Sentiment,
		IsAnonymous:    input.IsAnonymous,
	}
	if err := s.store.PeerFeedback().Create(feedback); err != nil {
		return nil, fmt.Errorf("failed to create peer feedback: %w", err)
	}

	return s.reload(feedback.ID)
}

// Received lists peer feedback addressed to employee
func (s *PeerFeedbackService) Received(employee *models.User) ([]models.PeerFeedback, error) {
	items, err := s.store.PeerFeedback().ListByRecipient(employee.ID, peerFeedbackPreloads...)
	if err != nil {
		return nil, fmt.Errorf("failed to list received peer feedback: %w", err)
	}
	return items, nil
}

// Sent lists peer feedback written by employee
func (s *PeerFeedbackService) Sent(employee *models.User) ([]models.PeerFeedback, error) {
	items, err := s.store.PeerFeedback().ListBySender(employee.ID, peerFeedbackPreloads...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sent peer feedback: %w", err)
	}
	return items, nil
}

// TeamMembers lists the teammates employee may give feedback to
func (s *PeerFeedbackService) TeamMembers(employee *models.User) ([]models.User, error) {
	if employee.ManagerID == nil {
		return []models.User{}, nil
	}

	members, err := s.store.Users().ListByManager(*employee.ManagerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}

	out := make([]models.User, 0, len(members))
	for i := range members {
		if members[i].IsEmployee() && policy.SameTeam(employee, &members[i]) {
			out = append(out, members[i])
		}
	}
	return out, nil
}

// Acknowledge marks peer feedback as read by its recipient
func (s *PeerFeedbackService) Acknowledge(employee *models.User, feedbackID uint64) (*models.PeerFeedback, error) {
	acknowledged := true
	return s.apply(feedbackID, func(fb *models.PeerFeedback) bool {
		return fb.ToEmployeeID == employee.ID
	}, UpdatePeerFeedbackInput{Acknowledged: &acknowledged})
}

// Update lets the sender edit peer feedback
func (s *PeerFeedbackService) Update(sender *models.User, feedbackID uint64, input UpdatePeerFeedbackInput) (*models.PeerFeedback, error) {
	if input.Sentiment != nil && !input.Sentiment.Valid() {
		return nil, ErrInvalidSentiment
	}
	return s.apply(feedbackID, func(fb *models.PeerFeedback) bool {
		return fb.FromEmployeeID == sender.ID
	}, input)
}

func (s *PeerFeedbackService) apply(feedbackID uint64, allowed func(*models.PeerFeedback) bool, input UpdatePeerFeedbackInput) (*models.PeerFeedback, error) {
	feedback, err := s.store.PeerFeedback().FindByID(feedbackID)
	if err != nil {
		return nil, lookupError(err, ErrPeerFeedbackNotFound, "peer feedback")
	}
	if err := hideUnauthorized(allowed(feedback), ErrPeerFeedbackNotFound); err != nil {
		return nil, err
	}

	if input.Strengths != nil {
		feedback.Strengths = *input.Strengths
	}
	if input.AreasToImprove != nil {
		feedback.AreasToImprove = *input.AreasToImprove
	}
	if input.Sentiment != nil {
		feedback.Sentiment = *input.Sentiment
	}
	if input.Acknowledged != nil {
		feedback.Acknowledged = *input.Acknowledged
	}
	if input.IsAnonymous != nil {
		feedback.IsAnonymous = *input.IsAnonymous
	}

	if err := s.store.PeerFeedback().Update(feedback); err != nil {
		return nil, fmt.Errorf("failed to update peer feedback: %w", err)
	}
	return s.reload(feedback.ID)
}

func (s *PeerFeedbackService) reload(feedbackID uint64) (*models.PeerFeedback, error) {
	feedback, err := s.store.PeerFeedback().FindByID(feedbackID, peerFeedbackPreloads...)
	if err != nil {
		return nil, lookupError(err, ErrPeerFeedbackNotFound, "peer feedback")
	}
	return feedback, nil
}
