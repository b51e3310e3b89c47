package services

import (
	"fmt"

	"github.com/yukikurage/feedback-management-api/internal/models"
	"github.com/yukikurage/feedback-management-api/internal/repository"
)

// ManagerStats summarises a manager's team
type ManagerStats struct {
	TeamSize      int64
	FeedbackCount int64
	Sentiments    map[models.Sentiment]int64
}

// DashboardService builds the landing page data for both roles
type DashboardService struct {
	store repository.Store
}

func NewDashboardService(store repository.Store) *DashboardService {
	return &DashboardService{store: store}
}

// Manager returns team size, feedback written and the sentiment breakdown.
// Every sentiment is present in the breakdown, zero when unused.
func (s *DashboardService) Manager(manager *models.User) (*ManagerStats, error) {
	teamSize, err := s.store.Users().CountByManager(manager.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count team: %w", err)
	}
	feedbackCount, err := s.store.Feedback().CountByManager(manager.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count feedback: %w", err)
	}
	counts, err := s.store.Feedback().SentimentCounts(manager.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count sentiments: %w", err)
	}

	sentiments := make(map[models.Sentiment]int64, len(models.Sentiments))
	for _, sentiment := range models.Sentiments {
		sentiments[sentiment] = counts[sentiment]
	}

	return &ManagerStats{
		TeamSize:      teamSize,
		FeedbackCount: feedbackCount,
		Sentiments:    sentiments,
	}, nil
}

// Employee returns the feedback the employee received, newest first
func (s *DashboardService) Employee(employee *models.User) ([]models.Feedback, error) {
	items, err := s.store.Feedback().ListByEmployee(employee.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return items, nil
}
