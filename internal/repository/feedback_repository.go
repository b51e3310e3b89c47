package repository

import (
	"github.com/yukikurage/feedback-management-api/internal/database"
	"github.com/yukikurage/feedback-management-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormFeedbackRepository is a GORM implementation of FeedbackRepository
type GormFeedbackRepository struct {
	db *gorm.DB
}

// NewFeedbackRepository creates a new FeedbackRepository
func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &GormFeedbackRepository{db: db}
}

func (r *GormFeedbackRepository) Create(feedback *models.Feedback) error {
	return r.db.Omit(clause.Associations).Create(feedback).Error
}

func (r *GormFeedbackRepository) FindByID(id uint64, preload ...string) (*models.Feedback, error) {
	preload, withManager := withoutManager(preload)
	items := make([]models.Feedback, 1)
	if err := applyPreloads(r.db, preload).First(&items[0], id).Error; err != nil {
		return nil, err
	}
	if withManager {
		if err := attachManagers(r.db, items, feedbackManager); err != nil {
			return nil, err
		}
	}
	return &items[0], nil
}

func (r *GormFeedbackRepository) Update(feedback *models.Feedback) error {
	return r.db.Omit(clause.Associations).Save(feedback).Error
}

func (r *GormFeedbackRepository) ListByEmployee(employeeID uint64, preload ...string) ([]models.Feedback, error) {
	preload, withManager := withoutManager(preload)
	var items []models.Feedback
	err := applyPreloads(r.db, preload).
		Where("employee_id = ?", employeeID).
		Scopes(database.Newest("feedback")).
		Find(&items).Error
	if err != nil || !withManager {
		return items, err
	}
	return items, attachManagers(r.db, items, feedbackManager)
}

func (r *GormFeedbackRepository) CountByManager(managerID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Feedback{}).Where("manager_id = ?", managerID).Count(&count).Error
	return count, err
}

// SentimentCounts returns a count for every sentiment, including zeroes
func (r *GormFeedbackRepository) SentimentCounts(managerID uint64) (map[models.Sentiment]int64, error) {
	var rows []struct {
		Sentiment models.Sentiment
		Count     int64
	}
	err := r.db.Model(&models.Feedback{}).
		Select("sentiment, COUNT(*) AS count").
		Where("manager_id = ?", managerID).
		Group("sentiment").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.Sentiment]int64, len(models.Sentiments))
	for _, s := range models.Sentiments {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[row.Sentiment] = row.Count
	}
	return counts, nil
}
