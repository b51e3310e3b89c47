package repository

import (
	"github.com/yukikurage/feedback-management-api/internal/database"
	"github.com/yukikurage/feedback-management-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPeerFeedbackRepository is a GORM implementation of PeerFeedbackRepository
type GormPeerFeedbackRepository struct {
	db *gorm.DB
}

// NewPeerFeedbackRepository creates a new PeerFeedbackRepository
func NewPeerFeedbackRepository(db *gorm.DB) PeerFeedbackRepository {
	return &GormPeerFeedbackRepository{db: db}
}

func (r *GormPeerFeedbackRepository) Create(feedback *models.PeerFeedback) error {
	return r.db.Omit(clause.Associations).Create(feedback).Error
}

func (r *GormPeerFeedbackRepository) FindByID(id uint64, preload ...string) (*models.PeerFeedback, error) {
	var feedback models.PeerFeedback
	if err := applyPreloads(r.db, preload).First(&feedback, id).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}

func (r *GormPeerFeedbackRepository) Update(feedback *models.PeerFeedback) error {
	return r.db.Omit(clause.Associations).Save(feedback).Error
}

func (r *GormPeerFeedbackRepository) ListByRecipient(employeeID uint64, preload ...string) ([]models.PeerFeedback, error) {
	var items []models.PeerFeedback
	err := applyPreloads(r.db, preload).
		Where("to_employee_id = ?", employeeID).
		Scopes(database.Newest("peer_feedback")).
		Find(&items).Error
	return items, err
}

func (r *GormPeerFeedbackRepository) ListBySender(employeeID uint64, preload ...string) ([]models.PeerFeedback, error) {
	var items []models.PeerFeedback
	err := applyPreloads(r.db, preload).
		Where("from_employee_id = ?", employeeID).
		Scopes(database.Newest("peer_feedback")).
		Find(&items).Error
	return items, err
}
