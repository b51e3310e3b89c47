package repository

import (
	"github.com/yukikurage/feedback-management-api/internal/database"
	"github.com/yukikurage/feedback-management-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDocumentRepository is a GORM implementation of DocumentRepository
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &GormDocumentRepository{db: db}
}

func (r *GormDocumentRepository) Create(document *models.Document) error {
	return r.db.Omit(clause.Associations).Create(document).Error
}

func (r *GormDocumentRepository) FindByID(id uint64, preload ...string) (*models.Document, error) {
	var document models.Document
	if err := applyPreloads(r.db, preload).First(&document, id).Error; err != nil {
		return nil, err
	}
	return &document, nil
}

func (r *GormDocumentRepository) Update(document *models.Document) error {
	return r.db.Omit(clause.Associations).Save(document).Error
}

func (r *GormDocumentRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Document{}, id).Error
}

func (r *GormDocumentRepository) ListByEmployee(employeeID uint64) ([]models.Document, error) {
	var documents []models.Document
	err := r.db.Preload("Employee").
		Where("employee_id = ?", employeeID).
		Scopes(database.Newest("documents")).
		Find(&documents).Error
	return documents, err
}

func (r *GormDocumentRepository) ListPublicByManager(managerID uint64) ([]models.Document, error) {
	reports := r.db.Model(&models.User{}).Select("id").Where("manager_id = ?", managerID)

	var documents []models.Document
	err := r.db.Preload("Employee").
		Where("is_public = ? AND employee_id IN (?)", true, reports).
		Scopes(database.Newest("documents")).
		Find(&documents).Error
	return documents, err
}
