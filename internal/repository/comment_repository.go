package repository

import (
	"github.com/yukikurage/feedback-management-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCommentRepository is a GORM implementation of CommentRepository
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) Create(comment *models.Comment) error {
	return r.db.Omit(clause.Associations).Create(comment).Error
}

func (r *GormCommentRepository) FindByID(id uint64, preload ...string) (*models.Comment, error) {
	var comment models.Comment
	if err := applyPreloads(r.db, preload).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *GormCommentRepository) Update(comment *models.Comment) error {
	return r.db.Omit(clause.Associations).Save(comment).Error
}

func (r *GormCommentRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Comment{}, id).Error
}

func (r *GormCommentRepository) ListByFeedback(feedbackID uint64) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("Employee").
		Where("feedback_id = ?", feedbackID).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error
	return comments, err
}

// GormAssignmentCommentRepository is a GORM implementation of AssignmentCommentRepository
type GormAssignmentCommentRepository struct {
	db *gorm.DB
}

// NewAssignmentCommentRepository creates a new AssignmentCommentRepository
func NewAssignmentCommentRepository(db *gorm.DB) AssignmentCommentRepository {
	return &GormAssignmentCommentRepository{db: db}
}

func (r *GormAssignmentCommentRepository) Create(comment *models.AssignmentComment) error {
	return r.db.Omit(clause.Associations).Create(comment).Error
}

func (r *GormAssignmentCommentRepository) FindByID(id uint64, preload ...string) (*models.AssignmentComment, error) {
	var comment models.AssignmentComment
	if err := applyPreloads(r.db, preload).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *GormAssignmentCommentRepository) Update(comment *models.AssignmentComment) error {
	return r.db.Omit(clause.Associations).Save(comment).Error
}

func (r *GormAssignmentCommentRepository) Delete(id uint64) error {
	return r.db.Delete(&models.AssignmentComment{}, id).Error
}

func (r *GormAssignmentCommentRepository) ListByAssignment(assignmentID uint64) ([]models.AssignmentComment, error) {
	var comments []models.AssignmentComment
	err := r.db.Preload("Author").
		Where("assignment_id = ?", assignmentID).
		Order("created_at ASC").Order("id ASC").
		Find(&comments).Error
	return comments, err
}

func (r *GormAssignmentCommentRepository) DeleteByAssignment(assignmentID uint64) error {
	return r.db.Where("assignment_id = ?", assignmentID).Delete(&models.AssignmentComment{}).Error
}
