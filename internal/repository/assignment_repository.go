package repository

import (
	"github.com/yukikurage/feedback-management-api/internal/database"
	"github.com/yukikurage/feedback-management-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAssignmentRepository is a GORM implementation of AssignmentRepository
type GormAssignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &GormAssignmentRepository{db: db}
}

func (r *GormAssignmentRepository) Create(assignment *models.Assignment) error {
	return r.db.Omit(clause.Associations).Create(assignment).Error
}

func (r *GormAssignmentRepository) FindByID(id uint64, preload ...string) (*models.Assignment, error) {
	preload, withManager := withoutManager(preload)
	items := make([]models.Assignment, 1)
	if err := applyPreloads(r.db, preload).First(&items[0], id).Error; err != nil {
		return nil, err
	}
	if withManager {
		if err := attachManagers(r.db, items, assignmentManager); err != nil {
			return nil, err
		}
	}
	return &items[0], nil
}

func (r *GormAssignmentRepository) Update(assignment *models.Assignment) error {
	return r.db.Omit(clause.Associations).Save(assignment).Error
}

func (r *GormAssignmentRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Assignment{}, id).Error
}

func (r *GormAssignmentRepository) ListByManager(managerID uint64, activeOnly bool) ([]models.Assignment, error) {
	query := r.db.Where("manager_id = ?", managerID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var assignments []models.Assignment
	if err := query.Scopes(database.Newest("assignments")).Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, attachManagers(r.db, assignments, assignmentManager)
}

// GormSubmissionRepository is a GORM implementation of SubmissionRepository
type GormSubmissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &GormSubmissionRepository{db: db}
}

func (r *GormSubmissionRepository) Create(submission *models.Submission) error {
	return r.db.Omit(clause.Associations).Create(submission).Error
}

func (r *GormSubmissionRepository) FindByID(id uint64, preload ...string) (*models.Submission, error) {
	var submission models.Submission
	if err := applyPreloads(r.db, preload).First(&submission, id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *GormSubmissionRepository) FindByAssignmentAndEmployee(assignmentID, employeeID uint64) (*models.Submission, error) {
	var submission models.Submission
	err := r.db.
		Where("assignment_id = ? AND employee_id = ?", assignmentID, employeeID).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *GormSubmissionRepository) Update(submission *models.Submission) error {
	return r.db.Omit(clause.Associations).Save(submission).Error
}

func (r *GormSubmissionRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Submission{}, id).Error
}

func (r *GormSubmissionRepository) ListByAssignment(assignmentID uint64, preload ...string) ([]models.Submission, error) {
	var submissions []models.Submission
	err := applyPreloads(r.db, preload).
		Where("assignment_id = ?", assignmentID).
		Order("submitted_at DESC").Order("id DESC").
		Find(&submissions).Error
	return submissions, err
}

func (r *GormSubmissionRepository) ListByEmployee(employeeID uint64, preload ...string) ([]models.Submission, error) {
	var submissions []models.Submission
	err := applyPreloads(r.db, preload).
		Where("employee_id = ?", employeeID).
		Order("submitted_at DESC").Order("id DESC").
		Find(&submissions).Error
	return submissions, err
}

func (r *GormSubmissionRepository) CountByAssignments(assignmentIDs []uint64) (map[uint64]int64, error) {
	counts := make(map[uint64]int64, len(assignmentIDs))
	if len(assignmentIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		AssignmentID uint64
		Count        int64
	}
	err := r.db.Model(&models.Submission{}).
		Select("assignment_id, COUNT(*) AS count").
		Where("assignment_id IN ?", assignmentIDs).
		Group("assignment_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.AssignmentID] = row.Count
	}
	return counts, nil
}

func (r *GormSubmissionRepository) DeleteByAssignment(assignmentID uint64) error {
	return r.db.Where("assignment_id = ?", assignmentID).Delete(&models.Submission{}).Error
}
