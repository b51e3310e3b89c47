package repository

import (
	"github.com/yukikurage/feedback-management-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Omit(clause.Associations).Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListByManager lists the direct reports of a manager
func (r *GormUserRepository) ListByManager(managerID uint64) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Where("manager_id = ? AND role = ?", managerID, models.RoleEmployee).
		Order("name ASC").Order("id ASC").
		Find(&users).Error
	return users, err
}

// CountByManager counts the direct reports of a manager
func (r *GormUserRepository) CountByManager(managerID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("manager_id = ? AND role = ?", managerID, models.RoleEmployee).
		Count(&count).Error
	return count, err
}
