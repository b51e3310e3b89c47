package repository

import (
	"github.com/yukikurage/feedback-management-api/internal/database"
	"github.com/yukikurage/feedback-management-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAnnouncementRepository is a GORM implementation of AnnouncementRepository
type GormAnnouncementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(db *gorm.DB) AnnouncementRepository {
	return &GormAnnouncementRepository{db: db}
}

func (r *GormAnnouncementRepository) Create(announcement *models.Announcement) error {
	return r.db.Omit(clause.Associations).Create(announcement).Error
}

func (r *GormAnnouncementRepository) FindByID(id uint64, preload ...string) (*models.Announcement, error) {
	preload, withManager := withoutManager(preload)
	items := make([]models.Announcement, 1)
	if err := applyPreloads(r.db, preload).First(&items[0], id).Error; err != nil {
		return nil, err
	}
	if withManager {
		if err := attachManagers(r.db, items, announcementManager); err != nil {
			return nil, err
		}
	}
	return &items[0], nil
}

func (r *GormAnnouncementRepository) Update(announcement *models.Announcement) error {
	return r.db.Omit(clause.Associations).Save(announcement).Error
}

func (r *GormAnnouncementRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Announcement{}, id).Error
}

func (r *GormAnnouncementRepository) ListByManager(managerID uint64, activeOnly bool) ([]models.Announcement, error) {
	query := r.db.Where("manager_id = ?", managerID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var announcements []models.Announcement
	if err := query.Scopes(database.Newest("announcements")).Find(&announcements).Error; err != nil {
		return nil, err
	}
	return announcements, attachManagers(r.db, announcements, announcementManager)
}
