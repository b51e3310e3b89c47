package database

import (
	"fmt"

	"github.com/yukikurage/feedback-management-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type compositeIndex struct {
	model   interface{}
	table   string
	name    string
	columns string
}

// Indexes that back the list queries and cannot be declared with struct tags
// on a single column.
var compositeIndexes = []compositeIndex{
	{&models.Notification{}, "notifications", "idx_notifications_user_created", "user_id, created_at"},
	{&models.Announcement{}, "announcements", "idx_announcements_manager_active", "manager_id, is_active"},
	{&models.Assignment{}, "assignments", "idx_assignments_manager_active", "manager_id, is_active"},
	{&models.Document{}, "documents", "idx_documents_employee_public", "employee_id, is_public"},
	{&models.Feedback{}, "feedback", "idx_feedback_employee_created", "employee_id, created_at"},
}

// AddIndexes creates the composite indexes that do not exist yet.
func AddIndexes(db *gorm.DB, log *zap.Logger) error {
	migrator := db.Migrator()
	for _, idx := range compositeIndexes {
		if migrator.HasIndex(idx.model, idx.name) {
			log.Debug("index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info("created index", zap.String("index", idx.name), zap.String("table", idx.table))
	}

	return nil
}
