package repository

import (
	"github.com/yukikurage/feedback-management-api/internal/models"
	"gorm.io/gorm"
)

// managerRelation is resolved by id rather than as a gorm association.
// users carries its own manager_id column, so gorm would read
// foreignKey:ManagerID as a has-one pointing back at the wrong user.
const managerRelation = "Manager"

// withoutManager strips managerRelation from preload and reports whether
// it was requested.
func withoutManager(preload []string) ([]string, bool) {
	rest := make([]string, 0, len(preload))
	found := false
	for _, p := range preload {
		if p == managerRelation {
			found = true
			continue
		}
		rest = append(rest, p)
	}
	return rest, found
}

// attachManagers loads the managers referenced by items in one query and
// stores each through link. Rows whose manager no longer exists keep a zero
// User.
func attachManagers[T any](db *gorm.DB, items []T, link func(*T) (uint64, *models.User)) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]uint64, 0, len(items))
	for i := range items {
		id, _ := link(&items[i])
		ids = append(ids, id)
	}

	var users []models.User
	if err := db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return err
	}
	byID := make(map[uint64]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	for i := range items {
		id, dst := link(&items[i])
		if u, ok := byID[id]; ok {
			*dst = u
		}
	}
	return nil
}

func feedbackManager(fb *models.Feedback) (uint64, *models.User) {
	return fb.ManagerID, &fb.Manager
}

func announcementManager(a *models.Announcement) (uint64, *models.User) {
	return a.ManagerID, &a.Manager
}

func assignmentManager(a *models.Assignment) (uint64, *models.User) {
	return a.ManagerID, &a.Manager
}
