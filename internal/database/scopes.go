package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/feedback-management-api/internal/utils"
)

// Paginate applies pagination to a GORM query. A nil params leaves the query unbounded.
func Paginate(params *utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params == nil {
			return db
		}
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// Newest orders by created_at descending with id as the tie breaker.
func Newest(table string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(table + ".created_at DESC").Order(table + ".id DESC")
	}
}
