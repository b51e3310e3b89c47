package models

import (
	"time"
)

type Comment struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	FeedbackID uint64    `gorm:"not null;index" json:"feedback_id"`
	EmployeeID uint64    `gorm:"not null;index" json:"employee_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Employee User `gorm:"foreignKey:EmployeeID" json:"-"`
}

type AssignmentComment struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	AssignmentID uint64    `gorm:"not null;index" json:"assignment_id"`
	AuthorID     uint64    `gorm:"not null;index" json:"author_id"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Author User `gorm:"foreignKey:AuthorID" json:"-"`
}
