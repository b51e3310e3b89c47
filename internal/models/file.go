package models

import (
	"time"
)

// StoredFile is the metadata shared by every uploaded binary. Filename is
// the name reported to clients, FilePath the unique storage key.
type StoredFile struct {
	Filename string `gorm:"type:varchar(255);not null" json:"filename"`
	FilePath string `gorm:"type:varchar(512);not null" json:"-"`
	FileSize int64  `gorm:"not null" json:"file_size"`
	MimeType string `gorm:"type:varchar(127);not null" json:"mime_type"`
}

type Document struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	EmployeeID  uint64     `gorm:"not null;index" json:"employee_id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	StoredFile  StoredFile `gorm:"embedded"`
	IsPublic    bool       `gorm:"not null;default:false" json:"is_public"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Employee User `gorm:"foreignKey:EmployeeID" json:"-"`
}

type Assignment struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	ManagerID   uint64     `gorm:"not null;index" json:"manager_id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	StoredFile  StoredFile `gorm:"embedded"`
	DueDate     *time.Time `json:"due_date"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Filled by the repository from ManagerID
	Manager User `gorm:"-" json:"-"`
}

type Submission struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	AssignmentID uint64     `gorm:"not null;uniqueIndex:idx_submission_assignment_employee" json:"assignment_id"`
	EmployeeID   uint64     `gorm:"not null;uniqueIndex:idx_submission_assignment_employee;index" json:"employee_id"`
	Title        string     `gorm:"type:varchar(255);not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	StoredFile   StoredFile `gorm:"embedded"`
	SubmittedAt  time.Time  `gorm:"autoCreateTime" json:"submitted_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	Employee   User       `gorm:"foreignKey:EmployeeID" json:"-"`
	Assignment Assignment `gorm:"foreignKey:AssignmentID" json:"-"`
}
