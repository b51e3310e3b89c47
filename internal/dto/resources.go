package dto

import (
	"time"

	"github.com/yukikurage/feedback-management-api/internal/models"
)

// NotificationDTO represents a notification in API responses
type NotificationDTO struct {
	ID        uint64    `json:"id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func ToNotificationDTOs(items []models.Notification) []NotificationDTO {
	out := make([]NotificationDTO, 0, len(items))
	for _, n := range items {
		out = append(out, NotificationDTO{
			ID:        n.ID,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}

// AnnouncementDTO represents an announcement in API responses
type AnnouncementDTO struct {
	ID          uint64    `json:"id"`
	ManagerID   uint64    `json:"manager_id"`
	ManagerName string    `json:"manager_name"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToAnnouncementDTO(a models.Announcement) AnnouncementDTO {
	return AnnouncementDTO{
		ID:          a.ID,
		ManagerID:   a.ManagerID,
		ManagerName: nameOf(a.Manager),
		Title:       a.Title,
		Content:     a.Content,
		IsActive:    a.IsActive,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func ToAnnouncementDTOs(items []models.Announcement) []AnnouncementDTO {
	out := make([]AnnouncementDTO, 0, len(items))
	for _, a := range items {
		out = append(out, ToAnnouncementDTO(a))
	}
	return out
}

// DocumentDTO represents an employee document in API responses
type DocumentDTO struct {
	ID           uint64    `json:"id"`
	EmployeeID   uint64    `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Filename     string    `json:"filename"`
	FileSize     int64     `json:"file_size"`
	MimeType     string    `json:"mime_type"`
	IsPublic     bool      `json:"is_public"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToDocumentDTO(d models.Document) DocumentDTO {
	return DocumentDTO{
		ID:           d.ID,
		EmployeeID:   d.EmployeeID,
		EmployeeName: nameOf(d.Employee),
		Title:        d.Title,
		Description:  d.Description,
		Filename:     d.StoredFile.Filename,
		FileSize:     d.StoredFile.FileSize,
		MimeType:     d.StoredFile.MimeType,
		IsPublic:     d.IsPublic,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func ToDocumentDTOs(items []models.Document) []DocumentDTO {
	out := make([]DocumentDTO, 0, len(items))
	for _, d := range items {
		out = append(out, ToDocumentDTO(d))
	}
	return out
}

// AssignmentDTO represents an assignment in API responses
type AssignmentDTO struct {
	ID              uint64     `json:"id"`
	ManagerID       uint64     `json:"manager_id"`
	ManagerName     string     `json:"manager_name"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Filename        string     `json:"filename"`
	FileSize        int64      `json:"file_size"`
	MimeType        string     `json:"mime_type"`
	DueDate         *time.Time `json:"due_date"`
	IsActive        bool       `json:"is_active"`
	SubmissionCount int64      `json:"submission_count"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func ToAssignmentDTO(a models.Assignment, submissionCount int64) AssignmentDTO {
	return AssignmentDTO{
		ID:              a.ID,
		ManagerID:       a.ManagerID,
		ManagerName:     nameOf(a.Manager),
		Title:           a.Title,
		Description:     a.Description,
		Filename:        a.StoredFile.Filename,
		FileSize:        a.StoredFile.FileSize,
		MimeType:        a.StoredFile.MimeType,
		DueDate:         a.DueDate,
		IsActive:        a.IsActive,
		SubmissionCount: submissionCount,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// ToAssignmentDTOs looks up each assignment's count in counts; missing entries count as zero.
func ToAssignmentDTOs(items []models.Assignment, counts map[uint64]int64) []AssignmentDTO {
	out := make([]AssignmentDTO, 0, len(items))
	for _, a := range items {
		out = append(out, ToAssignmentDTO(a, counts[a.ID]))
	}
	return out
}

// SubmissionDTO represents a submission in API responses
type SubmissionDTO struct {
	ID              uint64    `json:"id"`
	AssignmentID    uint64    `json:"assignment_id"`
	AssignmentTitle string    `json:"assignment_title"`
	EmployeeID      uint64    `json:"employee_id"`
	EmployeeName    string    `json:"employee_name"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Filename        string    `json:"filename"`
	FileSize        int64     `json:"file_size"`
	MimeType        string    `json:"mime_type"`
	SubmittedAt     time.Time `json:"submitted_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func ToSubmissionDTO(s models.Submission) SubmissionDTO {
	return SubmissionDTO{
		ID:              s.ID,
		AssignmentID:    s.AssignmentID,
		AssignmentTitle: s.Assignment.Title,
		EmployeeID:      s.EmployeeID,
		EmployeeName:    nameOf(s.Employee),
		Title:           s.Title,
		Description:     s.Description,
		Filename:        s.StoredFile.Filename,
		FileSize:        s.StoredFile.FileSize,
		MimeType:        s.StoredFile.MimeType,
		SubmittedAt:     s.SubmittedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func ToSubmissionDTOs(items []models.Submission) []SubmissionDTO {
	out := make([]SubmissionDTO, 0, len(items))
	for _, s := range items {
		out = append(out, ToSubmissionDTO(s))
	}
	return out
}

// AssignmentCommentDTO represents a comment on an assignment
type AssignmentCommentDTO struct {
	ID           uint64      `json:"id"`
	AssignmentID uint64      `json:"assignment_id"`
	AuthorID     uint64      `json:"author_id"`
	AuthorName   string      `json:"author_name"`
	AuthorRole   models.Role `json:"author_role"`
	Content      string      `json:"content"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func ToAssignmentCommentDTO(c models.AssignmentComment) AssignmentCommentDTO {
	return AssignmentCommentDTO{
		ID:           c.ID,
		AssignmentID: c.AssignmentID,
		AuthorID:     c.AuthorID,
		AuthorName:   nameOf(c.Author),
		AuthorRole:   c.Author.Role,
		Content:      c.Content,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func ToAssignmentCommentDTOs(items []models.AssignmentComment) []AssignmentCommentDTO {
	out := make([]AssignmentCommentDTO, 0, len(items))
	for _, c := range items {
		out = append(out, ToAssignmentCommentDTO(c))
	}
	return out
}
