package repository

import (
	"github.com/yukikurage/feedback-management-api/internal/models"
	"github.com/yukikurage/feedback-management-api/internal/utils"
)

// Store groups the repositories that share one database session. Inside
// Transaction every repository returned by tx runs on the same transaction.
type Store interface {
	Users() UserRepository
	Feedback() FeedbackRepository
	PeerFeedback() PeerFeedbackRepository
	Comments() CommentRepository
	AssignmentComments() AssignmentCommentRepository
	Notifications() NotificationRepository
	Announcements() AnnouncementRepository
	Documents() DocumentRepository
	Assignments() AssignmentRepository
	Submissions() SubmissionRepository

	// Transaction runs fn in a database transaction. Returning an error rolls back.
	Transaction(fn func(tx Store) error) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// ListByManager lists the direct reports of a manager ordered by name
	ListByManager(managerID uint64) ([]models.User, error)

	// CountByManager counts the direct reports of a manager
	CountByManager(managerID uint64) (int64, error)
}

// FeedbackRepository defines the interface for manager feedback data access
type FeedbackRepository interface {
	// Create creates a new feedback entry
	Create(feedback *models.Feedback) error

	// FindByID finds feedback by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Feedback, error)

	// Update persists every column of the feedback
	Update(feedback *models.Feedback) error

	// ListByEmployee lists feedback received by an employee, newest first
	ListByEmployee(employeeID uint64, preload ...string) ([]models.Feedback, error)

	// CountByManager counts feedback written by a manager
	CountByManager(managerID uint64) (int64, error)

	// SentimentCounts groups feedback written by a manager by sentiment
	SentimentCounts(managerID uint64) (map[models.Sentiment]int64, error)
}

// PeerFeedbackRepository defines the interface for peer feedback data access
type PeerFeedbackRepository interface {
	Create(feedback *models.PeerFeedback) error
	FindByID(id uint64, preload ...string) (*models.PeerFeedback, error)
	Update(feedback *models.PeerFeedback) error

	// ListByRecipient lists peer feedback received by an employee, newest first
	ListByRecipient(employeeID uint64, preload ...string) ([]models.PeerFeedback, error)

	// ListBySender lists peer feedback written by an employee, newest first
	ListBySender(employeeID uint64, preload ...string) ([]models.PeerFeedback, error)
}

// CommentRepository defines the interface for feedback comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	FindByID(id uint64, preload ...string) (*models.Comment, error)
	Update(comment *models.Comment) error
	Delete(id uint64) error

	// ListByFeedback lists comments on a feedback entry, oldest first
	ListByFeedback(feedbackID uint64) ([]models.Comment, error)
}

// AssignmentCommentRepository defines the interface for assignment comment data access
type AssignmentCommentRepository interface {
	Create(comment *models.AssignmentComment) error
	FindByID(id uint64, preload ...string) (*models.AssignmentComment, error)
	Update(comment *models.AssignmentComment) error
	Delete(id uint64) error

	// ListByAssignment lists comments on an assignment, oldest first
	ListByAssignment(assignmentID uint64) ([]models.AssignmentComment, error)

	// DeleteByAssignment removes every comment of an assignment
	DeleteByAssignment(assignmentID uint64) error
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	// CreateBatch inserts one notification per element
	CreateBatch(notifications []models.Notification) error

	FindByID(id uint64) (*models.Notification, error)

	// ListByUser lists notifications of a recipient, newest first
	ListByUser(userID uint64, page *utils.PaginationParams) ([]models.Notification, int64, error)

	// MarkRead marks one notification as read
	MarkRead(id uint64) error

	// MarkAllRead marks every unread notification of a recipient as read
	MarkAllRead(userID uint64) (int64, error)
}

// AnnouncementRepository defines the interface for announcement data access
type AnnouncementRepository interface {
	Create(announcement *models.Announcement) error
	FindByID(id uint64, preload ...string) (*models.Announcement, error)
	Update(announcement *models.Announcement) error
	Delete(id uint64) error

	// ListByManager lists announcements of a manager, newest first
	ListByManager(managerID uint64, activeOnly bool) ([]models.Announcement, error)
}

// DocumentRepository defines the interface for document data access
type DocumentRepository interface {
	Create(document *models.Document) error
	FindByID(id uint64, preload ...string) (*models.Document, error)
	Update(document *models.Document) error
	Delete(id uint64) error

	// ListByEmployee lists documents uploaded by an employee, newest first
	ListByEmployee(employeeID uint64) ([]models.Document, error)

	// ListPublicByManager lists public documents of a manager's direct reports
	ListPublicByManager(managerID uint64) ([]models.Document, error)
}

// AssignmentRepository defines the interface for assignment data access
type AssignmentRepository interface {
	Create(assignment *models.Assignment) error
	FindByID(id uint64, preload ...string) (*models.Assignment, error)
	Update(assignment *models.Assignment) error
	Delete(id uint64) error

	// ListByManager lists assignments of a manager, newest first
	ListByManager(managerID uint64, activeOnly bool) ([]models.Assignment, error)
}

// SubmissionRepository defines the interface for submission data access
type SubmissionRepository interface {
	Create(submission *models.Submission) error
	FindByID(id uint64, preload ...string) (*models.Submission, error)

	// FindByAssignmentAndEmployee finds the single submission of an employee for an assignment
	FindByAssignmentAndEmployee(assignmentID, employeeID uint64) (*models.Submission, error)

	Update(submission *models.Submission) error
	Delete(id uint64) error

	// ListByAssignment lists submissions for an assignment, newest first
	ListByAssignment(assignmentID uint64, preload ...string) ([]models.Submission, error)

	// ListByEmployee lists submissions of an employee, newest first
	ListByEmployee(employeeID uint64, preload ...string) ([]models.Submission, error)

	// CountByAssignments returns the number of submissions per assignment ID
	CountByAssignments(assignmentIDs []uint64) (map[uint64]int64, error)

	// DeleteByAssignment removes every submission of an assignment
	DeleteByAssignment(assignmentID uint64) error
}
