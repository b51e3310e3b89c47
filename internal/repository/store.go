package repository

import (
	"gorm.io/gorm"
)

// GormStore is a GORM implementation of Store
type GormStore struct {
	db *gorm.DB
}

// NewStore creates a new Store
func NewStore(db *gorm.DB) Store {
	return &GormStore{db: db}
}

func (s *GormStore) Users() UserRepository {
	return NewUserRepository(s.db)
}

func (s *GormStore) Feedback() FeedbackRepository {
	return NewFeedbackRepository(s.db)
}

func (s *GormStore) PeerFeedback() PeerFeedbackRepository {
	return NewPeerFeedbackRepository(s.db)
}

func (s *GormStore) Comments() CommentRepository {
	return NewCommentRepository(s.db)
}

func (s *GormStore) AssignmentComments() AssignmentCommentRepository {
	return NewAssignmentCommentRepository(s.db)
}

func (s *GormStore) Notifications() NotificationRepository {
	return NewNotificationRepository(s.db)
}

func (s *GormStore) Announcements() AnnouncementRepository {
	return NewAnnouncementRepository(s.db)
}

func (s *GormStore) Documents() DocumentRepository {
	return NewDocumentRepository(s.db)
}

func (s *GormStore) Assignments() AssignmentRepository {
	return NewAssignmentRepository(s.db)
}

func (s *GormStore) Submissions() SubmissionRepository {
	return NewSubmissionRepository(s.db)
}

// Transaction runs fn with a Store bound to a single transaction
func (s *GormStore) Transaction(fn func(tx Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func applyPreloads(db *gorm.DB, preload []string) *gorm.DB {
	for _, p := range preload {
		db = db.Preload(p)
	}
	return db
}
