package constants

import "time"

// Context keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyUser   = "current_user"
	ContextKeyClaims = "token_claims"
	ContextKeyLogger = "logger"
)

// Session
const (
	SessionCookieName = "feedback_session"
	SessionKeyToken   = "access_token"
	SessionMaxAge     = 86400 // 24 hours, matches the default token lifetime
)

// Auth
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72 // bytes, the bcrypt input limit
	DefaultTokenTTL   = 24 * time.Hour
	TokenType         = "bearer"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Uploads
const (
	MaxUploadSize         = 10 << 20
	MaxUploadRequestSize  = MaxUploadSize + 1<<20 // file plus form fields and multipart framing
	CommentPreviewLength  = 100
	StorageKindDocument   = "documents"
	StorageKindAssignment = "assignments"
	StorageKindSubmission = "submissions"
)

// DocumentMIMETypes lists the content types accepted for employee documents.
var DocumentMIMETypes = []string{
	"application/pdf",
}

// AssignmentMIMETypes lists the content types accepted for assignments and submissions.
var AssignmentMIMETypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"text/plain",
	"image/jpeg",
	"image/png",
	"image/gif",
}
