package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrEmailTaken               = errors.New("email already registered")
	ErrInvalidCredentials       = errors.New("incorrect email or password")
	ErrPasswordTooShort         = errors.New("password too short")
	ErrPasswordTooLong          = errors.New("password too long")
	ErrNameRequired             = errors.New("name is required")
	ErrInvalidEmail             = errors.New("invalid email address")
	ErrInvalidRole              = errors.New("role must be manager or employee")
	ErrInvalidManager           = errors.New("manager_id does not reference a manager")
	ErrManagerCannotHaveManager = errors.New("managers cannot report to a manager")
	ErrUserNotFound             = errors.New("user not found")
	ErrNotAuthenticated         = errors.New("could not validate credentials")

	ErrFeedbackNotFound        = errors.New("feedback not found")
	ErrFeedbackAccessDenied    = errors.New("not authorized to view this feedback")
	ErrEmployeeNotInTeam       = errors.New("employee not found or not in your team")
	ErrFeedbackContentRequired = errors.New("strengths and areas to improve are required")
	ErrInvalidSentiment        = errors.New("sentiment must be positive, neutral or negative")
	ErrNoManager               = errors.New("employee has no manager assigned")
	ErrNoFeedback              = errors.New("no feedback found for this employee")

	ErrPeerFeedbackNotFound = errors.New("peer feedback not found")
	ErrRecipientNotFound    = errors.New("recipient not found")
	ErrSelfFeedback         = errors.New("cannot give feedback to yourself")
	ErrNotTeamMember        = errors.New("can only give feedback to team members")

	ErrCommentNotFound           = errors.New("comment not found")
	ErrCommentAccessDenied       = errors.New("not authorized to view comments for this feedback")
	ErrContentRequired           = errors.New("content is required")
	ErrAssignmentCommentNotFound = errors.New("assignment comment not found")
	ErrNotCommentAuthor          = errors.New("only the author can modify this comment")

	ErrAnnouncementNotFound     = errors.New("announcement not found")
	ErrAnnouncementAccessDenied = errors.New("not authorized to view this announcement")
	ErrTitleRequired            = errors.New("title is required")

	ErrDocumentNotFound     = errors.New("document not found")
	ErrDocumentAccessDenied = errors.New("not authorized to access this document")
	ErrOnlyPDFAllowed       = errors.New("only PDF files are allowed")
	ErrFileMissing          = errors.New("file not found in storage")

	ErrAssignmentNotFound     = errors.New("assignment not found")
	ErrAssignmentAccessDenied = errors.New("not authorized to access this assignment")
	ErrAssignmentNotInTeam    = errors.New("assignment does not belong to your manager")
	ErrAssignmentInactive     = errors.New("assignment is no longer active")
	ErrInvalidDueDate         = errors.New("invalid due date format")

	ErrSubmissionNotFound     = errors.New("submission not found")
	ErrSubmissionAccessDenied = errors.New("not authorized to access this submission")
	ErrDuplicateSubmission    = errors.New("already submitted for this assignment")

	ErrNotificationNotFound = errors.New("notification not found")

	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
)

// hideUnauthorized returns notFound when the caller may not act on a
// resource, so that "absent" and "not yours" produce the same response.
func hideUnauthorized(allowed bool, notFound error) error {
	if allowed {
		return nil
	}
	return notFound
}

// lookupError maps gorm.ErrRecordNotFound to notFound and wraps anything else.
func lookupError(err error, notFound error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return fmt.Errorf("failed to find %s: %w", what, err)
}
