package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/feedback-management-api/internal/constants"
	apierrors "github.com/yukikurage/feedback-management-api/internal/errors"
	"github.com/yukikurage/feedback-management-api/internal/middleware"
	"github.com/yukikurage/feedback-management-api/internal/services"
	"github.com/yukikurage/feedback-management-api/internal/storage"
	"go.uber.org/zap"
)

type errorResponse struct {
	err     error
	status  int
	code    string
	message string
}

// errorResponses maps service errors to their HTTP representation. The
// first matching entry wins.
var errorResponses = []errorResponse{
	{services.ErrNotAuthenticated, http.StatusUnauthorized, apierrors.ErrCodeUnauthorized, "Could not validate credentials"},
	{services.ErrEmailTaken, http.StatusBadRequest, apierrors.ErrCodeAlreadyExists, "Email already registered"},
	{services.ErrInvalidCredentials, http.StatusBadRequest, apierrors.ErrCodeInvalidCredentials, "Incorrect email or password"},
	{services.ErrPasswordTooShort, http.StatusBadRequest, apierrors.ErrCodeInvalidInput, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength)},
	{services.ErrPasswordTooLong, http.StatusBadRequest, apierrors.ErrCodeInvalidInput, fmt.Sprintf("Password must be at most %d bytes", constants.MaxPasswordLength)},
	{services.ErrNameRequired, http.StatusBadRequest, apierrors.ErrCodeInvalidInput, "Name is required"},
	{services.ErrInvalidEmail, http.StatusBadRequest, apierrors.ErrCodeInvalidFormat, "Invalid email address"},
	{services.ErrInvalidRole, http.StatusBadRequest, apierrors.ErrCodeInvalidInput, "Role must be manager or employee"},
	{services.ErrInvalidManager, http.StatusBadRequest, apierrors.ErrCodeInvalidInput, "manager_id must reference an existing manager"},
	{services.ErrManagerCannotHaveManager, http.StatusBadRequest, apierrors.ErrCodeInvalidInput, "Managers cannot have a manager"},
	{services.ErrUserNotFound, http.StatusNotFound, apierrors.ErrCodeNotFound, "User not found"},

	{services.ErrFeedbackNotFound, http.StatusNotFound, apierrors.ErrCodeNotFound, "Feedback not found"},
	{services.ErrFeedbackAccessDenied, http.StatusForbidden, apierrors.ErrCodeForbidden, "Not authorized to view this feedback"},
	{services.ErrEmployeeNotInTeam, http.StatusNotFound, apierrors.ErrCodeNotFound, "Employee not found or not in your team"},
	{services.ErrFeedbackContentRequired, http.StatusBadRequest, apierrors.ErrCodeInvalidInput, "Strengths and areas to improve are required"},
	{services.ErrInvalidSentiment, http.StatusBadRequest, apierrors.ErrCodeInvalidInput, "Sentiment must be positive, neutral or negative"},
	{services.ErrNoManager, http.StatusBadRequest, apierrors.ErrCodeInvalidInput, "You do not have a manager assigned."},
	{services.ErrNoFeedback, http.StatusNotFound, apierrors.ErrCodeNotFound, "No feedback found for this employee"},

	{services.ErrPeerFeedbackNotFound, http.StatusNotFound, apierrors.ErrCodeNotFound, "Peer feedback not found"},
	{services.ErrRecipientNotFound, http.StatusNotFound, apierrors.ErrCodeNotFound, "Recipient not found"},
	{services.ErrSelfFeedback, http.StatusBadRequest, apierrors.ErrCodeInvalidInput, "Cannot give feedback to yourself"},
	{services.ErrNotTeamMember, http.StatusBadRequest, apierrors.ErrCodeInvalidInput, "Can only give feedback to team members"},

	{services.ErrCommentNotFound, http.StatusNotFound, apierrors.ErrCodeNotFound, "Comment not found or not authorized"},
	{services.ErrCommentAccessDenied, http.StatusForbidden, apierrors.ErrCodeForbidden, "Not authorized to view comments for this feedback"},
	{services.ErrContentRequired, http.StatusBadRequest, apierrors.ErrCodeInvalidInput, "Content is required"},
	{services.ErrAssignmentCommentNotFound, http.StatusNotFound, apierrors.ErrCodeNotFound, "Comment not found"},
	{services.ErrNotCommentAuthor, http.StatusForbidden, apierrors.ErrCodeForbidden, "You can only modify your own comments"},

	{services.ErrAnnouncementNotFound, http.StatusNotFound, apierrors.ErrCodeNotFound, "Announcement not found"},
	{services.ErrAnnouncementAccessDenied, http.StatusForbidden, apierrors.ErrCodeForbidden, "Not authorized to view this announcement"},
	{services.ErrTitleRequired, http.StatusBadRequest, apierrors.ErrCodeInvalidInput, "Title is required"},

	{services.ErrDocumentNotFound, http.StatusNotFound, apierrors.ErrCodeNotFound, "Document not found"},
	{services.ErrDocumentAccessDenied, http.StatusForbidden, apierrors.ErrCodeForbidden, "Not authorized to access this document"},
	{services.ErrOnlyPDFAllowed, http.StatusBadRequest, apierrors.ErrCodeFileRejected, "Only PDF files are allowed"},
	{services.ErrFileMissing, http.StatusNotFound, apierrors.ErrCodeNotFound, "File not found"},

	{services.ErrAssignmentNotFound, http.StatusNotFound, apierrors.ErrCodeNotFound, "Assignment not found"},
	{services.ErrAssignmentAccessDenied, http.StatusForbidden, apierrors.ErrCodeForbidden, "Not authorized to access this assignment"},
	{services.ErrAssignmentNotInTeam, http.StatusForbidden, apierrors.ErrCodeForbidden, "This assignment is not from your manager"},
	{services.ErrAssignmentInactive, http.StatusBadRequest, apierrors.ErrCodeInvalidInput, "Assignment is no longer active"},
	{services.ErrInvalidDueDate, http.StatusBadRequest, apierrors.ErrCodeInvalidFormat, "Invalid due date format"},

	{services.ErrSubmissionNotFound, http.StatusNotFound, apierrors.ErrCodeNotFound, "Submission not found"},
	{services.ErrSubmissionAccessDenied, http.StatusForbidden, apierrors.ErrCodeForbidden, "Not authorized to access this submission"},
	{services.ErrDuplicateSubmission, http.StatusBadRequest, apierrors.ErrCodeAlreadyExists, "You have already submitted for this assignment"},

	{services.ErrNotificationNotFound, http.StatusNotFound, apierrors.ErrCodeNotFound, "Notification not found"},
	{services.ErrAIServiceNotConfigured, http.StatusServiceUnavailable, apierrors.ErrCodeServiceUnavailable, "AI service is not configured"},

	{storage.ErrFileTooLarge, http.StatusBadRequest, apierrors.ErrCodeFileRejected, apierrors.FileTooLargeMessage},
	{storage.ErrFileTypeNotAllowed, http.StatusBadRequest, apierrors.ErrCodeFileRejected, "File type not allowed"},
	{storage.ErrEmptyFile, http.StatusBadRequest, apierrors.ErrCodeFileRejected, "File is empty"},
}

// respondError writes the response for err. Unknown errors are logged and
// reported as 500 without details.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	for _, r := range errorResponses {
		if errors.Is(err, r.err) {
			apierrors.RespondWithError(c, r.status, apierrors.NewAPIError(r.code, r.message))
			return
		}
	}

	middleware.Logger(c, logger).Error("request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	apierrors.InternalError(c, "")
}
