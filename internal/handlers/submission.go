package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/feedback-management-api/internal/dto"
	apierrors "github.com/yukikurage/feedback-management-api/internal/errors"
	"github.com/yukikurage/feedback-management-api/internal/services"
	"go.uber.org/zap"
)

// SubmissionHandler serves employee submissions for assignments.
type SubmissionHandler struct {
	submissionService *services.SubmissionService
	logger            *zap.Logger
}

func NewSubmissionHandler(submissionService *services.SubmissionService, logger *zap.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
		logger:            logger,
	}
}

// UploadSubmission accepts multipart fields file, assignment_id, title and description.
func (h *SubmissionHandler) UploadSubmission(c *gin.Context) {
	employee, ok := currentUser(c)
	if !ok {
		return
	}

	assignmentID, err := strconv.ParseUint(c.PostForm("assignment_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid assignment_id")
		return
	}
	file, closer, ok := formUpload(c, "file")
	if !ok {
		return
	}
	defer closer.Close()

	submission, err := h.submissionService.Upload(c.Request.Context(), employee, services.UploadSubmissionInput{
		AssignmentID: assignmentID,
		Title:        c.PostForm("title"),
		Description:  c.PostForm("description"),
		File:         file,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToSubmissionDTO(*submission))
}

func (h *SubmissionHandler) ListAssignmentSubmissions(c *gin.Context) {
	manager, ok := currentUser(c)
	if !ok {
		return
	}
	assignmentID, ok := parseID(c, "id")
	if !ok {
		return
	}

	items, err := h.submissionService.ListByAssignment(manager, assignmentID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSubmissionDTOs(items))
}

func (h *SubmissionHandler) ListMySubmissions(c *gin.Context) {
	employee, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := h.submissionService.ListMine(employee)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSubmissionDTOs(items))
}

func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	submissionID, ok := parseID(c, "id")
	if !ok {
		return
	}

	submission, err := h.submissionService.Get(user, submissionID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSubmissionDTO(*submission))
}

func (h *SubmissionHandler) DownloadSubmission(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	submissionID, ok := parseID(c, "id")
	if !ok {
		return
	}

	submission, rc, err := h.submissionService.Download(c.Request.Context(), user, submissionID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	serveFile(c, submission.StoredFile, rc)
}

func (h *SubmissionHandler) UpdateSubmission(c *gin.Context) {
	type UpdateSubmissionRequest struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
	}

	employee, ok := currentUser(c)
	if !ok {
		return
	}
	submissionID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	submission, err := h.submissionService.Update(employee, submissionID, services.UpdateSubmissionInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSubmissionDTO(*submission))
}

func (h *SubmissionHandler) DeleteSubmission(c *gin.Context) {
	employee, ok := currentUser(c)
	if !ok {
		return
	}
	submissionID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.submissionService.Delete(c.Request.Context(), employee, submissionID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Submission deleted successfully",
	})
}
