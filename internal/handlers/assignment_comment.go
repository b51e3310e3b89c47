package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/feedback-management-api/internal/dto"
	apierrors "github.com/yukikurage/feedback-management-api/internal/errors"
	"github.com/yukikurage/feedback-management-api/internal/services"
	"go.uber.org/zap"
)

// AssignmentCommentHandler serves the discussion thread of assignments.
type AssignmentCommentHandler struct {
	commentService *services.AssignmentCommentService
	logger         *zap.Logger
}

func NewAssignmentCommentHandler(commentService *services.AssignmentCommentService, logger *zap.Logger) *AssignmentCommentHandler {
	return &AssignmentCommentHandler{
		commentService: commentService,
		logger:         logger,
	}
}

func (h *AssignmentCommentHandler) CreateAssignmentComment(c *gin.Context) {
	type CreateAssignmentCommentRequest struct {
		AssignmentID uint64 `json:"assignment_id" binding:"required"`
		Content      string `json:"content" binding:"required"`
	}

	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateAssignmentCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), user, req.AssignmentID, req.Content)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAssignmentCommentDTO(*comment))
}

func (h *AssignmentCommentHandler) ListAssignmentComments(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	assignmentID, ok := parseID(c, "id")
	if !ok {
		return
	}

	items, err := h.commentService.ListByAssignment(user, assignmentID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAssignmentCommentDTOs(items))
}

func (h *AssignmentCommentHandler) UpdateAssignmentComment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	commentID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req commentContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	comment, err := h.commentService.Update(user, commentID, req.Content)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAssignmentCommentDTO(*comment))
}

func (h *AssignmentCommentHandler) DeleteAssignmentComment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	commentID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.commentService.Delete(user, commentID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Comment deleted successfully",
	})
}
