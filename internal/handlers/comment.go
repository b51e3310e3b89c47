package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/feedback-management-api/internal/dto"
	apierrors "github.com/yukikurage/feedback-management-api/internal/errors"
	"github.com/yukikurage/feedback-management-api/internal/services"
	"go.uber.org/zap"
)

// CommentHandler serves employee comments on feedback.
type CommentHandler struct {
	commentService *services.CommentService
	logger         *zap.Logger
}

func NewCommentHandler(commentService *services.CommentService, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		logger:         logger,
	}
}

type commentContentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	type CreateCommentRequest struct {
		FeedbackID uint64 `json:"feedback_id" binding:"required"`
		Content    string `json:"content" binding:"required"`
	}

	employee, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), employee, req.FeedbackID, req.Content)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCommentDTO(*comment))
}

func (h *CommentHandler) ListFeedbackComments(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	feedbackID, ok := parseID(c, "id")
	if !ok {
		return
	}

	comments, err := h.commentService.ListByFeedback(user, feedbackID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCommentDTOs(comments))
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	employee, ok := currentUser(c)
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

	comment, err := h.commentService.Update(c.Request.Context(), employee, commentID, req.Content)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCommentDTO(*comment))
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	employee, ok := currentUser(c)
	if !ok {
		return
	}
	commentID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), employee, commentID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Comment deleted successfully",
	})
}
