package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/feedback-management-api/internal/dto"
	apierrors "github.com/yukikurage/feedback-management-api/internal/errors"
	"github.com/yukikurage/feedback-management-api/internal/models"
	"github.com/yukikurage/feedback-management-api/internal/services"
	"go.uber.org/zap"
)

// FeedbackHandler serves manager feedback endpoints.
type FeedbackHandler struct {
	feedbackService *services.FeedbackService
	logger          *zap.Logger
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedbackService *services.FeedbackService, logger *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		logger:          logger,
	}
}

// CreateFeedback stores feedback for a direct report.
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	type CreateFeedbackRequest struct {
		EmployeeID     uint64           `json:"employee_id" binding:"required"`
		Strengths      string           `json:"strengths" binding:"required"`
		AreasToImprove string           `json:"areas_to_improve" binding:"required"`
		Sentiment      models.Sentiment `json:"sentiment" binding:"required"`
		IsAnonymous    bool             `json:"is_anonymous"`
	}

	manager, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	feedback, err := h.feedbackService.Create(manager, services.CreateFeedbackInput{
		EmployeeID:     req.EmployeeID,
		Strengths:      req.Strengths,
		AreasToImprove: req.AreasToImprove,
		Sentiment:      req.Sentiment,
		IsAnonymous:    req.IsAnonymous,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToFeedbackDTO(*feedback))
}

// ListEmployeeFeedback lists the feedback an employee received.
func (h *FeedbackHandler) ListEmployeeFeedback(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	employeeID, ok := parseID(c, "id")
	if !ok {
		return
	}

	items, err := h.feedbackService.ListForEmployee(user, employeeID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToFeedbackDTOs(items))
}

// GetFeedback returns one feedback entry.
func (h *FeedbackHandler) GetFeedback(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	feedbackID, ok := parseID(c, "id")
	if !ok {
		return
	}

	feedback, err := h.feedbackService.Get(user, feedbackID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToFeedbackDTO(*feedback))
}

// UpdateFeedback applies a partial update from the authoring manager.
func (h *FeedbackHandler) UpdateFeedback(c *gin.Context) {
	type UpdateFeedbackRequest struct {
		Strengths      *string           `json:"strengths"`
		AreasToImprove *string           `json:"areas_to_improve"`
		Sentiment      *models.Sentiment `json:"sentiment"`
		Acknowledged   *bool             `json:"acknowledged"`
		IsAnonymous    *bool             `json:"is_anonymous"`
	}

	manager, ok := currentUser(c)
	if !ok {
		return
	}
	feedbackID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	feedback, err := h.feedbackService.Update(manager, feedbackID, services.UpdateFeedbackInput{
		Strengths:      req.Strengths,
		AreasToImprove: req.AreasToImprove,
		Sentiment:      req.Sentiment,
		Acknowledged:   req.Acknowledged,
		IsAnonymous:    req.IsAnonymous,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToFeedbackDTO(*feedback))
}

// AcknowledgeFeedback marks feedback as read by its employee.
func (h *FeedbackHandler) AcknowledgeFeedback(c *gin.Context) {
	employee, ok := currentUser(c)
	if !ok {
		return
	}
	feedbackID, ok := parseID(c, "id")
	if !ok {
		return
	}

	feedback, err := h.feedbackService.Acknowledge(employee, feedbackID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToFeedbackDTO(*feedback))
}

// RequestFeedback notifies the employee's manager.
func (h *FeedbackHandler) RequestFeedback(c *gin.Context) {
	employee, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.feedbackService.RequestFeedback(c.Request.Context(), employee); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Feedback request sent to your manager",
	})
}

// ExportFeedback downloads one feedback entry as PDF.
func (h *FeedbackHandler) ExportFeedback(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	feedbackID, ok := parseID(c, "id")
	if !ok {
		return
	}

	pdf, filename, err := h.feedbackService.ExportFeedback(user, feedbackID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	servePDF(c, filename, pdf)
}

// ExportEmployeeFeedback downloads every feedback entry of a direct report as PDF.
func (h *FeedbackHandler) ExportEmployeeFeedback(c *gin.Context) {
	manager, ok := currentUser(c)
	if !ok {
		return
	}
	employeeID, ok := parseID(c, "id")
	if !ok {
		return
	}

	pdf, filename, err := h.feedbackService.ExportEmployeeFeedback(manager, employeeID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	servePDF(c, filename, pdf)
}

// SummarizeEmployeeFeedback returns an AI generated digest of a direct report's feedback.
func (h *FeedbackHandler) SummarizeEmployeeFeedback(c *gin.Context) {
	manager, ok := currentUser(c)
	if !ok {
		return
	}
	employeeID, ok := parseID(c, "id")
	if !ok {
		return
	}

	summary, count, err := h.feedbackService.Summarize(c.Request.Context(), manager, employeeID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.FeedbackSummaryDTO{
		EmployeeID:    employeeID,
		FeedbackCount: count,
		Summary:       summary,
	})
}
