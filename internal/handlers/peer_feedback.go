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

// PeerFeedbackHandler serves feedback between teammates.
type PeerFeedbackHandler struct {
	peerService *services.PeerFeedbackService
	logger      *zap.Logger
}

func NewPeerFeedbackHandler(peerService *services.PeerFeedbackService, logger *zap.Logger) *PeerFeedbackHandler {
	return &PeerFeedbackHandler{
		peerService: peerService,
		logger:      logger,
	}
}

func (h *PeerFeedbackHandler) CreatePeerFeedback(c *gin.Context) {
	type CreatePeerFeedbackRequest struct {
		ToEmployeeID   uint64           `json:"to_employee_id" binding:"required"`
		Strengths      string           `json:"strengths" binding:"required"`
		AreasToImprove string           `json:"areas_to_improve" binding:"required"`
		Sentiment      models.Sentiment `json:"sentiment" binding:"required"`
		IsAnonymous    bool             `json:"is_anonymous"`
	}

	sender, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreatePeerFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	feedback, err := h.peerService.Create(sender, services.CreatePeerFeedbackInput{
		ToEmployeeID:   req.ToEmployeeID,
		Strengths:      req.Strengths,
		AreasToImprove: req.AreasToImprove,
		Sentiment:      req.Sentiment,
		IsAnonymous:    req.IsAnonymous,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPeerFeedbackDTO(*feedback))
}

func (h *PeerFeedbackHandler) ListReceived(c *gin.Context) {
	employee, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := h.peerService.Received(employee)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPeerFeedbackDTOs(items))
}

func (h *PeerFeedbackHandler) ListSent(c *gin.Context) {
	employee, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := h.peerService.Sent(employee)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPeerFeedbackDTOs(items))
}

// ListTeamMembers lists the teammates the caller may give feedback to.
func (h *PeerFeedbackHandler) ListTeamMembers(c *gin.Context) {
	employee, ok := currentUser(c)
	if !ok {
		return
	}

	members, err := h.peerService.TeamMembers(employee)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTOs(members))
}

func (h *PeerFeedbackHandler) AcknowledgePeerFeedback(c *gin.Context) {
	employee, ok := currentUser(c)
	if !ok {
		return
	}
	feedbackID, ok := parseID(c, "id")
	if !ok {
		return
	}

	feedback, err := h.peerService.Acknowledge(employee, feedbackID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPeerFeedbackDTO(*feedback))
}

func (h *PeerFeedbackHandler) UpdatePeerFeedback(c *gin.Context) {
	type UpdatePeerFeedbackRequest struct {
		Strengths      *string           `json:"strengths"`
		AreasToImprove *string           `json:"areas_to_improve"`
		Sentiment      *models.Sentiment `json:"sentiment"`
		Acknowledged   *bool             `json:"acknowledged"`
		IsAnonymous    *bool             `json:"is_anonymous"`
	}

	sender, ok := currentUser(c)
	if !ok {
		return
	}
	feedbackID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdatePeerFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	feedback, err := h.peerService.Update(sender, feedbackID, services.UpdatePeerFeedbackInput{
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
	c.JSON(http.StatusOK, dto.ToPeerFeedbackDTO(*feedback))
}
