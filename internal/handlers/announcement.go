package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/feedback-management-api/internal/dto"
	apierrors "github.com/yukikurage/feedback-management-api/internal/errors"
	"github.com/yukikurage/feedback-management-api/internal/services"
	"go.uber.org/zap"
)

// AnnouncementHandler serves manager announcements.
type AnnouncementHandler struct {
	announcementService *services.AnnouncementService
	logger              *zap.Logger
}

func NewAnnouncementHandler(announcementService *services.AnnouncementService, logger *zap.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcementService: announcementService,
		logger:              logger,
	}
}

func (h *AnnouncementHandler) CreateAnnouncement(c *gin.Context) {
	type CreateAnnouncementRequest struct {
		Title   string `json:"title" binding:"required"`
		Content string `json:"content" binding:"required"`
	}

	manager, ok := currentUser(c)
	if !ok {
		return
	}

	var req CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	announcement, err := h.announcementService.Create(c.Request.Context(), manager, req.Title, req.Content)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAnnouncementDTO(*announcement))
}

// ListTeamAnnouncements lists every announcement of the calling manager.
func (h *AnnouncementHandler) ListTeamAnnouncements(c *gin.Context) {
	manager, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := h.announcementService.ListTeam(manager)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAnnouncementDTOs(items))
}

// ListMyAnnouncements lists the active announcements of the employee's manager.
func (h *AnnouncementHandler) ListMyAnnouncements(c *gin.Context) {
	employee, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := h.announcementService.ListMine(employee)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAnnouncementDTOs(items))
}

func (h *AnnouncementHandler) GetAnnouncement(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	announcementID, ok := parseID(c, "id")
	if !ok {
		return
	}

	announcement, err := h.announcementService.Get(user, announcementID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAnnouncementDTO(*announcement))
}

func (h *AnnouncementHandler) UpdateAnnouncement(c *gin.Context) {
	type UpdateAnnouncementRequest struct {
		Title    *string `json:"title"`
		Content  *string `json:"content"`
		IsActive *bool   `json:"is_active"`
	}

	manager, ok := currentUser(c)
	if !ok {
		return
	}
	announcementID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	announcement, err := h.announcementService.Update(c.Request.Context(), manager, announcementID, services.UpdateAnnouncementInput{
		Title:    req.Title,
		Content:  req.Content,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAnnouncementDTO(*announcement))
}

func (h *AnnouncementHandler) DeleteAnnouncement(c *gin.Context) {
	manager, ok := currentUser(c)
	if !ok {
		return
	}
	announcementID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.announcementService.Delete(manager, announcementID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Announcement deleted successfully",
	})
}
