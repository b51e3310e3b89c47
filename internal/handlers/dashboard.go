package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/feedback-management-api/internal/dto"
	"github.com/yukikurage/feedback-management-api/internal/services"
	"go.uber.org/zap"
)

// DashboardHandler serves the landing pages of both roles.
type DashboardHandler struct {
	dashboardService *services.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *services.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

func (h *DashboardHandler) ManagerDashboard(c *gin.Context) {
	manager, ok := currentUser(c)
	if !ok {
		return
	}

	stats, err := h.dashboardService.Manager(manager)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ManagerDashboardDTO{
		TeamSize:        stats.TeamSize,
		FeedbackCount:   stats.FeedbackCount,
		SentimentTrends: stats.Sentiments,
	})
}

func (h *DashboardHandler) EmployeeDashboard(c *gin.Context) {
	employee, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := h.dashboardService.Employee(employee)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEmployeeDashboardDTO(items))
}
