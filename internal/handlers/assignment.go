package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/feedback-management-api/internal/dto"
	apierrors "github.com/yukikurage/feedback-management-api/internal/errors"
	"github.com/yukikurage/feedback-management-api/internal/services"
	"go.uber.org/zap"
)

// AssignmentHandler serves assignments handed out by managers.
type AssignmentHandler struct {
	assignmentService *services.AssignmentService
	logger            *zap.Logger
}

func NewAssignmentHandler(assignmentService *services.AssignmentService, logger *zap.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
		logger:            logger,
	}
}

// UploadAssignment accepts multipart fields file, title, description and due_date.
func (h *AssignmentHandler) UploadAssignment(c *gin.Context) {
	manager, ok := currentUser(c)
	if !ok {
		return
	}

	dueDate, err := services.ParseDueDate(c.PostForm("due_date"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	file, closer, ok := formUpload(c, "file")
	if !ok {
		return
	}
	defer closer.Close()

	assignment, err := h.assignmentService.Upload(c.Request.Context(), manager, services.UploadAssignmentInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		DueDate:     dueDate,
		File:        file,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAssignmentDTO(*assignment, 0))
}

// ListTeamAssignments lists the manager's assignments with submission counts.
func (h *AssignmentHandler) ListTeamAssignments(c *gin.Context) {
	manager, ok := currentUser(c)
	if !ok {
		return
	}

	items, counts, err := h.assignmentService.ListTeam(manager)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAssignmentDTOs(items, counts))
}

// ListMyAssignments lists the active assignments of the employee's manager.
func (h *AssignmentHandler) ListMyAssignments(c *gin.Context) {
	employee, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := h.assignmentService.ListMine(employee)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAssignmentDTOs(items, nil))
}

func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	assignmentID, ok := parseID(c, "id")
	if !ok {
		return
	}

	assignment, count, err := h.assignmentService.Get(user, assignmentID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAssignmentDTO(*assignment, count))
}

func (h *AssignmentHandler) DownloadAssignment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	assignmentID, ok := parseID(c, "id")
	if !ok {
		return
	}

	assignment, rc, err := h.assignmentService.Download(c.Request.Context(), user, assignmentID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	serveFile(c, assignment.StoredFile, rc)
}

func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	type UpdateAssignmentRequest struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		DueDate     *string `json:"due_date"`
		IsActive    *bool   `json:"is_active"`
	}

	manager, ok := currentUser(c)
	if !ok {
		return
	}
	assignmentID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	input := services.UpdateAssignmentInput{
		Title:       req.Title,
		Description: req.Description,
		IsActive:    req.IsActive,
	}
	// An explicit empty due_date clears it; an absent one leaves it alone.
	if req.DueDate != nil {
		dueDate, err := services.ParseDueDate(*req.DueDate)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		input.DueDate = dueDate
		input.ClearDueDate = dueDate == nil
	}

	assignment, err := h.assignmentService.Update(manager, assignmentID, input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAssignmentDTO(*assignment, 0))
}

func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	manager, ok := currentUser(c)
	if !ok {
		return
	}
	assignmentID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.assignmentService.Delete(c.Request.Context(), manager, assignmentID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Assignment deleted successfully",
	})
}
