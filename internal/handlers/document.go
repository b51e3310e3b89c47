package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/feedback-management-api/internal/dto"
	apierrors "github.com/yukikurage/feedback-management-api/internal/errors"
	"github.com/yukikurage/feedback-management-api/internal/services"
	"go.uber.org/zap"
)

// DocumentHandler serves employee documents.
type DocumentHandler struct {
	documentService *services.DocumentService
	logger          *zap.Logger
}

func NewDocumentHandler(documentService *services.DocumentService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		logger:          logger,
	}
}

// UploadDocument accepts multipart fields file, title, description and is_public.
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	employee, ok := currentUser(c)
	if !ok {
		return
	}

	isPublic, ok := formBool(c, "is_public")
	if !ok {
		return
	}
	file, closer, ok := formUpload(c, "file")
	if !ok {
		return
	}
	defer closer.Close()

	document, err := h.documentService.Upload(c.Request.Context(), employee, services.UploadDocumentInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		IsPublic:    isPublic,
		File:        file,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToDocumentDTO(*document))
}

func (h *DocumentHandler) ListMyDocuments(c *gin.Context) {
	employee, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := h.documentService.ListMine(employee)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentDTOs(items))
}

// ListTeamDocuments lists public documents of the manager's direct reports.
func (h *DocumentHandler) ListTeamDocuments(c *gin.Context) {
	manager, ok := currentUser(c)
	if !ok {
		return
	}

	items, err := h.documentService.ListTeam(manager)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentDTOs(items))
}

func (h *DocumentHandler) GetDocument(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	documentID, ok := parseID(c, "id")
	if !ok {
		return
	}

	document, err := h.documentService.Get(user, documentID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentDTO(*document))
}

func (h *DocumentHandler) DownloadDocument(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	documentID, ok := parseID(c, "id")
	if !ok {
		return
	}

	document, rc, err := h.documentService.Download(c.Request.Context(), user, documentID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	serveFile(c, document.StoredFile, rc)
}

func (h *DocumentHandler) UpdateDocument(c *gin.Context) {
	type UpdateDocumentRequest struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		IsPublic    *bool   `json:"is_public"`
	}

	employee, ok := currentUser(c)
	if !ok {
		return
	}
	documentID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	document, err := h.documentService.Update(c.Request.Context(), employee, documentID, services.UpdateDocumentInput{
		Title:       req.Title,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentDTO(*document))
}

func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	employee, ok := currentUser(c)
	if !ok {
		return
	}
	documentID, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), employee, documentID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Document deleted successfully",
	})
}
