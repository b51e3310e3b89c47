package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/feedback-management-api/internal/errors"
	"github.com/yukikurage/feedback-management-api/internal/middleware"
	"github.com/yukikurage/feedback-management-api/internal/models"
	"github.com/yukikurage/feedback-management-api/internal/storage"
)

// parseID reads a numeric path parameter, answering 400 when it is malformed.
func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, fmt.Sprintf("Invalid %s", name))
		return 0, false
	}
	return id, true
}

// currentUser returns the authenticated user set by RequireAuth.
func currentUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "Could not validate credentials")
		return nil, false
	}
	return user, true
}

// formUpload opens the multipart file in field. The caller closes it.
func formUpload(c *gin.Context, field string) (storage.Upload, io.Closer, bool) {
	header, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			apierrors.FileTooLarge(c)
		} else {
			apierrors.BadRequest(c, "File is required")
		}
		return storage.Upload{}, nil, false
	}
	file, err := header.Open()
	if err != nil {
		apierrors.BadRequest(c, "Could not read uploaded file")
		return storage.Upload{}, nil, false
	}
	return storage.Upload{
		Filename: header.Filename,
		Size:     header.Size,
		Content:  file,
	}, file, true
}

// formBool parses an optional boolean form field, defaulting to false.
func formBool(c *gin.Context, field string) (bool, bool) {
	raw := c.PostForm(field)
	if raw == "" {
		return false, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		apierrors.BadRequest(c, fmt.Sprintf("Invalid %s", field))
		return false, false
	}
	return v, true
}

// serveFile streams a stored file as an attachment and closes rc.
func serveFile(c *gin.Context, file models.StoredFile, rc io.ReadCloser) {
	defer rc.Close()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": file.Filename})
	c.DataFromReader(http.StatusOK, file.FileSize, file.MimeType, rc, map[string]string{
		"Content-Disposition": disposition,
	})
}

// servePDF answers with an in-memory PDF attachment.
func servePDF(c *gin.Context, filename string, pdf []byte) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
