package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/yukikurage/feedback-management-api/internal/constants"
	"github.com/yukikurage/feedback-management-api/internal/models"
	"github.com/yukikurage/feedback-management-api/internal/storage"
	"github.com/yukikurage/feedback-management-api/internal/utils"
	"go.uber.org/zap"
)

// fileKeeper stores and removes the binaries behind documents, assignments
// and submissions.
type fileKeeper struct {
	files  storage.FileStore
	logger *zap.Logger
}

// store validates the upload and saves it under a fresh unique key.
func (k fileKeeper) store(ctx context.Context, kind string, ownerID uint64, upload storage.Upload, allowed []string) (models.StoredFile, error) {
	mimeType, err := upload.Validate(constants.MaxUploadSize, allowed)
	if err != nil {
		return models.StoredFile{}, err
	}

	key := utils.GenerateStorageKey(kind, ownerID, upload.Filename)
	if err := k.files.Save(ctx, key, upload.Content, upload.Size, mimeType); err != nil {
		return models.StoredFile{}, fmt.Errorf("failed to store file: %w", err)
	}

	return models.StoredFile{
		Filename: displayName(upload.Filename),
		FilePath: key,
		FileSize: upload.Size,
		MimeType: mimeType,
	}, nil
}

// open returns ErrFileMissing when the backing file is gone.
func (k fileKeeper) open(ctx context.Context, file models.StoredFile) (io.ReadCloser, error) {
	rc, err := k.files.Open(ctx, file.FilePath)
	if errors.Is(err, storage.ErrNotExist) {
		return nil, ErrFileMissing
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return rc, nil
}

// discard removes a backing file. Failures are logged and never returned.
func (k fileKeeper) discard(ctx context.Context, key string) {
	if key == "" {
		return
	}
	err := k.files.Delete(ctx, key)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotExist):
		k.logger.Warn("backing file already missing", zap.String("key", key))
	default:
		k.logger.Error("failed to delete backing file", zap.String("key", key), zap.Error(err))
	}
}

// displayName keeps the client's filename without any directory part.
func displayName(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" {
		return "file"
	}
	return name
}
