package storage

import (
	"context"
	"errors"
	"io"
)

//go:generate mockgen -source=storage.go -destination=mocks/mock_storage.go -package=mocks

var ErrNotExist = errors.New("storage: file does not exist")

// FileStore persists uploaded binaries under opaque keys.
type FileStore interface {
	Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Open returns ErrNotExist when nothing is stored under key.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete returns ErrNotExist when nothing is stored under key.
	Delete(ctx context.Context, key string) error
}
