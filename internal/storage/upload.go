package storage

import (
	"errors"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrFileTooLarge       = errors.New("file exceeds the maximum upload size")
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
	ErrEmptyFile          = errors.New("file is empty")
)

// Upload is a file received from a client.
type Upload struct {
	Filename string
	Size     int64
	Content  io.ReadSeeker
}

// Validate checks the size ceiling and sniffs the content type against
// allowed. It returns the matching allowed type and rewinds the content.
func (u Upload) Validate(maxSize int64, allowed []string) (string, error) {
	if u.Size <= 0 {
		return "", ErrEmptyFile
	}
	if u.Size > maxSize {
		return "", ErrFileTooLarge
	}

	mimeType, err := DetectContentType(u.Content, allowed)
	if err != nil {
		return "", err
	}
	return mimeType, nil
}

// DetectContentType sniffs r and walks the detected type's parents until one
// of them is in allowed. r is rewound to its start before returning.
func DetectContentType(r io.ReadSeeker, allowed []string) (string, error) {
	detected, err := mimetype.DetectReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to detect content type: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind upload: %w", err)
	}

	for m := detected; m != nil; m = m.Parent() {
		for _, candidate := range allowed {
			if m.Is(candidate) {
				return candidate, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s", ErrFileTypeNotAllowed, detected.String())
}
