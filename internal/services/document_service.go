package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yukikurage/feedback-management-api/internal/constants"
	"github.com/yukikurage/feedback-management-api/internal/models"
	"github.com/yukikurage/feedback-management-api/internal/policy"
	"github.com/yukikurage/feedback-management-api/internal/repository"
	"github.com/yukikurage/feedback-management-api/internal/storage"
	"go.uber.org/zap"
)

// DocumentService handles PDF documents uploaded by employees
type DocumentService struct {
	store    repository.Store
	notifier *Notifier
	files    fileKeeper
}

func NewDocumentService(store repository.Store, notifier *Notifier, files storage.FileStore, logger *zap.Logger) *DocumentService {
	return &DocumentService{
		store:    store,
		notifier: notifier,
		files:    fileKeeper{files: files, logger: logger},
	}
}

// UploadDocumentInput represents a document upload
type UploadDocumentInput struct {
	Title       string
	Description string
	IsPublic    bool
	File        storage.Upload
}

// UpdateDocumentInput is a partial update of document metadata
type UpdateDocumentInput struct {
	Title       *string
	Description *string
	IsPublic    *bool
}

// Upload stores a PDF for employee. A public upload notifies the employee's manager.
func (s *DocumentService) Upload(ctx context.Context, employee *models.User, input UploadDocumentInput) (*models.Document, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	stored, err := s.files.store(ctx, constants.StorageKindDocument, employee.ID, input.File, constants.DocumentMIMETypes)
	if errors.Is(err, storage.ErrFileTypeNotAllowed) {
		return nil, ErrOnlyPDFAllowed
	}
	if err != nil {
		return nil, err
	}

	document := &models.Document{
		EmployeeID:  employee.ID,
		Title:       input.Title,
		Description: input.Description,
		StoredFile:  stored,
		IsPublic:    input.IsPublic,
	}
	message := fmt.Sprintf("Employee '%s' has uploaded a new document: %s", employee.Name, document.Title)

	err = s.notifier.Within(ctx, s.store, func(tx repository.Store, notify NotifyFunc) error {
		if err := tx.Documents().Create(document); err != nil {
			return fmt.Errorf("failed to create document: %w", err)
		}
		if document.IsPublic && employee.ManagerID != nil {
			return notify(message, *employee.ManagerID)
		}
		return nil
	})
	if err != nil {
		s.files.discard(ctx, stored.FilePath)
		return nil, err
	}

	return s.reload(document.ID)
}

// ListMine returns every document the employee uploaded
func (s *DocumentService) ListMine(employee *models.User) ([]models.Document, error) {
	items, err := s.store.Documents().ListByEmployee(employee.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return items, nil
}

// ListTeam returns the public documents of the manager's direct reports
func (s *DocumentService) ListTeam(manager *models.User) ([]models.Document, error) {
	items, err := s.store.Documents().ListPublicByManager(manager.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team documents: %w", err)
	}
	return items, nil
}

// Get returns document metadata visible to viewer
func (s *DocumentService) Get(viewer *models.User, documentID uint64) (*models.Document, error) {
	document, err := s.reload(documentID)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewDocument(viewer, document, &document.Employee) {
		return nil, ErrDocumentAccessDenied
	}
	return document, nil
}

// Download opens the document's file. The caller closes the reader.
func (s *DocumentService) Download(ctx context.Context, viewer *models.User, documentID uint64) (*models.Document, io.ReadCloser, error) {
	document, err := s.Get(viewer, documentID)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.files.open(ctx, document.StoredFile)
	if err != nil {
		return nil, nil, err
	}
	return document, rc, nil
}

// Update edits metadata. Turning a private document public notifies the manager.
func (s *DocumentService) Update(ctx context.Context, employee *models.User, documentID uint64, input UpdateDocumentInput) (*models.Document, error) {
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, ErrTitleRequired
	}

	document, err := s.owned(employee, documentID)
	if err != nil {
		return nil, err
	}

	wasPublic := document.IsPublic
	if input.Title != nil {
		document.Title = *input.Title
	}
	if input.Description != nil {
		document.Description = *input.Description
	}
	if input.IsPublic != nil {
		document.IsPublic = *input.IsPublic
	}
	message := fmt.Sprintf("Employee '%s' has made their document public: %s", employee.Name, document.Title)

	err = s.notifier.Within(ctx, s.store, func(tx repository.Store, notify NotifyFunc) error {
		if err := tx.Documents().Update(document); err != nil {
			return fmt.Errorf("failed to update document: %w", err)
		}
		if !wasPublic && document.IsPublic && employee.ManagerID != nil {
			return notify(message, *employee.ManagerID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.reload(document.ID)
}

// Delete removes the document row and then its file. A missing file does not fail the call.
func (s *DocumentService) Delete(ctx context.Context, employee *models.User, documentID uint64) error {
	document, err := s.owned(employee, documentID)
	if err != nil {
		return err
	}
	if err := s.store.Documents().Delete(document.ID); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	s.files.discard(ctx, document.StoredFile.FilePath)
	return nil
}

func (s *DocumentService) owned(employee *models.User, documentID uint64) (*models.Document, error) {
	document, err := s.store.Documents().FindByID(documentID)
	if err != nil {
		return nil, lookupError(err, ErrDocumentNotFound, "document")
	}
	if err := hideUnauthorized(document.EmployeeID == employee.ID, ErrDocumentNotFound); err != nil {
		return nil, err
	}
	return document, nil
}

func (s *DocumentService) reload(documentID uint64) (*models.Document, error) {
	document, err := s.store.Documents().FindByID(documentID, "Employee")
	if err != nil {
		return nil, lookupError(err, ErrDocumentNotFound, "document")
	}
	return document, nil
}
