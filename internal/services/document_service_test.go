package services

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/feedback-management-api/internal/repository"
	"github.com/yukikurage/feedback-management-api/internal/storage"
	"github.com/yukikurage/feedback-management-api/internal/storage/mocks"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func (suite *ServiceTestSuite) newDocumentService() *DocumentService {
	return NewDocumentService(suite.store, suite.notifier, suite.files, suite.logger)
}

func (suite *ServiceTestSuite) TestDocuments_UploadPDFOnly() {
	svc := suite.newDocumentService()
	ctx := context.Background()

	_, err := svc.Upload(ctx, suite.alice, UploadDocumentInput{Title: "Notes", File: upload("notes.txt", "plain text notes")})
	suite.ErrorIs(err, ErrOnlyPDFAllowed)

	doc, err := svc.Upload(ctx, suite.alice, UploadDocumentInput{Title: "Review", File: upload("dir/review.pdf", pdfContent)})
	suite.Require().NoError(err)
	suite.Equal("review.pdf", doc.StoredFile.Filename)
	suite.Equal("application/pdf", doc.StoredFile.MimeType)
	suite.Contains(doc.StoredFile.FilePath, "documents/")
	suite.Empty(suite.notificationsFor(suite.manager))

	rc, err := suite.files.Open(ctx, doc.StoredFile.FilePath)
	suite.Require().NoError(err)
	content, _ := io.ReadAll(rc)
	rc.Close()
	suite.Equal(pdfContent, string(content))
}

func (suite *ServiceTestSuite) TestDocuments_SameFilenameGetsDistinctKeys() {
	svc := suite.newDocumentService()
	ctx := context.Background()

	first, err := svc.Upload(ctx, suite.alice, UploadDocumentInput{Title: "A", File: upload("cv.pdf", pdfContent)})
	suite.Require().NoError(err)
	second, err := svc.Upload(ctx, suite.alice, UploadDocumentInput{Title: "B", File: upload("cv.pdf", pdfContent)})
	suite.Require().NoError(err)

	suite.Equal(first.StoredFile.Filename, second.StoredFile.Filename)
	suite.NotEqual(first.StoredFile.FilePath, second.StoredFile.FilePath)
}

func (suite *ServiceTestSuite) TestDocuments_PublicVisibility() {
	svc := suite.newDocumentService()
	ctx := context.Background()

	doc, err := svc.Upload(ctx, suite.alice, UploadDocumentInput{Title: "Review", File: upload("review.pdf", pdfContent)})
	suite.Require().NoError(err)

	_, err = svc.Get(suite.manager, doc.ID)
	suite.ErrorIs(err, ErrDocumentAccessDenied)

	_, err = svc.Update(ctx, suite.alice, doc.ID, UpdateDocumentInput{IsPublic: ptr(true)})
	suite.Require().NoError(err)
	notifications := suite.notificationsFor(suite.manager)
	suite.Require().Len(notifications, 1)
	suite.Equal("Employee 'Alice' has made their document public: Review", notifications[0].Message)

	_, rc, err := svc.Download(ctx, suite.manager, doc.ID)
	suite.Require().NoError(err)
	rc.Close()

	_, err = svc.Get(suite.otherManager, doc.ID)
	suite.ErrorIs(err, ErrDocumentAccessDenied)
	_, err = svc.Get(suite.bob, doc.ID)
	suite.ErrorIs(err, ErrDocumentAccessDenied)

	team, err := svc.ListTeam(suite.manager)
	suite.Require().NoError(err)
	suite.Len(team, 1)

	_, err = svc.Update(ctx, suite.bob, doc.ID, UpdateDocumentInput{IsPublic: ptr(false)})
	suite.ErrorIs(err, ErrDocumentNotFound)
}

func (suite *ServiceTestSuite) TestDocuments_DeleteWithMissingFile() {
	svc := suite.newDocumentService()
	ctx := context.Background()

	doc, err := svc.Upload(ctx, suite.alice, UploadDocumentInput{Title: "Review", File: upload("review.pdf", pdfContent), IsPublic: true})
	suite.Require().NoError(err)
	suite.Len(suite.notificationsFor(suite.manager), 1)

	suite.Require().NoError(suite.files.Delete(ctx, doc.StoredFile.FilePath))

	_, _, err = svc.Download(ctx, suite.alice, doc.ID)
	suite.ErrorIs(err, ErrFileMissing)

	suite.ErrorIs(svc.Delete(ctx, suite.bob, doc.ID), ErrDocumentNotFound)
	suite.Require().NoError(svc.Delete(ctx, suite.alice, doc.ID))

	_, err = svc.Get(suite.alice, doc.ID)
	suite.ErrorIs(err, ErrDocumentNotFound)
}

func (suite *ServiceTestSuite) TestDocuments_DeleteSurvivesStorageFailure() {
	ctrl := gomock.NewController(suite.T())
	files := mocks.NewMockFileStore(ctrl)
	svc := NewDocumentService(suite.store, suite.notifier, files, suite.logger)
	ctx := context.Background()

	files.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), int64(len(pdfContent)), "application/pdf").Return(nil)
	doc, err := svc.Upload(ctx, suite.alice, UploadDocumentInput{Title: "Review", File: upload("review.pdf", pdfContent)})
	suite.Require().NoError(err)

	files.EXPECT().Delete(gomock.Any(), doc.StoredFile.FilePath).Return(errors.New("bucket unavailable"))
	suite.Require().NoError(svc.Delete(ctx, suite.alice, doc.ID))
}

func TestDocumentUpload_DiscardsFileWhenTransactionFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	files := mocks.NewMockFileStore(ctrl)
	store := failingTxStore{Store: repository.Store(nil)}
	svc := NewDocumentService(store, NewNotifier(nil, zap.NewNop()), files, zap.NewNop())

	var savedKey string
	files.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "application/pdf").
		DoAndReturn(func(_ context.Context, key string, _ io.Reader, _ int64, _ string) error {
			savedKey = key
			return nil
		})
	files.EXPECT().Delete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string) error {
			require.Equal(t, savedKey, key)
			return storage.ErrNotExist
		})

	employee := newEmployee(1, 2)
	_, err := svc.Upload(context.Background(), employee, UploadDocumentInput{Title: "Review", File: upload("review.pdf", pdfContent)})
	require.Error(t, err)
}
