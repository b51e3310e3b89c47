package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/feedback-management-api/internal/models"
	"github.com/yukikurage/feedback-management-api/internal/storage"
)

func TestParseDueDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantNil bool
		wantErr bool
	}{
		{in: "", wantNil: true},
		{in: "2025-03-01", want: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{in: "2025-03-01T17:30:00", want: time.Date(2025, 3, 1, 17, 30, 0, 0, time.UTC)},
		{in: "2025-03-01T17:30:00Z", want: time.Date(2025, 3, 1, 17, 30, 0, 0, time.UTC)},
		{in: "next friday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDueDate(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidDueDate)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got))
		})
	}
}

func (suite *ServiceTestSuite) newAssignmentService() *AssignmentService {
	return NewAssignmentService(suite.store, suite.notifier, suite.files, suite.logger)
}

func (suite *ServiceTestSuite) createAssignment() *models.Assignment {
	assignment, err := suite.newAssignmentService().Upload(context.Background(), suite.manager, UploadAssignmentInput{
		Title: "Quarterly plan",
		File:  upload("plan.txt", "Write down your goals for the quarter."),
	})
	suite.Require().NoError(err)
	return assignment
}

func (suite *ServiceTestSuite) TestAssignments_UploadNotifiesTeam() {
	svc := suite.newAssignmentService()

	_, err := svc.Upload(context.Background(), suite.manager, UploadAssignmentInput{
		Title: "Binary",
		File:  upload("tool.exe", "MZ\x90\x00\x03\x00\x00\x00\x04\x00\x00\x00\xff\xff"),
	})
	suite.True(errors.Is(err, storage.ErrFileTypeNotAllowed))

	assignment := suite.createAssignment()
	suite.Equal("text/plain", assignment.StoredFile.MimeType)
	suite.True(assignment.IsActive)

	for _, employee := range []*models.User{suite.alice, suite.bob} {
		notifications := suite.notificationsFor(employee)
		suite.Require().Len(notifications, 1)
		suite.Equal("New assignment uploaded: 'Quarterly plan'", notifications[0].Message)
	}
	suite.Empty(suite.notificationsFor(suite.outsider))
}

func (suite *ServiceTestSuite) TestAssignments_Access() {
	svc := suite.newAssignmentService()
	assignment := suite.createAssignment()
	ctx := context.Background()

	_, _, err := svc.Get(suite.outsider, assignment.ID)
	suite.ErrorIs(err, ErrAssignmentAccessDenied)
	_, _, err = svc.Download(ctx, suite.otherManager, assignment.ID)
	suite.ErrorIs(err, ErrAssignmentAccessDenied)

	_, rc, err := svc.Download(ctx, suite.alice, assignment.ID)
	suite.Require().NoError(err)
	rc.Close()

	_, err = svc.Update(suite.otherManager, assignment.ID, UpdateAssignmentInput{IsActive: ptr(false)})
	suite.ErrorIs(err, ErrAssignmentNotFound)

	updated, err := svc.Update(suite.manager, assignment.ID, UpdateAssignmentInput{IsActive: ptr(false)})
	suite.Require().NoError(err)
	suite.False(updated.IsActive)

	mine, err := svc.ListMine(suite.alice)
	suite.Require().NoError(err)
	suite.Empty(mine)
}

func (suite *ServiceTestSuite) TestAssignments_UpdateDueDate() {
	svc := suite.newAssignmentService()
	assignment := suite.createAssignment()
	suite.Nil(assignment.DueDate)

	due := time.Date(2030, 1, 31, 0, 0, 0, 0, time.UTC)
	updated, err := svc.Update(suite.manager, assignment.ID, UpdateAssignmentInput{DueDate: &due})
	suite.Require().NoError(err)
	suite.Require().NotNil(updated.DueDate)
	suite.True(due.Equal(*updated.DueDate))

	// Leaving DueDate unset keeps the stored value.
	updated, err = svc.Update(suite.manager, assignment.ID, UpdateAssignmentInput{Title: ptr("Renamed")})
	suite.Require().NoError(err)
	suite.Require().NotNil(updated.DueDate)
	suite.Equal("Renamed", updated.Title)

	updated, err = svc.Update(suite.manager, assignment.ID, UpdateAssignmentInput{ClearDueDate: true})
	suite.Require().NoError(err)
	suite.Nil(updated.DueDate)

	stored, err := suite.store.Assignments().FindByID(assignment.ID)
	suite.Require().NoError(err)
	suite.Nil(stored.DueDate)
}

func (suite *ServiceTestSuite) TestAssignments_DeleteCascades() {
	assignment := suite.createAssignment()
	ctx := context.Background()

	submission, err := suite.newSubmissionService().Upload(ctx, suite.alice, UploadSubmissionInput{
		AssignmentID: assignment.ID,
		Title:        "My plan",
		File:         upload("mine.txt", "Ship the feedback API."),
	})
	suite.Require().NoError(err)
	_, err = NewAssignmentCommentService(suite.store, suite.notifier).Create(ctx, suite.alice, assignment.ID, "Question")
	suite.Require().NoError(err)

	items, counts, err := suite.newAssignmentService().ListTeam(suite.manager)
	suite.Require().NoError(err)
	suite.Require().Len(items, 1)
	suite.Equal(int64(1), counts[assignment.ID])

	suite.ErrorIs(suite.newAssignmentService().Delete(ctx, suite.otherManager, assignment.ID), ErrAssignmentNotFound)
	suite.Require().NoError(suite.newAssignmentService().Delete(ctx, suite.manager, assignment.ID))

	var remaining int64
	suite.Require().NoError(suite.db.Model(&models.Submission{}).Count(&remaining).Error)
	suite.Zero(remaining)
	suite.Require().NoError(suite.db.Model(&models.AssignmentComment{}).Count(&remaining).Error)
	suite.Zero(remaining)

	_, err = suite.files.Open(ctx, submission.StoredFile.FilePath)
	suite.ErrorIs(err, storage.ErrNotExist)
	_, err = suite.files.Open(ctx, assignment.StoredFile.FilePath)
	suite.ErrorIs(err, storage.ErrNotExist)
}
