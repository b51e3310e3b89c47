package services

import (
	"context"
)

func (suite *ServiceTestSuite) newSubmissionService() *SubmissionService {
	return NewSubmissionService(suite.store, suite.notifier, suite.files, suite.logger)
}

func (suite *ServiceTestSuite) TestSubmissions_OnePerEmployee() {
	assignment := suite.createAssignment()
	svc := suite.newSubmissionService()
	ctx := context.Background()

	input := UploadSubmissionInput{AssignmentID: assignment.ID, Title: "Attempt", File: upload("a.txt", "first attempt")}
	submission, err := svc.Upload(ctx, suite.alice, input)
	suite.Require().NoError(err)
	suite.Equal("Quarterly plan", submission.Assignment.Title)
	suite.Equal("Alice", submission.Employee.Name)

	notifications := suite.notificationsFor(suite.manager)
	suite.Require().Len(notifications, 1)
	suite.Equal("Employee 'Alice' has submitted work for assignment: 'Quarterly plan'", notifications[0].Message)

	input.File = upload("b.txt", "second attempt")
	_, err = svc.Upload(ctx, suite.alice, input)
	suite.ErrorIs(err, ErrDuplicateSubmission)

	mine, err := svc.ListMine(suite.alice)
	suite.Require().NoError(err)
	suite.Len(mine, 1)
}

func (suite *ServiceTestSuite) TestSubmissions_AssignmentChecks() {
	assignment := suite.createAssignment()
	svc := suite.newSubmissionService()
	ctx := context.Background()

	_, err := svc.Upload(ctx, suite.outsider, UploadSubmissionInput{AssignmentID: assignment.ID, Title: "X", File: upload("x.txt", "text")})
	suite.ErrorIs(err, ErrAssignmentNotInTeam)

	_, err = svc.Upload(ctx, suite.alice, UploadSubmissionInput{AssignmentID: 9999, Title: "X", File: upload("x.txt", "text")})
	suite.ErrorIs(err, ErrAssignmentNotFound)

	_, err = suite.newAssignmentService().Update(suite.manager, assignment.ID, UpdateAssignmentInput{IsActive: ptr(false)})
	suite.Require().NoError(err)
	_, err = svc.Upload(ctx, suite.alice, UploadSubmissionInput{AssignmentID: assignment.ID, Title: "X", File: upload("x.txt", "text")})
	suite.ErrorIs(err, ErrAssignmentInactive)
}

func (suite *ServiceTestSuite) TestSubmissions_Access() {
	assignment := suite.createAssignment()
	svc := suite.newSubmissionService()
	ctx := context.Background()

	submission, err := svc.Upload(ctx, suite.alice, UploadSubmissionInput{AssignmentID: assignment.ID, Title: "Attempt", File: upload("a.txt", "attempt")})
	suite.Require().NoError(err)

	_, err = svc.Get(suite.bob, submission.ID)
	suite.ErrorIs(err, ErrSubmissionAccessDenied)
	_, err = svc.Get(suite.otherManager, submission.ID)
	suite.ErrorIs(err, ErrSubmissionAccessDenied)

	_, rc, err := svc.Download(ctx, suite.manager, submission.ID)
	suite.Require().NoError(err)
	rc.Close()

	_, err = svc.ListByAssignment(suite.otherManager, assignment.ID)
	suite.ErrorIs(err, ErrAssignmentNotFound)
	items, err := svc.ListByAssignment(suite.manager, assignment.ID)
	suite.Require().NoError(err)
	suite.Len(items, 1)

	title := "Final attempt"
	_, err = svc.Update(suite.bob, submission.ID, UpdateSubmissionInput{Title: &title})
	suite.ErrorIs(err, ErrSubmissionNotFound)
	updated, err := svc.Update(suite.alice, submission.ID, UpdateSubmissionInput{Title: &title})
	suite.Require().NoError(err)
	suite.Equal(title, updated.Title)

	suite.ErrorIs(svc.Delete(ctx, suite.bob, submission.ID), ErrSubmissionNotFound)
	suite.Require().NoError(svc.Delete(ctx, suite.alice, submission.ID))
}
