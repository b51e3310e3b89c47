package services

import (
	"context"
	"strings"
)

func (suite *ServiceTestSuite) TestComments_CreateNotifiesManagerWithPreview() {
	svc := NewCommentService(suite.store, suite.notifier)
	feedback := suite.createFeedback(suite.alice, suite.manager)
	ctx := context.Background()

	_, err := svc.Create(ctx, suite.bob, feedback.ID, "not mine")
	suite.ErrorIs(err, ErrFeedbackNotFound)

	_, err = svc.Create(ctx, suite.alice, feedback.ID, "   ")
	suite.ErrorIs(err, ErrContentRequired)

	long := strings.Repeat("a", 150)
	comment, err := svc.Create(ctx, suite.alice, feedback.ID, long)
	suite.Require().NoError(err)
	suite.Equal("Alice", comment.Employee.Name)

	notifications := suite.notificationsFor(suite.manager)
	suite.Require().Len(notifications, 1)
	suite.Contains(notifications[0].Message, "Employee 'Alice' has commented on feedback #")
	suite.Contains(notifications[0].Message, strings.Repeat("a", 100)+"...\"")
	suite.NotContains(notifications[0].Message, strings.Repeat("a", 101))
}

func (suite *ServiceTestSuite) TestComments_ListAccess() {
	svc := NewCommentService(suite.store, suite.notifier)
	feedback := suite.createFeedback(suite.alice, suite.manager)
	ctx := context.Background()

	_, err := svc.Create(ctx, suite.alice, feedback.ID, "first")
	suite.Require().NoError(err)
	_, err = svc.Create(ctx, suite.alice, feedback.ID, "second")
	suite.Require().NoError(err)

	comments, err := svc.ListByFeedback(suite.manager, feedback.ID)
	suite.Require().NoError(err)
	suite.Require().Len(comments, 2)
	suite.Equal("first", comments[0].Content)

	_, err = svc.ListByFeedback(suite.bob, feedback.ID)
	suite.ErrorIs(err, ErrCommentAccessDenied)

	_, err = svc.ListByFeedback(suite.alice, 9999)
	suite.ErrorIs(err, ErrFeedbackNotFound)
}

func (suite *ServiceTestSuite) TestComments_UpdateAndDeleteByAuthorOnly() {
	svc := NewCommentService(suite.store, suite.notifier)
	feedback := suite.createFeedback(suite.alice, suite.manager)
	ctx := context.Background()

	comment, err := svc.Create(ctx, suite.alice, feedback.ID, "draft")
	suite.Require().NoError(err)

	_, err = svc.Update(ctx, suite.bob, comment.ID, "hijack")
	suite.ErrorIs(err, ErrCommentNotFound)

	updated, err := svc.Update(ctx, suite.alice, comment.ID, "final")
	suite.Require().NoError(err)
	suite.Equal("final", updated.Content)

	suite.ErrorIs(svc.Delete(ctx, suite.bob, comment.ID), ErrCommentNotFound)
	suite.Require().NoError(svc.Delete(ctx, suite.alice, comment.ID))

	messages := suite.notificationsFor(suite.manager)
	suite.Require().Len(messages, 3)
	suite.Contains(messages[1].Message, "has updated their comment")
	suite.Contains(messages[2].Message, "has deleted their comment")
}
