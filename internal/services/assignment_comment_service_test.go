package services

import (
	"context"
)

func (suite *ServiceTestSuite) TestAssignmentComments_Notifications() {
	assignment := suite.createAssignment()
	svc := NewAssignmentCommentService(suite.store, suite.notifier)
	ctx := context.Background()

	_, err := svc.Create(ctx, suite.outsider, assignment.ID, "Hello?")
	suite.ErrorIs(err, ErrAssignmentAccessDenied)

	_, err = svc.Create(ctx, suite.alice, assignment.ID, "Is the template required?")
	suite.Require().NoError(err)
	managerInbox := suite.notificationsFor(suite.manager)
	suite.Require().Len(managerInbox, 1)
	suite.Equal("New comment on assignment 'Quarterly plan' by Alice", managerInbox[0].Message)
	// Bob only has the upload notification.
	suite.Len(suite.notificationsFor(suite.bob), 1)

	reply, err := svc.Create(ctx, suite.manager, assignment.ID, "Optional.")
	suite.Require().NoError(err)
	suite.Equal(suite.manager.ID, reply.AuthorID)
	suite.Equal("Maya", reply.Author.Name)

	bob := suite.notificationsFor(suite.bob)
	suite.Require().Len(bob, 2)
	suite.Equal("Manager Maya commented on assignment 'Quarterly plan'", bob[1].Message)
	suite.Len(suite.notificationsFor(suite.alice), 2)
}

func (suite *ServiceTestSuite) TestAssignmentComments_AuthorOnly() {
	assignment := suite.createAssignment()
	svc := NewAssignmentCommentService(suite.store, suite.notifier)
	ctx := context.Background()

	comment, err := svc.Create(ctx, suite.alice, assignment.ID, "First")
	suite.Require().NoError(err)

	_, err = svc.Update(suite.bob, comment.ID, "Edited")
	suite.ErrorIs(err, ErrNotCommentAuthor)
	suite.ErrorIs(svc.Delete(suite.manager, comment.ID), ErrNotCommentAuthor)

	updated, err := svc.Update(suite.alice, comment.ID, "Edited")
	suite.Require().NoError(err)
	suite.Equal("Edited", updated.Content)

	items, err := svc.ListByAssignment(suite.bob, assignment.ID)
	suite.Require().NoError(err)
	suite.Len(items, 1)

	suite.Require().NoError(svc.Delete(suite.alice, comment.ID))
	_, err = svc.Update(suite.alice, comment.ID, "Again")
	suite.ErrorIs(err, ErrAssignmentCommentNotFound)
}
