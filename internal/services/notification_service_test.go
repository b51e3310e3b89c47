package services

import (
	"context"

	"github.com/yukikurage/feedback-management-api/internal/utils"
)

func (suite *ServiceTestSuite) TestNotifications_ListAndMarkRead() {
	feedback := NewFeedbackService(suite.store, suite.notifier, nil)
	ctx := context.Background()
	suite.Require().NoError(feedback.RequestFeedback(ctx, suite.alice))
	suite.Require().NoError(feedback.RequestFeedback(ctx, suite.bob))
	suite.Require().NoError(feedback.RequestFeedback(ctx, suite.alice))

	svc := NewNotificationService(suite.store)

	items, total, err := svc.List(suite.manager, nil)
	suite.Require().NoError(err)
	suite.Equal(int64(3), total)
	suite.Require().Len(items, 3)
	suite.Contains(items[0].Message, "Alice")
	suite.Contains(items[1].Message, "Bob")

	page, total, err := svc.List(suite.manager, &utils.PaginationParams{Page: 2, Limit: 2, Offset: 2})
	suite.Require().NoError(err)
	suite.Equal(int64(3), total)
	suite.Len(page, 1)

	_, err = svc.MarkRead(suite.alice, items[0].ID)
	suite.ErrorIs(err, ErrNotificationNotFound)

	read, err := svc.MarkRead(suite.manager, items[0].ID)
	suite.Require().NoError(err)
	suite.True(read.IsRead)

	n, err := svc.MarkAllRead(suite.manager)
	suite.Require().NoError(err)
	suite.Equal(int64(2), n)
}
