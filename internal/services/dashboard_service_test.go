package services

import (
	"github.com/yukikurage/feedback-management-api/internal/models"
)

func (suite *ServiceTestSuite) TestDashboard_Manager() {
	suite.createFeedback(suite.alice, suite.manager)
	suite.createFeedback(suite.bob, suite.manager)
	suite.createFeedback(suite.outsider, suite.otherManager)

	stats, err := NewDashboardService(suite.store).Manager(suite.manager)
	suite.Require().NoError(err)
	suite.Equal(int64(2), stats.TeamSize)
	suite.Equal(int64(2), stats.FeedbackCount)
	suite.Equal(int64(2), stats.Sentiments[models.SentimentPositive])
	suite.Contains(stats.Sentiments, models.SentimentNegative)
	suite.Zero(stats.Sentiments[models.SentimentNegative])
}

func (suite *ServiceTestSuite) TestDashboard_Employee() {
	suite.createFeedback(suite.alice, suite.manager)

	timeline, err := NewDashboardService(suite.store).Employee(suite.alice)
	suite.Require().NoError(err)
	suite.Len(timeline, 1)

	timeline, err = NewDashboardService(suite.store).Employee(suite.bob)
	suite.Require().NoError(err)
	suite.Empty(timeline)
}
