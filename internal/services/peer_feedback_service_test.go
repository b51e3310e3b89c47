package services

import (
	"github.com/yukikurage/feedback-management-api/internal/models"
)

func (suite *ServiceTestSuite) peerInput(to *models.User) CreatePeerFeedbackInput {
	return CreatePeerFeedbackInput{
		ToEmployeeID:   to.ID,
		Strengths:      "Helpful reviews",
		AreasToImprove: "Meeting notes",
		Sentiment:      models.SentimentPositive,
	}
}

func (suite *ServiceTestSuite) TestPeerFeedback_TeamRules() {
	svc := NewPeerFeedbackService(suite.store)

	_, err := svc.Create(suite.alice, suite.peerInput(suite.alice))
	suite.ErrorIs(err, ErrSelfFeedback)

	_, err = svc.Create(suite.alice, suite.peerInput(suite.outsider))
	suite.ErrorIs(err, ErrNotTeamMember)

	_, err = svc.Create(suite.alice, suite.peerInput(suite.manager))
	suite.ErrorIs(err, ErrNotTeamMember)

	input := suite.peerInput(suite.bob)
	input.ToEmployeeID = 9999
	_, err = svc.Create(suite.alice, input)
	suite.ErrorIs(err, ErrRecipientNotFound)

	feedback, err := svc.Create(suite.alice, suite.peerInput(suite.bob))
	suite.Require().NoError(err)
	suite.Equal("Alice", feedback.FromEmployee.Name)
	suite.Equal("Bob", feedback.ToEmployee.Name)
}

func (suite *ServiceTestSuite) TestPeerFeedback_ListsAndTeamMembers() {
	svc := NewPeerFeedbackService(suite.store)
	_, err := svc.Create(suite.alice, suite.peerInput(suite.bob))
	suite.Require().NoError(err)

	received, err := svc.Received(suite.bob)
	suite.Require().NoError(err)
	suite.Len(received, 1)

	sent, err := svc.Sent(suite.alice)
	suite.Require().NoError(err)
	suite.Len(sent, 1)

	received, err = svc.Received(suite.alice)
	suite.Require().NoError(err)
	suite.Empty(received)

	members, err := svc.TeamMembers(suite.alice)
	suite.Require().NoError(err)
	suite.Require().Len(members, 1)
	suite.Equal(suite.bob.ID, members[0].ID)
}

func (suite *ServiceTestSuite) TestPeerFeedback_AcknowledgeAndUpdate() {
	svc := NewPeerFeedbackService(suite.store)
	feedback, err := svc.Create(suite.alice, suite.peerInput(suite.bob))
	suite.Require().NoError(err)

	_, err = svc.Acknowledge(suite.alice, feedback.ID)
	suite.ErrorIs(err, ErrPeerFeedbackNotFound)

	acked, err := svc.Acknowledge(suite.bob, feedback.ID)
	suite.Require().NoError(err)
	suite.True(acked.Acknowledged)

	_, err = svc.Update(suite.bob, feedback.ID, UpdatePeerFeedbackInput{IsAnonymous: ptr(true)})
	suite.ErrorIs(err, ErrPeerFeedbackNotFound)

	// Peer feedback edits do not reset the acknowledgment.
	strengths := "Great pairing partner"
	updated, err := svc.Update(suite.alice, feedback.ID, UpdatePeerFeedbackInput{Strengths: &strengths, IsAnonymous: ptr(true)})
	suite.Require().NoError(err)
	suite.True(updated.Acknowledged)
	suite.True(updated.IsAnonymous)
	suite.Equal(strengths, updated.Strengths)
}
