package services

import (
	"context"
)

func (suite *ServiceTestSuite) TestAnnouncements_CreateNotifiesEachDirectReport() {
	svc := NewAnnouncementService(suite.store, suite.notifier)

	announcement, err := svc.Create(context.Background(), suite.manager, "Offsite", "Friday at noon")
	suite.Require().NoError(err)
	suite.Equal("Maya", announcement.Manager.Name)
	suite.True(announcement.IsActive)

	suite.Len(suite.notificationsFor(suite.bob), 1)
	alice := suite.notificationsFor(suite.alice)
	suite.Require().Len(alice, 1)
	suite.Equal("New announcement from Maya: Offsite", alice[0].Message)
	suite.Empty(suite.notificationsFor(suite.outsider))
	suite.Empty(suite.notificationsFor(suite.manager))
	suite.Len(suite.publisher.published, 2)
}

func (suite *ServiceTestSuite) TestAnnouncements_AuthorIsTheCreatingManager() {
	svc := NewAnnouncementService(suite.store, suite.notifier)
	ctx := context.Background()

	_, err := svc.Create(ctx, suite.manager, "First", "from Maya")
	suite.Require().NoError(err)
	announcement, err := svc.Create(ctx, suite.otherManager, "Second", "from Omar")
	suite.Require().NoError(err)
	suite.Require().NotEqual(suite.otherManager.ID, announcement.ID)
	suite.Equal("Omar", announcement.Manager.Name)

	got, err := svc.Get(suite.outsider, announcement.ID)
	suite.Require().NoError(err)
	suite.Equal(suite.otherManager.ID, got.Manager.ID)

	mine, err := svc.ListMine(suite.outsider)
	suite.Require().NoError(err)
	suite.Require().Len(mine, 1)
	suite.Equal("Omar", mine[0].Manager.Name)
}

func (suite *ServiceTestSuite) TestAnnouncements_Visibility() {
	svc := NewAnnouncementService(suite.store, suite.notifier)
	ctx := context.Background()

	announcement, err := svc.Create(ctx, suite.manager, "Offsite", "Friday at noon")
	suite.Require().NoError(err)

	_, err = svc.Get(suite.alice, announcement.ID)
	suite.Require().NoError(err)
	_, err = svc.Get(suite.outsider, announcement.ID)
	suite.ErrorIs(err, ErrAnnouncementAccessDenied)
	_, err = svc.Get(suite.otherManager, announcement.ID)
	suite.ErrorIs(err, ErrAnnouncementAccessDenied)

	_, err = svc.Update(ctx, suite.manager, announcement.ID, UpdateAnnouncementInput{IsActive: ptr(false)})
	suite.Require().NoError(err)
	suite.Len(suite.notificationsFor(suite.alice), 1)

	_, err = svc.Get(suite.alice, announcement.ID)
	suite.ErrorIs(err, ErrAnnouncementAccessDenied)

	mine, err := svc.ListMine(suite.alice)
	suite.Require().NoError(err)
	suite.Empty(mine)

	team, err := svc.ListTeam(suite.manager)
	suite.Require().NoError(err)
	suite.Len(team, 1)
}

func (suite *ServiceTestSuite) TestAnnouncements_UpdateAndDelete() {
	svc := NewAnnouncementService(suite.store, suite.notifier)
	ctx := context.Background()

	announcement, err := svc.Create(ctx, suite.manager, "Offsite", "Friday at noon")
	suite.Require().NoError(err)

	title := "Offsite moved"
	_, err = svc.Update(ctx, suite.otherManager, announcement.ID, UpdateAnnouncementInput{Title: &title})
	suite.ErrorIs(err, ErrAnnouncementNotFound)

	updated, err := svc.Update(ctx, suite.manager, announcement.ID, UpdateAnnouncementInput{Title: &title})
	suite.Require().NoError(err)
	suite.Equal(title, updated.Title)

	bob := suite.notificationsFor(suite.bob)
	suite.Require().Len(bob, 2)
	suite.Equal("Announcement updated by Maya: Offsite moved", bob[1].Message)

	suite.ErrorIs(svc.Delete(suite.otherManager, announcement.ID), ErrAnnouncementNotFound)
	suite.Require().NoError(svc.Delete(suite.manager, announcement.ID))
	_, err = svc.Get(suite.manager, announcement.ID)
	suite.ErrorIs(err, ErrAnnouncementNotFound)
}

func (suite *ServiceTestSuite) TestAnnouncements_FailedPublishKeepsRows() {
	suite.publisher.err = context.DeadlineExceeded
	svc := NewAnnouncementService(suite.store, suite.notifier)

	_, err := svc.Create(context.Background(), suite.manager, "Offsite", "Friday at noon")
	suite.Require().NoError(err)
	suite.Len(suite.notificationsFor(suite.alice), 1)
}
