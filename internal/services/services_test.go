package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/feedback-management-api/internal/database"
	"github.com/yukikurage/feedback-management-api/internal/models"
	"github.com/yukikurage/feedback-management-api/internal/repository"
	"github.com/yukikurage/feedback-management-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const pdfContent = "%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n"

// recordingPublisher keeps every published notification in memory.
type recordingPublisher struct {
	mu        sync.Mutex
	published []models.Notification
	err       error
}

func (p *recordingPublisher) PublishNotifications(_ context.Context, notifications []models.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, notifications...)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

// failingTxStore makes every transaction fail before running.
type failingTxStore struct {
	repository.Store
}

func (failingTxStore) Transaction(func(tx repository.Store) error) error {
	return errors.New("transaction unavailable")
}

// ServiceTestSuite runs the services against an in-memory SQLite database
type ServiceTestSuite struct {
	suite.Suite
	db        *gorm.DB
	store     repository.Store
	files     *storage.LocalStore
	publisher *recordingPublisher
	notifier  *Notifier
	logger    *zap.Logger

	manager *models.User
	alice   *models.User
	bob     *models.User
	// outsider belongs to another manager's team
	otherManager *models.User
	outsider     *models.User
}

func TestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

// SetupTest runs before each test
func (suite *ServiceTestSuite) SetupTest() {
	var err error

	name := regexp.MustCompile(`\W`).ReplaceAllString(suite.T().Name(), "_")
	suite.db, err = gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.db.AutoMigrate(database.Models()...))

	suite.store = repository.NewStore(suite.db)
	suite.files, err = storage.NewLocalStore(suite.T().TempDir())
	suite.Require().NoError(err)
	suite.logger = zap.NewNop()
	suite.publisher = &recordingPublisher{}
	suite.notifier = NewNotifier(suite.publisher, suite.logger)

	suite.manager = suite.createUser("Maya", models.RoleManager, nil)
	suite.alice = suite.createUser("Alice", models.RoleEmployee, &suite.manager.ID)
	suite.bob = suite.createUser("Bob", models.RoleEmployee, &suite.manager.ID)
	suite.otherManager = suite.createUser("Omar", models.RoleManager, nil)
	suite.outsider = suite.createUser("Olga", models.RoleEmployee, &suite.otherManager.ID)
}

// TearDownTest runs after each test
func (suite *ServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ServiceTestSuite) createUser(name string, role models.Role, managerID *uint64) *models.User {
	user := &models.User{
		Name:         name,
		Email:        strings.ToLower(name) + "@example.com",
		PasswordHash: "hashedpassword",
		Role:         role,
		ManagerID:    managerID,
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *ServiceTestSuite) createFeedback(employee, manager *models.User) *models.Feedback {
	feedback := &models.Feedback{
		EmployeeID:     employee.ID,
		ManagerID:      manager.ID,
		Strengths:      "Clear communication",
		AreasToImprove: "Estimation",
		Sentiment:      models.SentimentPositive,
	}
	suite.Require().NoError(suite.store.Feedback().Create(feedback))
	return feedback
}

func (suite *ServiceTestSuite) notificationsFor(user *models.User) []models.Notification {
	var notifications []models.Notification
	suite.Require().NoError(suite.db.Where("user_id = ?", user.ID).Order("id").Find(&notifications).Error)
	return notifications
}

func upload(filename, content string) storage.Upload {
	return storage.Upload{
		Filename: filename,
		Size:     int64(len(content)),
		Content:  strings.NewReader(content),
	}
}

func newEmployee(id, managerID uint64) *models.User {
	return &models.User{ID: id, Name: "Employee", Role: models.RoleEmployee, ManagerID: &managerID}
}
