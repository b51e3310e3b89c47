package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/yukikurage/feedback-management-api/internal/auth"
	"github.com/yukikurage/feedback-management-api/internal/constants"
	"github.com/yukikurage/feedback-management-api/internal/models"
	"github.com/yukikurage/feedback-management-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthService handles registration, login and token validation.
type AuthService struct {
	store       repository.Store
	credentials *auth.Credentials
	denylist    auth.Denylist
	logger      *zap.Logger
}

// NewAuthService creates a new AuthService. denylist may be nil, in which
// case logout only clears the client session.
func NewAuthService(store repository.Store, credentials *auth.Credentials, denylist auth.Denylist, logger *zap.Logger) *AuthService {
	return &AuthService{
		store:       store,
		credentials: credentials,
		denylist:    denylist,
		logger:      logger,
	}
}

// RegisterInput represents the information required to create a user.
type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	Role      models.Role
	ManagerID *uint64
}

// Register creates a user after validating the manager reference.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	email := normalizeEmail(input.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if len(input.Password) > constants.MaxPasswordLength {
		return nil, ErrPasswordTooLong
	}
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	if input.ManagerID != nil {
		if input.Role == models.RoleManager {
			return nil, ErrManagerCannotHaveManager
		}
		manager, err := s.store.Users().FindByID(*input.ManagerID)
		if err != nil {
			return nil, lookupError(err, ErrInvalidManager, "manager")
		}
		if !manager.IsManager() {
			return nil, ErrInvalidManager
		}
	}

	if _, err := s.store.Users().FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := s.credentials.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         input.Role,
		ManagerID:    input.ManagerID,
	}
	if err := s.store.Users().Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password return the same error.
func (s *AuthService) Login(input LoginInput) (string, *models.User, error) {
	user, err := s.store.Users().FindByEmail(normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.credentials.VerifyPassword(input.Password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, _, err := s.credentials.IssueToken(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Authenticate resolves a bearer token to its user. Any failure, including a
// deleted user or a revoked token, is ErrNotAuthenticated.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, *auth.Claims, error) {
	if token == "" {
		return nil, nil, ErrNotAuthenticated
	}
	claims, err := s.credentials.DecodeToken(token)
	if err != nil {
		return nil, nil, ErrNotAuthenticated
	}

	if s.denylist != nil {
		revoked, err := s.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("token revocation check failed", zap.Error(err))
			return nil, nil, ErrNotAuthenticated
		}
		if revoked {
			return nil, nil, ErrNotAuthenticated
		}
	}

	user, err := s.store.Users().FindByID(claims.UserID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("failed to load token user", zap.Uint64("user_id", claims.UserID), zap.Error(err))
		}
		return nil, nil, ErrNotAuthenticated
	}
	return user, claims, nil
}

// Logout revokes the token when a denylist is configured.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if s.denylist == nil || claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	return s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.store.Users().FindByID(id)
	if err != nil {
		return nil, lookupError(err, ErrUserNotFound, "user")
	}
	return user, nil
}

// Team lists the direct reports of a manager.
func (s *AuthService) Team(manager *models.User) ([]models.User, error) {
	users, err := s.store.Users().ListByManager(manager.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team: %w", err)
	}
	return users, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
