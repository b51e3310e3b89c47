package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/yukikurage/feedback-management-api/internal/auth"
	"github.com/yukikurage/feedback-management-api/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type memoryDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func (d *memoryDenylist) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.revoked == nil {
		d.revoked = map[string]time.Time{}
	}
	d.revoked[tokenID] = expiresAt
	return nil
}

func (d *memoryDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.revoked[tokenID]
	return ok, nil
}

func (suite *ServiceTestSuite) newAuthService(denylist auth.Denylist) *AuthService {
	credentials, err := auth.NewCredentials(auth.Config{Secret: "test-secret", TokenTTL: time.Hour, BcryptCost: bcrypt.MinCost})
	suite.Require().NoError(err)
	return NewAuthService(suite.store, credentials, denylist, suite.logger)
}

func (suite *ServiceTestSuite) TestRegister_DuplicateEmail() {
	svc := suite.newAuthService(nil)
	input := RegisterInput{Name: "Eve", Email: "eve@example.com", Password: "secret1", Role: models.RoleEmployee, ManagerID: &suite.manager.ID}

	user, err := svc.Register(input)
	suite.Require().NoError(err)
	suite.Equal("eve@example.com", user.Email)
	suite.NotEqual("secret1", user.PasswordHash)

	input.Email = "  EVE@example.com "
	_, err = svc.Register(input)
	suite.ErrorIs(err, ErrEmailTaken)
}

func (suite *ServiceTestSuite) TestRegister_Validation() {
	svc := suite.newAuthService(nil)

	tests := []struct {
		name  string
		input RegisterInput
		err   error
	}{
		{"missing name", RegisterInput{Email: "x@example.com", Password: "secret1", Role: models.RoleEmployee}, ErrNameRequired},
		{"bad email", RegisterInput{Name: "X", Email: "nope", Password: "secret1", Role: models.RoleEmployee}, ErrInvalidEmail},
		{"short password", RegisterInput{Name: "X", Email: "x@example.com", Password: "abc", Role: models.RoleEmployee}, ErrPasswordTooShort},
		{"password over bcrypt limit", RegisterInput{Name: "X", Email: "x@example.com", Password: strings.Repeat("a", 73), Role: models.RoleEmployee}, ErrPasswordTooLong},
		{"multibyte password over bcrypt limit", RegisterInput{Name: "X", Email: "x@example.com", Password: strings.Repeat("é", 37), Role: models.RoleEmployee}, ErrPasswordTooLong},
		{"unknown role", RegisterInput{Name: "X", Email: "x@example.com", Password: "secret1", Role: "admin"}, ErrInvalidRole},
		{"manager is an employee", RegisterInput{Name: "X", Email: "x@example.com", Password: "secret1", Role: models.RoleEmployee, ManagerID: &suite.alice.ID}, ErrInvalidManager},
		{"manager missing", RegisterInput{Name: "X", Email: "x@example.com", Password: "secret1", Role: models.RoleEmployee, ManagerID: ptr(uint64(9999))}, ErrInvalidManager},
		{"manager with manager", RegisterInput{Name: "X", Email: "x@example.com", Password: "secret1", Role: models.RoleManager, ManagerID: &suite.manager.ID}, ErrManagerCannotHaveManager},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := svc.Register(tt.input)
			suite.ErrorIs(err, tt.err)
		})
	}
}

func (suite *ServiceTestSuite) TestLogin_SameErrorForUnknownEmailAndWrongPassword() {
	svc := suite.newAuthService(nil)
	_, err := svc.Register(RegisterInput{Name: "Eve", Email: "eve@example.com", Password: "secret1", Role: models.RoleManager})
	suite.Require().NoError(err)

	_, _, errWrong := svc.Login(LoginInput{Email: "eve@example.com", Password: "wrong-password"})
	_, _, errUnknown := svc.Login(LoginInput{Email: "ghost@example.com", Password: "secret1"})
	suite.ErrorIs(errWrong, ErrInvalidCredentials)
	suite.ErrorIs(errUnknown, ErrInvalidCredentials)

	token, user, err := svc.Login(LoginInput{Email: "Eve@Example.com", Password: "secret1"})
	suite.Require().NoError(err)
	suite.NotEmpty(token)
	suite.Equal("Eve", user.Name)
}

func (suite *ServiceTestSuite) TestAuthenticate_RevokedToken() {
	denylist := &memoryDenylist{}
	svc := suite.newAuthService(denylist)
	_, err := svc.Register(RegisterInput{Name: "Eve", Email: "eve@example.com", Password: "secret1", Role: models.RoleManager})
	suite.Require().NoError(err)

	token, _, err := svc.Login(LoginInput{Email: "eve@example.com", Password: "secret1"})
	suite.Require().NoError(err)

	ctx := context.Background()
	user, claims, err := svc.Authenticate(ctx, token)
	suite.Require().NoError(err)
	suite.Equal("Eve", user.Name)

	suite.Require().NoError(svc.Logout(ctx, claims))
	_, _, err = svc.Authenticate(ctx, token)
	suite.ErrorIs(err, ErrNotAuthenticated)

	_, _, err = svc.Authenticate(ctx, "garbage")
	suite.ErrorIs(err, ErrNotAuthenticated)
}

func (suite *ServiceTestSuite) TestAuthenticate_DeletedUser() {
	svc := suite.newAuthService(nil)
	user, err := svc.Register(RegisterInput{Name: "Eve", Email: "eve@example.com", Password: "secret1", Role: models.RoleManager})
	suite.Require().NoError(err)
	token, _, err := svc.Login(LoginInput{Email: "eve@example.com", Password: "secret1"})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.db.Delete(&models.User{}, user.ID).Error)

	_, _, err = svc.Authenticate(context.Background(), token)
	suite.ErrorIs(err, ErrNotAuthenticated)
}

func (suite *ServiceTestSuite) TestTeam() {
	team, err := suite.newAuthService(nil).Team(suite.manager)
	suite.Require().NoError(err)
	suite.Len(team, 2)
}

func ptr[T any](v T) *T {
	return &v
}
