package middleware

import (
	"context"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/feedback-management-api/internal/auth"
	"github.com/yukikurage/feedback-management-api/internal/constants"
	apierrors "github.com/yukikurage/feedback-management-api/internal/errors"
	"github.com/yukikurage/feedback-management-api/internal/models"
)

const credentialsMessage = "Could not validate credentials"

// Authenticator resolves an access token to the user it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, *auth.Claims, error)
}

// RequireAuth checks the bearer token, falling back to the token stored in
// the session at login.
func RequireAuth(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if v, ok := sessions.Default(c).Get(constants.SessionKeyToken).(string); ok {
				token = v
			}
		}

		user, claims, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.Header("WWW-Authenticate", "Bearer")
			apierrors.Unauthorized(c, credentialsMessage)
			c.Abort()
			return
		}

		// Store the principal in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyUser, user)
		c.Set(constants.ContextKeyClaims, claims)
		c.Next()
	}
}

// RequireManager rejects principals that are not managers
func RequireManager() gin.HandlerFunc {
	return requireRole(models.RoleManager, "Manager access required")
}

// RequireEmployee rejects principals that are not employees
func RequireEmployee() gin.HandlerFunc {
	return requireRole(models.RoleEmployee, "Employee access required")
}

func requireRole(role models.Role, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			apierrors.Unauthorized(c, credentialsMessage)
			c.Abort()
			return
		}
		if user.Role != role {
			apierrors.Forbidden(c, message)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser retrieves the authenticated user from context
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// CurrentClaims retrieves the claims of the request's access token
func CurrentClaims(c *gin.Context) (*auth.Claims, bool) {
	v, exists := c.Get(constants.ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok && claims != nil
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint64)
	return id, ok
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
