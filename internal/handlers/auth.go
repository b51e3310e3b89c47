package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/feedback-management-api/internal/constants"
	"github.com/yukikurage/feedback-management-api/internal/dto"
	apierrors "github.com/yukikurage/feedback-management-api/internal/errors"
	"github.com/yukikurage/feedback-management-api/internal/middleware"
	"github.com/yukikurage/feedback-management-api/internal/models"
	"github.com/yukikurage/feedback-management-api/internal/services"
	"go.uber.org/zap"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register creates a new user.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Name      string      `json:"name" binding:"required"`
		Email     string      `json:"email" binding:"required"`
		Password  string      `json:"password" binding:"required"`
		Role      models.Role `json:"role" binding:"required"`
		ManagerID *uint64     `json:"manager_id"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}

	user, err := h.authService.Register(services.RegisterInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
		ManagerID: req.ManagerID,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// Login authenticates a user from form fields username/password (or a JSON
// body), returns a bearer token and keeps it in the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Username string `form:"username" json:"username"`
		Email    string `form:"email" json:"email"`
		Password string `form:"password" json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		apierrors.InvalidBody(c, err)
		return
	}
	email := req.Username
	if strings.TrimSpace(email) == "" {
		email = req.Email
	}

	token, _, err := h.authService.Login(services.LoginInput{
		Email:    email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	session := sessions.Default(c)
	session.Set(constants.SessionKeyToken, token)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.TokenDTO{
		AccessToken: token,
		TokenType:   constants.TokenType,
	})
}

// Logout revokes the current token and clears the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, _ := middleware.CurrentClaims(c)
	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		respondError(c, h.logger, err)
		return
	}

	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// GetTeam returns the direct reports of the authenticated manager.
func (h *AuthHandler) GetTeam(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	team, err := h.authService.Team(user)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTOs(team))
}
