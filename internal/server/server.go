package server

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/feedback-management-api/internal/auth"
	"github.com/yukikurage/feedback-management-api/internal/config"
	"github.com/yukikurage/feedback-management-api/internal/constants"
	"github.com/yukikurage/feedback-management-api/internal/events"
	"github.com/yukikurage/feedback-management-api/internal/handlers"
	"github.com/yukikurage/feedback-management-api/internal/middleware"
	"github.com/yukikurage/feedback-management-api/internal/repository"
	"github.com/yukikurage/feedback-management-api/internal/services"
	"github.com/yukikurage/feedback-management-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Dependencies are the infrastructure clients the router is built on.
// Denylist and AI may be nil.
type Dependencies struct {
	DB           *gorm.DB
	Files        storage.FileStore
	Publisher    events.Publisher
	Credentials  *auth.Credentials
	Denylist     auth.Denylist
	AI           *services.AIService
	SessionStore sessions.Store
	Logger       *zap.Logger
}

// NewSessionStore returns a Redis backed store when Redis is configured and
// a signed cookie store otherwise.
func NewSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	if addr := cfg.RedisAddr(); addr != "" {
		rs, err := redisStore.NewStore(
			10,    // Redis pool size
			"tcp", // network type
			addr,
			cfg.RedisPassword,
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, err
		}
		store = rs
	} else {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

// NewRouter wires services and handlers into a gin engine.
func NewRouter(deps Dependencies) *gin.Engine {
	logger := deps.Logger
	store := repository.NewStore(deps.DB)
	notifier := services.NewNotifier(deps.Publisher, logger)

	authService := services.NewAuthService(store, deps.Credentials, deps.Denylist, logger)

	authHandler := handlers.NewAuthHandler(authService, logger)
	feedbackHandler := handlers.NewFeedbackHandler(services.NewFeedbackService(store, notifier, deps.AI), logger)
	peerHandler := handlers.NewPeerFeedbackHandler(services.NewPeerFeedbackService(store), logger)
	commentHandler := handlers.NewCommentHandler(services.NewCommentService(store, notifier), logger)
	announcementHandler := handlers.NewAnnouncementHandler(services.NewAnnouncementService(store, notifier), logger)
	documentHandler := handlers.NewDocumentHandler(services.NewDocumentService(store, notifier, deps.Files, logger), logger)
	assignmentHandler := handlers.NewAssignmentHandler(services.NewAssignmentService(store, notifier, deps.Files, logger), logger)
	submissionHandler := handlers.NewSubmissionHandler(services.NewSubmissionService(store, notifier, deps.Files, logger), logger)
	assignmentCommentHandler := handlers.NewAssignmentCommentHandler(services.NewAssignmentCommentService(store, notifier), logger)
	notificationHandler := handlers.NewNotificationHandler(services.NewNotificationService(store), logger)
	dashboardHandler := handlers.NewDashboardHandler(services.NewDashboardService(store), logger)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	r := gin.New()
	r.Use(middleware.Recovery(logger), middleware.RequestLogger(logger))
	r.Use(sessions.Sessions(constants.SessionCookieName, deps.SessionStore))
	r.MaxMultipartMemory = constants.MaxUploadSize

	requireAuth := middleware.RequireAuth(authService)
	manager := middleware.RequireManager()
	employee := middleware.RequireEmployee()
	uploadLimit := middleware.LimitBody(constants.MaxUploadRequestSize)

	r.GET("/health", healthHandler.Health)

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/logout", requireAuth, authHandler.Logout)
	}

	// Everything below requires a valid token.
	api := r.Group("")
	api.Use(requireAuth)

	users := api.Group("/users")
	{
		users.GET("/me", authHandler.GetCurrentUser)
		users.GET("/team", manager, authHandler.GetTeam)
	}

	feedback := api.Group("/feedback")
	{
		feedback.POST("", manager, feedbackHandler.CreateFeedback)
		feedback.POST("/request", employee, feedbackHandler.RequestFeedback)
		feedback.GET("/employee/:id", feedbackHandler.ListEmployeeFeedback)
		feedback.GET("/employee/:id/export", manager, feedbackHandler.ExportEmployeeFeedback)
		feedback.POST("/employee/:id/summary", manager, feedbackHandler.SummarizeEmployeeFeedback)
		feedback.GET("/:id", feedbackHandler.GetFeedback)
		feedback.PATCH("/:id", manager, feedbackHandler.UpdateFeedback)
		feedback.POST("/:id/acknowledge", employee, feedbackHandler.AcknowledgeFeedback)
		feedback.GET("/:id/export", feedbackHandler.ExportFeedback)
	}

	dashboard := api.Group("/dashboard")
	{
		dashboard.GET("/manager", manager, dashboardHandler.ManagerDashboard)
		dashboard.GET("/employee", employee, dashboardHandler.EmployeeDashboard)
	}

	peer := api.Group("/peer-feedback")
	peer.Use(employee)
	{
		peer.POST("", peerHandler.CreatePeerFeedback)
		peer.GET("/received", peerHandler.ListReceived)
		peer.GET("/sent", peerHandler.ListSent)
		peer.GET("/team-members", peerHandler.ListTeamMembers)
		peer.POST("/:id/acknowledge", peerHandler.AcknowledgePeerFeedback)
		peer.PATCH("/:id", peerHandler.UpdatePeerFeedback)
	}

	comments := api.Group("/comments")
	{
		comments.POST("", employee, commentHandler.CreateComment)
		comments.GET("/feedback/:id", commentHandler.ListFeedbackComments)
		comments.PUT("/:id", employee, commentHandler.UpdateComment)
		comments.DELETE("/:id", employee, commentHandler.DeleteComment)
	}

	announcements := api.Group("/announcements")
	{
		announcements.POST("", manager, announcementHandler.CreateAnnouncement)
		announcements.GET("/team", manager, announcementHandler.ListTeamAnnouncements)
		announcements.GET("/my", employee, announcementHandler.ListMyAnnouncements)
		announcements.GET("/:id", announcementHandler.GetAnnouncement)
		announcements.PATCH("/:id", manager, announcementHandler.UpdateAnnouncement)
		announcements.DELETE("/:id", manager, announcementHandler.DeleteAnnouncement)
	}

	documents := api.Group("/documents")
	{
		documents.POST("/upload", employee, uploadLimit, documentHandler.UploadDocument)
		documents.GET("/my", employee, documentHandler.ListMyDocuments)
		documents.GET("/team", manager, documentHandler.ListTeamDocuments)
		documents.GET("/:id", documentHandler.GetDocument)
		documents.GET("/:id/download", documentHandler.DownloadDocument)
		documents.PATCH("/:id", employee, documentHandler.UpdateDocument)
		documents.DELETE("/:id", employee, documentHandler.DeleteDocument)
	}

	assignments := api.Group("/assignments")
	{
		assignments.POST("/upload", manager, uploadLimit, assignmentHandler.UploadAssignment)
		assignments.GET("/team", manager, assignmentHandler.ListTeamAssignments)
		assignments.GET("/my", employee, assignmentHandler.ListMyAssignments)
		assignments.GET("/:id", assignmentHandler.GetAssignment)
		assignments.GET("/:id/download", assignmentHandler.DownloadAssignment)
		assignments.PATCH("/:id", manager, assignmentHandler.UpdateAssignment)
		assignments.DELETE("/:id", manager, assignmentHandler.DeleteAssignment)
	}

	submissions := api.Group("/submissions")
	{
		submissions.POST("/upload", employee, uploadLimit, submissionHandler.UploadSubmission)
		submissions.GET("/assignment/:id", manager, submissionHandler.ListAssignmentSubmissions)
		submissions.GET("/my", employee, submissionHandler.ListMySubmissions)
		submissions.GET("/:id", submissionHandler.GetSubmission)
		submissions.GET("/:id/download", submissionHandler.DownloadSubmission)
		submissions.PATCH("/:id", employee, submissionHandler.UpdateSubmission)
		submissions.DELETE("/:id", employee, submissionHandler.DeleteSubmission)
	}

	assignmentComments := api.Group("/assignment-comments")
	{
		assignmentComments.POST("", assignmentCommentHandler.CreateAssignmentComment)
		assignmentComments.GET("/assignment/:id", assignmentCommentHandler.ListAssignmentComments)
		assignmentComments.PUT("/:id", assignmentCommentHandler.UpdateAssignmentComment)
		assignmentComments.DELETE("/:id", assignmentCommentHandler.DeleteAssignmentComment)
	}

	notifications := api.Group("/notifications")
	{
		notifications.GET("", notificationHandler.ListNotifications)
		notifications.POST("/read-all", notificationHandler.MarkAllNotificationsRead)
		notifications.POST("/:id/read", notificationHandler.MarkNotificationRead)
	}

	return r
}
