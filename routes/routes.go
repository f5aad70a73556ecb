package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/college-eventhub/api-go/controllers"
	"github.com/college-eventhub/api-go/middleware"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize controllers
	uploadController := controllers.NewUploadController()
	authController := controllers.NewAuthController(db, uploadController)
	eventController := controllers.NewEventController(db, uploadController)
	registrationController := controllers.NewRegistrationController(db)
	notificationController := controllers.NewNotificationController(db)
	feedbackController := controllers.NewFeedbackController(db)
	bookmarkController := controllers.NewBookmarkController(db)
	leaderboardController := controllers.NewLeaderboardController(db)
	commentController := controllers.NewCommentController(db)
	adminController := controllers.NewAdminController(db)

	authLimiter := middleware.NewRateLimiter(100, 15*time.Minute)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/signup", authLimiter.RateLimit(), authController.Signup)
		public.POST("/login", authLimiter.RateLimit(), authController.Login)
		public.POST("/auth/google", authLimiter.RateLimit(), authController.GoogleLogin)

		public.GET("/events", eventController.List)
		public.GET("/events/:id", eventController.Get)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/profile/:userId", authController.GetProfile)
		protected.PUT("/profile", authController.UpdateProfile)

		SetupEventRoutes(protected, eventController)
		SetupRegistrationRoutes(protected, registrationController)
		SetupNotificationRoutes(protected, notificationController)
		SetupFeedbackRoutes(protected, feedbackController)
		SetupBookmarkRoutes(protected, bookmarkController, leaderboardController)
		SetupCommentRoutes(protected, commentController)
		SetupAdminRoutes(protected, adminController, notificationController)
	}
}
