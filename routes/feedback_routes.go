package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/college-eventhub/api-go/controllers"
	"github.com/college-eventhub/api-go/middleware"
	"github.com/college-eventhub/api-go/models"
)

func SetupFeedbackRoutes(protected *gin.RouterGroup, feedbackController *controllers.FeedbackController) {
	feedback := protected.Group("/feedback")
	{
		feedback.POST("", middleware.RequireRoles(models.RoleStudent), feedbackController.Create)
		feedback.GET("/event/:eventId", feedbackController.ListByEvent)
		feedback.GET("/analytics",
			middleware.RequireRoles(models.RoleCollegeAdmin, models.RoleSuperAdmin),
			feedbackController.Analytics)
	}
}
