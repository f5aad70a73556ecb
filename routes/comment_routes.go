package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/college-eventhub/api-go/controllers"
	"github.com/college-eventhub/api-go/middleware"
	"github.com/college-eventhub/api-go/models"
)

func SetupCommentRoutes(protected *gin.RouterGroup, commentController *controllers.CommentController) {
	comments := protected.Group("/event-comments")
	{
		comments.POST("", middleware.RequireRoles(models.RoleStudent), commentController.Create)
		comments.GET("/:eventId", commentController.ListByEvent)
	}
}
