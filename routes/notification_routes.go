package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/college-eventhub/api-go/controllers"
	"github.com/college-eventhub/api-go/middleware"
	"github.com/college-eventhub/api-go/models"
)

func SetupNotificationRoutes(protected *gin.RouterGroup, notificationController *controllers.NotificationController) {
	notifications := protected.Group("/notifications")
	{
		notifications.POST("/broadcast",
			middleware.RequireRoles(models.RoleCollegeAdmin, models.RoleSuperAdmin),
			notificationController.Broadcast)

		// Ownership (self or super_admin) is enforced in the controller.
		notifications.GET("/:id", notificationController.ListForUser)
		notifications.GET("/:id/unread-count", notificationController.UnreadCount)
		notifications.PUT("/:id/read", notificationController.MarkRead)
		notifications.PUT("/:id/read-all", notificationController.MarkAllRead)
		notifications.DELETE("/:id", notificationController.Delete)
	}
}
