package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/college-eventhub/api-go/controllers"
	"github.com/college-eventhub/api-go/middleware"
	"github.com/college-eventhub/api-go/models"
)

func SetupAdminRoutes(protected *gin.RouterGroup, adminController *controllers.AdminController, notificationController *controllers.NotificationController) {
	adminOnly := middleware.RequireRoles(models.RoleCollegeAdmin, models.RoleSuperAdmin)
	superOnly := middleware.RequireRoles(models.RoleSuperAdmin)

	admin := protected.Group("/admin")
	{
		admin.GET("/students", adminOnly, adminController.GetStudents)
		admin.GET("/events-list", adminOnly, adminController.GetAdminEvents)
		admin.GET("/event/:eventId/students", adminOnly, adminController.GetEventStudents)

		admin.GET("/notifications/sent", adminOnly, notificationController.Sent)
		admin.GET("/notifications/:id/details", adminOnly, notificationController.Details)

		admin.GET("/users", superOnly, adminController.GetUsers)
		admin.PUT("/users/:id/role", superOnly, adminController.UpdateUserRole)
		admin.GET("/stats", superOnly, adminController.GetStats)
	}
}
