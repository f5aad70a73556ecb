package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/college-eventhub/api-go/controllers"
	"github.com/college-eventhub/api-go/middleware"
	"github.com/college-eventhub/api-go/models"
)

func SetupRegistrationRoutes(protected *gin.RouterGroup, registrationController *controllers.RegistrationController) {
	adminOnly := middleware.RequireRoles(models.RoleCollegeAdmin, models.RoleSuperAdmin)

	registrations := protected.Group("/registrations")
	{
		registrations.POST("", middleware.RequireRoles(models.RoleStudent), registrationController.Create)
		registrations.GET("/user/:userId", registrationController.ListByUser)

		registrations.GET("/event/:eventId", adminOnly, registrationController.ListByEvent)
		registrations.PUT("/:id", adminOnly, registrationController.UpdateStatus)
	}
}
