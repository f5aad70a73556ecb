package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/college-eventhub/api-go/controllers"
	"github.com/college-eventhub/api-go/middleware"
	"github.com/college-eventhub/api-go/models"
)

func SetupEventRoutes(protected *gin.RouterGroup, eventController *controllers.EventController) {
	adminOnly := middleware.RequireRoles(models.RoleCollegeAdmin, models.RoleSuperAdmin)

	events := protected.Group("/events")
	{
		events.GET("/recommended", middleware.RequireRoles(models.RoleStudent), eventController.Recommended)

		events.POST("", adminOnly, eventController.Create)
		events.PUT("/:id", adminOnly, eventController.Update)
		events.DELETE("/:id", adminOnly, eventController.Delete)
		events.POST("/bulk-import", adminOnly, eventController.BulkImport)
		events.GET("/csv-template", adminOnly, eventController.CSVTemplate)
	}
}
