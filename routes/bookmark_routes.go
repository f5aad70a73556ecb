package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/college-eventhub/api-go/controllers"
	"github.com/college-eventhub/api-go/middleware"
	"github.com/college-eventhub/api-go/models"
)

func SetupBookmarkRoutes(protected *gin.RouterGroup, bookmarkController *controllers.BookmarkController, leaderboardController *controllers.LeaderboardController) {
	studentOnly := middleware.RequireRoles(models.RoleStudent)

	bookmarks := protected.Group("/bookmarks")
	{
		bookmarks.POST("/toggle", studentOnly, bookmarkController.Toggle)
		bookmarks.GET("/my", studentOnly, bookmarkController.My)
		bookmarks.GET("/check/:eventId", studentOnly, bookmarkController.Check)
	}

	leaderboard := protected.Group("/leaderboard")
	{
		leaderboard.GET("", leaderboardController.Top)
		leaderboard.GET("/rank", leaderboardController.GetRank)
	}
}
