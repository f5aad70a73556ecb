package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/college-eventhub/api-go/models"
	"github.com/college-eventhub/api-go/utils"
)

type BookmarkController struct {
	DB *gorm.DB
}

func NewBookmarkController(db *gorm.DB) *BookmarkController {
	return &BookmarkController{DB: db}
}

// Toggle flips the caller's bookmark on an event. Adding a bookmark also
// feeds the recommendation signal.
func (bc *BookmarkController) Toggle(c *gin.Context) {
	var input struct {
		EventID uint `json:"event_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims := utils.GetUser(c)

	var existing models.Bookmark
	err := bc.DB.Where("user_id = ? AND event_id = ?", claims.UserID, input.EventID).First(&existing).Error
	if err == nil {
		if err := bc.DB.Delete(&existing).Error; err != nil {
			log.WithError(err).Error("Bookmark removal failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle bookmark"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Bookmark removed", "bookmarked": false})
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.WithError(err).Error("Bookmark lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle bookmark"})
		return
	}

	bookmark := models.Bookmark{UserID: claims.UserID, EventID: input.EventID}
	if err := bc.DB.Create(&bookmark).Error; err != nil {
		if isUniqueViolation(err) {
			// Concurrent toggle already added it; report the resulting state.
			c.JSON(http.StatusOK, gin.H{"message": "Bookmark added", "bookmarked": true})
			return
		}
		log.WithError(err).Error("Bookmark insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle bookmark"})
		return
	}

	activity := models.UserActivity{
		UserID:       claims.UserID,
		EventID:      input.EventID,
		ActivityType: models.ActivityBookmark,
	}
	if err := bc.DB.Create(&activity).Error; err != nil {
		log.WithError(err).Warn("Activity tracking failed")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bookmark added", "bookmarked": true})
}

type bookmarkedEvent struct {
	models.Event
	BookmarkedAt time.Time `json:"bookmarked_at"`
}

func (bc *BookmarkController) My(c *gin.Context) {
	claims := utils.GetUser(c)

	var events []bookmarkedEvent
	err := bc.DB.Table("bookmarks").
		Select(`events.*, bookmarks.created_at AS bookmarked_at,
			(SELECT COUNT(*) FROM registrations WHERE registrations.event_id = events.id) AS registration_count`).
		Joins("JOIN events ON bookmarks.event_id = events.id").
		Where("bookmarks.user_id = ?", claims.UserID).
		Order("bookmarks.created_at DESC").
		Scan(&events).Error
	if err != nil {
		log.WithError(err).Error("Bookmarks query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookmarks"})
		return
	}

	c.JSON(http.StatusOK, events)
}

func (bc *BookmarkController) Check(c *gin.Context) {
	claims := utils.GetUser(c)

	var count int64
	err := bc.DB.Model(&models.Bookmark{}).
		Where("user_id = ? AND event_id = ?", claims.UserID, c.Param("eventId")).
		Count(&count).Error
	if err != nil {
		log.WithError(err).Error("Bookmark check failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check bookmark"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookmarked": count > 0})
}
