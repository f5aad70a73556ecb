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

type CommentController struct {
	DB *gorm.DB
}

func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{DB: db}
}

func (cc *CommentController) Create(c *gin.Context) {
	var input struct {
		EventID uint   `json:"event_id" binding:"required"`
		Comment string `json:"comment" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	var event models.Event
	if err := cc.DB.First(&event, input.EventID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	claims := utils.GetUser(c)
	comment := models.EventComment{
		EventID: input.EventID,
		UserID:  claims.UserID,
		Comment: input.Comment,
	}
	if err := cc.DB.Create(&comment).Error; err != nil {
		log.WithError(err).Error("Comment insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Comment added", "commentId": comment.ID})
}

type commentRow struct {
	ID        uint      `json:"id"`
	Comment   string    `json:"comment"`
	UserName  string    `json:"user_name"`
	CreatedAt time.Time `json:"created_at"`
}

func (cc *CommentController) ListByEvent(c *gin.Context) {
	var comments []commentRow
	err := cc.DB.Table("event_comments").
		Select("event_comments.id, event_comments.comment, users.name AS user_name, event_comments.created_at").
		Joins("JOIN users ON event_comments.user_id = users.id").
		Where("event_comments.event_id = ?", c.Param("eventId")).
		Order("event_comments.created_at DESC").
		Scan(&comments).Error
	if err != nil {
		log.WithError(err).Error("Comment listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	c.JSON(http.StatusOK, comments)
}
