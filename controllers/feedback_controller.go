package controllers

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/college-eventhub/api-go/models"
	"github.com/college-eventhub/api-go/types"
	"github.com/college-eventhub/api-go/utils"
)

type FeedbackController struct {
	DB *gorm.DB
}

func NewFeedbackController(db *gorm.DB) *FeedbackController {
	return &FeedbackController{DB: db}
}

// Create records feedback once per (user, event), awards points, and checks
// the feedback-count badge thresholds.
func (fc *FeedbackController) Create(c *gin.Context) {
	var input struct {
		EventID  uint   `json:"event_id"`
		Rating   int    `json:"rating"`
		Comments string `json:"comments"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	if input.EventID == 0 || input.Rating < 1 || input.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	claims := utils.GetUser(c)

	var event models.Event
	if err := fc.DB.First(&event, input.EventID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	var existing models.Feedback
	if err := fc.DB.Where("event_id = ? AND user_id = ?", input.EventID, claims.UserID).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You have already submitted feedback"})
		return
	}

	feedback := models.Feedback{
		EventID:  input.EventID,
		UserID:   claims.UserID,
		Rating:   input.Rating,
		Comments: input.Comments,
	}
	if err := fc.DB.Create(&feedback).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You have already submitted feedback"})
			return
		}
		log.WithError(err).Error("Feedback insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit feedback"})
		return
	}

	awardPoints(fc.DB, claims.UserID, types.FEEDBACK_POINTS, "Feedback submission")

	var feedbackCount int64
	if err := fc.DB.Model(&models.Feedback{}).Where("user_id = ?", claims.UserID).Count(&feedbackCount).Error; err != nil {
		log.WithError(err).Warn("Feedback count query failed")
	} else {
		for _, rule := range types.BadgesForFeedbackCount(int(feedbackCount)) {
			awardBadge(fc.DB, claims.UserID, rule.Name, rule.Description)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Feedback submitted successfully! You earned %d points.", types.FEEDBACK_POINTS),
	})
}

type feedbackRow struct {
	ID          uint      `json:"id"`
	StudentName string    `json:"student_name"`
	Rating      int       `json:"rating"`
	Comments    string    `json:"comments"`
	Timestamp   time.Time `json:"timestamp"`
}

type feedbackStats struct {
	TotalFeedback   int      `json:"total_feedback"`
	AverageRating   *float64 `json:"-"`
	PositiveRatings int      `json:"positive_ratings"`
}

func roundRating(rating *float64) float64 {
	if rating == nil {
		return 0
	}
	return math.Round(*rating*10) / 10
}

// ListByEvent returns an event's feedback with aggregate stats.
func (fc *FeedbackController) ListByEvent(c *gin.Context) {
	eventID := c.Param("eventId")

	var rows []feedbackRow
	err := fc.DB.Table("feedbacks").
		Select("feedbacks.id, users.name AS student_name, feedbacks.rating, feedbacks.comments, feedbacks.created_at AS timestamp").
		Joins("JOIN users ON feedbacks.user_id = users.id").
		Where("feedbacks.event_id = ?", eventID).
		Order("feedbacks.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		log.WithError(err).Error("Feedback query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve feedback"})
		return
	}

	var stats feedbackStats
	err = fc.DB.Table("feedbacks").
		Select(`COUNT(*) AS total_feedback,
			AVG(rating) AS average_rating,
			COUNT(CASE WHEN rating >= 4 THEN 1 END) AS positive_ratings`).
		Where("event_id = ?", eventID).
		Scan(&stats).Error
	if err != nil {
		log.WithError(err).Error("Feedback stats query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve feedback"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"feedback": rows,
		"stats": gin.H{
			"total_feedback":   stats.TotalFeedback,
			"average_rating":   roundRating(stats.AverageRating),
			"positive_ratings": stats.PositiveRatings,
		},
	})
}

// Analytics aggregates feedback across all events for admins.
func (fc *FeedbackController) Analytics(c *gin.Context) {
	var overall struct {
		EventsWithFeedback int      `json:"events_with_feedback"`
		AverageRating      *float64 `json:"-"`
		TotalFeedback      int      `json:"total_feedback"`
	}
	err := fc.DB.Table("feedbacks").
		Select(`COUNT(DISTINCT event_id) AS events_with_feedback,
			AVG(rating) AS average_rating,
			COUNT(*) AS total_feedback`).
		Scan(&overall).Error
	if err != nil {
		log.WithError(err).Error("Feedback analytics query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve feedback analytics"})
		return
	}

	var distribution []struct {
		Rating int `json:"rating"`
		Count  int `json:"count"`
	}
	err = fc.DB.Table("feedbacks").
		Select("rating, COUNT(*) AS count").
		Group("rating").
		Order("rating").
		Scan(&distribution).Error
	if err != nil {
		log.WithError(err).Error("Rating distribution query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve feedback analytics"})
		return
	}

	var topEvents []struct {
		Title         string   `json:"title"`
		Category      string   `json:"category"`
		FeedbackCount int      `json:"feedback_count"`
		AverageRating *float64 `json:"-"`
		AverageOut    float64  `json:"average_rating" gorm:"-"`
	}
	err = fc.DB.Table("events").
		Select("events.title, events.category, COUNT(feedbacks.id) AS feedback_count, AVG(feedbacks.rating) AS average_rating").
		Joins("JOIN feedbacks ON events.id = feedbacks.event_id").
		Group("events.id").
		Having("COUNT(feedbacks.id) >= ?", 3).
		Order("average_rating DESC").
		Limit(5).
		Scan(&topEvents).Error
	if err != nil {
		log.WithError(err).Error("Top events query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve feedback analytics"})
		return
	}
	for i := range topEvents {
		topEvents[i].AverageOut = roundRating(topEvents[i].AverageRating)
	}

	var recent []struct {
		EventTitle  string    `json:"event_title"`
		StudentName string    `json:"student_name"`
		Rating      int       `json:"rating"`
		Comments    string    `json:"comments"`
		Timestamp   time.Time `json:"timestamp"`
	}
	err = fc.DB.Table("feedbacks").
		Select(`events.title AS event_title, users.name AS student_name,
			feedbacks.rating, feedbacks.comments, feedbacks.created_at AS timestamp`).
		Joins("JOIN events ON feedbacks.event_id = events.id").
		Joins("JOIN users ON feedbacks.user_id = users.id").
		Order("feedbacks.created_at DESC").
		Limit(10).
		Scan(&recent).Error
	if err != nil {
		log.WithError(err).Error("Recent feedback query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve feedback analytics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"overall": gin.H{
			"events_with_feedback": overall.EventsWithFeedback,
			"average_rating":       roundRating(overall.AverageRating),
			"total_feedback":       overall.TotalFeedback,
		},
		"rating_distribution": distribution,
		"top_events":          topEvents,
		"recent_feedback":     recent,
	})
}
