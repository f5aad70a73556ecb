package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/college-eventhub/api-go/models"
	"github.com/college-eventhub/api-go/types"
	"github.com/college-eventhub/api-go/utils"
)

type RegistrationController struct {
	DB *gorm.DB
}

func NewRegistrationController(db *gorm.DB) *RegistrationController {
	return &RegistrationController{DB: db}
}

// Create registers the calling student for an event. The registration insert
// is authoritative; the counter increment, point award, and activity row are
// best-effort side effects that never fail the request.
func (rc *RegistrationController) Create(c *gin.Context) {
	var input struct {
		EventID uint `json:"event_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims := utils.GetUser(c)

	var event models.Event
	if err := rc.DB.First(&event, input.EventID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	var existing models.Registration
	if err := rc.DB.Where("event_id = ? AND user_id = ?", input.EventID, claims.UserID).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You have already registered for this event."})
		return
	}

	registration := models.Registration{
		EventID: input.EventID,
		UserID:  claims.UserID,
		Status:  models.RegistrationPending,
	}
	if err := rc.DB.Create(&registration).Error; err != nil {
		// Two concurrent attempts can both pass the read check; the unique
		// index turns the loser into a duplicate error.
		if isUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You have already registered for this event."})
			return
		}
		log.WithError(err).Error("Registration insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process registration"})
		return
	}

	if err := rc.DB.Model(&models.Event{}).
		Where("id = ?", input.EventID).
		UpdateColumn("registration_count", gorm.Expr("registration_count + 1")).Error; err != nil {
		log.WithError(err).WithField("event_id", input.EventID).Warn("Registration counter update failed")
	}

	awardPoints(rc.DB, claims.UserID, types.REGISTRATION_POINTS, "Event registration")

	activity := models.UserActivity{
		UserID:       claims.UserID,
		EventID:      input.EventID,
		ActivityType: models.ActivityRegister,
	}
	if err := rc.DB.Create(&activity).Error; err != nil {
		log.WithError(err).Warn("Activity tracking failed")
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":        fmt.Sprintf("Registration submitted successfully! You earned %d points.", types.REGISTRATION_POINTS),
		"registrationId": registration.ID,
	})
}

type eventRegistrationRow struct {
	ID          uint      `json:"id"`
	StudentName string    `json:"student_name"`
	Email       string    `json:"email"`
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
}

// ListByEvent returns the registration roster for an event.
func (rc *RegistrationController) ListByEvent(c *gin.Context) {
	var rows []eventRegistrationRow
	err := rc.DB.Table("registrations").
		Select("registrations.id, users.name AS student_name, users.email, registrations.status, registrations.created_at AS timestamp").
		Joins("JOIN users ON registrations.user_id = users.id").
		Where("registrations.event_id = ?", c.Param("eventId")).
		Scan(&rows).Error
	if err != nil {
		log.WithError(err).Error("Registration roster query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch registrations"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// UpdateStatus overwrites a registration's status. Terminal states are not
// enforced: an admin can always override a prior decision.
func (rc *RegistrationController) UpdateStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidRegistrationStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status specified"})
		return
	}

	result := rc.DB.Model(&models.Registration{}).
		Where("id = ?", c.Param("id")).
		Update("status", input.Status)
	if result.Error != nil {
		log.WithError(result.Error).Error("Registration status update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update registration"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Registration not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Registration %s", input.Status)})
}

type userRegistrationRow struct {
	ID        uint      `json:"id"`
	EventID   uint      `json:"event_id"`
	Title     string    `json:"title"`
	Location  string    `json:"location"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ListByUser returns a student's own registrations.
func (rc *RegistrationController) ListByUser(c *gin.Context) {
	claims := utils.GetUser(c)
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
	if err != nil || uint(userID) != claims.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: You can only view your own registrations"})
		return
	}

	var rows []userRegistrationRow
	queryErr := rc.DB.Table("registrations").
		Select("registrations.id, events.id AS event_id, events.title, events.location, registrations.status, registrations.created_at AS timestamp").
		Joins("JOIN events ON registrations.event_id = events.id").
		Where("registrations.user_id = ?", claims.UserID).
		Scan(&rows).Error
	if queryErr != nil {
		log.WithError(queryErr).Error("User registrations query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch registrations"})
		return
	}

	c.JSON(http.StatusOK, rows)
}
