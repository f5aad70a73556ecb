package controllers

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/college-eventhub/api-go/models"
)

// systemUserID is the synthetic author of system-generated notifications
// such as badge awards.
const systemUserID = 1

// awardPoints credits points to a user. Failures are logged and swallowed so
// a points award can never fail the action that triggered it.
func awardPoints(db *gorm.DB, userID uint, points int, reason string) {
	err := db.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("points", gorm.Expr("points + ?", points)).Error
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"user_id": userID,
			"points":  points,
			"reason":  reason,
		}).Warn("Points award failed")
	}
}

// awardBadge grants a badge at most once per (user, name). The first award
// notifies the user; repeat calls are no-ops. Like awardPoints, failures
// never propagate to the caller.
func awardBadge(db *gorm.DB, userID uint, name, description string) {
	var existing models.Badge
	err := db.Where("user_id = ? AND name = ?", userID, name).First(&existing).Error
	if err == nil {
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.WithError(err).WithField("user_id", userID).Warn("Badge lookup failed")
		return
	}

	badge := models.Badge{
		UserID:      userID,
		Name:        name,
		Description: description,
		EarnedAt:    time.Now(),
	}
	if err := db.Create(&badge).Error; err != nil {
		// A concurrent award hits the unique index here; either way the
		// badge exists at most once.
		if !isUniqueViolation(err) {
			log.WithError(err).WithField("user_id", userID).Warn("Badge award failed")
		}
		return
	}

	createNotification(db, userID, nil,
		"New Badge Earned!",
		fmt.Sprintf("You've earned the %q badge!", name),
		"badge_earned",
		systemUserID,
	)
}

// createNotification records a single-recipient notification: one broadcast
// row plus one delivery row. Best-effort; failures are logged only.
func createNotification(db *gorm.DB, userID uint, eventID *uint, title, message, notificationType string, createdBy uint) {
	var eventName *string
	if eventID != nil {
		var event models.Event
		if err := db.First(&event, *eventID).Error; err == nil {
			eventName = &event.Title
		}
	}

	var user models.User
	userName := "Unknown"
	if err := db.First(&user, userID).Error; err == nil {
		userName = user.Name
	}

	notification := models.Notification{
		EventID:   eventID,
		EventName: eventName,
		Title:     title,
		Message:   message,
		Type:      notificationType,
		CreatedBy: createdBy,
	}
	if err := db.Create(&notification).Error; err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Notification creation failed")
		return
	}

	received := models.ReceivedNotification{
		NotificationID: notification.ID,
		UserID:         userID,
		UserName:       userName,
		EventID:        eventID,
		EventName:      eventName,
		Title:          title,
		Message:        message,
		Type:           notificationType,
		CreatedBy:      createdBy,
	}
	if err := db.Create(&received).Error; err != nil {
		log.WithError(err).WithField("user_id", userID).Warn("Received notification creation failed")
	}
}
