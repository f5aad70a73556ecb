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
	"github.com/college-eventhub/api-go/utils"
)

const (
	TargetAll      = "all"
	TargetSpecific = "specific"
	TargetEvent    = "event"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

type recipient struct {
	ID   uint
	Name string
}

// resolveRecipients turns a target specification into the set of student
// recipients. Only existing students are ever included, so unknown ids in a
// specific list are silently dropped.
func (nc *NotificationController) resolveRecipients(targetType string, targetIDs []uint, eventID *uint) ([]recipient, int, string) {
	var recipients []recipient

	switch targetType {
	case TargetAll:
		err := nc.DB.Model(&models.User{}).
			Select("id, name").
			Where("role = ?", models.RoleStudent).
			Scan(&recipients).Error
		if err != nil {
			log.WithError(err).Error("Recipient query failed")
			return nil, http.StatusInternalServerError, "Failed to resolve recipients"
		}

	case TargetSpecific:
		if len(targetIDs) == 0 {
			return nil, http.StatusBadRequest, "targetIds array is required for specific targeting"
		}
		err := nc.DB.Model(&models.User{}).
			Select("id, name").
			Where("id IN ? AND role = ?", targetIDs, models.RoleStudent).
			Scan(&recipients).Error
		if err != nil {
			log.WithError(err).Error("Recipient query failed")
			return nil, http.StatusInternalServerError, "Failed to resolve recipients"
		}
		if len(recipients) == 0 {
			return nil, http.StatusNotFound, "No valid students found in the provided IDs"
		}

	case TargetEvent:
		if eventID == nil {
			return nil, http.StatusBadRequest, "eventId is required for event targeting"
		}
		err := nc.DB.Table("users").
			Select("DISTINCT users.id, users.name").
			Joins("JOIN registrations ON users.id = registrations.user_id").
			Where("registrations.event_id = ? AND users.role = ?", *eventID, models.RoleStudent).
			Scan(&recipients).Error
		if err != nil {
			log.WithError(err).Error("Recipient query failed")
			return nil, http.StatusInternalServerError, "Failed to resolve recipients"
		}

	default:
		return nil, http.StatusBadRequest, "Valid targetType is required (all, specific, or event)"
	}

	if len(recipients) == 0 {
		return nil, http.StatusNotFound, "No students found for the specified target"
	}
	return recipients, 0, ""
}

// Broadcast fans one notification out to every resolved recipient. Each
// delivery row is inserted independently: a failure for one recipient is
// collected and reported, never aborting the rest.
func (nc *NotificationController) Broadcast(c *gin.Context) {
	var input struct {
		Title      string `json:"title" binding:"required"`
		Message    string `json:"message" binding:"required"`
		Type       string `json:"type"`
		TargetType string `json:"targetType" binding:"required"`
		TargetIDs  []uint `json:"targetIds"`
		EventID    *uint  `json:"eventId"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Type == "" {
		input.Type = "general"
	}

	claims := utils.GetUser(c)

	// Snapshot the event name so the notification keeps rendering after the
	// event is edited or deleted.
	var eventName *string
	if input.EventID != nil {
		var event models.Event
		if err := nc.DB.First(&event, *input.EventID).Error; err == nil {
			eventName = &event.Title
		}
	}

	recipients, status, message := nc.resolveRecipients(input.TargetType, input.TargetIDs, input.EventID)
	if status != 0 {
		c.JSON(status, gin.H{"error": message})
		return
	}

	notification := models.Notification{
		EventID:   input.EventID,
		EventName: eventName,
		Title:     input.Title,
		Message:   input.Message,
		Type:      input.Type,
		CreatedBy: claims.UserID,
	}
	if err := nc.DB.Create(&notification).Error; err != nil {
		log.WithError(err).Error("Notification insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to broadcast notifications"})
		return
	}

	successCount := 0
	var errs []string
	recipientIDs := make([]uint, 0, len(recipients))
	for _, student := range recipients {
		recipientIDs = append(recipientIDs, student.ID)
		received := models.ReceivedNotification{
			NotificationID: notification.ID,
			UserID:         student.ID,
			UserName:       student.Name,
			EventID:        input.EventID,
			EventName:      eventName,
			Title:          input.Title,
			Message:        input.Message,
			Type:           input.Type,
			CreatedBy:      claims.UserID,
		}
		if err := nc.DB.Create(&received).Error; err != nil {
			log.WithError(err).WithField("user_id", student.ID).Error("Received notification insert failed")
			errs = append(errs, fmt.Sprintf("Failed for user %d (%s): %v", student.ID, student.Name, err))
			continue
		}
		successCount++
	}

	actionLog := fmt.Sprintf("Sent notification %q to %d students (type: %s)", input.Title, successCount, input.TargetType)
	if eventName != nil {
		actionLog = fmt.Sprintf("Sent notification %q about event %q to %d students (type: %s)",
			input.Title, *eventName, successCount, input.TargetType)
	}
	if err := nc.DB.Create(&models.AdminLog{Action: actionLog, UserID: claims.UserID}).Error; err != nil {
		log.WithError(err).Warn("Admin log insert failed")
	}

	response := gin.H{
		"message":          fmt.Sprintf("Notification sent to %d students successfully", successCount),
		"success":          successCount,
		"failed":           len(errs),
		"total":            len(recipients),
		"targetType":       input.TargetType,
		"notificationId":   notification.ID,
		"eventId":          input.EventID,
		"eventName":        eventName,
		"targetStudentIds": recipientIDs,
	}
	if len(errs) > 0 {
		response["errors"] = errs
	}
	c.JSON(http.StatusOK, response)
}

// requireSelfOrSuperAdmin allows a user through for their own resources and
// super admins through for anyone's. Returns the resolved user id.
func requireSelfOrSuperAdmin(c *gin.Context, param string) (uint, bool) {
	claims := utils.GetUser(c)
	userID, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return 0, false
	}
	if uint(userID) != claims.UserID && claims.Role != models.RoleSuperAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return 0, false
	}
	return uint(userID), true
}

func (nc *NotificationController) ListForUser(c *gin.Context) {
	userID, ok := requireSelfOrSuperAdmin(c, "id")
	if !ok {
		return
	}

	var notifications []models.ReceivedNotification
	err := nc.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&notifications).Error
	if err != nil {
		log.WithError(err).Error("Notifications query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

func (nc *NotificationController) UnreadCount(c *gin.Context) {
	userID, ok := requireSelfOrSuperAdmin(c, "id")
	if !ok {
		return
	}

	var count int64
	err := nc.DB.Model(&models.ReceivedNotification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		log.WithError(err).Error("Unread count query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch unread count"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// findOwnedNotification loads a delivery row and enforces that it belongs to
// the caller (or that the caller is a super admin).
func (nc *NotificationController) findOwnedNotification(c *gin.Context) (*models.ReceivedNotification, bool) {
	claims := utils.GetUser(c)

	var notification models.ReceivedNotification
	if err := nc.DB.First(&notification, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return nil, false
	}
	if notification.UserID != claims.UserID && claims.Role != models.RoleSuperAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return nil, false
	}
	return &notification, true
}

func (nc *NotificationController) MarkRead(c *gin.Context) {
	notification, ok := nc.findOwnedNotification(c)
	if !ok {
		return
	}

	now := time.Now()
	err := nc.DB.Model(notification).Updates(map[string]interface{}{
		"is_read": true,
		"read_at": now,
	}).Error
	if err != nil {
		log.WithError(err).Error("Mark read failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notification as read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	userID, ok := requireSelfOrSuperAdmin(c, "id")
	if !ok {
		return
	}

	now := time.Now()
	result := nc.DB.Model(&models.ReceivedNotification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": now})
	if result.Error != nil {
		log.WithError(result.Error).Error("Mark all read failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark all as read"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "All notifications marked as read",
		"updated": result.RowsAffected,
	})
}

func (nc *NotificationController) Delete(c *gin.Context) {
	notification, ok := nc.findOwnedNotification(c)
	if !ok {
		return
	}

	if err := nc.DB.Delete(notification).Error; err != nil {
		log.WithError(err).Error("Notification deletion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

type sentNotificationRow struct {
	models.Notification
	CreatedByName   string `json:"created_by_name"`
	RecipientsCount int    `json:"recipients_count"`
	ReadCount       int    `json:"read_count"`
}

// Sent lists the caller's broadcasts with delivery and read counts.
func (nc *NotificationController) Sent(c *gin.Context) {
	claims := utils.GetUser(c)

	var rows []sentNotificationRow
	err := nc.DB.Table("notifications").
		Select(`notifications.*, users.name AS created_by_name,
			COUNT(received_notifications.id) AS recipients_count,
			COALESCE(SUM(CASE WHEN received_notifications.is_read THEN 1 ELSE 0 END), 0) AS read_count`).
		Joins("LEFT JOIN users ON notifications.created_by = users.id").
		Joins("LEFT JOIN received_notifications ON notifications.id = received_notifications.notification_id").
		Where("notifications.created_by = ?", claims.UserID).
		Group("notifications.id, users.name").
		Order("notifications.created_at DESC").
		Limit(50).
		Scan(&rows).Error
	if err != nil {
		log.WithError(err).Error("Sent notifications query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sent notifications"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// Details returns a broadcast with its full recipient list and read stats.
func (nc *NotificationController) Details(c *gin.Context) {
	var notification struct {
		models.Notification
		CreatedByName string `json:"created_by_name"`
	}
	err := nc.DB.Table("notifications").
		Select("notifications.*, users.name AS created_by_name").
		Joins("LEFT JOIN users ON notifications.created_by = users.id").
		Where("notifications.id = ?", c.Param("id")).
		Scan(&notification).Error
	if err != nil {
		log.WithError(err).Error("Notification details query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notification details"})
		return
	}
	if notification.ID == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	var recipients []models.ReceivedNotification
	err = nc.DB.Where("notification_id = ?", notification.ID).
		Order("created_at DESC").
		Find(&recipients).Error
	if err != nil {
		log.WithError(err).Error("Recipients query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notification details"})
		return
	}

	readCount := 0
	for _, r := range recipients {
		if r.IsRead {
			readCount++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"notification": notification,
		"recipients":   recipients,
		"stats": gin.H{
			"total":  len(recipients),
			"read":   readCount,
			"unread": len(recipients) - readCount,
		},
	})
}
