package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/college-eventhub/api-go/models"
	"github.com/college-eventhub/api-go/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

type adminUserRow struct {
	ID                 uint        `json:"id"`
	Name               string      `json:"name"`
	Email              string      `json:"email"`
	College            string      `json:"college"`
	Role               models.Role `json:"role"`
	Points             int         `json:"points"`
	EventsCreated      int         `json:"events_created"`
	RegistrationsCount int         `json:"registrations_count"`
}

// GetUsers lists every account with per-user activity counts.
func (ac *AdminController) GetUsers(c *gin.Context) {
	var users []adminUserRow
	err := ac.DB.Table("users").
		Select(`users.id, users.name, users.email, users.college, users.role, users.points,
			(SELECT COUNT(*) FROM events WHERE events.college_id = users.id) AS events_created,
			(SELECT COUNT(*) FROM registrations WHERE registrations.user_id = users.id) AS registrations_count`).
		Order("users.id ASC").
		Scan(&users).Error
	if err != nil {
		log.WithError(err).Error("User listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, users)
}

func (ac *AdminController) UpdateUserRole(c *gin.Context) {
	var input struct {
		Role models.Role `json:"role" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || !input.Role.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role specified"})
		return
	}

	result := ac.DB.Model(&models.User{}).Where("id = ?", c.Param("id")).Update("role", input.Role)
	if result.Error != nil {
		log.WithError(result.Error).Error("Role update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	claims := utils.GetUser(c)
	logEntry := models.AdminLog{
		UserID: claims.UserID,
		Action: fmt.Sprintf("Updated user %s role to %s", c.Param("id"), input.Role),
	}
	if err := ac.DB.Create(&logEntry).Error; err != nil {
		log.WithError(err).Warn("Admin log write failed")
	}

	c.JSON(http.StatusOK, gin.H{"message": "User role updated successfully"})
}

type collegeStat struct {
	College string `json:"college"`
	Count   int    `json:"count"`
}

type activityRow struct {
	Kind      string `json:"kind"`
	Detail    string `json:"detail"`
	CreatedAt string `json:"created_at"`
}

// GetStats aggregates the platform-wide dashboard numbers.
func (ac *AdminController) GetStats(c *gin.Context) {
	var totals struct {
		TotalUsers    int64 `json:"total_users"`
		Students      int64 `json:"students"`
		CollegeAdmins int64 `json:"college_admins"`
		SuperAdmins   int64 `json:"super_admins"`
	}
	err := ac.DB.Table("users").
		Select(`COUNT(*) AS total_users,
			COALESCE(SUM(CASE WHEN role = 'student' THEN 1 ELSE 0 END), 0) AS students,
			COALESCE(SUM(CASE WHEN role = 'college_admin' THEN 1 ELSE 0 END), 0) AS college_admins,
			COALESCE(SUM(CASE WHEN role = 'super_admin' THEN 1 ELSE 0 END), 0) AS super_admins`).
		Scan(&totals).Error
	if err != nil {
		log.WithError(err).Error("User stats query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
		return
	}

	var eventStats struct {
		TotalEvents        int64 `json:"total_events"`
		UpcomingEvents     int64 `json:"upcoming_events"`
		TotalRegistrations int64 `json:"total_registrations"`
	}
	err = ac.DB.Table("events").
		Select(`COUNT(*) AS total_events,
			COALESCE(SUM(CASE WHEN start_date > NOW() THEN 1 ELSE 0 END), 0) AS upcoming_events,
			(SELECT COUNT(*) FROM registrations) AS total_registrations`).
		Scan(&eventStats).Error
	if err != nil {
		log.WithError(err).Error("Event stats query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
		return
	}

	var topColleges []collegeStat
	err = ac.DB.Table("users").
		Select("college, COUNT(*) AS count").
		Where("role = ? AND college <> ''", models.RoleStudent).
		Group("college").
		Order("count DESC").
		Limit(5).
		Scan(&topColleges).Error
	if err != nil {
		log.WithError(err).Warn("Top colleges query failed")
	}

	var recent []activityRow
	err = ac.DB.Raw(`
		SELECT 'registration' AS kind, users.name || ' registered for ' || events.title AS detail, registrations.created_at
		FROM registrations
		JOIN users ON registrations.user_id = users.id
		JOIN events ON registrations.event_id = events.id
		UNION ALL
		SELECT 'event' AS kind, 'New event: ' || events.title AS detail, events.created_at
		FROM events
		ORDER BY created_at DESC
		LIMIT 10`).Scan(&recent).Error
	if err != nil {
		log.WithError(err).Warn("Recent activity query failed")
	}

	c.JSON(http.StatusOK, gin.H{
		"users":           totals,
		"events":          eventStats,
		"top_colleges":    topColleges,
		"recent_activity": recent,
	})
}

type studentRow struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	College  string `json:"college"`
	Points   int    `json:"points"`
	JoinedAt string `json:"joined_at"`
}

// GetStudents lists every student account for admin targeting pickers.
func (ac *AdminController) GetStudents(c *gin.Context) {
	var students []studentRow
	err := ac.DB.Table("users").
		Select("id, name, email, college, points, created_at AS joined_at").
		Where("role = ?", models.RoleStudent).
		Order("name ASC").
		Scan(&students).Error
	if err != nil {
		log.WithError(err).Error("Student listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch students"})
		return
	}

	c.JSON(http.StatusOK, students)
}

// GetAdminEvents lists the caller's own events with registration and
// feedback rollups.
func (ac *AdminController) GetAdminEvents(c *gin.Context) {
	claims := utils.GetUser(c)

	var events []eventWithStats
	err := ac.DB.Table("events").
		Select(eventStatsSelect).
		Where("events.college_id = ?", claims.UserID).
		Order("events.start_date DESC").
		Scan(&events).Error
	if err != nil {
		log.WithError(err).Error("Admin events query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, events)
}

type rosterRow struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	College    string `json:"college"`
	EventID    uint   `json:"event_id"`
	EventTitle string `json:"event_title"`
	Status     string `json:"status"`
}

// GetEventStudents returns the roster of students registered for one of
// the caller's events.
func (ac *AdminController) GetEventStudents(c *gin.Context) {
	claims := utils.GetUser(c)

	var rows []rosterRow
	err := ac.DB.Table("registrations").
		Select(`users.id, users.name, users.email, users.college,
			events.id AS event_id, events.title AS event_title, registrations.status`).
		Joins("JOIN users ON registrations.user_id = users.id").
		Joins("JOIN events ON registrations.event_id = events.id").
		Where("registrations.event_id = ?", c.Param("eventId")).
		Where("events.college_id = ?", claims.UserID).
		Order("events.start_date DESC, users.name ASC").
		Scan(&rows).Error
	if err != nil {
		log.WithError(err).Error("Event roster query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch students"})
		return
	}

	c.JSON(http.StatusOK, rows)
}
