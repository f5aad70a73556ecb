package controllers

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/college-eventhub/api-go/models"
	"github.com/college-eventhub/api-go/utils"
)

type EventController struct {
	DB      *gorm.DB
	Uploads *UploadController
}

func NewEventController(db *gorm.DB, uploads *UploadController) *EventController {
	return &EventController{DB: db, Uploads: uploads}
}

var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseEventDate(value string) (time.Time, error) {
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

func parseTags(value string) pq.StringArray {
	if value == "" {
		return nil
	}
	var tags pq.StringArray
	for _, tag := range strings.Split(value, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Create accepts a multipart form so the event image can be uploaded in the
// same request.
func (ec *EventController) Create(c *gin.Context) {
	claims := utils.GetUser(c)

	title := c.PostForm("title")
	category := c.PostForm("category")
	location := c.PostForm("location")
	if title == "" || category == "" || location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, category and location are required"})
		return
	}

	startDate, err := parseEventDate(c.PostForm("start_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date"})
		return
	}
	endDate, err := parseEventDate(c.PostForm("end_date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date"})
		return
	}

	var imageURL *string
	if file, fileErr := c.FormFile("image"); fileErr == nil {
		url, saveErr := ec.Uploads.SaveImage(c, file, UploadKindEvent)
		if saveErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": saveErr.Error()})
			return
		}
		imageURL = &url
	}

	event := models.Event{
		CollegeID:   claims.UserID,
		Title:       title,
		Description: c.PostForm("description"),
		Category:    category,
		Tags:        parseTags(c.PostForm("tags")),
		Location:    location,
		StartDate:   startDate,
		EndDate:     endDate,
		ImageURL:    imageURL,
	}

	if err := ec.DB.Create(&event).Error; err != nil {
		log.WithError(err).Error("Event creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Event created successfully",
		"eventId":   event.ID,
		"image_url": imageURL,
	})
}

type eventWithStats struct {
	models.Event
	AvgRating     *float64 `json:"avg_rating"`
	FeedbackCount int      `json:"feedback_count"`
}

const eventStatsSelect = `events.*,
	(SELECT COUNT(*) FROM registrations WHERE registrations.event_id = events.id) AS registration_count,
	(SELECT AVG(rating) FROM feedbacks WHERE feedbacks.event_id = events.id) AS avg_rating,
	(SELECT COUNT(*) FROM feedbacks WHERE feedbacks.event_id = events.id) AS feedback_count`

// List returns all events with live registration and feedback aggregates.
func (ec *EventController) List(c *gin.Context) {
	var events []eventWithStats
	err := ec.DB.Model(&models.Event{}).
		Select(eventStatsSelect).
		Order("events.start_date DESC").
		Scan(&events).Error
	if err != nil {
		log.WithError(err).Error("Events query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, events)
}

func (ec *EventController) Get(c *gin.Context) {
	var event models.Event
	if err := ec.DB.First(&event, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	c.JSON(http.StatusOK, event)
}

func (ec *EventController) Update(c *gin.Context) {
	var input struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Category    string `json:"category" binding:"required"`
		Location    string `json:"location" binding:"required"`
		StartDate   string `json:"start_date" binding:"required"`
		EndDate     string `json:"end_date" binding:"required"`
		Tags        string `json:"tags"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	startDate, err := parseEventDate(input.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date"})
		return
	}
	endDate, err := parseEventDate(input.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date"})
		return
	}

	result := ec.DB.Model(&models.Event{}).
		Where("id = ?", c.Param("id")).
		Updates(map[string]interface{}{
			"title":       input.Title,
			"description": input.Description,
			"category":    input.Category,
			"location":    input.Location,
			"start_date":  startDate,
			"end_date":    endDate,
			"tags":        parseTags(input.Tags),
		})
	if result.Error != nil {
		log.WithError(result.Error).Error("Event update failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event updated successfully"})
}

func (ec *EventController) Delete(c *gin.Context) {
	result := ec.DB.Delete(&models.Event{}, c.Param("id"))
	if result.Error != nil {
		log.WithError(result.Error).Error("Event deletion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

// Recommended suggests upcoming events from the caller's most active
// categories, padded with popular events when the preference signal is thin.
func (ec *EventController) Recommended(c *gin.Context) {
	claims := utils.GetUser(c)

	var categories []string
	err := ec.DB.Table("user_activities").
		Joins("JOIN events ON user_activities.event_id = events.id").
		Where("user_activities.user_id = ?", claims.UserID).
		Group("events.category").
		Order("COUNT(*) DESC").
		Limit(3).
		Pluck("events.category", &categories).Error
	if err != nil {
		log.WithError(err).Error("Activity preference query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recommendations"})
		return
	}

	var recommended []eventWithStats
	if len(categories) > 0 {
		err = ec.DB.Model(&models.Event{}).
			Select(eventStatsSelect).
			Where("events.category IN ?", categories).
			Where("events.id NOT IN (SELECT event_id FROM registrations WHERE user_id = ?)", claims.UserID).
			Where("events.start_date > ?", time.Now()).
			Order("events.created_at DESC").
			Limit(6).
			Scan(&recommended).Error
		if err != nil {
			log.WithError(err).Error("Recommendation query failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recommendations"})
			return
		}
	}

	if len(recommended) < 6 {
		var popular []eventWithStats
		err = ec.DB.Model(&models.Event{}).
			Select(eventStatsSelect).
			Where("events.id NOT IN (SELECT event_id FROM registrations WHERE user_id = ?)", claims.UserID).
			Where("events.start_date > ?", time.Now()).
			Order("registration_count DESC").
			Limit(6 - len(recommended)).
			Scan(&popular).Error
		if err != nil {
			log.WithError(err).Error("Popular events query failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recommendations"})
			return
		}

		seen := make(map[uint]bool, len(recommended))
		for _, event := range recommended {
			seen[event.ID] = true
		}
		for _, event := range popular {
			if !seen[event.ID] {
				recommended = append(recommended, event)
			}
		}
	}

	c.JSON(http.StatusOK, recommended)
}

// parseEventsCSV reads a bulk-import CSV and returns the parsed events plus
// one error string per rejected row. The expected header is
// title,description,category,location,start_date,end_date with an optional
// tags column (values separated by commas inside the quoted field).
func parseEventsCSV(r io.Reader) ([]models.Event, []string) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, []string{"CSV file is empty or malformed"}
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(strings.ToLower(name))] = i
	}

	field := func(record []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var events []models.Event
	var errs []string
	line := 1
	for {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		line++
		if readErr != nil {
			errs = append(errs, fmt.Sprintf("Malformed row %d: %v", line, readErr))
			continue
		}

		title := field(record, "title")
		category := field(record, "category")
		location := field(record, "location")
		startRaw := field(record, "start_date")
		endRaw := field(record, "end_date")
		if title == "" || category == "" || location == "" || startRaw == "" || endRaw == "" {
			errs = append(errs, fmt.Sprintf("Missing required fields in row %d", line))
			continue
		}

		startDate, startErr := parseEventDate(startRaw)
		endDate, endErr := parseEventDate(endRaw)
		if startErr != nil || endErr != nil {
			errs = append(errs, fmt.Sprintf("Invalid date in row %d", line))
			continue
		}

		events = append(events, models.Event{
			Title:       title,
			Description: field(record, "description"),
			Category:    category,
			Tags:        parseTags(field(record, "tags")),
			Location:    location,
			StartDate:   startDate,
			EndDate:     endDate,
		})
	}

	return events, errs
}

// BulkImport creates events from an uploaded CSV. Validation is
// all-or-nothing; inserts are per-row best-effort with an error list.
func (ec *EventController) BulkImport(c *gin.Context) {
	claims := utils.GetUser(c)

	file, err := c.FormFile("csv")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No CSV file uploaded"})
		return
	}
	if file.Size > MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file exceeds the 5MB size limit"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read CSV file"})
		return
	}
	defer src.Close()

	events, errs := parseEventsCSV(src)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"message":  "CSV validation errors",
			"errors":   errs,
			"imported": 0,
		})
		return
	}

	imported := 0
	for i := range events {
		events[i].CollegeID = claims.UserID
		if err := ec.DB.Create(&events[i]).Error; err != nil {
			errs = append(errs, fmt.Sprintf("Failed to import event %q: %v", events[i].Title, err))
			continue
		}
		imported++
	}

	response := gin.H{
		"message":  fmt.Sprintf("Successfully imported %d out of %d events", imported, len(events)),
		"imported": imported,
		"total":    len(events),
	}
	if len(errs) > 0 {
		response["errors"] = errs
	}
	c.JSON(http.StatusOK, response)
}

const csvTemplate = `title,description,category,location,start_date,end_date,tags
Sample Event,This is a sample event description,Workshop,Main Hall,2025-12-01 10:00:00,2025-12-01 17:00:00,"campus,free"
Tech Talk,Learn about latest technology trends,Hackathon,Auditorium,2025-12-05 09:00:00,2025-12-05 16:00:00,
`

func (ec *EventController) CSVTemplate(c *gin.Context) {
	c.Header("Content-Disposition", "attachment; filename=event_import_template.csv")
	c.Data(http.StatusOK, "text/csv", []byte(csvTemplate))
}
