package controllers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/college-eventhub/api-go/models"
)

func feedbackTestRouter(fc *FeedbackController) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/feedback", authAs(7, models.RoleStudent), fc.Create)
	return r
}

func TestCreateFeedbackRejectsInvalidRating(t *testing.T) {
	assert := assert.New(t)

	db, mock := newMockDB(t)
	r := feedbackTestRouter(NewFeedbackController(db))

	for _, rating := range []int{0, -1, 6, 100} {
		w := performJSON(r, http.MethodPost, "/feedback", gin.H{"event_id": 1, "rating": rating})
		assert.Equal(http.StatusBadRequest, w.Code, "rating %d should be rejected", rating)
		assert.Contains(w.Body.String(), "Invalid input")
	}

	// Missing event id is rejected the same way.
	w := performJSON(r, http.MethodPost, "/feedback", gin.H{"rating": 4})
	assert.Equal(http.StatusBadRequest, w.Code)

	assert.NoError(mock.ExpectationsWereMet())
}

func TestCreateFeedbackUnknownEvent(t *testing.T) {
	assert := assert.New(t)

	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT (.+) FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	r := feedbackTestRouter(NewFeedbackController(db))
	w := performJSON(r, http.MethodPost, "/feedback", gin.H{"event_id": 42, "rating": 5})

	assert.Equal(http.StatusNotFound, w.Code)
	assert.Contains(w.Body.String(), "Event not found")
	assert.NoError(mock.ExpectationsWereMet())
}

func TestCreateFeedbackDuplicate(t *testing.T) {
	assert := assert.New(t)

	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT (.+) FROM "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).AddRow(42, "Hack Night"))
	mock.ExpectQuery(`SELECT (.+) FROM "feedbacks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "user_id"}).AddRow(3, 42, 7))

	r := feedbackTestRouter(NewFeedbackController(db))
	w := performJSON(r, http.MethodPost, "/feedback", gin.H{"event_id": 42, "rating": 5})

	assert.Equal(http.StatusBadRequest, w.Code)
	assert.Contains(w.Body.String(), "You have already submitted feedback")
	assert.NoError(mock.ExpectationsWereMet())
}

func TestRoundRating(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(0.0, roundRating(nil))

	value := 4.2499
	assert.Equal(4.2, roundRating(&value))

	value = 4.25
	assert.Equal(4.3, roundRating(&value))

	value = 5.0
	assert.Equal(5.0, roundRating(&value))
}
