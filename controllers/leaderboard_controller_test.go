package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/college-eventhub/api-go/models"
)

func leaderboardTestRouter(lc *LeaderboardController) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/leaderboard", authAs(7, models.RoleStudent), lc.Top)
	r.GET("/leaderboard/rank", authAs(7, models.RoleStudent), lc.GetRank)
	return r
}

func TestLeaderboardTopAttachesBadges(t *testing.T) {
	assert := assert.New(t)

	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "name", "college", "points", "events_attended", "feedback_given"}).
			AddRow(7, "Ada", "MIT", 120, 4, 6).
			AddRow(9, "Grace", "Yale", 80, 2, 1))
	mock.ExpectQuery(`SELECT (.+) FROM "badges"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "user_id", "name", "description"}).
			AddRow(1, 7, "Feedback Champion", "Provided feedback for 5 events"))

	r := leaderboardTestRouter(NewLeaderboardController(db))
	w := performJSON(r, http.MethodGet, "/leaderboard", nil)

	assert.Equal(http.StatusOK, w.Code)

	var entries []struct {
		ID     uint           `json:"id"`
		Points int            `json:"points"`
		Badges []models.Badge `json:"badges"`
	}
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &entries))
	if assert.Len(entries, 2) {
		assert.Equal(120, entries[0].Points)
		assert.Len(entries[0].Badges, 1)
		assert.Equal("Feedback Champion", entries[0].Badges[0].Name)
		assert.Empty(entries[1].Badges)
		assert.NotNil(entries[1].Badges, "badges serialize as [] rather than null")
	}
	assert.NoError(mock.ExpectationsWereMet())
}

func TestGetRank(t *testing.T) {
	assert := assert.New(t)

	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) \+ 1 FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	r := leaderboardTestRouter(NewLeaderboardController(db))
	w := performJSON(r, http.MethodGet, "/leaderboard/rank", nil)

	assert.Equal(http.StatusOK, w.Code)
	assert.JSONEq(`{"rank": 3}`, w.Body.String())
	assert.NoError(mock.ExpectationsWereMet())
}
