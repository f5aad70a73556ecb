package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/college-eventhub/api-go/models"
	"github.com/college-eventhub/api-go/utils"
)

type LeaderboardController struct {
	DB *gorm.DB
}

func NewLeaderboardController(db *gorm.DB) *LeaderboardController {
	return &LeaderboardController{DB: db}
}

type leaderboardEntry struct {
	ID             uint           `json:"id"`
	Name           string         `json:"name"`
	College        string         `json:"college"`
	Points         int            `json:"points"`
	EventsAttended int            `json:"events_attended"`
	FeedbackGiven  int            `json:"feedback_given"`
	Badges         []models.Badge `json:"badges" gorm:"-"`
}

// Top returns the leading students by points, with their badges and
// participation counts attached.
func (lc *LeaderboardController) Top(c *gin.Context) {
	var entries []leaderboardEntry
	err := lc.DB.Table("users").
		Select(`users.id, users.name, users.college, users.points,
			(SELECT COUNT(*) FROM registrations WHERE registrations.user_id = users.id AND registrations.status = 'approved') AS events_attended,
			(SELECT COUNT(*) FROM feedbacks WHERE feedbacks.user_id = users.id) AS feedback_given`).
		Where("users.role = ?", models.RoleStudent).
		Order("users.points DESC, users.name ASC").
		Limit(20).
		Scan(&entries).Error
	if err != nil {
		log.WithError(err).Error("Leaderboard query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard"})
		return
	}

	if len(entries) > 0 {
		ids := make([]uint, 0, len(entries))
		for _, e := range entries {
			ids = append(ids, e.ID)
		}

		var badges []models.Badge
		if err := lc.DB.Where("user_id IN ?", ids).Order("earned_at ASC").Find(&badges).Error; err != nil {
			log.WithError(err).Warn("Leaderboard badge lookup failed")
		}

		byUser := make(map[uint][]models.Badge, len(entries))
		for _, b := range badges {
			byUser[b.UserID] = append(byUser[b.UserID], b)
		}
		for i := range entries {
			if bs, ok := byUser[entries[i].ID]; ok {
				entries[i].Badges = bs
			} else {
				entries[i].Badges = []models.Badge{}
			}
		}
	}

	c.JSON(http.StatusOK, entries)
}

// GetRank reports the caller's position among students: one plus the
// number of students with strictly more points.
func (lc *LeaderboardController) GetRank(c *gin.Context) {
	claims := utils.GetUser(c)

	var rank int64
	err := lc.DB.Raw(
		`SELECT COUNT(*) + 1 FROM users WHERE role = ? AND points > (SELECT points FROM users WHERE id = ?)`,
		models.RoleStudent, claims.UserID,
	).Scan(&rank).Error
	if err != nil {
		log.WithError(err).Error("Rank query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rank"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rank": rank})
}
