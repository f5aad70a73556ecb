package controllers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/college-eventhub/api-go/models"
)

func adminTestRouter(ac *AdminController) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/admin/users/:id/role", authAs(1, models.RoleSuperAdmin), ac.UpdateUserRole)
	r.GET("/admin/event/:eventId/students", authAs(2, models.RoleCollegeAdmin), ac.GetEventStudents)
	return r
}

func TestUpdateUserRoleRejectsUnknownRole(t *testing.T) {
	assert := assert.New(t)

	db, mock := newMockDB(t)
	r := adminTestRouter(NewAdminController(db))

	for _, role := range []string{"", "admin", "Student"} {
		w := performJSON(r, http.MethodPut, "/admin/users/7/role", gin.H{"role": role})
		assert.Equal(http.StatusBadRequest, w.Code, "role %q should be rejected", role)
	}
	assert.NoError(mock.ExpectationsWereMet())
}

func TestUpdateUserRoleUnknownUser(t *testing.T) {
	assert := assert.New(t)

	db, mock := newMockDB(t)
	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	r := adminTestRouter(NewAdminController(db))
	w := performJSON(r, http.MethodPut, "/admin/users/999/role", gin.H{"role": "college_admin"})

	assert.Equal(http.StatusNotFound, w.Code)
	assert.Contains(w.Body.String(), "User not found")
	assert.NoError(mock.ExpectationsWereMet())
}

func TestGetEventStudentsScopesToRequestedEvent(t *testing.T) {
	assert := assert.New(t)

	db, mock := newMockDB(t)
	// Both the event id from the path and the caller's ownership reach the
	// query, so event 6's roster can never leak into event 5's.
	mock.ExpectQuery(`SELECT (.+) FROM "registrations" (.+)WHERE registrations\.event_id = \$1 AND events\.college_id = \$2`).
		WithArgs("5", 2).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "name", "email", "college", "event_id", "event_title", "status"}).
			AddRow(7, "Ada", "ada@example.com", "MIT", 5, "Hack Night", "approved"))

	r := adminTestRouter(NewAdminController(db))
	w := performJSON(r, http.MethodGet, "/admin/event/5/students", nil)

	assert.Equal(http.StatusOK, w.Code)
	assert.Contains(w.Body.String(), `"event_id":5`)
	assert.NoError(mock.ExpectationsWereMet())
}

func TestUpdateUserRoleWritesAuditLog(t *testing.T) {
	assert := assert.New(t)

	db, mock := newMockDB(t)
	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "admin_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	r := adminTestRouter(NewAdminController(db))
	w := performJSON(r, http.MethodPut, "/admin/users/7/role", gin.H{"role": "college_admin"})

	assert.Equal(http.StatusOK, w.Code)
	assert.Contains(w.Body.String(), "User role updated successfully")
	assert.NoError(mock.ExpectationsWereMet())
}
