package controllers

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestAwardPoints(t *testing.T) {
	assert := assert.New(t)

	db, mock := newMockDB(t)
	mock.ExpectExec(`UPDATE "users" SET "points"=points \+ \$1`).
		WithArgs(10, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	awardPoints(db, 7, 10, "Event registration")

	assert.NoError(mock.ExpectationsWereMet())
}

func TestAwardBadgeIsIdempotent(t *testing.T) {
	assert := assert.New(t)

	db, mock := newMockDB(t)

	// The badge already exists, so no insert and no notification happen.
	mock.ExpectQuery(`SELECT (.+) FROM "badges"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "user_id", "name"}).AddRow(1, 7, "Feedback Champion"))

	awardBadge(db, 7, "Feedback Champion", "Provided feedback for 5 events")

	assert.NoError(mock.ExpectationsWereMet())
}

func TestAwardBadgeFirstTimeNotifies(t *testing.T) {
	assert := assert.New(t)

	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "badges"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "badges"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	// Recipient lookup for the delivery row.
	mock.ExpectQuery(`SELECT (.+) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(7, "Ada"))
	mock.ExpectQuery(`INSERT INTO "notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectQuery(`INSERT INTO "received_notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))

	awardBadge(db, 7, "Feedback Champion", "Provided feedback for 5 events")

	assert.NoError(mock.ExpectationsWereMet())
}
