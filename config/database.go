package config

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/college-eventhub/api-go/models"
)

func InitDB() *gorm.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			os.Getenv("DB_HOST"),
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_NAME"),
			os.Getenv("DB_PORT"),
		)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	// Auto Migrate models
	if err := db.AutoMigrate(
		&models.User{},
		&models.Badge{},
		&models.Event{},
		&models.Registration{},
		&models.Feedback{},
		&models.Notification{},
		&models.ReceivedNotification{},
		&models.Bookmark{},
		&models.UserActivity{},
		&models.EventComment{},
		&models.AdminLog{},
	); err != nil {
		log.WithError(err).Fatal("Failed to migrate database schema")
	}

	return db
}
