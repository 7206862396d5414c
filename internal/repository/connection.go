package repository

import (
	"time"

	"videoshub-backend/internal/config"
	"videoshub-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	var err error
	for i := 0; i < 10; i++ {
		DB, err = gorm.Open(postgres.Open(config.App.PostgresUri), &gorm.Config{})
		if err == nil {
			break
		}
		logrus.Info("Waiting for database to be ready...")
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		logrus.Fatalf("could not connect to the database: %v", err)
	}

	if err := DB.AutoMigrate(
		&models.Channel{},
		&models.Subscription{},
		&models.Video{},
		&models.VideoLike{},
		&models.VideoComment{},
		&models.RecoveryTicket{},
	); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
}
