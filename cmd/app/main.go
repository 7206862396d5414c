package main

import (
	"videoshub-backend/internal/config"
	"videoshub-backend/internal/mail"
	"videoshub-backend/internal/repository"
	"videoshub-backend/internal/routes"
	"videoshub-backend/internal/session"
	"videoshub-backend/internal/storage"
	"videoshub-backend/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	config.Load()
	repository.Connect()
	storage.InitMinio()

	redisOptions, err := redis.ParseURL(config.App.RedisUri)
	if err != nil {
		logrus.Fatalf("invalid redis uri: %v", err)
	}

	sessions := &session.Manager{
		Store:      &session.RedisStore{Client: redis.NewClient(redisOptions)},
		CookieName: config.App.SessionCookie,
		Secret:     config.App.SessionSecret,
		TTL:        config.App.SessionTTL,
	}

	emailSender := mail.NewSmtpSender(
		"VideosHub 🐬",
		config.App.SmtpUser,
		config.App.SmtpHost,
		config.App.SmtpPort,
		config.App.SmtpUser,
		config.App.SmtpPassword,
	)

	app := fiber.New(fiber.Config{
		BodyLimit: 500 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.App.CorsWhitelist,
		AllowCredentials: true,
	}))

	routes.Setup(app, emailSender, sessions)

	utils.StartTicketCleanupTask()

	logrus.Infof("🚀 Application is running on port %s", config.App.Port)
	if err := app.Listen(":" + config.App.Port); err != nil {
		logrus.Fatal(err)
	}
}
