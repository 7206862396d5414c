package routes

import (
	"videoshub-backend/internal/controllers"
	"videoshub-backend/internal/mail"
	"videoshub-backend/internal/middleware"
	"videoshub-backend/internal/session"

	"github.com/gofiber/fiber/v3"
)

func Setup(app *fiber.App, sender mail.Sender, sessions *session.Manager) {

	app.Use(middleware.LoadSession(sessions))

	auth := app.Group("/auth")
	auth.Post("/register", controllers.Register(sessions))
	auth.Post("/login", controllers.Login(sessions))
	auth.Post("/logout", controllers.Logout(sessions), middleware.RequireAuth)
	auth.Get("/me", controllers.MyChannel, middleware.RequireAuth)
	auth.Put("/me", controllers.UpdateMyChannel, middleware.RequireAuth)

	channels := app.Group("/channels")
	channels.Get("/", controllers.GetChannels)
	channels.Get("/id/:id", controllers.GetChannel)
	channels.Patch("/subscribe/:id", controllers.Subscribe, middleware.RequireAuth)

	videos := app.Group("/videos")
	videos.Get("/", controllers.GetVideos)
	videos.Get("/search", controllers.SearchVideos)
	videos.Get("/most-popular", controllers.MostPopular)
	videos.Get("/liked", controllers.LikedVideos, middleware.RequireAuth)
	videos.Get("/id/:id", controllers.GetVideo)
	videos.Post("/", controllers.CreateDraftVideo, middleware.RequireAuth)
	videos.Post("/upload", controllers.UploadVideo, middleware.RequireAuth)
	videos.Post("/upload-thumbnail", controllers.UploadThumbnail, middleware.RequireAuth)
	videos.Patch("/id/:id", controllers.UpdateVideo, middleware.RequireAuth)
	videos.Put("/views/:id", controllers.UpdateViews)
	videos.Put("/likes/:id", controllers.UpdateLikes, middleware.RequireAuth)
	videos.Delete("/id/:id", controllers.DeleteVideo, middleware.RequireAuth)

	app.Post("/comments", controllers.CreateComment, middleware.RequireAuth)

	recovery := app.Group("/recovery")
	recovery.Post("/create-ticket", controllers.CreateTicket(sender))
	recovery.Get("/verify-ticket", controllers.VerifyTicket)
	recovery.Patch("/update-password", controllers.UpdatePassword)

	app.Post("/media", controllers.UploadMedia, middleware.RequireAuth)
}
