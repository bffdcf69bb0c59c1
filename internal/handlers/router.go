package handlers

import (
	"gamehub/internal/app"
	"gamehub/internal/handlers/middleware"
	"gamehub/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	api := router.Group("/api")
	HealthHandler(api, app.Config)

	NewAuthHandler(*app, api).Register()
	NewUserHandler(*app, api).Register()
	NewGameHandler(*app, api).Register()
	NewCollectionHandler(*app, api).Register()
	NewReviewHandler(*app, api).Register()
	NewSessionHandler(*app, api).Register()
	NewAchievementHandler(*app, api).Register()
	NewFriendHandler(*app, api).Register()
	NewUploadHandler(*app, api).Register()

	return nil
}
