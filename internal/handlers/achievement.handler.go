package handlers

import (
	"errors"

	"gamehub/internal/app"
	achievementController "gamehub/internal/controllers/achievements"
	"gamehub/internal/handlers/middleware"
	"gamehub/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AchievementHandler struct {
	Handler
	achievementController achievementController.AchievementControllerInterface
	app                   app.App
}

func NewAchievementHandler(app app.App, router fiber.Router) *AchievementHandler {
	log := logger.New("handlers").File("achievement_handler")
	return &AchievementHandler{
		achievementController: app.Controllers.Achievement,
		app:                   app,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AchievementHandler) Register() {
	achievements := h.router.Group("/achievements")
	achievements.Use(h.middleware.RequireAuth(h.app.Services.Token))

	achievements.Post("", h.middleware.RequireAdmin(), h.createAchievement)
	achievements.Get("/game/:gameId", h.listByGame)
	achievements.Get("/user/:userId", h.userSummary)
	achievements.Post("/earn", h.earnAchievement)
	achievements.Delete("/earn/:id", h.unearnAchievement)
	achievements.Put("/:id", h.middleware.RequireAdmin(), h.updateAchievement)
	achievements.Delete("/:id", h.middleware.RequireAdmin(), h.deleteAchievement)
}

func (h *AchievementHandler) achievementError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, achievementController.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, achievementController.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, achievementController.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, achievementController.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fallback})
	}
}

func (h *AchievementHandler) createAchievement(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req achievementController.CreateAchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	achievement, err := h.achievementController.CreateAchievement(c.UserContext(), user, &req)
	if err != nil {
		return h.achievementError(c, err, "Failed to create achievement")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"achievement": achievement})
}

func (h *AchievementHandler) updateAchievement(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	achievementID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid achievement ID",
		})
	}

	var req achievementController.UpdateAchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	achievement, err := h.achievementController.UpdateAchievement(c.UserContext(), user, achievementID, &req)
	if err != nil {
		return h.achievementError(c, err, "Failed to update achievement")
	}

	return c.JSON(fiber.Map{"achievement": achievement})
}

func (h *AchievementHandler) deleteAchievement(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	achievementID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid achievement ID",
		})
	}

	if err := h.achievementController.DeleteAchievement(c.UserContext(), user, achievementID); err != nil {
		return h.achievementError(c, err, "Failed to delete achievement")
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *AchievementHandler) listByGame(c *fiber.Ctx) error {
	gameID, err := uuid.Parse(c.Params("gameId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid game ID",
		})
	}

	achievements, err := h.achievementController.ListByGame(c.UserContext(), gameID)
	if err != nil {
		return h.achievementError(c, err, "Failed to load achievements")
	}

	return c.JSON(fiber.Map{"achievements": achievements})
}

func (h *AchievementHandler) earnAchievement(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req achievementController.EarnAchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	earned, err := h.achievementController.EarnAchievement(c.UserContext(), user, &req)
	if err != nil {
		return h.achievementError(c, err, "Failed to record achievement")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"earned": earned})
}

func (h *AchievementHandler) unearnAchievement(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	achievementID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid achievement ID",
		})
	}

	if err := h.achievementController.UnearnAchievement(c.UserContext(), user, achievementID); err != nil {
		return h.achievementError(c, err, "Failed to remove earned achievement")
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *AchievementHandler) userSummary(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	summary, err := h.achievementController.GetUserSummary(c.UserContext(), userID)
	if err != nil {
		return h.achievementError(c, err, "Failed to load achievement summary")
	}

	return c.JSON(fiber.Map{"summary": summary})
}
