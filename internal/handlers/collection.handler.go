package handlers

import (
	"errors"

	"gamehub/internal/app"
	collectionController "gamehub/internal/controllers/collection"
	"gamehub/internal/handlers/middleware"
	"gamehub/internal/models"
	"gamehub/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CollectionHandler struct {
	Handler
	collectionController collectionController.CollectionControllerInterface
	app                  app.App
}

func NewCollectionHandler(app app.App, router fiber.Router) *CollectionHandler {
	log := logger.New("handlers").File("collection_handler")
	return &CollectionHandler{
		collectionController: app.Controllers.Collection,
		app:                  app,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *CollectionHandler) Register() {
	collection := h.router.Group("/collection")
	collection.Use(h.middleware.RequireAuth(h.app.Services.Token))

	collection.Get("", h.getCollection)
	collection.Get("/user/:userId", h.getUserCollection)
	collection.Post("", h.addGame)
	collection.Patch("/:gameId/status", h.updateStatus)
	collection.Patch("/:gameId/rating", h.updateRating)
	collection.Patch("/:gameId/notes", h.updateNotes)
	collection.Post("/:gameId/complete", h.markComplete)
	collection.Delete("/:gameId", h.removeGame)
}

func (h *CollectionHandler) collectionError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, collectionController.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, collectionController.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, collectionController.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fallback})
	}
}

func (h *CollectionHandler) userAndGameID(c *fiber.Ctx) (*models.User, uuid.UUID, error) {
	user := middleware.GetUser(c)
	if user == nil {
		return nil, uuid.Nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	gameID, err := uuid.Parse(c.Params("gameId"))
	if err != nil {
		return nil, uuid.Nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid game ID",
		})
	}

	return user, gameID, nil
}

func (h *CollectionHandler) getCollection(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var status *models.PlayStatus
	if raw := c.Query("status"); raw != "" {
		parsed := models.PlayStatus(raw)
		status = &parsed
	}

	entries, err := h.collectionController.GetCollection(c.UserContext(), user, status)
	if err != nil {
		return h.collectionError(c, err, "Failed to load collection")
	}

	return c.JSON(fiber.Map{"collection": entries})
}

func (h *CollectionHandler) getUserCollection(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	var status *models.PlayStatus
	if raw := c.Query("status"); raw != "" {
		parsed := models.PlayStatus(raw)
		status = &parsed
	}

	entries, err := h.collectionController.GetUserCollection(c.UserContext(), userID, status)
	if err != nil {
		return h.collectionError(c, err, "Failed to load collection")
	}

	return c.JSON(fiber.Map{"collection": entries})
}

func (h *CollectionHandler) addGame(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req collectionController.AddGameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	entry, err := h.collectionController.AddGame(c.UserContext(), user, &req)
	if err != nil {
		return h.collectionError(c, err, "Failed to add game to collection")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"entry": entry})
}

func (h *CollectionHandler) updateStatus(c *fiber.Ctx) error {
	user, gameID, err := h.userAndGameID(c)
	if err != nil || user == nil {
		return err
	}

	var req collectionController.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	entry, err := h.collectionController.UpdateStatus(c.UserContext(), user, gameID, &req)
	if err != nil {
		return h.collectionError(c, err, "Failed to update play status")
	}

	return c.JSON(fiber.Map{"entry": entry})
}

func (h *CollectionHandler) updateRating(c *fiber.Ctx) error {
	user, gameID, err := h.userAndGameID(c)
	if err != nil || user == nil {
		return err
	}

	var req collectionController.UpdateRatingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	entry, err := h.collectionController.UpdateRating(c.UserContext(), user, gameID, &req)
	if err != nil {
		return h.collectionError(c, err, "Failed to update rating")
	}

	return c.JSON(fiber.Map{"entry": entry})
}

func (h *CollectionHandler) updateNotes(c *fiber.Ctx) error {
	user, gameID, err := h.userAndGameID(c)
	if err != nil || user == nil {
		return err
	}

	var req collectionController.UpdateNotesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	entry, err := h.collectionController.UpdateNotes(c.UserContext(), user, gameID, &req)
	if err != nil {
		return h.collectionError(c, err, "Failed to update notes")
	}

	return c.JSON(fiber.Map{"entry": entry})
}

func (h *CollectionHandler) markComplete(c *fiber.Ctx) error {
	user, gameID, err := h.userAndGameID(c)
	if err != nil || user == nil {
		return err
	}

	req := collectionController.MarkCompleteRequest{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
	}

	result, err := h.collectionController.MarkCompleteWithReviewPrompt(c.UserContext(), user, gameID, &req)
	if err != nil {
		return h.collectionError(c, err, "Failed to mark game complete")
	}

	return c.JSON(result)
}

func (h *CollectionHandler) removeGame(c *fiber.Ctx) error {
	user, gameID, err := h.userAndGameID(c)
	if err != nil || user == nil {
		return err
	}

	result, err := h.collectionController.RemoveGameCompletely(c.UserContext(), user, gameID)
	if err != nil {
		return h.collectionError(c, err, "Failed to remove game from collection")
	}

	return c.JSON(result)
}
