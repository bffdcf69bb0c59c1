package handlers

import (
	"errors"
	"strconv"

	"gamehub/internal/app"
	gameController "gamehub/internal/controllers/games"
	"gamehub/internal/handlers/middleware"
	"gamehub/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type GameHandler struct {
	Handler
	gameController gameController.GameControllerInterface
	app            app.App
}

func NewGameHandler(app app.App, router fiber.Router) *GameHandler {
	log := logger.New("handlers").File("game_handler")
	return &GameHandler{
		gameController: app.Controllers.Game,
		app:            app,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *GameHandler) Register() {
	games := h.router.Group("/games")
	games.Use(h.middleware.RequireAuth(h.app.Services.Token))

	games.Get("", h.listGames)
	games.Get("/top-rated", h.topRated)
	games.Get("/statistics", h.statistics)
	games.Get("/external/search", h.searchExternal)
	games.Post("/import", h.importGame)
	games.Post("", h.middleware.RequireAdmin(), h.createGame)
	games.Get("/:id", h.getGame)
	games.Put("/:id", h.middleware.RequireAdmin(), h.updateGame)
	games.Delete("/:id", h.middleware.RequireAdmin(), h.deleteGame)
}

func (h *GameHandler) gameError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, gameController.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, gameController.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, gameController.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fallback})
	}
}

func (h *GameHandler) listGames(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "0"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "0"))

	games, err := h.gameController.ListGames(c.UserContext(), &gameController.ListGamesRequest{
		Search:   c.Query("search"),
		Genre:    c.Query("genre"),
		Platform: c.Query("platform"),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return h.gameError(c, err, "Failed to list games")
	}

	return c.JSON(fiber.Map{"games": games})
}

func (h *GameHandler) getGame(c *fiber.Ctx) error {
	gameID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid game ID",
		})
	}

	game, err := h.gameController.GetGame(c.UserContext(), gameID)
	if err != nil {
		return h.gameError(c, err, "Failed to load game")
	}

	return c.JSON(fiber.Map{"game": game})
}

func (h *GameHandler) createGame(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req gameController.CreateGameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	game, err := h.gameController.CreateGame(c.UserContext(), user, &req)
	if err != nil {
		return h.gameError(c, err, "Failed to create game")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"game": game})
}

func (h *GameHandler) updateGame(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	gameID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid game ID",
		})
	}

	var req gameController.UpdateGameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	game, err := h.gameController.UpdateGame(c.UserContext(), user, gameID, &req)
	if err != nil {
		return h.gameError(c, err, "Failed to update game")
	}

	return c.JSON(fiber.Map{"game": game})
}

func (h *GameHandler) deleteGame(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	gameID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid game ID",
		})
	}

	if err := h.gameController.DeleteGame(c.UserContext(), user, gameID); err != nil {
		return h.gameError(c, err, "Failed to delete game")
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *GameHandler) searchExternal(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	results, err := h.gameController.SearchExternal(c.UserContext(), c.Query("q"), limit)
	if err != nil {
		return h.gameError(c, err, "External search failed")
	}

	return c.JSON(fiber.Map{"results": results})
}

func (h *GameHandler) importGame(c *fiber.Ctx) error {
	var req gameController.ImportGameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	game, err := h.gameController.ImportGame(c.UserContext(), &req)
	if err != nil {
		return h.gameError(c, err, "Failed to import game")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"game": game})
}

func (h *GameHandler) topRated(c *fiber.Ctx) error {
	games, err := h.gameController.TopRated(c.UserContext())
	if err != nil {
		return h.gameError(c, err, "Failed to load top rated games")
	}

	return c.JSON(fiber.Map{"games": games})
}

func (h *GameHandler) statistics(c *fiber.Ctx) error {
	stats, err := h.gameController.Statistics(c.UserContext())
	if err != nil {
		return h.gameError(c, err, "Failed to load game statistics")
	}

	return c.JSON(fiber.Map{"statistics": stats})
}
