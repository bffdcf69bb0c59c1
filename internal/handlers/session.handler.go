package handlers

import (
	"errors"
	"strconv"

	"gamehub/internal/app"
	sessionController "gamehub/internal/controllers/sessions"
	"gamehub/internal/handlers/middleware"
	"gamehub/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type SessionHandler struct {
	Handler
	sessionController sessionController.SessionControllerInterface
	app               app.App
}

func NewSessionHandler(app app.App, router fiber.Router) *SessionHandler {
	log := logger.New("handlers").File("session_handler")
	return &SessionHandler{
		sessionController: app.Controllers.Session,
		app:               app,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *SessionHandler) Register() {
	sessions := h.router.Group("/sessions")
	sessions.Use(h.middleware.RequireAuth(h.app.Services.Token))

	sessions.Get("", h.listSessions)
	sessions.Post("", h.startSession)
	sessions.Get("/stats", h.playtimeStats)
	sessions.Get("/:id", h.getSession)
	sessions.Post("/:id/end", h.endSession)
	sessions.Patch("/:id/notes", h.updateNotes)
	sessions.Delete("/:id", h.deleteSession)
}

func (h *SessionHandler) sessionError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, sessionController.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, sessionController.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, sessionController.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, sessionController.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fallback})
	}
}

func (h *SessionHandler) startSession(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req sessionController.StartSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	session, err := h.sessionController.StartSession(c.UserContext(), user, &req)
	if err != nil {
		return h.sessionError(c, err, "Failed to start session")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session": session})
}

func (h *SessionHandler) getSession(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	sessionID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID",
		})
	}

	session, err := h.sessionController.GetSession(c.UserContext(), user, sessionID)
	if err != nil {
		return h.sessionError(c, err, "Failed to load session")
	}

	return c.JSON(fiber.Map{"session": session})
}

func (h *SessionHandler) updateNotes(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	sessionID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID",
		})
	}

	var req struct {
		SessionNotes *string `json:"sessionNotes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	session, err := h.sessionController.UpdateNotes(c.UserContext(), user, sessionID, req.SessionNotes)
	if err != nil {
		return h.sessionError(c, err, "Failed to update session notes")
	}

	return c.JSON(fiber.Map{"session": session})
}

func (h *SessionHandler) endSession(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	sessionID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID",
		})
	}

	req := sessionController.EndSessionRequest{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
	}

	session, err := h.sessionController.EndSession(c.UserContext(), user, sessionID, &req)
	if err != nil {
		return h.sessionError(c, err, "Failed to end session")
	}

	return c.JSON(fiber.Map{"session": session})
}

func (h *SessionHandler) listSessions(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	req := sessionController.ListSessionsRequest{
		OpenOnly: c.QueryBool("open"),
	}
	req.Page, _ = strconv.Atoi(c.Query("page", "0"))
	req.PageSize, _ = strconv.Atoi(c.Query("pageSize", "0"))

	if raw := c.Query("gameId"); raw != "" {
		gameID, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid game ID",
			})
		}
		req.GameID = &gameID
	}

	sessions, err := h.sessionController.ListSessions(c.UserContext(), user, &req)
	if err != nil {
		return h.sessionError(c, err, "Failed to load sessions")
	}

	return c.JSON(fiber.Map{"sessions": sessions})
}

func (h *SessionHandler) deleteSession(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	sessionID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid session ID",
		})
	}

	if err := h.sessionController.DeleteSession(c.UserContext(), user, sessionID); err != nil {
		return h.sessionError(c, err, "Failed to delete session")
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *SessionHandler) playtimeStats(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var gameID *uuid.UUID
	if raw := c.Query("gameId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid game ID",
			})
		}
		gameID = &parsed
	}

	stats, err := h.sessionController.GetPlaytimeStats(c.UserContext(), user, gameID)
	if err != nil {
		return h.sessionError(c, err, "Failed to load playtime stats")
	}

	return c.JSON(fiber.Map{"stats": stats})
}
