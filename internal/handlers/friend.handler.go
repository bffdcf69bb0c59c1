package handlers

import (
	"errors"

	"gamehub/internal/app"
	friendController "gamehub/internal/controllers/friends"
	"gamehub/internal/handlers/middleware"
	"gamehub/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type FriendHandler struct {
	Handler
	friendController friendController.FriendControllerInterface
	app              app.App
}

func NewFriendHandler(app app.App, router fiber.Router) *FriendHandler {
	log := logger.New("handlers").File("friend_handler")
	return &FriendHandler{
		friendController: app.Controllers.Friend,
		app:              app,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *FriendHandler) Register() {
	friends := h.router.Group("/friends")
	friends.Use(h.middleware.RequireAuth(h.app.Services.Token))

	friends.Get("", h.listFriends)
	friends.Get("/requests", h.listPending)
	friends.Get("/requests/sent", h.listSent)
	friends.Post("/requests", h.sendRequest)
	friends.Post("/requests/:id/accept", h.acceptRequest)
	friends.Get("/check/:userId", h.checkFriendship)
	friends.Get("/mutual/:userId", h.mutualFriends)
	friends.Delete("/:id", h.removeFriendship)
}

func (h *FriendHandler) friendError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, friendController.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, friendController.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, friendController.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, friendController.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fallback})
	}
}

func (h *FriendHandler) sendRequest(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req friendController.FriendRequestInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	friendship, err := h.friendController.SendRequest(c.UserContext(), user, &req)
	if err != nil {
		return h.friendError(c, err, "Failed to send friend request")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"friendship": friendship})
}

func (h *FriendHandler) acceptRequest(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	friendshipID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid friendship ID",
		})
	}

	friendship, err := h.friendController.AcceptRequest(c.UserContext(), user, friendshipID)
	if err != nil {
		return h.friendError(c, err, "Failed to accept friend request")
	}

	return c.JSON(fiber.Map{"friendship": friendship})
}

func (h *FriendHandler) removeFriendship(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	friendshipID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid friendship ID",
		})
	}

	if err := h.friendController.RemoveFriendship(c.UserContext(), user, friendshipID); err != nil {
		return h.friendError(c, err, "Failed to remove friendship")
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *FriendHandler) listFriends(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	friends, err := h.friendController.ListFriends(c.UserContext(), user)
	if err != nil {
		return h.friendError(c, err, "Failed to load friends")
	}

	return c.JSON(fiber.Map{"friends": friends})
}

func (h *FriendHandler) listPending(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	requests, err := h.friendController.ListPendingRequests(c.UserContext(), user)
	if err != nil {
		return h.friendError(c, err, "Failed to load pending requests")
	}

	return c.JSON(fiber.Map{"requests": requests})
}

func (h *FriendHandler) listSent(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	requests, err := h.friendController.ListSentRequests(c.UserContext(), user)
	if err != nil {
		return h.friendError(c, err, "Failed to load sent requests")
	}

	return c.JSON(fiber.Map{"requests": requests})
}

func (h *FriendHandler) checkFriendship(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	otherID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	status, err := h.friendController.CheckFriendship(c.UserContext(), user, otherID)
	if err != nil {
		return h.friendError(c, err, "Failed to check friendship")
	}

	return c.JSON(status)
}

func (h *FriendHandler) mutualFriends(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	otherID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	mutual, err := h.friendController.MutualFriends(c.UserContext(), user, otherID)
	if err != nil {
		return h.friendError(c, err, "Failed to load mutual friends")
	}

	return c.JSON(fiber.Map{"friends": mutual})
}
