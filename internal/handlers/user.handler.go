package handlers

import (
	"errors"
	"strconv"

	"gamehub/internal/app"
	userController "gamehub/internal/controllers/users"
	"gamehub/internal/handlers/middleware"
	"gamehub/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type UserHandler struct {
	Handler
	userController userController.UserControllerInterface
	app            app.App
}

func NewUserHandler(app app.App, router fiber.Router) *UserHandler {
	log := logger.New("handlers").File("user_handler")
	return &UserHandler{
		userController: app.Controllers.User,
		app:            app,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *UserHandler) Register() {
	users := h.router.Group("/users")
	users.Use(h.middleware.RequireAuth(h.app.Services.Token))

	users.Get("", h.middleware.RequireAdmin(), h.listUsers)
	users.Get("/profile", h.getProfile)
	users.Put("/profile", h.updateProfile)
	users.Get("/search", h.searchUsers)
	users.Get("/:id", h.getPublicProfile)
	users.Patch("/:id/role", h.middleware.RequireAdmin(), h.changeRole)
	users.Delete("/:id", h.deleteUser)
}

func (h *UserHandler) userError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, userController.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, userController.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, userController.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fallback})
	}
}

func (h *UserHandler) getProfile(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	profile, err := h.userController.GetProfile(c.UserContext(), user)
	if err != nil {
		return h.userError(c, err, "Failed to load profile")
	}

	return c.JSON(fiber.Map{"user": profile})
}

func (h *UserHandler) updateProfile(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req userController.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	profile, err := h.userController.UpdateProfile(c.UserContext(), user, &req)
	if err != nil {
		return h.userError(c, err, "Failed to update profile")
	}

	return c.JSON(fiber.Map{"user": profile})
}

func (h *UserHandler) searchUsers(c *fiber.Ctx) error {
	profiles, err := h.userController.SearchUsers(c.UserContext(), c.Query("q"))
	if err != nil {
		return h.userError(c, err, "Failed to search users")
	}

	return c.JSON(fiber.Map{"users": profiles})
}

func (h *UserHandler) getPublicProfile(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	profile, err := h.userController.GetPublicProfile(c.UserContext(), userID)
	if err != nil {
		return h.userError(c, err, "Failed to load user")
	}

	return c.JSON(fiber.Map{"user": profile})
}

func (h *UserHandler) deleteUser(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	if err := h.userController.DeleteUser(c.UserContext(), user, userID); err != nil {
		return h.userError(c, err, "Failed to delete user")
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *UserHandler) listUsers(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	page, _ := strconv.Atoi(c.Query("page", "0"))
	pageSize, _ := strconv.Atoi(c.Query("pageSize", "0"))

	users, err := h.userController.ListUsers(c.UserContext(), user, page, pageSize)
	if err != nil {
		return h.userError(c, err, "Failed to list users")
	}

	return c.JSON(fiber.Map{"users": users})
}

func (h *UserHandler) changeRole(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	var req userController.ChangeRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	profile, err := h.userController.ChangeRole(c.UserContext(), user, userID, &req)
	if err != nil {
		return h.userError(c, err, "Failed to change role")
	}

	return c.JSON(fiber.Map{"user": profile})
}
