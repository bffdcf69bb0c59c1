package handlers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gamehub/internal/app"
	achievementController "gamehub/internal/controllers/achievements"
	userController "gamehub/internal/controllers/users"
	"gamehub/internal/handlers/middleware"
	"gamehub/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const MaxUploadBytes = 5 * 1024 * 1024

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type UploadHandler struct {
	Handler
	userController        userController.UserControllerInterface
	achievementController achievementController.AchievementControllerInterface
	app                   app.App
}

func NewUploadHandler(app app.App, router fiber.Router) *UploadHandler {
	log := logger.New("handlers").File("upload_handler")
	return &UploadHandler{
		userController:        app.Controllers.User,
		achievementController: app.Controllers.Achievement,
		app:                   app,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *UploadHandler) Register() {
	uploads := h.router.Group("/uploads")
	uploads.Use(h.middleware.RequireAuth(h.app.Services.Token))

	uploads.Post("/profile-picture", h.uploadProfilePicture)
	uploads.Delete("/profile-picture", h.deleteProfilePicture)
	uploads.Delete("/profile-picture/:userId", h.deleteProfilePicture)
	uploads.Post("/achievement-icon/:id", h.middleware.RequireAdmin(), h.uploadAchievementIcon)
}

// saveImage validates and stores an uploaded image, returning its public URL.
func (h *UploadHandler) saveImage(c *fiber.Ctx, prefix string) (string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Missing image file")
	}

	if file.Size > MaxUploadBytes {
		return "", fiber.NewError(fiber.StatusRequestEntityTooLarge, "Image exceeds the 5MB limit")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		return "", fiber.NewError(fiber.StatusBadRequest, "Unsupported image type")
	}

	filename := fmt.Sprintf("%s_%s%s", prefix, uuid.New().String(), ext)
	destination := filepath.Join(h.app.Config.UploadDir, filename)
	if err := c.SaveFile(file, destination); err != nil {
		h.log.Err("failed to save uploaded file", err, "destination", destination)
		return "", fiber.NewError(fiber.StatusInternalServerError, "Failed to store image")
	}

	return "/uploads/" + filename, nil
}

// removeStoredFile deletes a previously uploaded file if the URL points into
// the upload dir. Best effort, a missing file is not an error.
func (h *UploadHandler) removeStoredFile(publicURL string) {
	if !strings.HasPrefix(publicURL, "/uploads/") {
		return
	}
	path := filepath.Join(h.app.Config.UploadDir, filepath.Base(publicURL))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		h.log.Warn("failed to remove stored file", "path", path, "error", err)
	}
}

func (h *UploadHandler) uploadProfilePicture(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	publicURL, err := h.saveImage(c, user.ID.String())
	if err != nil {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store image"})
	}

	oldURL := user.ProfilePictureURL
	profile, err := h.userController.UpdateProfile(c.UserContext(), user, &userController.UpdateProfileRequest{
		ProfilePictureURL: &publicURL,
	})
	if err != nil {
		h.removeStoredFile(publicURL)
		if errors.Is(err, userController.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile picture",
		})
	}

	if oldURL != nil {
		h.removeStoredFile(*oldURL)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": profile})
}

func (h *UploadHandler) deleteProfilePicture(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	targetID := user.ID
	if raw := c.Params("userId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid user ID",
			})
		}
		targetID = parsed
	}

	oldURL, err := h.userController.ClearProfilePicture(c.UserContext(), user, targetID)
	if err != nil {
		switch {
		case errors.Is(err, userController.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, userController.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, userController.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to delete profile picture",
			})
		}
	}

	if oldURL != nil {
		h.removeStoredFile(*oldURL)
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *UploadHandler) uploadAchievementIcon(c *fiber.Ctx) error {
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

	publicURL, err := h.saveImage(c, "achievement_"+achievementID.String())
	if err != nil {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store image"})
	}

	achievement, err := h.achievementController.UpdateAchievement(
		c.UserContext(),
		user,
		achievementID,
		&achievementController.UpdateAchievementRequest{IconURL: &publicURL},
	)
	if err != nil {
		h.removeStoredFile(publicURL)
		switch {
		case errors.Is(err, achievementController.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, achievementController.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, achievementController.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update achievement icon",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"achievement": achievement})
}
