package handlers

import (
	"errors"

	"gamehub/internal/app"
	reviewController "gamehub/internal/controllers/reviews"
	"gamehub/internal/handlers/middleware"
	"gamehub/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	Handler
	reviewController reviewController.ReviewControllerInterface
	app              app.App
}

func NewReviewHandler(app app.App, router fiber.Router) *ReviewHandler {
	log := logger.New("handlers").File("review_handler")
	return &ReviewHandler{
		reviewController: app.Controllers.Review,
		app:              app,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ReviewHandler) Register() {
	reviews := h.router.Group("/reviews")
	reviews.Use(h.middleware.RequireAuth(h.app.Services.Token))

	reviews.Post("", h.createReview)
	reviews.Get("/mine", h.myReviews)
	reviews.Get("/game/:gameId", h.listByGame)
	reviews.Get("/user/:userId", h.listByUser)
	reviews.Get("/:id", h.getReview)
	reviews.Put("/:id", h.updateReview)
	reviews.Delete("/:id", h.deleteReview)
}

func (h *ReviewHandler) reviewError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, reviewController.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, reviewController.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, reviewController.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, reviewController.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fallback})
	}
}

func (h *ReviewHandler) createReview(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req reviewController.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	review, err := h.reviewController.CreateReview(c.UserContext(), user, &req)
	if err != nil {
		return h.reviewError(c, err, "Failed to create review")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"review": review})
}

func (h *ReviewHandler) myReviews(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	reviews, err := h.reviewController.ListByUser(c.UserContext(), user.ID)
	if err != nil {
		return h.reviewError(c, err, "Failed to list reviews")
	}

	return c.JSON(fiber.Map{"reviews": reviews})
}

func (h *ReviewHandler) getReview(c *fiber.Ctx) error {
	reviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid review ID",
		})
	}

	review, err := h.reviewController.GetReview(c.UserContext(), reviewID)
	if err != nil {
		return h.reviewError(c, err, "Failed to load review")
	}

	return c.JSON(fiber.Map{"review": review})
}

func (h *ReviewHandler) updateReview(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	reviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid review ID",
		})
	}

	var req reviewController.UpdateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	review, err := h.reviewController.UpdateReview(c.UserContext(), user, reviewID, &req)
	if err != nil {
		return h.reviewError(c, err, "Failed to update review")
	}

	return c.JSON(fiber.Map{"review": review})
}

func (h *ReviewHandler) deleteReview(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	reviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid review ID",
		})
	}

	if err := h.reviewController.DeleteReview(c.UserContext(), user, reviewID); err != nil {
		return h.reviewError(c, err, "Failed to delete review")
	}

	return c.Status(fiber.StatusNoContent).Send(nil)
}

func (h *ReviewHandler) listByGame(c *fiber.Ctx) error {
	gameID, err := uuid.Parse(c.Params("gameId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid game ID",
		})
	}

	reviews, err := h.reviewController.ListByGame(c.UserContext(), gameID)
	if err != nil {
		return h.reviewError(c, err, "Failed to load reviews")
	}

	return c.JSON(fiber.Map{"reviews": reviews})
}

func (h *ReviewHandler) listByUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	reviews, err := h.reviewController.ListByUser(c.UserContext(), userID)
	if err != nil {
		return h.reviewError(c, err, "Failed to load reviews")
	}

	return c.JSON(fiber.Map{"reviews": reviews})
}
