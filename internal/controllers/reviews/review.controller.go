package reviewController

import (
	"context"
	"errors"

	"gamehub/config"
	"gamehub/internal/database"
	. "gamehub/internal/models"
	"gamehub/internal/repositories"
	"gamehub/internal/services"

	"gamehub/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MaxReviewLength = 5000
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
)

type ReviewController struct {
	reviewRepo repositories.ReviewRepository
	gameRepo   repositories.GameRepository
	db         database.DB
	Config     config.Config
}

type CreateReviewRequest struct {
	GameID     uuid.UUID `json:"gameId"`
	ReviewText *string   `json:"reviewText,omitempty"`
	Rating     int       `json:"rating"`
}

type UpdateReviewRequest struct {
	ReviewText *string `json:"reviewText,omitempty"`
	Rating     *int    `json:"rating,omitempty"`
}

type ReviewControllerInterface interface {
	CreateReview(ctx context.Context, user *User, request *CreateReviewRequest) (*Review, error)
	GetReview(ctx context.Context, reviewID uuid.UUID) (*Review, error)
	UpdateReview(ctx context.Context, user *User, reviewID uuid.UUID, request *UpdateReviewRequest) (*Review, error)
	DeleteReview(ctx context.Context, user *User, reviewID uuid.UUID) error
	ListByGame(ctx context.Context, gameID uuid.UUID) ([]ReviewWithUser, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Review, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) ReviewControllerInterface {
	return &ReviewController{
		reviewRepo: repos.Review,
		gameRepo:   repos.Game,
		db:         db,
		Config:     config,
	}
}

func validRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

func (c *ReviewController) CreateReview(
	ctx context.Context,
	user *User,
	request *CreateReviewRequest,
) (*Review, error) {
	log := logger.NewWithContext(ctx, "reviewController").Function("CreateReview")

	if request.GameID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "gameId is required")
	}

	if !validRating(request.Rating) {
		return nil, log.ErrorWithType(ErrValidation, "rating must be between 1 and 5", "rating", request.Rating)
	}

	if request.ReviewText != nil && len(*request.ReviewText) > MaxReviewLength {
		return nil, log.ErrorWithType(ErrValidation, "review text exceeds maximum length")
	}

	if _, err := c.gameRepo.GetByID(ctx, c.db.SQL, request.GameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "game not found", "gameID", request.GameID)
		}
		return nil, log.Error("failed to look up game", "error", err)
	}

	if _, err := c.reviewRepo.GetByUserAndGame(ctx, c.db.SQL, user.ID, request.GameID); err == nil {
		return nil, log.ErrorWithType(ErrConflict, "review already exists for this game", "gameID", request.GameID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, log.Error("failed to check for existing review", "error", err)
	}

	review := &Review{
		UserID:     user.ID,
		GameID:     request.GameID,
		ReviewText: request.ReviewText,
		Rating:     request.Rating,
	}

	if err := c.reviewRepo.Create(ctx, c.db.SQL, review); err != nil {
		return nil, log.Error("failed to create review", "error", err, "gameID", request.GameID)
	}

	log.Info("Review created", "userID", user.ID, "gameID", request.GameID, "reviewID", review.ID)

	return review, nil
}

func (c *ReviewController) UpdateReview(
	ctx context.Context,
	user *User,
	reviewID uuid.UUID,
	request *UpdateReviewRequest,
) (*Review, error) {
	log := logger.NewWithContext(ctx, "reviewController").Function("UpdateReview")

	if reviewID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "reviewId is required")
	}

	review, err := c.reviewRepo.GetByID(ctx, c.db.SQL, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "review not found", "reviewID", reviewID)
		}
		return nil, log.Error("failed to load review", "error", err)
	}

	if !user.CanModify(review.UserID) {
		return nil, log.ErrorWithType(ErrForbidden, "review does not belong to user", "reviewID", reviewID)
	}

	rating := review.Rating
	if request.Rating != nil {
		if !validRating(*request.Rating) {
			return nil, log.ErrorWithType(ErrValidation, "rating must be between 1 and 5", "rating", *request.Rating)
		}
		rating = *request.Rating
	}

	reviewText := review.ReviewText
	if request.ReviewText != nil {
		if len(*request.ReviewText) > MaxReviewLength {
			return nil, log.ErrorWithType(ErrValidation, "review text exceeds maximum length")
		}
		reviewText = request.ReviewText
	}

	if err := c.reviewRepo.Update(ctx, c.db.SQL, reviewID, reviewText, rating); err != nil {
		return nil, log.Error("failed to update review", "error", err, "reviewID", reviewID)
	}

	review.Rating = rating
	review.ReviewText = reviewText

	log.Info("Review updated", "userID", user.ID, "reviewID", reviewID)

	return review, nil
}

func (c *ReviewController) DeleteReview(
	ctx context.Context,
	user *User,
	reviewID uuid.UUID,
) error {
	log := logger.NewWithContext(ctx, "reviewController").Function("DeleteReview")

	if reviewID == uuid.Nil {
		return log.ErrorWithType(ErrValidation, "reviewId is required")
	}

	review, err := c.reviewRepo.GetByID(ctx, c.db.SQL, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return log.ErrorWithType(ErrNotFound, "review not found", "reviewID", reviewID)
		}
		return log.Error("failed to load review", "error", err)
	}

	if !user.CanModify(review.UserID) {
		return log.ErrorWithType(ErrForbidden, "review does not belong to user", "reviewID", reviewID)
	}

	if err := c.reviewRepo.Delete(ctx, c.db.SQL, reviewID); err != nil {
		return log.Error("failed to delete review", "error", err, "reviewID", reviewID)
	}

	log.Info("Review deleted", "userID", user.ID, "reviewID", reviewID)

	return nil
}

func (c *ReviewController) ListByGame(
	ctx context.Context,
	gameID uuid.UUID,
) ([]ReviewWithUser, error) {
	log := logger.NewWithContext(ctx, "reviewController").Function("ListByGame")

	if gameID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "gameId is required")
	}

	reviews, err := c.reviewRepo.ListByGame(ctx, c.db.SQL, gameID)
	if err != nil {
		return nil, log.Error("failed to list reviews", "error", err, "gameID", gameID)
	}

	return reviews, nil
}

func (c *ReviewController) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]Review, error) {
	log := logger.NewWithContext(ctx, "reviewController").Function("ListByUser")

	if userID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "userId is required")
	}

	reviews, err := c.reviewRepo.ListByUser(ctx, c.db.SQL, userID)
	if err != nil {
		return nil, log.Error("failed to list user reviews", "error", err, "userID", userID)
	}

	return reviews, nil
}

func (c *ReviewController) GetReview(ctx context.Context, reviewID uuid.UUID) (*Review, error) {
	log := logger.NewWithContext(ctx, "reviewController").Function("GetReview")

	if reviewID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "reviewId is required")
	}

	review, err := c.reviewRepo.GetByID(ctx, c.db.SQL, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "review not found", "reviewID", reviewID)
		}
		return nil, log.Error("failed to load review", "error", err)
	}

	return review, nil
}
