package repositories

import (
	"context"
	"time"

	. "gamehub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Review, error)
	GetByUserAndGame(ctx context.Context, tx *gorm.DB, userID, gameID uuid.UUID) (*Review, error)
	Create(ctx context.Context, tx *gorm.DB, review *Review) error
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, reviewText *string, rating int) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	DeleteByUserAndGame(ctx context.Context, tx *gorm.DB, userID, gameID uuid.UUID) (int, error)
	ListByGame(ctx context.Context, tx *gorm.DB, gameID uuid.UUID) ([]ReviewWithUser, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]Review, error)
}

type reviewRepository struct {
	log logger.Logger
}

func NewReviewRepository() ReviewRepository {
	return &reviewRepository{
		log: logger.New("reviewRepository"),
	}
}

func (r *reviewRepository) GetByID(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
) (*Review, error) {
	return gorm.G[*Review](tx).Where("id = ?", id).First(ctx)
}

func (r *reviewRepository) GetByUserAndGame(
	ctx context.Context,
	tx *gorm.DB,
	userID, gameID uuid.UUID,
) (*Review, error) {
	return gorm.G[*Review](tx).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		First(ctx)
}

func (r *reviewRepository) Create(ctx context.Context, tx *gorm.DB, review *Review) error {
	log := r.log.Function("Create")

	if err := gorm.G[Review](tx).Create(ctx, review); err != nil {
		return log.Err(
			"failed to create review",
			err,
			"userID", review.UserID,
			"gameID", review.GameID,
		)
	}

	return nil
}

func (r *reviewRepository) Update(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
	reviewText *string,
	rating int,
) error {
	log := r.log.Function("Update")

	result := tx.WithContext(ctx).
		Model(&Review{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"review_text": reviewText,
			"rating":      rating,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return log.Err("failed to update review", result.Error, "reviewID", id)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	log := r.log.Function("Delete")

	rowsAffected, err := gorm.G[*Review](tx).Where("id = ?", id).Delete(ctx)
	if err != nil {
		return log.Err("failed to delete review", err, "reviewID", id)
	}

	if rowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// DeleteByUserAndGame removes the review for one user and game, returning the
// number of rows removed. Zero rows is not an error here, callers treat an
// absent review as nothing to do.
func (r *reviewRepository) DeleteByUserAndGame(
	ctx context.Context,
	tx *gorm.DB,
	userID, gameID uuid.UUID,
) (int, error) {
	log := r.log.Function("DeleteByUserAndGame")

	rowsAffected, err := gorm.G[*Review](tx).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Delete(ctx)
	if err != nil {
		return 0, log.Err("failed to delete review", err, "userID", userID, "gameID", gameID)
	}

	return rowsAffected, nil
}

func (r *reviewRepository) ListByGame(
	ctx context.Context,
	tx *gorm.DB,
	gameID uuid.UUID,
) ([]ReviewWithUser, error) {
	log := r.log.Function("ListByGame")

	var reviews []ReviewWithUser
	err := tx.WithContext(ctx).
		Model(&Review{}).
		Select(`reviews.id,
			reviews.game_id,
			reviews.user_id,
			users.username,
			users.display_name,
			reviews.review_text,
			reviews.rating,
			reviews.created_at AS reviewed_at`).
		Joins("JOIN users ON users.id = reviews.user_id AND users.deleted_at IS NULL").
		Where("reviews.game_id = ?", gameID).
		Order("reviews.created_at DESC").
		Scan(&reviews).Error
	if err != nil {
		return nil, log.Err("failed to list reviews for game", err, "gameID", gameID)
	}

	return reviews, nil
}

func (r *reviewRepository) ListByUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) ([]Review, error) {
	return gorm.G[Review](tx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(ctx)
}
