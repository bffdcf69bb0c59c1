package repositories

import (
	"context"

	. "gamehub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AchievementRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Achievement, error)
	Create(ctx context.Context, tx *gorm.DB, achievement *Achievement) error
	Update(ctx context.Context, tx *gorm.DB, achievement *Achievement) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	ListByGame(ctx context.Context, tx *gorm.DB, gameID uuid.UUID) ([]Achievement, error)
	GetEarned(ctx context.Context, tx *gorm.DB, userID, achievementID uuid.UUID) (*UserAchievement, error)
	Earn(ctx context.Context, tx *gorm.DB, earned *UserAchievement) error
	Unearn(ctx context.Context, tx *gorm.DB, userID, achievementID uuid.UUID) error
	ListEarnedByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]EarnedAchievement, error)
	TotalPoints(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type achievementRepository struct {
	log logger.Logger
}

func NewAchievementRepository() AchievementRepository {
	return &achievementRepository{
		log: logger.New("achievementRepository"),
	}
}

func (r *achievementRepository) GetByID(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
) (*Achievement, error) {
	return gorm.G[*Achievement](tx).Where("id = ?", id).First(ctx)
}

func (r *achievementRepository) Create(
	ctx context.Context,
	tx *gorm.DB,
	achievement *Achievement,
) error {
	log := r.log.Function("Create")

	if err := gorm.G[Achievement](tx).Create(ctx, achievement); err != nil {
		return log.Err(
			"failed to create achievement",
			err,
			"gameID", achievement.GameID,
			"name", achievement.Name,
		)
	}

	return nil
}

func (r *achievementRepository) Update(
	ctx context.Context,
	tx *gorm.DB,
	achievement *Achievement,
) error {
	log := r.log.Function("Update")

	if err := tx.WithContext(ctx).Save(achievement).Error; err != nil {
		return log.Err("failed to update achievement", err, "achievementID", achievement.ID)
	}

	return nil
}

func (r *achievementRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	log := r.log.Function("Delete")

	rowsAffected, err := gorm.G[*Achievement](tx).Where("id = ?", id).Delete(ctx)
	if err != nil {
		return log.Err("failed to delete achievement", err, "achievementID", id)
	}

	if rowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *achievementRepository) ListByGame(
	ctx context.Context,
	tx *gorm.DB,
	gameID uuid.UUID,
) ([]Achievement, error) {
	return gorm.G[Achievement](tx).
		Where("game_id = ?", gameID).
		Order("points_value DESC, name ASC").
		Find(ctx)
}

func (r *achievementRepository) GetEarned(
	ctx context.Context,
	tx *gorm.DB,
	userID, achievementID uuid.UUID,
) (*UserAchievement, error) {
	return gorm.G[*UserAchievement](tx).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		First(ctx)
}

func (r *achievementRepository) Earn(
	ctx context.Context,
	tx *gorm.DB,
	earned *UserAchievement,
) error {
	log := r.log.Function("Earn")

	if err := gorm.G[UserAchievement](tx).Create(ctx, earned); err != nil {
		return log.Err(
			"failed to record earned achievement",
			err,
			"userID", earned.UserID,
			"achievementID", earned.AchievementID,
		)
	}

	return nil
}

func (r *achievementRepository) Unearn(
	ctx context.Context,
	tx *gorm.DB,
	userID, achievementID uuid.UUID,
) error {
	log := r.log.Function("Unearn")

	rowsAffected, err := gorm.G[*UserAchievement](tx).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		Delete(ctx)
	if err != nil {
		return log.Err(
			"failed to remove earned achievement",
			err,
			"userID", userID,
			"achievementID", achievementID,
		)
	}

	if rowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *achievementRepository) ListEarnedByUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) ([]EarnedAchievement, error) {
	log := r.log.Function("ListEarnedByUser")

	var earned []EarnedAchievement
	err := tx.WithContext(ctx).
		Model(&UserAchievement{}).
		Select(`user_achievements.achievement_id,
			achievements.game_id,
			achievements.name,
			achievements.description,
			achievements.rarity,
			achievements.points_value,
			achievements.icon_url,
			user_achievements.date_earned`).
		Joins("JOIN achievements ON achievements.id = user_achievements.achievement_id AND achievements.deleted_at IS NULL").
		Where("user_achievements.user_id = ?", userID).
		Order("user_achievements.date_earned DESC").
		Scan(&earned).Error
	if err != nil {
		return nil, log.Err("failed to list earned achievements", err, "userID", userID)
	}

	return earned, nil
}

func (r *achievementRepository) TotalPoints(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) (int64, error) {
	var total int64
	err := tx.WithContext(ctx).
		Model(&UserAchievement{}).
		Select("COALESCE(SUM(achievements.points_value), 0)").
		Joins("JOIN achievements ON achievements.id = user_achievements.achievement_id AND achievements.deleted_at IS NULL").
		Where("user_achievements.user_id = ?", userID).
		Scan(&total).Error
	return total, err
}
