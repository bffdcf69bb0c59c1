package repositories

import (
	"context"
	"time"

	"gamehub/internal/database"
	. "gamehub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CollectionRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*CollectionEntry, error)
	GetByUserAndGame(ctx context.Context, tx *gorm.DB, userID, gameID uuid.UUID) (*CollectionEntry, error)
	Create(ctx context.Context, tx *gorm.DB, entry *CollectionEntry) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, status *PlayStatus) ([]CollectionEntry, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status PlayStatus) error
	UpdateRating(ctx context.Context, tx *gorm.DB, id uuid.UUID, rating *int) error
	UpdateNotes(ctx context.Context, tx *gorm.DB, id uuid.UUID, notes *string) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	DeleteByUserAndGame(ctx context.Context, tx *gorm.DB, userID, gameID uuid.UUID) (int, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
}

type collectionRepository struct {
	cache database.CacheClient
	log   logger.Logger
}

func NewCollectionRepository(cache database.CacheClient) CollectionRepository {
	return &collectionRepository{
		cache: cache,
		log:   logger.New("collectionRepository"),
	}
}

func (r *collectionRepository) GetByID(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
) (*CollectionEntry, error) {
	var entry CollectionEntry
	err := tx.WithContext(ctx).Preload("Game").Where("id = ?", id).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *collectionRepository) GetByUserAndGame(
	ctx context.Context,
	tx *gorm.DB,
	userID, gameID uuid.UUID,
) (*CollectionEntry, error) {
	return gorm.G[*CollectionEntry](tx).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		First(ctx)
}

func (r *collectionRepository) Create(
	ctx context.Context,
	tx *gorm.DB,
	entry *CollectionEntry,
) error {
	log := r.log.Function("Create")

	if err := gorm.G[CollectionEntry](tx).Create(ctx, entry); err != nil {
		return log.Err(
			"failed to create collection entry",
			err,
			"userID", entry.UserID,
			"gameID", entry.GameID,
		)
	}

	return nil
}

func (r *collectionRepository) ListByUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	status *PlayStatus,
) ([]CollectionEntry, error) {
	log := r.log.Function("ListByUser")

	query := tx.WithContext(ctx).
		Preload("Game").
		Where("user_id = ?", userID)

	if status != nil {
		query = query.Where("play_status = ?", *status)
	}

	var entries []CollectionEntry
	if err := query.Order("updated_at DESC").Find(&entries).Error; err != nil {
		return nil, log.Err("failed to list collection entries", err, "userID", userID)
	}

	return entries, nil
}

func (r *collectionRepository) UpdateStatus(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
	status PlayStatus,
) error {
	log := r.log.Function("UpdateStatus")

	result := tx.WithContext(ctx).
		Model(&CollectionEntry{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"play_status": status,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return log.Err("failed to update play status", result.Error, "entryID", id)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *collectionRepository) UpdateRating(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
	rating *int,
) error {
	log := r.log.Function("UpdateRating")

	result := tx.WithContext(ctx).
		Model(&CollectionEntry{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"rating":     rating,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return log.Err("failed to update rating", result.Error, "entryID", id)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *collectionRepository) UpdateNotes(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
	notes *string,
) error {
	log := r.log.Function("UpdateNotes")

	result := tx.WithContext(ctx).
		Model(&CollectionEntry{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"personal_notes": notes,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return log.Err("failed to update notes", result.Error, "entryID", id)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *collectionRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	log := r.log.Function("Delete")

	rowsAffected, err := gorm.G[*CollectionEntry](tx).Where("id = ?", id).Delete(ctx)
	if err != nil {
		return log.Err("failed to delete collection entry", err, "entryID", id)
	}

	if rowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// DeleteByUserAndGame removes the entry for one user and game, returning the
// number of rows removed so callers can report it.
func (r *collectionRepository) DeleteByUserAndGame(
	ctx context.Context,
	tx *gorm.DB,
	userID, gameID uuid.UUID,
) (int, error) {
	log := r.log.Function("DeleteByUserAndGame")

	rowsAffected, err := gorm.G[*CollectionEntry](tx).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Delete(ctx)
	if err != nil {
		return 0, log.Err(
			"failed to delete collection entry",
			err,
			"userID", userID,
			"gameID", gameID,
		)
	}

	return rowsAffected, nil
}

func (r *collectionRepository) CountByUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).
		Model(&CollectionEntry{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
