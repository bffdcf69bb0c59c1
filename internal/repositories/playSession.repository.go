package repositories

import (
	"context"
	"time"

	. "gamehub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionFilter narrows session listings for one user.
type SessionFilter struct {
	GameID   *uuid.UUID
	OpenOnly bool
	Limit    int
	Offset   int
}

type PlaySessionRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*PlaySession, error)
	GetOpenByUserAndGame(ctx context.Context, tx *gorm.DB, userID, gameID uuid.UUID) (*PlaySession, error)
	Create(ctx context.Context, tx *gorm.DB, session *PlaySession) error
	End(ctx context.Context, tx *gorm.DB, id int, endTime time.Time, notes *string) error
	UpdateNotes(ctx context.Context, tx *gorm.DB, id int, notes *string) error
	Delete(ctx context.Context, tx *gorm.DB, id int) error
	DeleteByUserAndGame(ctx context.Context, tx *gorm.DB, userID, gameID uuid.UUID) (int, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, filter SessionFilter) ([]PlaySession, error)
	ListCompletedByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, gameID *uuid.UUID) ([]PlaySession, error)
	ListStaleOpen(ctx context.Context, tx *gorm.DB, olderThan time.Time) ([]PlaySession, error)
}

type playSessionRepository struct {
	log logger.Logger
}

func NewPlaySessionRepository() PlaySessionRepository {
	return &playSessionRepository{
		log: logger.New("playSessionRepository"),
	}
}

func (r *playSessionRepository) GetByID(
	ctx context.Context,
	tx *gorm.DB,
	id int,
) (*PlaySession, error) {
	return gorm.G[*PlaySession](tx).Where("id = ?", id).First(ctx)
}

func (r *playSessionRepository) GetOpenByUserAndGame(
	ctx context.Context,
	tx *gorm.DB,
	userID, gameID uuid.UUID,
) (*PlaySession, error) {
	return gorm.G[*PlaySession](tx).
		Where("user_id = ? AND game_id = ? AND end_time IS NULL", userID, gameID).
		First(ctx)
}

func (r *playSessionRepository) Create(
	ctx context.Context,
	tx *gorm.DB,
	session *PlaySession,
) error {
	log := r.log.Function("Create")

	if err := gorm.G[PlaySession](tx).Create(ctx, session); err != nil {
		return log.Err(
			"failed to create play session",
			err,
			"userID", session.UserID,
			"gameID", session.GameID,
		)
	}

	return nil
}

func (r *playSessionRepository) End(
	ctx context.Context,
	tx *gorm.DB,
	id int,
	endTime time.Time,
	notes *string,
) error {
	log := r.log.Function("End")

	updates := map[string]any{
		"end_time":   endTime,
		"updated_at": time.Now(),
	}
	if notes != nil {
		updates["session_notes"] = notes
	}

	result := tx.WithContext(ctx).
		Model(&PlaySession{}).
		Where("id = ? AND end_time IS NULL", id).
		Updates(updates)
	if result.Error != nil {
		return log.Err("failed to end play session", result.Error, "sessionID", id)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *playSessionRepository) UpdateNotes(
	ctx context.Context,
	tx *gorm.DB,
	id int,
	notes *string,
) error {
	log := r.log.Function("UpdateNotes")

	result := tx.WithContext(ctx).
		Model(&PlaySession{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"session_notes": notes,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return log.Err("failed to update session notes", result.Error, "sessionID", id)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *playSessionRepository) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	log := r.log.Function("Delete")

	rowsAffected, err := gorm.G[*PlaySession](tx).Where("id = ?", id).Delete(ctx)
	if err != nil {
		return log.Err("failed to delete play session", err, "sessionID", id)
	}

	if rowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// DeleteByUserAndGame removes every session a user logged for a game,
// returning how many were removed.
func (r *playSessionRepository) DeleteByUserAndGame(
	ctx context.Context,
	tx *gorm.DB,
	userID, gameID uuid.UUID,
) (int, error) {
	log := r.log.Function("DeleteByUserAndGame")

	rowsAffected, err := gorm.G[*PlaySession](tx).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Delete(ctx)
	if err != nil {
		return 0, log.Err(
			"failed to delete play sessions",
			err,
			"userID", userID,
			"gameID", gameID,
		)
	}

	return rowsAffected, nil
}

func (r *playSessionRepository) ListByUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	filter SessionFilter,
) ([]PlaySession, error) {
	log := r.log.Function("ListByUser")

	query := tx.WithContext(ctx).Where("user_id = ?", userID)

	if filter.GameID != nil {
		query = query.Where("game_id = ?", *filter.GameID)
	}

	if filter.OpenOnly {
		query = query.Where("end_time IS NULL")
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	query = query.Offset(filter.Offset).Order("start_time DESC")

	var sessions []PlaySession
	if err := query.Find(&sessions).Error; err != nil {
		return nil, log.Err("failed to list play sessions", err, "userID", userID)
	}

	return sessions, nil
}

func (r *playSessionRepository) ListCompletedByUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	gameID *uuid.UUID,
) ([]PlaySession, error) {
	log := r.log.Function("ListCompletedByUser")

	query := tx.WithContext(ctx).Where("user_id = ? AND end_time IS NOT NULL", userID)
	if gameID != nil {
		query = query.Where("game_id = ?", *gameID)
	}

	var sessions []PlaySession
	if err := query.Order("start_time DESC").Find(&sessions).Error; err != nil {
		return nil, log.Err("failed to list completed sessions", err, "userID", userID)
	}

	return sessions, nil
}

// ListStaleOpen returns sessions still open whose start time is before the
// cutoff. The stale session job closes these.
func (r *playSessionRepository) ListStaleOpen(
	ctx context.Context,
	tx *gorm.DB,
	olderThan time.Time,
) ([]PlaySession, error) {
	return gorm.G[PlaySession](tx).
		Where("end_time IS NULL AND start_time < ?", olderThan).
		Find(ctx)
}
