package repositories

import (
	"context"
	"time"

	. "gamehub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FriendshipRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Friendship, error)
	GetByPair(ctx context.Context, tx *gorm.DB, userA, userB uuid.UUID) (*Friendship, error)
	Create(ctx context.Context, tx *gorm.DB, friendship *Friendship) error
	Accept(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	ListAcceptedByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]Friendship, error)
	ListPendingForUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]Friendship, error)
	ListSentByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]Friendship, error)
}

type friendshipRepository struct {
	log logger.Logger
}

func NewFriendshipRepository() FriendshipRepository {
	return &friendshipRepository{
		log: logger.New("friendshipRepository"),
	}
}

func (r *friendshipRepository) GetByID(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
) (*Friendship, error) {
	var friendship Friendship
	err := tx.WithContext(ctx).
		Preload("Initiator").
		Preload("Recipient").
		Where("id = ?", id).
		First(&friendship).Error
	if err != nil {
		return nil, err
	}
	return &friendship, nil
}

// GetByPair looks the friendship up in both directions.
func (r *friendshipRepository) GetByPair(
	ctx context.Context,
	tx *gorm.DB,
	userA, userB uuid.UUID,
) (*Friendship, error) {
	return gorm.G[*Friendship](tx).
		Where(
			"(initiator_id = ? AND recipient_id = ?) OR (initiator_id = ? AND recipient_id = ?)",
			userA, userB, userB, userA,
		).
		First(ctx)
}

func (r *friendshipRepository) Create(
	ctx context.Context,
	tx *gorm.DB,
	friendship *Friendship,
) error {
	log := r.log.Function("Create")

	if err := gorm.G[Friendship](tx).Create(ctx, friendship); err != nil {
		return log.Err(
			"failed to create friendship",
			err,
			"initiatorID", friendship.InitiatorID,
			"recipientID", friendship.RecipientID,
		)
	}

	return nil
}

func (r *friendshipRepository) Accept(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	log := r.log.Function("Accept")

	result := tx.WithContext(ctx).
		Model(&Friendship{}).
		Where("id = ? AND status = ?", id, FriendshipPending).
		Updates(map[string]any{
			"status":     FriendshipAccepted,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return log.Err("failed to accept friendship", result.Error, "friendshipID", id)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *friendshipRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	log := r.log.Function("Delete")

	rowsAffected, err := gorm.G[*Friendship](tx).Where("id = ?", id).Delete(ctx)
	if err != nil {
		return log.Err("failed to delete friendship", err, "friendshipID", id)
	}

	if rowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *friendshipRepository) ListAcceptedByUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) ([]Friendship, error) {
	log := r.log.Function("ListAcceptedByUser")

	var friendships []Friendship
	err := tx.WithContext(ctx).
		Preload("Initiator").
		Preload("Recipient").
		Where(
			"(initiator_id = ? OR recipient_id = ?) AND status = ?",
			userID, userID, FriendshipAccepted,
		).
		Order("updated_at DESC").
		Find(&friendships).Error
	if err != nil {
		return nil, log.Err("failed to list friendships", err, "userID", userID)
	}

	return friendships, nil
}

// ListPendingForUser returns requests awaiting this user's answer.
func (r *friendshipRepository) ListPendingForUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) ([]Friendship, error) {
	log := r.log.Function("ListPendingForUser")

	var friendships []Friendship
	err := tx.WithContext(ctx).
		Preload("Initiator").
		Where("recipient_id = ? AND status = ?", userID, FriendshipPending).
		Order("created_at DESC").
		Find(&friendships).Error
	if err != nil {
		return nil, log.Err("failed to list pending requests", err, "userID", userID)
	}

	return friendships, nil
}

// ListSentByUser returns requests this user has sent that are still pending.
func (r *friendshipRepository) ListSentByUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
) ([]Friendship, error) {
	log := r.log.Function("ListSentByUser")

	var friendships []Friendship
	err := tx.WithContext(ctx).
		Preload("Recipient").
		Where("initiator_id = ? AND status = ?", userID, FriendshipPending).
		Order("created_at DESC").
		Find(&friendships).Error
	if err != nil {
		return nil, log.Err("failed to list sent requests", err, "userID", userID)
	}

	return friendships, nil
}
