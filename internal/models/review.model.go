package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review holds a user's public rating of a game. A partial unique index on
// (user_id, game_id), created in CreateIndexes, enforces one live review per
// pair at the database level rather than trusting pre-check queries alone.
type Review struct {
	BaseUUIDModel
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_reviews_user" json:"userId" validate:"required"`
	GameID     uuid.UUID `gorm:"type:uuid;not null;index:idx_reviews_game" json:"gameId" validate:"required"`
	ReviewText *string   `gorm:"type:text" json:"reviewText,omitempty"`
	Rating     int       `gorm:"type:int;not null;check:rating >= 1 AND rating <= 5" json:"rating" validate:"required"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Game *Game `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"game,omitempty"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.UserID == uuid.Nil || r.GameID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	if r.Rating < 1 || r.Rating > 5 {
		return gorm.ErrInvalidValue
	}
	return nil
}

// ReviewWithUser is the read shape for review listings, carrying enough
// reviewer info to render without a second lookup.
type ReviewWithUser struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"userId"`
	GameID            uuid.UUID `json:"gameId"`
	ReviewText        *string   `json:"reviewText,omitempty"`
	Rating            int       `json:"rating"`
	ReviewedAt        time.Time `json:"reviewedAt"`
	Username          string    `json:"username"`
	DisplayName       string    `json:"displayName"`
	ProfilePictureURL *string   `json:"profilePictureUrl,omitempty"`
}
