package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlayStatus string

const (
	StatusNotStarted PlayStatus = "NOT_STARTED"
	StatusInProgress PlayStatus = "IN_PROGRESS"
	StatusCompleted  PlayStatus = "COMPLETED"
	StatusDropped    PlayStatus = "DROPPED"
)

// ValidPlayStatus reports whether s is one of the four tracked statuses.
func ValidPlayStatus(s PlayStatus) bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusDropped:
		return true
	}
	return false
}

// CollectionEntry tracks one game in one user's collection. A partial unique
// index on (user_id, game_id), created in CreateIndexes, guarantees a single
// live entry per pair while letting a removed game be added again.
type CollectionEntry struct {
	BaseUUIDModel
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index:idx_collection_user" json:"userId" validate:"required"`
	GameID        uuid.UUID  `gorm:"type:uuid;not null;index:idx_collection_game" json:"gameId" validate:"required"`
	PlayStatus    PlayStatus `gorm:"type:text;not null;default:'NOT_STARTED'" json:"playStatus"`
	PersonalNotes *string    `gorm:"type:text" json:"personalNotes,omitempty"`
	Rating        *int       `gorm:"type:int;check:rating >= 1 AND rating <= 5" json:"rating,omitempty"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Game *Game `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"game,omitempty"`
}

func (e *CollectionEntry) BeforeCreate(tx *gorm.DB) error {
	if e.UserID == uuid.Nil || e.GameID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	if e.PlayStatus == "" {
		e.PlayStatus = StatusNotStarted
	}
	if !ValidPlayStatus(e.PlayStatus) {
		return gorm.ErrInvalidValue
	}
	if e.Rating != nil && (*e.Rating < 1 || *e.Rating > 5) {
		return gorm.ErrInvalidValue
	}
	return nil
}
