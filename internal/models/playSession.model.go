package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlaySession records one sitting with a game. A nil EndTime marks the
// session as still open; the partial unique index created in
// database.CreateIndexes keeps at most one open session per (user, game).
type PlaySession struct {
	BaseModel
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_play_sessions_user" json:"userId" validate:"required"`
	GameID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_play_sessions_game" json:"gameId" validate:"required"`
	StartTime    time.Time  `gorm:"type:timestamp;not null;index:idx_play_sessions_start" json:"startTime"`
	EndTime      *time.Time `gorm:"type:timestamp" json:"endTime,omitempty"`
	SessionNotes *string    `gorm:"type:text" json:"sessionNotes,omitempty"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Game *Game `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"game,omitempty"`
}

func (ps *PlaySession) BeforeCreate(tx *gorm.DB) error {
	if ps.UserID == uuid.Nil || ps.GameID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	if ps.StartTime.IsZero() {
		ps.StartTime = time.Now().UTC()
	}
	return nil
}

// IsOpen reports whether the session has not been ended yet.
func (ps *PlaySession) IsOpen() bool {
	return ps.EndTime == nil
}

// Duration returns the elapsed play time of a closed session, zero for an
// open one.
func (ps *PlaySession) Duration() time.Duration {
	if ps.EndTime == nil {
		return 0
	}
	return ps.EndTime.Sub(ps.StartTime)
}
