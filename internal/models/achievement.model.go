package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityUncommon  Rarity = "UNCOMMON"
	RarityRare      Rarity = "RARE"
	RarityEpic      Rarity = "EPIC"
	RarityLegendary Rarity = "LEGENDARY"
)

func ValidRarity(r Rarity) bool {
	switch r {
	case RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary:
		return true
	}
	return false
}

type Achievement struct {
	BaseUUIDModel
	GameID      uuid.UUID `gorm:"type:uuid;not null;index:idx_achievements_game" json:"gameId" validate:"required"`
	Name        string    `gorm:"type:text;not null" json:"name" validate:"required"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	Rarity      *Rarity   `gorm:"type:text" json:"rarity,omitempty"`
	PointsValue int       `gorm:"type:int;not null;default:0" json:"pointsValue"`
	IconURL     *string   `gorm:"type:text" json:"iconUrl,omitempty"`

	Game *Game `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"game,omitempty"`
}

func (a *Achievement) BeforeCreate(tx *gorm.DB) error {
	if a.GameID == uuid.Nil || a.Name == "" {
		return gorm.ErrInvalidValue
	}
	if a.Rarity != nil && !ValidRarity(*a.Rarity) {
		return gorm.ErrInvalidValue
	}
	return nil
}

// UserAchievement marks an achievement as earned by a user.
type UserAchievement struct {
	BaseUUIDModel
	UserID        uuid.UUID `gorm:"type:uuid;not null;index:idx_user_achievements_user" json:"userId" validate:"required"`
	AchievementID uuid.UUID `gorm:"type:uuid;not null;index:idx_user_achievements_achievement" json:"achievementId" validate:"required"`
	DateEarned    time.Time `gorm:"type:timestamp;not null" json:"dateEarned"`

	User        *User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Achievement *Achievement `gorm:"foreignKey:AchievementID;constraint:OnDelete:CASCADE" json:"achievement,omitempty"`
}

func (ua *UserAchievement) BeforeCreate(tx *gorm.DB) error {
	if ua.UserID == uuid.Nil || ua.AchievementID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	if ua.DateEarned.IsZero() {
		ua.DateEarned = time.Now().UTC()
	}
	return nil
}

// EarnedAchievement is the read shape joining an achievement definition with
// the date the user earned it.
type EarnedAchievement struct {
	ID          uuid.UUID `json:"id"`
	GameID      uuid.UUID `json:"gameId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Rarity      *Rarity   `json:"rarity,omitempty"`
	PointsValue int       `json:"pointsValue"`
	IconURL     *string   `json:"iconUrl,omitempty"`
	DateEarned  time.Time `json:"dateEarned"`
}
