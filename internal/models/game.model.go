package models

import (
	"time"

	"gorm.io/datatypes"
)

type Game struct {
	BaseUUIDModel
	ExternalAPIID *string                       `gorm:"type:text;index" json:"externalApiId,omitempty"`
	Title         string                        `gorm:"type:text;not null;index" json:"title" validate:"required"`
	Developer     *string                       `gorm:"type:text"             json:"developer,omitempty"`
	ReleaseDate   *time.Time                    `gorm:"type:date"             json:"releaseDate,omitempty"`
	CoverImageURL *string                       `gorm:"type:text"             json:"coverImageUrl,omitempty"`
	Genres        datatypes.JSONSlice[string]   `gorm:"type:jsonb"            json:"genres"`
	Platforms     datatypes.JSONSlice[string]   `gorm:"type:jsonb"            json:"platforms"`

	Achievements []Achievement `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"achievements,omitempty"`
}
