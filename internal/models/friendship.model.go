package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "PENDING"
	FriendshipAccepted FriendshipStatus = "ACCEPTED"
)

// Friendship is a single row per pair, created by the initiator and accepted
// by the recipient. Both directions are checked in application logic before
// creation, so (A,B) and (B,A) never coexist.
type Friendship struct {
	BaseUUIDModel
	InitiatorID uuid.UUID        `gorm:"type:uuid;not null;index:idx_friendships_initiator" json:"initiatorId" validate:"required"`
	RecipientID uuid.UUID        `gorm:"type:uuid;not null;index:idx_friendships_recipient" json:"recipientId" validate:"required"`
	Status      FriendshipStatus `gorm:"type:text;not null;default:'PENDING'" json:"status"`

	Initiator *User `gorm:"foreignKey:InitiatorID;constraint:OnDelete:CASCADE" json:"initiator,omitempty"`
	Recipient *User `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE" json:"recipient,omitempty"`
}

func (f *Friendship) BeforeCreate(tx *gorm.DB) error {
	if f.InitiatorID == uuid.Nil || f.RecipientID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	if f.InitiatorID == f.RecipientID {
		return gorm.ErrInvalidValue
	}
	if f.Status == "" {
		f.Status = FriendshipPending
	}
	return nil
}

// Involves reports whether userID is one of the two parties.
func (f *Friendship) Involves(userID uuid.UUID) bool {
	return f.InitiatorID == userID || f.RecipientID == userID
}

// OtherParty returns the friend's ID from userID's perspective.
func (f *Friendship) OtherParty(userID uuid.UUID) uuid.UUID {
	if f.InitiatorID == userID {
		return f.RecipientID
	}
	return f.InitiatorID
}
