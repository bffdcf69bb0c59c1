package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFriendship_Involves(t *testing.T) {
	initiator := uuid.New()
	recipient := uuid.New()
	stranger := uuid.New()

	friendship := &Friendship{
		InitiatorID: initiator,
		RecipientID: recipient,
	}

	assert.True(t, friendship.Involves(initiator))
	assert.True(t, friendship.Involves(recipient))
	assert.False(t, friendship.Involves(stranger))
}

func TestFriendship_OtherParty(t *testing.T) {
	initiator := uuid.New()
	recipient := uuid.New()

	friendship := &Friendship{
		InitiatorID: initiator,
		RecipientID: recipient,
	}

	assert.Equal(t, recipient, friendship.OtherParty(initiator))
	assert.Equal(t, initiator, friendship.OtherParty(recipient))
}
