package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUser_IsAdmin(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		expected bool
	}{
		{
			name:     "Admin role",
			role:     RoleAdmin,
			expected: true,
		},
		{
			name:     "User role",
			role:     RoleUser,
			expected: false,
		},
		{
			name:     "Empty role",
			role:     "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &User{Role: tt.role}
			assert.Equal(t, tt.expected, user.IsAdmin())
		})
	}
}

func TestUser_CanModify(t *testing.T) {
	ownerID := uuid.New()
	otherID := uuid.New()

	t.Run("Owner can modify own resource", func(t *testing.T) {
		user := &User{BaseUUIDModel: BaseUUIDModel{ID: ownerID}, Role: RoleUser}
		assert.True(t, user.CanModify(ownerID))
	})

	t.Run("Other user cannot modify", func(t *testing.T) {
		user := &User{BaseUUIDModel: BaseUUIDModel{ID: otherID}, Role: RoleUser}
		assert.False(t, user.CanModify(ownerID))
	})

	t.Run("Admin can modify any resource", func(t *testing.T) {
		user := &User{BaseUUIDModel: BaseUUIDModel{ID: otherID}, Role: RoleAdmin}
		assert.True(t, user.CanModify(ownerID))
	})
}

func TestUser_ToProfile(t *testing.T) {
	user := &User{
		BaseUUIDModel: BaseUUIDModel{ID: uuid.New()},
		Username:      "player_one",
		Email:         "player.one@example.com",
		DisplayName:   "Player One",
		Role:          RoleUser,
	}

	profile := user.ToProfile()
	assert.Equal(t, user.ID.String(), profile.ID)
	assert.Equal(t, "player_one", profile.Username)
	assert.Equal(t, "player.one@example.com", profile.Email)

	public := user.ToPublicProfile()
	assert.Equal(t, user.ID.String(), public.ID)
	assert.Equal(t, "player_one", public.Username)
}
