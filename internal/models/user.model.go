package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	BaseUUIDModel
	Username          string  `gorm:"type:text;not null;index" json:"username"`
	Email             string  `gorm:"type:text;not null;index" json:"email"`
	PasswordHash      string  `gorm:"type:text;not null"             json:"-"`
	DisplayName       string  `gorm:"type:text"                      json:"displayName"`
	Role              Role    `gorm:"type:text;not null;default:'USER'" json:"role"`
	ProfilePictureURL *string `gorm:"type:text"                      json:"profilePictureUrl,omitempty"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanModify is the single ownership check used by handlers and controllers:
// a resource owned by ownerID may be modified by its owner or by an admin.
func (u *User) CanModify(ownerID uuid.UUID) bool {
	return u.ID == ownerID || u.IsAdmin()
}

// UserProfile is the private view of an account, returned to its owner.
type UserProfile struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	DisplayName       string    `json:"displayName"`
	Role              Role      `json:"role"`
	ProfilePictureURL *string   `json:"profilePictureUrl,omitempty"`
	JoinedAt          time.Time `json:"joinedAt"`
}

// PublicProfile is the view of an account exposed to other users.
type PublicProfile struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	DisplayName       string    `json:"displayName"`
	ProfilePictureURL *string   `json:"profilePictureUrl,omitempty"`
	JoinedAt          time.Time `json:"joinedAt"`
}

func (u *User) ToProfile() UserProfile {
	return UserProfile{
		ID:                u.ID.String(),
		Username:          u.Username,
		Email:             u.Email,
		DisplayName:       u.DisplayName,
		Role:              u.Role,
		ProfilePictureURL: u.ProfilePictureURL,
		JoinedAt:          u.CreatedAt,
	}
}

func (u *User) ToPublicProfile() PublicProfile {
	return PublicProfile{
		ID:                u.ID.String(),
		Username:          u.Username,
		DisplayName:       u.DisplayName,
		ProfilePictureURL: u.ProfilePictureURL,
		JoinedAt:          u.CreatedAt,
	}
}
