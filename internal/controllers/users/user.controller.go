package userController

import (
	"context"
	"errors"
	"strings"

	"gamehub/config"
	"gamehub/internal/database"
	. "gamehub/internal/models"
	"gamehub/internal/repositories"
	"gamehub/internal/services"

	"gamehub/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MaxDisplayNameLength = 64
	MaxSearchResults     = 25
	MaxListPageSize      = 50
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)

type UserController struct {
	userRepo repositories.UserRepository
	db       database.DB
	Config   config.Config
}

type UpdateProfileRequest struct {
	DisplayName       *string `json:"displayName,omitempty"`
	ProfilePictureURL *string `json:"profilePictureUrl,omitempty"`
}

type ChangeRoleRequest struct {
	Role Role `json:"role"`
}

type UserControllerInterface interface {
	GetProfile(ctx context.Context, user *User) (*UserProfile, error)
	GetPublicProfile(ctx context.Context, userID uuid.UUID) (*PublicProfile, error)
	UpdateProfile(ctx context.Context, user *User, request *UpdateProfileRequest) (*UserProfile, error)
	ClearProfilePicture(ctx context.Context, actor *User, userID uuid.UUID) (*string, error)
	SearchUsers(ctx context.Context, query string) ([]PublicProfile, error)
	ListUsers(ctx context.Context, actor *User, page, pageSize int) ([]UserProfile, error)
	ChangeRole(ctx context.Context, actor *User, userID uuid.UUID, request *ChangeRoleRequest) (*UserProfile, error)
	DeleteUser(ctx context.Context, actor *User, userID uuid.UUID) error
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) UserControllerInterface {
	return &UserController{
		userRepo: repos.User,
		db:       db,
		Config:   config,
	}
}

func (c *UserController) GetProfile(ctx context.Context, user *User) (*UserProfile, error) {
	profile := user.ToProfile()
	return &profile, nil
}

func (c *UserController) GetPublicProfile(
	ctx context.Context,
	userID uuid.UUID,
) (*PublicProfile, error) {
	log := logger.NewWithContext(ctx, "userController").Function("GetPublicProfile")

	if userID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "userId is required")
	}

	user, err := c.userRepo.GetByID(ctx, c.db.SQL, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "user not found", "userID", userID)
		}
		return nil, log.Error("failed to load user", "error", err)
	}

	profile := user.ToPublicProfile()
	return &profile, nil
}

func (c *UserController) UpdateProfile(
	ctx context.Context,
	user *User,
	request *UpdateProfileRequest,
) (*UserProfile, error) {
	log := logger.NewWithContext(ctx, "userController").Function("UpdateProfile")

	if request.DisplayName != nil {
		displayName := strings.TrimSpace(*request.DisplayName)
		if displayName == "" || len(displayName) > MaxDisplayNameLength {
			return nil, log.ErrorWithType(ErrValidation, "invalid display name")
		}
		user.DisplayName = displayName
	}

	if request.ProfilePictureURL != nil {
		user.ProfilePictureURL = request.ProfilePictureURL
	}

	if err := c.userRepo.Update(ctx, c.db.SQL, user); err != nil {
		return nil, log.Error("failed to update profile", "error", err, "userID", user.ID)
	}

	log.Info("Profile updated", "userID", user.ID)

	profile := user.ToProfile()
	return &profile, nil
}

func (c *UserController) SearchUsers(ctx context.Context, query string) ([]PublicProfile, error) {
	log := logger.NewWithContext(ctx, "userController").Function("SearchUsers")

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, log.ErrorWithType(ErrValidation, "search query is required")
	}

	users, err := c.userRepo.Search(ctx, c.db.SQL, query, MaxSearchResults, 0)
	if err != nil {
		return nil, log.Error("failed to search users", "error", err, "query", query)
	}

	profiles := make([]PublicProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].ToPublicProfile())
	}

	return profiles, nil
}

// DeleteUser removes an account. Users may delete themselves, admins may
// delete anyone.
func (c *UserController) DeleteUser(ctx context.Context, actor *User, userID uuid.UUID) error {
	log := logger.NewWithContext(ctx, "userController").Function("DeleteUser")

	if userID == uuid.Nil {
		return log.ErrorWithType(ErrValidation, "userId is required")
	}

	if !actor.CanModify(userID) {
		return log.ErrorWithType(ErrForbidden, "cannot delete another user's account")
	}

	if err := c.userRepo.Delete(ctx, c.db.SQL, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return log.ErrorWithType(ErrNotFound, "user not found", "userID", userID)
		}
		return log.Error("failed to delete user", "error", err, "userID", userID)
	}

	log.Info("User deleted", "actorID", actor.ID, "userID", userID)

	return nil
}

// ClearProfilePicture removes the stored picture URL and returns the old one
// so the caller can clean up the file. Admins may clear any user's picture.
func (c *UserController) ClearProfilePicture(
	ctx context.Context,
	actor *User,
	userID uuid.UUID,
) (*string, error) {
	log := logger.NewWithContext(ctx, "userController").Function("ClearProfilePicture")

	if userID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "userId is required")
	}

	if !actor.CanModify(userID) {
		return nil, log.ErrorWithType(ErrForbidden, "cannot modify another user's profile picture")
	}

	user := actor
	if userID != actor.ID {
		loaded, err := c.userRepo.GetByID(ctx, c.db.SQL, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, log.ErrorWithType(ErrNotFound, "user not found", "userID", userID)
			}
			return nil, log.Error("failed to load user", "error", err)
		}
		user = loaded
	}

	oldURL := user.ProfilePictureURL
	user.ProfilePictureURL = nil

	if err := c.userRepo.Update(ctx, c.db.SQL, user); err != nil {
		return nil, log.Error("failed to clear profile picture", "error", err, "userID", userID)
	}

	log.Info("Profile picture cleared", "actorID", actor.ID, "userID", userID)

	return oldURL, nil
}

func (c *UserController) ListUsers(
	ctx context.Context,
	actor *User,
	page, pageSize int,
) ([]UserProfile, error) {
	log := logger.NewWithContext(ctx, "userController").Function("ListUsers")

	if !actor.IsAdmin() {
		return nil, log.ErrorWithType(ErrForbidden, "only admins can list users")
	}

	if pageSize <= 0 || pageSize > MaxListPageSize {
		pageSize = MaxListPageSize
	}
	if page < 0 {
		page = 0
	}

	users, err := c.userRepo.List(ctx, c.db.SQL, pageSize, page*pageSize)
	if err != nil {
		return nil, log.Error("failed to list users", "error", err)
	}

	profiles := make([]UserProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].ToProfile())
	}

	return profiles, nil
}

// ChangeRole promotes or demotes a user. Admins cannot change their own role.
func (c *UserController) ChangeRole(
	ctx context.Context,
	actor *User,
	userID uuid.UUID,
	request *ChangeRoleRequest,
) (*UserProfile, error) {
	log := logger.NewWithContext(ctx, "userController").Function("ChangeRole")

	if !actor.IsAdmin() {
		return nil, log.ErrorWithType(ErrForbidden, "only admins can change roles")
	}

	if userID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "userId is required")
	}

	if userID == actor.ID {
		return nil, log.ErrorWithType(ErrValidation, "cannot change your own role")
	}

	if request.Role != RoleUser && request.Role != RoleAdmin {
		return nil, log.ErrorWithType(ErrValidation, "invalid role", "role", request.Role)
	}

	user, err := c.userRepo.GetByID(ctx, c.db.SQL, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "user not found", "userID", userID)
		}
		return nil, log.Error("failed to load user", "error", err)
	}

	user.Role = request.Role

	if err := c.userRepo.Update(ctx, c.db.SQL, user); err != nil {
		return nil, log.Error("failed to change role", "error", err, "userID", userID)
	}

	log.Info("User role changed", "actorID", actor.ID, "userID", userID, "role", request.Role)

	profile := user.ToProfile()
	return &profile, nil
}
