package userController

import (
	"context"
	"testing"

	"gamehub/internal/database"
	. "gamehub/internal/models"
	"gamehub/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	repositories.UserRepository
	users map[uuid.UUID]*User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, tx *gorm.DB, user *User) error {
	f.users[user.ID] = user
	return nil
}

func newUserFixture() (*UserController, *fakeUserRepo) {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*User)}
	controller := &UserController{
		userRepo: repo,
		db:       database.DB{},
	}
	return controller, repo
}

func addUser(repo *fakeUserRepo, username string, role Role) *User {
	user := &User{
		BaseUUIDModel: BaseUUIDModel{ID: uuid.New()},
		Username:      username,
		DisplayName:   username,
		Role:          role,
	}
	repo.users[user.ID] = user
	return user
}

func TestChangeRole_PromotesUser(t *testing.T) {
	controller, repo := newUserFixture()
	admin := addUser(repo, "admin", RoleAdmin)
	player := addUser(repo, "player", RoleUser)

	profile, err := controller.ChangeRole(
		context.Background(),
		admin,
		player.ID,
		&ChangeRoleRequest{Role: RoleAdmin},
	)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, profile.Role)
	assert.Equal(t, RoleAdmin, repo.users[player.ID].Role)
}

func TestChangeRole_NonAdminForbidden(t *testing.T) {
	controller, repo := newUserFixture()
	player := addUser(repo, "player", RoleUser)
	other := addUser(repo, "other", RoleUser)

	_, err := controller.ChangeRole(
		context.Background(),
		player,
		other.ID,
		&ChangeRoleRequest{Role: RoleAdmin},
	)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestChangeRole_OwnRoleRejected(t *testing.T) {
	controller, repo := newUserFixture()
	admin := addUser(repo, "admin", RoleAdmin)

	_, err := controller.ChangeRole(
		context.Background(),
		admin,
		admin.ID,
		&ChangeRoleRequest{Role: RoleUser},
	)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestChangeRole_InvalidRole(t *testing.T) {
	controller, repo := newUserFixture()
	admin := addUser(repo, "admin", RoleAdmin)
	player := addUser(repo, "player", RoleUser)

	_, err := controller.ChangeRole(
		context.Background(),
		admin,
		player.ID,
		&ChangeRoleRequest{Role: Role("SUPERUSER")},
	)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestClearProfilePicture_ReturnsOldURL(t *testing.T) {
	controller, repo := newUserFixture()
	url := "/uploads/pic.png"
	player := addUser(repo, "player", RoleUser)
	player.ProfilePictureURL = &url

	oldURL, err := controller.ClearProfilePicture(context.Background(), player, player.ID)
	require.NoError(t, err)
	require.NotNil(t, oldURL)
	assert.Equal(t, url, *oldURL)
	assert.Nil(t, repo.users[player.ID].ProfilePictureURL)
}

func TestClearProfilePicture_OtherUserForbidden(t *testing.T) {
	controller, repo := newUserFixture()
	player := addUser(repo, "player", RoleUser)
	other := addUser(repo, "other", RoleUser)

	_, err := controller.ClearProfilePicture(context.Background(), player, other.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestClearProfilePicture_AdminClearsAnyUser(t *testing.T) {
	controller, repo := newUserFixture()
	url := "/uploads/pic.png"
	admin := addUser(repo, "admin", RoleAdmin)
	player := addUser(repo, "player", RoleUser)
	player.ProfilePictureURL = &url

	oldURL, err := controller.ClearProfilePicture(context.Background(), admin, player.ID)
	require.NoError(t, err)
	require.NotNil(t, oldURL)
	assert.Nil(t, repo.users[player.ID].ProfilePictureURL)
}
