package authController

import (
	"context"
	"testing"

	"gamehub/config"
	"gamehub/internal/database"
	. "gamehub/internal/models"
	"gamehub/internal/repositories"
	"gamehub/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	repositories.UserRepository
	users map[uuid.UUID]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*User)}
}

func (f *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByUsername(
	ctx context.Context,
	tx *gorm.DB,
	username string,
) (*User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, user *User) error {
	user.ID = uuid.New()
	f.users[user.ID] = user
	return nil
}

func newTestController() (*AuthController, *fakeUserRepo) {
	repo := newFakeUserRepo()
	controller := &AuthController{
		userRepo: repo,
		tokenService: services.NewTokenService(config.Config{
			JWTSecret:      "test-secret",
			JWTExpiryHours: 1,
		}),
		db: database.DB{},
	}
	return controller, repo
}

func TestRegister_Success(t *testing.T) {
	controller, repo := newTestController()

	response, err := controller.Register(context.Background(), &RegisterRequest{
		Username: "player_one",
		Email:    "Player.One@Example.com",
		Password: "long enough password",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, response.Token)
	assert.Equal(t, "player_one", response.User.Username)
	assert.Equal(t, "player.one@example.com", response.User.Email)
	// Display name falls back to the username when not provided.
	assert.Equal(t, "player_one", response.User.DisplayName)
	assert.Len(t, repo.users, 1)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name    string
		request RegisterRequest
	}{
		{
			name:    "Empty username",
			request: RegisterRequest{Email: "a@b.com", Password: "long enough password"},
		},
		{
			name: "Username too long",
			request: RegisterRequest{
				Username: "this_username_is_well_beyond_thirty_two_characters",
				Email:    "a@b.com",
				Password: "long enough password",
			},
		},
		{
			name:    "Invalid email",
			request: RegisterRequest{Username: "player", Email: "not-an-email", Password: "long enough password"},
		},
		{
			name:    "Short password",
			request: RegisterRequest{Username: "player", Email: "a@b.com", Password: "short"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, _ := newTestController()
			_, err := controller.Register(context.Background(), &tt.request)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	controller, _ := newTestController()

	_, err := controller.Register(context.Background(), &RegisterRequest{
		Username: "player_one",
		Email:    "first@example.com",
		Password: "long enough password",
	})
	require.NoError(t, err)

	_, err = controller.Register(context.Background(), &RegisterRequest{
		Username: "player_one",
		Email:    "second@example.com",
		Password: "long enough password",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	controller, _ := newTestController()

	_, err := controller.Register(context.Background(), &RegisterRequest{
		Username: "player_one",
		Email:    "shared@example.com",
		Password: "long enough password",
	})
	require.NoError(t, err)

	_, err = controller.Register(context.Background(), &RegisterRequest{
		Username: "player_two",
		Email:    "Shared@Example.com",
		Password: "long enough password",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLogin_Success(t *testing.T) {
	controller, _ := newTestController()

	_, err := controller.Register(context.Background(), &RegisterRequest{
		Username: "player_one",
		Email:    "player@example.com",
		Password: "long enough password",
	})
	require.NoError(t, err)

	response, err := controller.Login(context.Background(), &LoginRequest{
		Username: "player_one",
		Password: "long enough password",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, response.Token)
	assert.Equal(t, "player_one", response.User.Username)
}

func TestLogin_WrongPassword(t *testing.T) {
	controller, _ := newTestController()

	_, err := controller.Register(context.Background(), &RegisterRequest{
		Username: "player_one",
		Email:    "player@example.com",
		Password: "long enough password",
	})
	require.NoError(t, err)

	_, err = controller.Login(context.Background(), &LoginRequest{
		Username: "player_one",
		Password: "wrong password!!",
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogin_UnknownUser(t *testing.T) {
	controller, _ := newTestController()

	_, err := controller.Login(context.Background(), &LoginRequest{
		Username: "nobody",
		Password: "whatever password",
	})

	// Unknown users get the same error as a bad password.
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGetUserFromToken(t *testing.T) {
	controller, _ := newTestController()

	response, err := controller.Register(context.Background(), &RegisterRequest{
		Username: "player_one",
		Email:    "player@example.com",
		Password: "long enough password",
	})
	require.NoError(t, err)

	user, err := controller.GetUserFromToken(context.Background(), response.Token)
	require.NoError(t, err)
	assert.Equal(t, "player_one", user.Username)

	_, err = controller.GetUserFromToken(context.Background(), "garbage-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
}
