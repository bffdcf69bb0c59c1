package authController

import (
	"context"
	"errors"
	"strings"

	"gamehub/internal/database"
	. "gamehub/internal/models"
	"gamehub/internal/repositories"
	"gamehub/internal/services"

	"gamehub/pkg/logger"
	"gorm.io/gorm"
)

const (
	MinPasswordLength = 8
	MaxUsernameLength = 32
)

var (
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)

type AuthController struct {
	userRepo     repositories.UserRepository
	tokenService *services.TokenService
	db           database.DB
}

type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

type AuthControllerInterface interface {
	Register(ctx context.Context, request *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error)
	GetUserFromToken(ctx context.Context, token string) (*User, error)
}

func New(
	services services.Service,
	repos repositories.Repository,
	db database.DB,
) AuthControllerInterface {
	return &AuthController{
		userRepo:     repos.User,
		tokenService: services.Token,
		db:           db,
	}
}

func (c *AuthController) Register(
	ctx context.Context,
	request *RegisterRequest,
) (*AuthResponse, error) {
	log := logger.NewWithContext(ctx, "authController").Function("Register")

	username := strings.TrimSpace(request.Username)
	email := strings.TrimSpace(strings.ToLower(request.Email))

	if username == "" || len(username) > MaxUsernameLength {
		return nil, log.ErrorWithType(ErrValidation, "invalid username")
	}

	if email == "" || !strings.Contains(email, "@") {
		return nil, log.ErrorWithType(ErrValidation, "invalid email")
	}

	if len(request.Password) < MinPasswordLength {
		return nil, log.ErrorWithType(ErrValidation, "password too short", "min", MinPasswordLength)
	}

	if _, err := c.userRepo.GetByUsername(ctx, c.db.SQL, username); err == nil {
		return nil, log.ErrorWithType(ErrConflict, "username already taken", "username", username)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, log.Error("failed to check username", "error", err)
	}

	if _, err := c.userRepo.GetByEmail(ctx, c.db.SQL, email); err == nil {
		return nil, log.ErrorWithType(ErrConflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, log.Error("failed to check email", "error", err)
	}

	hash, err := c.tokenService.HashPassword(request.Password)
	if err != nil {
		return nil, log.Error("failed to hash password", "error", err)
	}

	displayName := strings.TrimSpace(request.DisplayName)
	if displayName == "" {
		displayName = username
	}

	user := &User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
		Role:         RoleUser,
	}

	if err := c.userRepo.Create(ctx, c.db.SQL, user); err != nil {
		return nil, log.Error("failed to create user", "error", err, "username", username)
	}

	token, err := c.tokenService.Issue(user.ID)
	if err != nil {
		return nil, log.Error("failed to issue token", "error", err, "userID", user.ID)
	}

	log.Info("User registered", "userID", user.ID, "username", username)

	return &AuthResponse{Token: token, User: user.ToProfile()}, nil
}

func (c *AuthController) Login(
	ctx context.Context,
	request *LoginRequest,
) (*AuthResponse, error) {
	log := logger.NewWithContext(ctx, "authController").Function("Login")

	username := strings.TrimSpace(request.Username)
	if username == "" || request.Password == "" {
		return nil, log.ErrorWithType(ErrValidation, "username and password are required")
	}

	user, err := c.userRepo.GetByUsername(ctx, c.db.SQL, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrUnauthorized, "invalid credentials")
		}
		return nil, log.Error("failed to look up user", "error", err)
	}

	if !c.tokenService.VerifyPassword(user.PasswordHash, request.Password) {
		return nil, log.ErrorWithType(ErrUnauthorized, "invalid credentials")
	}

	token, err := c.tokenService.Issue(user.ID)
	if err != nil {
		return nil, log.Error("failed to issue token", "error", err, "userID", user.ID)
	}

	log.Info("User logged in", "userID", user.ID)

	return &AuthResponse{Token: token, User: user.ToProfile()}, nil
}

func (c *AuthController) GetUserFromToken(ctx context.Context, token string) (*User, error) {
	log := logger.NewWithContext(ctx, "authController").Function("GetUserFromToken")

	userID, err := c.tokenService.Validate(token)
	if err != nil {
		return nil, log.ErrorWithType(ErrUnauthorized, "invalid token")
	}

	user, err := c.userRepo.GetByID(ctx, c.db.SQL, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrUnauthorized, "user no longer exists")
		}
		return nil, log.Error("failed to load user", "error", err)
	}

	return user, nil
}
