package achievementController

import (
	"context"
	"errors"
	"strings"
	"time"

	"gamehub/config"
	"gamehub/internal/database"
	. "gamehub/internal/models"
	"gamehub/internal/repositories"
	"gamehub/internal/services"

	"gamehub/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
)

type AchievementController struct {
	achievementRepo repositories.AchievementRepository
	gameRepo        repositories.GameRepository
	db              database.DB
	Config          config.Config
}

type CreateAchievementRequest struct {
	GameID      uuid.UUID `json:"gameId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Rarity      *string   `json:"rarity,omitempty"`
	PointsValue int       `json:"pointsValue"`
	IconURL     *string   `json:"iconUrl,omitempty"`
}

type UpdateAchievementRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Rarity      *string `json:"rarity,omitempty"`
	PointsValue *int    `json:"pointsValue,omitempty"`
	IconURL     *string `json:"iconUrl,omitempty"`
}

type EarnAchievementRequest struct {
	AchievementID uuid.UUID `json:"achievementId"`
}

type UserAchievementSummary struct {
	Earned      []EarnedAchievement `json:"earned"`
	TotalPoints int64               `json:"totalPoints"`
}

type AchievementControllerInterface interface {
	CreateAchievement(ctx context.Context, actor *User, request *CreateAchievementRequest) (*Achievement, error)
	UpdateAchievement(ctx context.Context, actor *User, achievementID uuid.UUID, request *UpdateAchievementRequest) (*Achievement, error)
	DeleteAchievement(ctx context.Context, actor *User, achievementID uuid.UUID) error
	ListByGame(ctx context.Context, gameID uuid.UUID) ([]Achievement, error)
	EarnAchievement(ctx context.Context, user *User, request *EarnAchievementRequest) (*UserAchievement, error)
	UnearnAchievement(ctx context.Context, user *User, achievementID uuid.UUID) error
	GetUserSummary(ctx context.Context, userID uuid.UUID) (*UserAchievementSummary, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) AchievementControllerInterface {
	return &AchievementController{
		achievementRepo: repos.Achievement,
		gameRepo:        repos.Game,
		db:              db,
		Config:          config,
	}
}

func (c *AchievementController) CreateAchievement(
	ctx context.Context,
	actor *User,
	request *CreateAchievementRequest,
) (*Achievement, error) {
	log := logger.NewWithContext(ctx, "achievementController").Function("CreateAchievement")

	if !actor.IsAdmin() {
		return nil, log.ErrorWithType(ErrForbidden, "only admins can create achievements")
	}

	if request.GameID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "gameId is required")
	}

	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, log.ErrorWithType(ErrValidation, "name is required")
	}

	if request.PointsValue < 0 {
		return nil, log.ErrorWithType(ErrValidation, "pointsValue cannot be negative")
	}

	var rarity *Rarity
	if request.Rarity != nil {
		r := Rarity(*request.Rarity)
		if !ValidRarity(r) {
			return nil, log.ErrorWithType(ErrValidation, "invalid rarity", "rarity", *request.Rarity)
		}
		rarity = &r
	}

	if _, err := c.gameRepo.GetByID(ctx, c.db.SQL, request.GameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "game not found", "gameID", request.GameID)
		}
		return nil, log.Error("failed to look up game", "error", err)
	}

	achievement := &Achievement{
		GameID:      request.GameID,
		Name:        name,
		Description: request.Description,
		Rarity:      rarity,
		PointsValue: request.PointsValue,
		IconURL:     request.IconURL,
	}

	if err := c.achievementRepo.Create(ctx, c.db.SQL, achievement); err != nil {
		return nil, log.Error("failed to create achievement", "error", err, "name", name)
	}

	log.Info("Achievement created", "achievementID", achievement.ID, "gameID", request.GameID)

	return achievement, nil
}

func (c *AchievementController) DeleteAchievement(
	ctx context.Context,
	actor *User,
	achievementID uuid.UUID,
) error {
	log := logger.NewWithContext(ctx, "achievementController").Function("DeleteAchievement")

	if !actor.IsAdmin() {
		return log.ErrorWithType(ErrForbidden, "only admins can delete achievements")
	}

	if achievementID == uuid.Nil {
		return log.ErrorWithType(ErrValidation, "achievementId is required")
	}

	if err := c.achievementRepo.Delete(ctx, c.db.SQL, achievementID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return log.ErrorWithType(ErrNotFound, "achievement not found", "achievementID", achievementID)
		}
		return log.Error("failed to delete achievement", "error", err, "achievementID", achievementID)
	}

	log.Info("Achievement deleted", "achievementID", achievementID, "actorID", actor.ID)

	return nil
}

func (c *AchievementController) ListByGame(
	ctx context.Context,
	gameID uuid.UUID,
) ([]Achievement, error) {
	log := logger.NewWithContext(ctx, "achievementController").Function("ListByGame")

	if gameID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "gameId is required")
	}

	achievements, err := c.achievementRepo.ListByGame(ctx, c.db.SQL, gameID)
	if err != nil {
		return nil, log.Error("failed to list achievements", "error", err, "gameID", gameID)
	}

	return achievements, nil
}

func (c *AchievementController) EarnAchievement(
	ctx context.Context,
	user *User,
	request *EarnAchievementRequest,
) (*UserAchievement, error) {
	log := logger.NewWithContext(ctx, "achievementController").Function("EarnAchievement")

	if request.AchievementID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "achievementId is required")
	}

	if _, err := c.achievementRepo.GetByID(ctx, c.db.SQL, request.AchievementID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "achievement not found", "achievementID", request.AchievementID)
		}
		return nil, log.Error("failed to look up achievement", "error", err)
	}

	if _, err := c.achievementRepo.GetEarned(ctx, c.db.SQL, user.ID, request.AchievementID); err == nil {
		return nil, log.ErrorWithType(ErrConflict, "achievement already earned", "achievementID", request.AchievementID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, log.Error("failed to check earned achievement", "error", err)
	}

	earned := &UserAchievement{
		UserID:        user.ID,
		AchievementID: request.AchievementID,
		DateEarned:    time.Now().UTC(),
	}

	if err := c.achievementRepo.Earn(ctx, c.db.SQL, earned); err != nil {
		return nil, log.Error("failed to record earned achievement", "error", err)
	}

	log.Info("Achievement earned", "userID", user.ID, "achievementID", request.AchievementID)

	return earned, nil
}

func (c *AchievementController) UnearnAchievement(
	ctx context.Context,
	user *User,
	achievementID uuid.UUID,
) error {
	log := logger.NewWithContext(ctx, "achievementController").Function("UnearnAchievement")

	if achievementID == uuid.Nil {
		return log.ErrorWithType(ErrValidation, "achievementId is required")
	}

	if err := c.achievementRepo.Unearn(ctx, c.db.SQL, user.ID, achievementID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return log.ErrorWithType(ErrNotFound, "achievement not earned", "achievementID", achievementID)
		}
		return log.Error("failed to remove earned achievement", "error", err)
	}

	log.Info("Achievement removed", "userID", user.ID, "achievementID", achievementID)

	return nil
}

func (c *AchievementController) GetUserSummary(
	ctx context.Context,
	userID uuid.UUID,
) (*UserAchievementSummary, error) {
	log := logger.NewWithContext(ctx, "achievementController").Function("GetUserSummary")

	if userID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "userId is required")
	}

	earned, err := c.achievementRepo.ListEarnedByUser(ctx, c.db.SQL, userID)
	if err != nil {
		return nil, log.Error("failed to list earned achievements", "error", err, "userID", userID)
	}

	totalPoints, err := c.achievementRepo.TotalPoints(ctx, c.db.SQL, userID)
	if err != nil {
		return nil, log.Error("failed to sum achievement points", "error", err, "userID", userID)
	}

	return &UserAchievementSummary{
		Earned:      earned,
		TotalPoints: totalPoints,
	}, nil
}

func (c *AchievementController) UpdateAchievement(
	ctx context.Context,
	actor *User,
	achievementID uuid.UUID,
	request *UpdateAchievementRequest,
) (*Achievement, error) {
	log := logger.NewWithContext(ctx, "achievementController").Function("UpdateAchievement")

	if !actor.IsAdmin() {
		return nil, log.ErrorWithType(ErrForbidden, "only admins can update achievements")
	}

	if achievementID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "achievementId is required")
	}

	achievement, err := c.achievementRepo.GetByID(ctx, c.db.SQL, achievementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "achievement not found", "achievementID", achievementID)
		}
		return nil, log.Error("failed to load achievement", "error", err)
	}

	if request.Name != nil {
		name := strings.TrimSpace(*request.Name)
		if name == "" {
			return nil, log.ErrorWithType(ErrValidation, "name cannot be empty")
		}
		achievement.Name = name
	}

	if request.Description != nil {
		achievement.Description = request.Description
	}

	if request.Rarity != nil {
		r := Rarity(*request.Rarity)
		if !ValidRarity(r) {
			return nil, log.ErrorWithType(ErrValidation, "invalid rarity", "rarity", *request.Rarity)
		}
		achievement.Rarity = &r
	}

	if request.PointsValue != nil {
		if *request.PointsValue < 0 {
			return nil, log.ErrorWithType(ErrValidation, "pointsValue cannot be negative")
		}
		achievement.PointsValue = *request.PointsValue
	}

	if request.IconURL != nil {
		achievement.IconURL = request.IconURL
	}

	if err := c.achievementRepo.Update(ctx, c.db.SQL, achievement); err != nil {
		return nil, log.Error("failed to update achievement", "error", err, "achievementID", achievementID)
	}

	log.Info("Achievement updated", "achievementID", achievementID)

	return achievement, nil
}
