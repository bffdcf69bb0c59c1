package collectionController

import (
	"context"
	"errors"

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
	MaxNotesLength = 2000
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

type CollectionController struct {
	collectionRepo     repositories.CollectionRepository
	reviewRepo         repositories.ReviewRepository
	sessionRepo        repositories.PlaySessionRepository
	gameRepo           repositories.GameRepository
	userRepo           repositories.UserRepository
	transactionService services.TransactionExecutor
	db                 database.DB
	Config             config.Config
}

type AddGameRequest struct {
	GameID        uuid.UUID `json:"gameId"`
	PlayStatus    *string   `json:"playStatus,omitempty"`
	PersonalNotes *string   `json:"personalNotes,omitempty"`
	Rating        *int      `json:"rating,omitempty"`
}

type UpdateStatusRequest struct {
	PlayStatus string `json:"playStatus"`
}

type UpdateRatingRequest struct {
	Rating *int `json:"rating"`
}

type UpdateNotesRequest struct {
	PersonalNotes *string `json:"personalNotes"`
}

// RemoveGameResponse reports exactly what the removal workflow deleted.
type RemoveGameResponse struct {
	ReviewsDeleted         int  `json:"reviewsDeleted"`
	SessionsDeleted        int  `json:"sessionsDeleted"`
	CollectionEntryDeleted bool `json:"collectionEntryDeleted"`
}

type MarkCompleteRequest struct {
	Rating *int `json:"rating,omitempty"`
}

type MarkCompleteResponse struct {
	PreviousStatus PlayStatus `json:"previousStatus"`
	NewStatus      PlayStatus `json:"newStatus"`
	ReviewCreated  bool       `json:"reviewCreated"`
	ReviewID       *uuid.UUID `json:"reviewId"`
	NeedsReview    bool       `json:"needsReview"`
}

type CollectionControllerInterface interface {
	AddGame(ctx context.Context, user *User, request *AddGameRequest) (*CollectionEntry, error)
	GetCollection(ctx context.Context, user *User, status *PlayStatus) ([]CollectionEntry, error)
	GetUserCollection(ctx context.Context, userID uuid.UUID, status *PlayStatus) ([]CollectionEntry, error)
	UpdateStatus(ctx context.Context, user *User, gameID uuid.UUID, request *UpdateStatusRequest) (*CollectionEntry, error)
	UpdateRating(ctx context.Context, user *User, gameID uuid.UUID, request *UpdateRatingRequest) (*CollectionEntry, error)
	UpdateNotes(ctx context.Context, user *User, gameID uuid.UUID, request *UpdateNotesRequest) (*CollectionEntry, error)
	RemoveGameCompletely(ctx context.Context, user *User, gameID uuid.UUID) (*RemoveGameResponse, error)
	MarkCompleteWithReviewPrompt(ctx context.Context, user *User, gameID uuid.UUID, request *MarkCompleteRequest) (*MarkCompleteResponse, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) CollectionControllerInterface {
	return &CollectionController{
		collectionRepo:     repos.Collection,
		reviewRepo:         repos.Review,
		sessionRepo:        repos.PlaySession,
		gameRepo:           repos.Game,
		userRepo:           repos.User,
		transactionService: services.Transaction,
		db:                 db,
		Config:             config,
	}
}

func validRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

func (c *CollectionController) AddGame(
	ctx context.Context,
	user *User,
	request *AddGameRequest,
) (*CollectionEntry, error) {
	log := logger.NewWithContext(ctx, "collectionController").Function("AddGame")

	if request.GameID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "gameId is required")
	}

	if request.Rating != nil && !validRating(*request.Rating) {
		return nil, log.ErrorWithType(ErrValidation, "rating must be between 1 and 5")
	}

	status := StatusNotStarted
	if request.PlayStatus != nil {
		if !ValidPlayStatus(PlayStatus(*request.PlayStatus)) {
			return nil, log.ErrorWithType(ErrValidation, "invalid play status", "playStatus", *request.PlayStatus)
		}
		status = PlayStatus(*request.PlayStatus)
	}

	if request.PersonalNotes != nil && len(*request.PersonalNotes) > MaxNotesLength {
		return nil, log.ErrorWithType(ErrValidation, "notes exceed maximum length")
	}

	if _, err := c.gameRepo.GetByID(ctx, c.db.SQL, request.GameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "game not found", "gameID", request.GameID)
		}
		return nil, log.Error("failed to look up game", "error", err)
	}

	if _, err := c.collectionRepo.GetByUserAndGame(ctx, c.db.SQL, user.ID, request.GameID); err == nil {
		return nil, log.ErrorWithType(ErrConflict, "game already in collection", "gameID", request.GameID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, log.Error("failed to check collection", "error", err)
	}

	entry := &CollectionEntry{
		UserID:        user.ID,
		GameID:        request.GameID,
		PlayStatus:    status,
		PersonalNotes: request.PersonalNotes,
		Rating:        request.Rating,
	}

	if err := c.collectionRepo.Create(ctx, c.db.SQL, entry); err != nil {
		return nil, log.Error("failed to add game to collection", "error", err, "gameID", request.GameID)
	}

	log.Info("Game added to collection", "userID", user.ID, "gameID", request.GameID)

	return entry, nil
}

func (c *CollectionController) GetCollection(
	ctx context.Context,
	user *User,
	status *PlayStatus,
) ([]CollectionEntry, error) {
	log := logger.NewWithContext(ctx, "collectionController").Function("GetCollection")

	if status != nil && !ValidPlayStatus(*status) {
		return nil, log.ErrorWithType(ErrValidation, "invalid play status filter")
	}

	entries, err := c.collectionRepo.ListByUser(ctx, c.db.SQL, user.ID, status)
	if err != nil {
		return nil, log.Error("failed to list collection", "error", err, "userID", user.ID)
	}

	return entries, nil
}

// GetUserCollection lists another user's collection for public profile views.
func (c *CollectionController) GetUserCollection(
	ctx context.Context,
	userID uuid.UUID,
	status *PlayStatus,
) ([]CollectionEntry, error) {
	log := logger.NewWithContext(ctx, "collectionController").Function("GetUserCollection")

	if userID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "userId is required")
	}

	if status != nil && !ValidPlayStatus(*status) {
		return nil, log.ErrorWithType(ErrValidation, "invalid play status filter")
	}

	if _, err := c.userRepo.GetByID(ctx, c.db.SQL, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "user not found", "userID", userID)
		}
		return nil, log.Error("failed to look up user", "error", err)
	}

	entries, err := c.collectionRepo.ListByUser(ctx, c.db.SQL, userID, status)
	if err != nil {
		return nil, log.Error("failed to list collection", "error", err, "userID", userID)
	}

	return entries, nil
}

func (c *CollectionController) getOwnedEntry(
	ctx context.Context,
	log logger.Logger,
	user *User,
	gameID uuid.UUID,
) (*CollectionEntry, error) {
	if gameID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "gameId is required")
	}

	entry, err := c.collectionRepo.GetByUserAndGame(ctx, c.db.SQL, user.ID, gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "game not in collection", "gameID", gameID)
		}
		return nil, log.Error("failed to look up collection entry", "error", err)
	}

	return entry, nil
}

func (c *CollectionController) UpdateStatus(
	ctx context.Context,
	user *User,
	gameID uuid.UUID,
	request *UpdateStatusRequest,
) (*CollectionEntry, error) {
	log := logger.NewWithContext(ctx, "collectionController").Function("UpdateStatus")

	if !ValidPlayStatus(PlayStatus(request.PlayStatus)) {
		return nil, log.ErrorWithType(ErrValidation, "invalid play status", "playStatus", request.PlayStatus)
	}

	entry, err := c.getOwnedEntry(ctx, log, user, gameID)
	if err != nil {
		return nil, err
	}

	status := PlayStatus(request.PlayStatus)
	if err := c.collectionRepo.UpdateStatus(ctx, c.db.SQL, entry.ID, status); err != nil {
		return nil, log.Error("failed to update play status", "error", err, "entryID", entry.ID)
	}

	entry.PlayStatus = status
	return entry, nil
}

func (c *CollectionController) UpdateRating(
	ctx context.Context,
	user *User,
	gameID uuid.UUID,
	request *UpdateRatingRequest,
) (*CollectionEntry, error) {
	log := logger.NewWithContext(ctx, "collectionController").Function("UpdateRating")

	if request.Rating != nil && !validRating(*request.Rating) {
		return nil, log.ErrorWithType(ErrValidation, "rating must be between 1 and 5")
	}

	entry, err := c.getOwnedEntry(ctx, log, user, gameID)
	if err != nil {
		return nil, err
	}

	if err := c.collectionRepo.UpdateRating(ctx, c.db.SQL, entry.ID, request.Rating); err != nil {
		return nil, log.Error("failed to update rating", "error", err, "entryID", entry.ID)
	}

	entry.Rating = request.Rating
	return entry, nil
}

func (c *CollectionController) UpdateNotes(
	ctx context.Context,
	user *User,
	gameID uuid.UUID,
	request *UpdateNotesRequest,
) (*CollectionEntry, error) {
	log := logger.NewWithContext(ctx, "collectionController").Function("UpdateNotes")

	if request.PersonalNotes != nil && len(*request.PersonalNotes) > MaxNotesLength {
		return nil, log.ErrorWithType(ErrValidation, "notes exceed maximum length")
	}

	entry, err := c.getOwnedEntry(ctx, log, user, gameID)
	if err != nil {
		return nil, err
	}

	if err := c.collectionRepo.UpdateNotes(ctx, c.db.SQL, entry.ID, request.PersonalNotes); err != nil {
		return nil, log.Error("failed to update notes", "error", err, "entryID", entry.ID)
	}

	entry.PersonalNotes = request.PersonalNotes
	return entry, nil
}

// RemoveGameCompletely deletes the user's review, every play session, and the
// collection entry for a game as one atomic unit. The entry must exist before
// any write happens; on any failure every deletion is rolled back together.
func (c *CollectionController) RemoveGameCompletely(
	ctx context.Context,
	user *User,
	gameID uuid.UUID,
) (*RemoveGameResponse, error) {
	log := logger.NewWithContext(ctx, "collectionController").Function("RemoveGameCompletely")

	if gameID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "gameId is required")
	}

	if _, err := c.collectionRepo.GetByUserAndGame(ctx, c.db.SQL, user.ID, gameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "game not in collection", "gameID", gameID)
		}
		return nil, log.Error("failed to look up collection entry", "error", err)
	}

	var response RemoveGameResponse

	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		reviewsDeleted, err := c.reviewRepo.DeleteByUserAndGame(ctx, tx, user.ID, gameID)
		if err != nil {
			return log.Error("failed to delete review in transaction", "error", err, "gameID", gameID)
		}

		sessionsDeleted, err := c.sessionRepo.DeleteByUserAndGame(ctx, tx, user.ID, gameID)
		if err != nil {
			return log.Error("failed to delete play sessions in transaction", "error", err, "gameID", gameID)
		}

		entriesDeleted, err := c.collectionRepo.DeleteByUserAndGame(ctx, tx, user.ID, gameID)
		if err != nil {
			return log.Error("failed to delete collection entry in transaction", "error", err, "gameID", gameID)
		}

		if entriesDeleted == 0 {
			// Entry disappeared between the pre-check and the delete.
			return log.ErrorWithType(ErrNotFound, "game not in collection", "gameID", gameID)
		}

		response = RemoveGameResponse{
			ReviewsDeleted:         reviewsDeleted,
			SessionsDeleted:        sessionsDeleted,
			CollectionEntryDeleted: true,
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info(
		"Game removed from collection",
		"userID", user.ID,
		"gameID", gameID,
		"reviewsDeleted", response.ReviewsDeleted,
		"sessionsDeleted", response.SessionsDeleted,
	)

	return &response, nil
}

// MarkCompleteWithReviewPrompt sets the entry's play status to COMPLETED and,
// when a rating is supplied and no review exists yet, creates a review in the
// same transaction. An invalid rating aborts the whole workflow, including the
// status change.
func (c *CollectionController) MarkCompleteWithReviewPrompt(
	ctx context.Context,
	user *User,
	gameID uuid.UUID,
	request *MarkCompleteRequest,
) (*MarkCompleteResponse, error) {
	log := logger.NewWithContext(ctx, "collectionController").Function("MarkCompleteWithReviewPrompt")

	if gameID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "gameId is required")
	}

	entry, err := c.collectionRepo.GetByUserAndGame(ctx, c.db.SQL, user.ID, gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "game not in collection", "gameID", gameID)
		}
		return nil, log.Error("failed to look up collection entry", "error", err)
	}

	var response MarkCompleteResponse

	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		previousStatus := entry.PlayStatus

		if err := c.collectionRepo.UpdateStatus(ctx, tx, entry.ID, StatusCompleted); err != nil {
			return log.Error("failed to set status in transaction", "error", err, "entryID", entry.ID)
		}

		existingReview, err := c.reviewRepo.GetByUserAndGame(ctx, tx, user.ID, gameID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return log.Error("failed to look up review in transaction", "error", err, "gameID", gameID)
		}
		reviewExists := existingReview != nil

		response = MarkCompleteResponse{
			PreviousStatus: previousStatus,
			NewStatus:      StatusCompleted,
		}

		if request.Rating != nil && !reviewExists {
			if !validRating(*request.Rating) {
				return log.ErrorWithType(
					ErrValidation,
					"rating must be between 1 and 5",
					"rating", *request.Rating,
				)
			}

			review := &Review{
				UserID: user.ID,
				GameID: gameID,
				Rating: *request.Rating,
			}
			if err := c.reviewRepo.Create(ctx, tx, review); err != nil {
				return log.Error("failed to create review in transaction", "error", err, "gameID", gameID)
			}

			response.ReviewCreated = true
			response.ReviewID = &review.ID
		}

		response.NeedsReview = !reviewExists && !response.ReviewCreated

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info(
		"Game marked complete",
		"userID", user.ID,
		"gameID", gameID,
		"previousStatus", response.PreviousStatus,
		"reviewCreated", response.ReviewCreated,
		"needsReview", response.NeedsReview,
	)

	return &response, nil
}
