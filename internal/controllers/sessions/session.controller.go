package sessionController

import (
	"context"
	"errors"
	"time"

	"gamehub/config"
	"gamehub/internal/database"
	. "gamehub/internal/models"
	"gamehub/internal/repositories"
	"gamehub/internal/services"
	"gamehub/internal/utils"

	"gamehub/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	MaxNotesLength = 2000
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
)

type SessionController struct {
	sessionRepo    repositories.PlaySessionRepository
	collectionRepo repositories.CollectionRepository
	db             database.DB
	Config         config.Config
}

type StartSessionRequest struct {
	GameID       uuid.UUID `json:"gameId"`
	SessionNotes *string   `json:"sessionNotes,omitempty"`
}

type EndSessionRequest struct {
	SessionNotes *string `json:"sessionNotes,omitempty"`
}

type ListSessionsRequest struct {
	GameID   *uuid.UUID `json:"gameId,omitempty"`
	OpenOnly bool       `json:"openOnly"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
}

// PlaytimeStats summarizes a user's completed sessions, optionally scoped to
// one game.
type PlaytimeStats struct {
	TotalSessions  int     `json:"totalSessions"`
	TotalPlaytime  string  `json:"totalPlaytime"`
	TotalHours     string  `json:"totalHours"`
	AverageMinutes string  `json:"averageMinutes"`
	LongestMinutes float64 `json:"longestMinutes"`
}

type SessionControllerInterface interface {
	StartSession(ctx context.Context, user *User, request *StartSessionRequest) (*PlaySession, error)
	GetSession(ctx context.Context, user *User, sessionID int) (*PlaySession, error)
	EndSession(ctx context.Context, user *User, sessionID int, request *EndSessionRequest) (*PlaySession, error)
	UpdateNotes(ctx context.Context, user *User, sessionID int, notes *string) (*PlaySession, error)
	ListSessions(ctx context.Context, user *User, request *ListSessionsRequest) ([]PlaySession, error)
	DeleteSession(ctx context.Context, user *User, sessionID int) error
	GetPlaytimeStats(ctx context.Context, user *User, gameID *uuid.UUID) (*PlaytimeStats, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) SessionControllerInterface {
	return &SessionController{
		sessionRepo:    repos.PlaySession,
		collectionRepo: repos.Collection,
		db:             db,
		Config:         config,
	}
}

// StartSession opens a new play session. The game must be in the user's
// collection and there must not already be an open session for it.
func (c *SessionController) StartSession(
	ctx context.Context,
	user *User,
	request *StartSessionRequest,
) (*PlaySession, error) {
	log := logger.NewWithContext(ctx, "sessionController").Function("StartSession")

	if request.GameID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "gameId is required")
	}

	if request.SessionNotes != nil && len(*request.SessionNotes) > MaxNotesLength {
		return nil, log.ErrorWithType(ErrValidation, "notes exceed maximum length")
	}

	if _, err := c.collectionRepo.GetByUserAndGame(ctx, c.db.SQL, user.ID, request.GameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "game not in collection", "gameID", request.GameID)
		}
		return nil, log.Error("failed to check collection", "error", err)
	}

	if _, err := c.sessionRepo.GetOpenByUserAndGame(ctx, c.db.SQL, user.ID, request.GameID); err == nil {
		return nil, log.ErrorWithType(ErrConflict, "an open session already exists for this game", "gameID", request.GameID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, log.Error("failed to check for open session", "error", err)
	}

	session := &PlaySession{
		UserID:       user.ID,
		GameID:       request.GameID,
		StartTime:    time.Now().UTC(),
		SessionNotes: request.SessionNotes,
	}

	if err := c.sessionRepo.Create(ctx, c.db.SQL, session); err != nil {
		return nil, log.Error("failed to start session", "error", err, "gameID", request.GameID)
	}

	log.Info("Play session started", "userID", user.ID, "gameID", request.GameID, "sessionID", session.ID)

	return session, nil
}

func (c *SessionController) EndSession(
	ctx context.Context,
	user *User,
	sessionID int,
	request *EndSessionRequest,
) (*PlaySession, error) {
	log := logger.NewWithContext(ctx, "sessionController").Function("EndSession")

	if sessionID <= 0 {
		return nil, log.ErrorWithType(ErrValidation, "sessionId is required")
	}

	if request.SessionNotes != nil && len(*request.SessionNotes) > MaxNotesLength {
		return nil, log.ErrorWithType(ErrValidation, "notes exceed maximum length")
	}

	session, err := c.sessionRepo.GetByID(ctx, c.db.SQL, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "session not found", "sessionID", sessionID)
		}
		return nil, log.Error("failed to load session", "error", err)
	}

	if !user.CanModify(session.UserID) {
		return nil, log.ErrorWithType(ErrForbidden, "session does not belong to user", "sessionID", sessionID)
	}

	if !session.IsOpen() {
		return nil, log.ErrorWithType(ErrValidation, "session is already ended", "sessionID", sessionID)
	}

	endTime := time.Now().UTC()
	if err := c.sessionRepo.End(ctx, c.db.SQL, sessionID, endTime, request.SessionNotes); err != nil {
		return nil, log.Error("failed to end session", "error", err, "sessionID", sessionID)
	}

	session.EndTime = &endTime
	if request.SessionNotes != nil {
		session.SessionNotes = request.SessionNotes
	}

	log.Info("Play session ended", "userID", user.ID, "sessionID", sessionID)

	return session, nil
}

func (c *SessionController) ListSessions(
	ctx context.Context,
	user *User,
	request *ListSessionsRequest,
) ([]PlaySession, error) {
	log := logger.NewWithContext(ctx, "sessionController").Function("ListSessions")

	pageSize := request.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	page := request.Page
	if page < 0 {
		page = 0
	}

	sessions, err := c.sessionRepo.ListByUser(ctx, c.db.SQL, user.ID, repositories.SessionFilter{
		GameID:   request.GameID,
		OpenOnly: request.OpenOnly,
		Limit:    pageSize,
		Offset:   page * pageSize,
	})
	if err != nil {
		return nil, log.Error("failed to list sessions", "error", err, "userID", user.ID)
	}

	return sessions, nil
}

func (c *SessionController) DeleteSession(
	ctx context.Context,
	user *User,
	sessionID int,
) error {
	log := logger.NewWithContext(ctx, "sessionController").Function("DeleteSession")

	if sessionID <= 0 {
		return log.ErrorWithType(ErrValidation, "sessionId is required")
	}

	session, err := c.sessionRepo.GetByID(ctx, c.db.SQL, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return log.ErrorWithType(ErrNotFound, "session not found", "sessionID", sessionID)
		}
		return log.Error("failed to load session", "error", err)
	}

	if !user.CanModify(session.UserID) {
		return log.ErrorWithType(ErrForbidden, "session does not belong to user", "sessionID", sessionID)
	}

	if err := c.sessionRepo.Delete(ctx, c.db.SQL, sessionID); err != nil {
		return log.Error("failed to delete session", "error", err, "sessionID", sessionID)
	}

	log.Info("Play session deleted", "userID", user.ID, "sessionID", sessionID)

	return nil
}

func (c *SessionController) GetPlaytimeStats(
	ctx context.Context,
	user *User,
	gameID *uuid.UUID,
) (*PlaytimeStats, error) {
	log := logger.NewWithContext(ctx, "sessionController").Function("GetPlaytimeStats")

	sessions, err := c.sessionRepo.ListCompletedByUser(ctx, c.db.SQL, user.ID, gameID)
	if err != nil {
		return nil, log.Error("failed to load completed sessions", "error", err, "userID", user.ID)
	}

	stats := &PlaytimeStats{
		TotalSessions:  len(sessions),
		TotalPlaytime:  utils.FormatDuration(0),
		TotalHours:     "0",
		AverageMinutes: "0",
	}

	if len(sessions) == 0 {
		return stats, nil
	}

	var total time.Duration
	var longest time.Duration
	for i := range sessions {
		d := sessions[i].Duration()
		total += d
		if d > longest {
			longest = d
		}
	}

	totalMinutes := decimal.NewFromFloat(total.Minutes())
	stats.TotalPlaytime = utils.FormatDuration(total)
	stats.TotalHours = decimal.NewFromFloat(total.Hours()).Round(1).String()
	stats.AverageMinutes = totalMinutes.
		Div(decimal.NewFromInt(int64(len(sessions)))).
		Round(1).
		String()
	stats.LongestMinutes = longest.Minutes()

	return stats, nil
}

// GetSession loads a single session. Owners see their own, admins see any.
func (c *SessionController) GetSession(
	ctx context.Context,
	user *User,
	sessionID int,
) (*PlaySession, error) {
	log := logger.NewWithContext(ctx, "sessionController").Function("GetSession")

	if sessionID <= 0 {
		return nil, log.ErrorWithType(ErrValidation, "sessionId is required")
	}

	session, err := c.sessionRepo.GetByID(ctx, c.db.SQL, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "session not found", "sessionID", sessionID)
		}
		return nil, log.Error("failed to load session", "error", err)
	}

	if !user.CanModify(session.UserID) {
		return nil, log.ErrorWithType(ErrForbidden, "session does not belong to user", "sessionID", sessionID)
	}

	return session, nil
}

func (c *SessionController) UpdateNotes(
	ctx context.Context,
	user *User,
	sessionID int,
	notes *string,
) (*PlaySession, error) {
	log := logger.NewWithContext(ctx, "sessionController").Function("UpdateNotes")

	if notes != nil && len(*notes) > MaxNotesLength {
		return nil, log.ErrorWithType(ErrValidation, "notes exceed maximum length")
	}

	session, err := c.GetSession(ctx, user, sessionID)
	if err != nil {
		return nil, err
	}

	if err := c.sessionRepo.UpdateNotes(ctx, c.db.SQL, sessionID, notes); err != nil {
		return nil, log.Error("failed to update session notes", "error", err, "sessionID", sessionID)
	}

	session.SessionNotes = notes

	log.Info("Session notes updated", "userID", user.ID, "sessionID", sessionID)

	return session, nil
}
