package gameController

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
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	DefaultPageSize     = 20
	MaxPageSize         = 100
	StatisticsMinReview = 1
	TopRatedLimit       = 20
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)

type GameController struct {
	gameRepo           repositories.GameRepository
	rawgService        *services.RawgService
	transactionService services.TransactionExecutor
	db                 database.DB
	Config             config.Config
}

type CreateGameRequest struct {
	Title         string     `json:"title"`
	Developer     *string    `json:"developer,omitempty"`
	ReleaseDate   *string    `json:"releaseDate,omitempty"`
	CoverImageURL *string    `json:"coverImageUrl,omitempty"`
	Genres        []string   `json:"genres,omitempty"`
	Platforms     []string   `json:"platforms,omitempty"`
}

type UpdateGameRequest struct {
	Title         *string  `json:"title,omitempty"`
	Developer     *string  `json:"developer,omitempty"`
	ReleaseDate   *string  `json:"releaseDate,omitempty"`
	CoverImageURL *string  `json:"coverImageUrl,omitempty"`
	Genres        []string `json:"genres,omitempty"`
	Platforms     []string `json:"platforms,omitempty"`
}

type ListGamesRequest struct {
	Search   string `json:"search"`
	Genre    string `json:"genre"`
	Platform string `json:"platform"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

type ImportGameRequest struct {
	RawgID int `json:"rawgId"`
}

// GameStatistics is the aggregate view exposed by the statistics endpoint.
// Averages are carried as decimals so rounding stays consistent.
type GameStatistics struct {
	GameID        uuid.UUID `json:"gameId"`
	Title         string    `json:"title"`
	Developer     *string   `json:"developer,omitempty"`
	CoverImageURL *string   `json:"coverImageUrl,omitempty"`
	ReviewCount   int64     `json:"reviewCount"`
	AverageRating string    `json:"averageRating"`
	UserCount     int64     `json:"userCount"`
	TotalSessions int64     `json:"totalSessions"`
}

type GameControllerInterface interface {
	GetGame(ctx context.Context, gameID uuid.UUID) (*Game, error)
	ListGames(ctx context.Context, request *ListGamesRequest) ([]Game, error)
	CreateGame(ctx context.Context, actor *User, request *CreateGameRequest) (*Game, error)
	UpdateGame(ctx context.Context, actor *User, gameID uuid.UUID, request *UpdateGameRequest) (*Game, error)
	DeleteGame(ctx context.Context, actor *User, gameID uuid.UUID) error
	SearchExternal(ctx context.Context, searchTerm string, limit int) ([]services.RawgGame, error)
	ImportGame(ctx context.Context, request *ImportGameRequest) (*Game, error)
	TopRated(ctx context.Context) ([]Game, error)
	Statistics(ctx context.Context) ([]GameStatistics, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) GameControllerInterface {
	return &GameController{
		gameRepo:           repos.Game,
		rawgService:        services.Rawg,
		transactionService: services.Transaction,
		db:                 db,
		Config:             config,
	}
}

func (c *GameController) GetGame(ctx context.Context, gameID uuid.UUID) (*Game, error) {
	log := logger.NewWithContext(ctx, "gameController").Function("GetGame")

	if gameID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "gameId is required")
	}

	game, err := c.gameRepo.GetByID(ctx, c.db.SQL, gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "game not found", "gameID", gameID)
		}
		return nil, log.Error("failed to load game", "error", err)
	}

	return game, nil
}

func (c *GameController) ListGames(
	ctx context.Context,
	request *ListGamesRequest,
) ([]Game, error) {
	log := logger.NewWithContext(ctx, "gameController").Function("ListGames")

	pageSize := request.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	page := request.Page
	if page < 0 {
		page = 0
	}

	games, err := c.gameRepo.List(ctx, c.db.SQL, repositories.GameFilter{
		Search:   request.Search,
		Genre:    request.Genre,
		Platform: request.Platform,
		Limit:    pageSize,
		Offset:   page * pageSize,
	})
	if err != nil {
		return nil, log.Error("failed to list games", "error", err)
	}

	return games, nil
}

func (c *GameController) CreateGame(
	ctx context.Context,
	actor *User,
	request *CreateGameRequest,
) (*Game, error) {
	log := logger.NewWithContext(ctx, "gameController").Function("CreateGame")

	if !actor.IsAdmin() {
		return nil, log.ErrorWithType(ErrForbidden, "only admins can create games directly")
	}

	title := strings.TrimSpace(request.Title)
	if title == "" {
		return nil, log.ErrorWithType(ErrValidation, "title is required")
	}

	game := &Game{
		Title:         title,
		Developer:     request.Developer,
		CoverImageURL: request.CoverImageURL,
		Genres:        datatypes.JSONSlice[string](request.Genres),
		Platforms:     datatypes.JSONSlice[string](request.Platforms),
	}

	if request.ReleaseDate != nil {
		released, err := time.Parse("2006-01-02", *request.ReleaseDate)
		if err != nil {
			return nil, log.ErrorWithType(ErrValidation, "invalid releaseDate, expected YYYY-MM-DD")
		}
		game.ReleaseDate = &released
	}

	if err := c.gameRepo.Create(ctx, c.db.SQL, game); err != nil {
		return nil, log.Error("failed to create game", "error", err, "title", title)
	}

	log.Info("Game created", "gameID", game.ID, "title", title)

	return game, nil
}

func (c *GameController) UpdateGame(
	ctx context.Context,
	actor *User,
	gameID uuid.UUID,
	request *UpdateGameRequest,
) (*Game, error) {
	log := logger.NewWithContext(ctx, "gameController").Function("UpdateGame")

	if !actor.IsAdmin() {
		return nil, log.ErrorWithType(ErrForbidden, "only admins can update games")
	}

	game, err := c.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if request.Title != nil {
		title := strings.TrimSpace(*request.Title)
		if title == "" {
			return nil, log.ErrorWithType(ErrValidation, "title cannot be empty")
		}
		game.Title = title
	}

	if request.Developer != nil {
		game.Developer = request.Developer
	}

	if request.CoverImageURL != nil {
		game.CoverImageURL = request.CoverImageURL
	}

	if request.Genres != nil {
		game.Genres = datatypes.JSONSlice[string](request.Genres)
	}

	if request.Platforms != nil {
		game.Platforms = datatypes.JSONSlice[string](request.Platforms)
	}

	if request.ReleaseDate != nil {
		released, err := time.Parse("2006-01-02", *request.ReleaseDate)
		if err != nil {
			return nil, log.ErrorWithType(ErrValidation, "invalid releaseDate, expected YYYY-MM-DD")
		}
		game.ReleaseDate = &released
	}

	if err := c.gameRepo.Update(ctx, c.db.SQL, game); err != nil {
		return nil, log.Error("failed to update game", "error", err, "gameID", gameID)
	}

	log.Info("Game updated", "gameID", gameID)

	return game, nil
}

func (c *GameController) DeleteGame(ctx context.Context, actor *User, gameID uuid.UUID) error {
	log := logger.NewWithContext(ctx, "gameController").Function("DeleteGame")

	if !actor.IsAdmin() {
		return log.ErrorWithType(ErrForbidden, "only admins can delete games")
	}

	if gameID == uuid.Nil {
		return log.ErrorWithType(ErrValidation, "gameId is required")
	}

	if err := c.gameRepo.Delete(ctx, c.db.SQL, gameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return log.ErrorWithType(ErrNotFound, "game not found", "gameID", gameID)
		}
		return log.Error("failed to delete game", "error", err, "gameID", gameID)
	}

	log.Info("Game deleted", "gameID", gameID, "actorID", actor.ID)

	return nil
}

func (c *GameController) SearchExternal(
	ctx context.Context,
	searchTerm string,
	limit int,
) ([]services.RawgGame, error) {
	log := logger.NewWithContext(ctx, "gameController").Function("SearchExternal")

	searchTerm = strings.TrimSpace(searchTerm)
	if searchTerm == "" {
		return nil, log.ErrorWithType(ErrValidation, "search term is required")
	}

	results, err := c.rawgService.SearchGames(ctx, searchTerm, limit)
	if err != nil {
		return nil, log.Error("external search failed", "error", err, "searchTerm", searchTerm)
	}

	return results, nil
}

// ImportGame pulls a game's details from RAWG and inserts it into the local
// catalog. The fetch happens outside the transaction, the upsert check and
// insert happen inside it.
func (c *GameController) ImportGame(
	ctx context.Context,
	request *ImportGameRequest,
) (*Game, error) {
	log := logger.NewWithContext(ctx, "gameController").Function("ImportGame")

	if request.RawgID <= 0 {
		return nil, log.ErrorWithType(ErrValidation, "rawgId is required")
	}

	rawgGame, err := c.rawgService.GetGameByID(ctx, request.RawgID)
	if err != nil {
		return nil, log.Error("failed to fetch game from RAWG", "error", err, "rawgID", request.RawgID)
	}

	var game *Game
	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		candidate := rawgGame.ToGame()

		existing, err := c.gameRepo.GetByExternalAPIID(ctx, tx, *candidate.ExternalAPIID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return log.Error("failed to check for existing game", "error", err)
		}
		if existing != nil {
			game = existing
			return nil
		}

		if err := c.gameRepo.Create(ctx, tx, candidate); err != nil {
			return log.Error("failed to create imported game", "error", err, "rawgID", request.RawgID)
		}

		game = candidate
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Game imported", "gameID", game.ID, "rawgID", request.RawgID)

	return game, nil
}

func (c *GameController) TopRated(ctx context.Context) ([]Game, error) {
	log := logger.NewWithContext(ctx, "gameController").Function("TopRated")

	games, err := c.gameRepo.TopRated(ctx, c.db.SQL, TopRatedLimit)
	if err != nil {
		return nil, log.Error("failed to load top rated games", "error", err)
	}

	return games, nil
}

func (c *GameController) Statistics(ctx context.Context) ([]GameStatistics, error) {
	log := logger.NewWithContext(ctx, "gameController").Function("Statistics")

	rows, err := c.gameRepo.Statistics(ctx, c.db.SQL, StatisticsMinReview)
	if err != nil {
		return nil, log.Error("failed to load game statistics", "error", err)
	}

	stats := make([]GameStatistics, 0, len(rows))
	for _, row := range rows {
		average := decimal.NewFromFloat(row.AverageRating).Round(2)
		stats = append(stats, GameStatistics{
			GameID:        row.GameID,
			Title:         row.Title,
			Developer:     row.Developer,
			CoverImageURL: row.CoverImageURL,
			ReviewCount:   row.ReviewCount,
			AverageRating: average.String(),
			UserCount:     row.UserCount,
			TotalSessions: row.TotalSessions,
		})
	}

	return stats, nil
}
