package repositories

import (
	"context"
	"strings"

	"gamehub/internal/database"
	. "gamehub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GameFilter narrows catalog listings. Zero values mean "no filter".
type GameFilter struct {
	Search   string
	Genre    string
	Platform string
	Limit    int
	Offset   int
}

// GameStatsRow is one row of the aggregate statistics projection.
type GameStatsRow struct {
	GameID        uuid.UUID `json:"gameId"`
	Title         string    `json:"title"`
	Developer     *string   `json:"developer,omitempty"`
	CoverImageURL *string   `json:"coverImageUrl,omitempty"`
	ReviewCount   int64     `json:"reviewCount"`
	AverageRating float64   `json:"-"`
	UserCount     int64     `json:"userCount"`
	TotalSessions int64     `json:"totalSessions"`
}

type GameRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Game, error)
	GetByExternalAPIID(ctx context.Context, tx *gorm.DB, externalAPIID string) (*Game, error)
	Create(ctx context.Context, tx *gorm.DB, game *Game) error
	Update(ctx context.Context, tx *gorm.DB, game *Game) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	List(ctx context.Context, tx *gorm.DB, filter GameFilter) ([]Game, error)
	TopRated(ctx context.Context, tx *gorm.DB, limit int) ([]Game, error)
	Statistics(ctx context.Context, tx *gorm.DB, minReviews int) ([]GameStatsRow, error)
}

type gameRepository struct {
	cache database.CacheClient
	log   logger.Logger
}

func NewGameRepository(cache database.CacheClient) GameRepository {
	return &gameRepository{
		cache: cache,
		log:   logger.New("gameRepository"),
	}
}

func (r *gameRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Game, error) {
	return gorm.G[*Game](tx).Where("id = ?", id).First(ctx)
}

func (r *gameRepository) GetByExternalAPIID(
	ctx context.Context,
	tx *gorm.DB,
	externalAPIID string,
) (*Game, error) {
	return gorm.G[*Game](tx).Where("external_api_id = ?", externalAPIID).First(ctx)
}

func (r *gameRepository) Create(ctx context.Context, tx *gorm.DB, game *Game) error {
	log := r.log.Function("Create")

	if err := gorm.G[Game](tx).Create(ctx, game); err != nil {
		return log.Err("failed to create game", err, "title", game.Title)
	}

	return nil
}

func (r *gameRepository) Update(ctx context.Context, tx *gorm.DB, game *Game) error {
	log := r.log.Function("Update")

	if err := tx.WithContext(ctx).Save(game).Error; err != nil {
		return log.Err("failed to update game", err, "gameID", game.ID)
	}

	return nil
}

func (r *gameRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	log := r.log.Function("Delete")

	rowsAffected, err := gorm.G[*Game](tx).Where("id = ?", id).Delete(ctx)
	if err != nil {
		return log.Err("failed to delete game", err, "gameID", id)
	}

	if rowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *gameRepository) List(
	ctx context.Context,
	tx *gorm.DB,
	filter GameFilter,
) ([]Game, error) {
	log := r.log.Function("List")

	query := tx.WithContext(ctx).Model(&Game{})

	if filter.Search != "" {
		pattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("title ILIKE ? OR developer ILIKE ?", pattern, pattern)
	}

	if filter.Genre != "" {
		query = query.Where("genres @> ?", `["`+filter.Genre+`"]`)
	}

	if filter.Platform != "" {
		query = query.Where("platforms @> ?", `["`+filter.Platform+`"]`)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	query = query.Offset(filter.Offset).Order("title ASC")

	var games []Game
	if err := query.Find(&games).Error; err != nil {
		return nil, log.Err("failed to list games", err)
	}

	return games, nil
}

// TopRated returns games whose average review rating is above the global
// average across all reviews, best first.
func (r *gameRepository) TopRated(ctx context.Context, tx *gorm.DB, limit int) ([]Game, error) {
	log := r.log.Function("TopRated")

	var games []Game
	err := tx.WithContext(ctx).
		Joins("JOIN reviews ON reviews.game_id = games.id AND reviews.deleted_at IS NULL").
		Group("games.id").
		Having("AVG(reviews.rating) > (SELECT AVG(rating) FROM reviews WHERE deleted_at IS NULL)").
		Order("AVG(reviews.rating) DESC").
		Limit(limit).
		Find(&games).Error
	if err != nil {
		return nil, log.Err("failed to query top rated games", err)
	}

	return games, nil
}

func (r *gameRepository) Statistics(
	ctx context.Context,
	tx *gorm.DB,
	minReviews int,
) ([]GameStatsRow, error) {
	log := r.log.Function("Statistics")

	var rows []GameStatsRow
	err := tx.WithContext(ctx).
		Model(&Game{}).
		Select(`games.id AS game_id,
			games.title,
			games.developer,
			games.cover_image_url,
			COUNT(DISTINCT reviews.id) AS review_count,
			COALESCE(AVG(reviews.rating), 0) AS average_rating,
			COUNT(DISTINCT collection_entries.user_id) AS user_count,
			COUNT(DISTINCT play_sessions.id) AS total_sessions`).
		Joins("LEFT JOIN reviews ON reviews.game_id = games.id AND reviews.deleted_at IS NULL").
		Joins("LEFT JOIN collection_entries ON collection_entries.game_id = games.id AND collection_entries.deleted_at IS NULL").
		Joins("LEFT JOIN play_sessions ON play_sessions.game_id = games.id AND play_sessions.deleted_at IS NULL").
		Group("games.id, games.title, games.developer, games.cover_image_url").
		Having("COUNT(DISTINCT reviews.id) >= ?", minReviews).
		Order("average_rating DESC, review_count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, log.Err("failed to query game statistics", err)
	}

	return rows, nil
}
