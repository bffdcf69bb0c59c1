package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"gamehub/config"
	"gamehub/internal/database"
	"gamehub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/datatypes"
)

const rawgCacheExpiry = 6 * time.Hour

// RawgService talks to the RAWG video games database API.
// Responses are cached in the client API cache to stay inside the
// free tier request quota.
type RawgService struct {
	client  *http.Client
	cache   database.CacheClient
	baseURL string
	apiKey  string
	log     logger.Logger
}

type RawgGame struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Released        *string `json:"released"`
	BackgroundImage *string `json:"background_image"`
	Rating          float64 `json:"rating"`
	Metacritic      *int    `json:"metacritic"`
	Developers      []struct {
		Name string `json:"name"`
	} `json:"developers"`
	Genres []struct {
		Name string `json:"name"`
	} `json:"genres"`
	Platforms []struct {
		Platform struct {
			Name string `json:"name"`
		} `json:"platform"`
	} `json:"platforms"`
}

type rawgListResponse struct {
	Count   int        `json:"count"`
	Results []RawgGame `json:"results"`
}

func NewRawgService(config config.Config, cache database.CacheClient) *RawgService {
	return &RawgService{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache:   cache,
		baseURL: config.RawgBaseURL,
		apiKey:  config.RawgAPIKey,
		log:     logger.New("RawgService"),
	}
}

func (s *RawgService) makeRequest(
	ctx context.Context,
	endpoint string,
	params url.Values,
	result any,
) error {
	log := s.log.Function("makeRequest")

	if s.apiKey == "" {
		return log.ErrMsg("RAWG API key is not configured")
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("key", s.apiKey)

	requestURL := s.baseURL + "/" + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return log.Err("failed to create request", err, "endpoint", endpoint)
	}

	req.Header.Set("User-Agent", "GameHub/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return log.Err("failed to make request", err, "endpoint", endpoint)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn("failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		err := fmt.Errorf("rawg api error: %d - %s", resp.StatusCode, string(body))
		return log.Err("unexpected response status", err, "endpoint", endpoint)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return log.Err("failed to decode response", err, "endpoint", endpoint)
	}

	return nil
}

// SearchGames searches the catalog by name, best rated first.
func (s *RawgService) SearchGames(
	ctx context.Context,
	searchTerm string,
	limit int,
) ([]RawgGame, error) {
	log := s.log.Function("SearchGames")

	if limit <= 0 {
		limit = 10
	}

	cacheKey := fmt.Sprintf("rawg:search:%s:%d", searchTerm, limit)
	var cached []RawgGame
	found, err := database.NewCacheBuilder(s.cache, cacheKey).
		WithContext(ctx).
		Get(&cached)
	if err == nil && found {
		return cached, nil
	}

	params := url.Values{}
	params.Set("search", searchTerm)
	params.Set("page_size", strconv.Itoa(limit))
	params.Set("ordering", "-rating")

	var response rawgListResponse
	if err := s.makeRequest(ctx, "games", params, &response); err != nil {
		return nil, err
	}

	if err := database.NewCacheBuilder(s.cache, cacheKey).
		WithContext(ctx).
		WithStruct(response.Results).
		WithTTL(rawgCacheExpiry).
		Set(); err != nil {
		log.Warn("failed to cache search results", "error", err)
	}

	return response.Results, nil
}

// GetGameByID fetches detailed game information by RAWG ID.
func (s *RawgService) GetGameByID(ctx context.Context, rawgID int) (*RawgGame, error) {
	log := s.log.Function("GetGameByID")

	cacheKey := fmt.Sprintf("rawg:game:%d", rawgID)
	var cached RawgGame
	found, err := database.NewCacheBuilder(s.cache, cacheKey).
		WithContext(ctx).
		Get(&cached)
	if err == nil && found {
		return &cached, nil
	}

	var game RawgGame
	if err := s.makeRequest(ctx, "games/"+strconv.Itoa(rawgID), nil, &game); err != nil {
		return nil, err
	}

	if err := database.NewCacheBuilder(s.cache, cacheKey).
		WithContext(ctx).
		WithStruct(game).
		WithTTL(rawgCacheExpiry).
		Set(); err != nil {
		log.Warn("failed to cache game", "error", err, "rawgID", rawgID)
	}

	return &game, nil
}

// GetPopularGames returns high rated games most added to collections.
func (s *RawgService) GetPopularGames(ctx context.Context, limit int) ([]RawgGame, error) {
	if limit <= 0 {
		limit = 20
	}

	params := url.Values{}
	params.Set("page_size", strconv.Itoa(limit))
	params.Set("ordering", "-added")
	params.Set("metacritic", "80,100")

	var response rawgListResponse
	if err := s.makeRequest(ctx, "games", params, &response); err != nil {
		return nil, err
	}

	return response.Results, nil
}

// ToGame maps a RAWG payload onto the local catalog model.
func (g *RawgGame) ToGame() *models.Game {
	externalID := strconv.Itoa(g.ID)
	game := &models.Game{
		ExternalAPIID: &externalID,
		Title:         g.Name,
		CoverImageURL: g.BackgroundImage,
		Genres:        datatypes.JSONSlice[string]{},
		Platforms:     datatypes.JSONSlice[string]{},
	}

	if len(g.Developers) > 0 {
		developer := g.Developers[0].Name
		game.Developer = &developer
	}

	if g.Released != nil {
		if released, err := time.Parse("2006-01-02", *g.Released); err == nil {
			game.ReleaseDate = &released
		}
	}

	for _, genre := range g.Genres {
		game.Genres = append(game.Genres, genre.Name)
	}

	for _, platform := range g.Platforms {
		game.Platforms = append(game.Platforms, platform.Platform.Name)
	}

	return game
}
