package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gamehub/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRawgTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *RawgService) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	service := NewRawgService(config.Config{
		RawgBaseURL: server.URL,
		RawgAPIKey:  "test-key",
	}, nil)

	return server, service
}

func TestRawgService_GetPopularGames(t *testing.T) {
	var gotQuery map[string]string
	_, service := newRawgTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"key":        r.URL.Query().Get("key"),
			"ordering":   r.URL.Query().Get("ordering"),
			"metacritic": r.URL.Query().Get("metacritic"),
			"page_size":  r.URL.Query().Get("page_size"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"count": 2,
			"results": [
				{"id": 101, "name": "First Game", "rating": 4.5},
				{"id": 102, "name": "Second Game", "rating": 4.2}
			]
		}`))
	})

	games, err := service.GetPopularGames(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, 101, games[0].ID)
	assert.Equal(t, "First Game", games[0].Name)

	assert.Equal(t, "test-key", gotQuery["key"])
	assert.Equal(t, "-added", gotQuery["ordering"])
	assert.Equal(t, "80,100", gotQuery["metacritic"])
	assert.Equal(t, "2", gotQuery["page_size"])
}

func TestRawgService_GetPopularGames_DefaultsLimit(t *testing.T) {
	var pageSize string
	_, service := newRawgTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		pageSize = r.URL.Query().Get("page_size")
		_, _ = w.Write([]byte(`{"count": 0, "results": []}`))
	})

	_, err := service.GetPopularGames(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, "20", pageSize)
}

func TestRawgService_ErrorStatus(t *testing.T) {
	_, service := newRawgTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "invalid key"}`))
	})

	_, err := service.GetPopularGames(context.Background(), 5)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestRawgService_MissingAPIKey(t *testing.T) {
	service := NewRawgService(config.Config{RawgBaseURL: "http://localhost"}, nil)

	_, err := service.GetPopularGames(context.Background(), 5)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestRawgGame_ToGame(t *testing.T) {
	released := "2017-03-03"
	image := "https://example.com/cover.jpg"
	game := RawgGame{
		ID:              3328,
		Name:            "The Witcher 3: Wild Hunt",
		Released:        &released,
		BackgroundImage: &image,
		Developers: []struct {
			Name string `json:"name"`
		}{{Name: "CD Projekt Red"}, {Name: "Other Studio"}},
		Genres: []struct {
			Name string `json:"name"`
		}{{Name: "RPG"}, {Name: "Action"}},
		Platforms: []struct {
			Platform struct {
				Name string `json:"name"`
			} `json:"platform"`
		}{{Platform: struct {
			Name string `json:"name"`
		}{Name: "PC"}}},
	}

	model := game.ToGame()

	require.NotNil(t, model.ExternalAPIID)
	assert.Equal(t, "3328", *model.ExternalAPIID)
	assert.Equal(t, "The Witcher 3: Wild Hunt", model.Title)
	require.NotNil(t, model.Developer)
	assert.Equal(t, "CD Projekt Red", *model.Developer)
	require.NotNil(t, model.ReleaseDate)
	assert.Equal(t, time.Date(2017, time.March, 3, 0, 0, 0, 0, time.UTC), *model.ReleaseDate)
	assert.Equal(t, []string{"RPG", "Action"}, []string(model.Genres))
	assert.Equal(t, []string{"PC"}, []string(model.Platforms))
}

func TestRawgGame_ToGame_MinimalPayload(t *testing.T) {
	game := RawgGame{ID: 7, Name: "Obscure Indie"}

	model := game.ToGame()

	assert.Equal(t, "Obscure Indie", model.Title)
	assert.Nil(t, model.Developer)
	assert.Nil(t, model.ReleaseDate)
	assert.Empty(t, model.Genres)
	assert.Empty(t, model.Platforms)
}
