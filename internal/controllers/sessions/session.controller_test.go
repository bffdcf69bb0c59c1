package sessionController

import (
	"context"
	"testing"
	"time"

	"gamehub/internal/database"
	. "gamehub/internal/models"
	"gamehub/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeSessionStore struct {
	repositories.PlaySessionRepository
	sessions map[int]*PlaySession
	nextID   int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[int]*PlaySession), nextID: 1}
}

func (f *fakeSessionStore) GetByID(ctx context.Context, tx *gorm.DB, id int) (*PlaySession, error) {
	if session, ok := f.sessions[id]; ok {
		found := *session
		return &found, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSessionStore) GetOpenByUserAndGame(
	ctx context.Context,
	tx *gorm.DB,
	userID, gameID uuid.UUID,
) (*PlaySession, error) {
	for _, session := range f.sessions {
		if session.UserID == userID && session.GameID == gameID && session.IsOpen() {
			found := *session
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSessionStore) Create(ctx context.Context, tx *gorm.DB, session *PlaySession) error {
	session.ID = f.nextID
	f.nextID++
	stored := *session
	f.sessions[session.ID] = &stored
	return nil
}

func (f *fakeSessionStore) End(
	ctx context.Context,
	tx *gorm.DB,
	id int,
	endTime time.Time,
	notes *string,
) error {
	session, ok := f.sessions[id]
	if !ok || !session.IsOpen() {
		return gorm.ErrRecordNotFound
	}
	session.EndTime = &endTime
	if notes != nil {
		session.SessionNotes = notes
	}
	return nil
}

func (f *fakeSessionStore) ListCompletedByUser(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	gameID *uuid.UUID,
) ([]PlaySession, error) {
	var completed []PlaySession
	for _, session := range f.sessions {
		if session.UserID != userID || session.IsOpen() {
			continue
		}
		if gameID != nil && session.GameID != *gameID {
			continue
		}
		completed = append(completed, *session)
	}
	return completed, nil
}

type fakeCollectionLookup struct {
	repositories.CollectionRepository
	entries map[uuid.UUID]bool
}

func (f *fakeCollectionLookup) GetByUserAndGame(
	ctx context.Context,
	tx *gorm.DB,
	userID, gameID uuid.UUID,
) (*CollectionEntry, error) {
	if f.entries[gameID] {
		return &CollectionEntry{UserID: userID, GameID: gameID}, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type sessionFixture struct {
	controller *SessionController
	store      *fakeSessionStore
	collection *fakeCollectionLookup
	user       *User
	gameID     uuid.UUID
}

func newSessionFixture() *sessionFixture {
	store := newFakeSessionStore()
	gameID := uuid.New()
	collection := &fakeCollectionLookup{entries: map[uuid.UUID]bool{gameID: true}}

	return &sessionFixture{
		controller: &SessionController{
			sessionRepo:    store,
			collectionRepo: collection,
			db:             database.DB{},
		},
		store:      store,
		collection: collection,
		user:       &User{BaseUUIDModel: BaseUUIDModel{ID: uuid.New()}},
		gameID:     gameID,
	}
}

func TestStartSession_Success(t *testing.T) {
	f := newSessionFixture()

	session, err := f.controller.StartSession(context.Background(), f.user, &StartSessionRequest{
		GameID: f.gameID,
	})

	require.NoError(t, err)
	assert.True(t, session.IsOpen())
	assert.Equal(t, f.user.ID, session.UserID)
	assert.False(t, session.StartTime.IsZero())
}

func TestStartSession_GameNotInCollection(t *testing.T) {
	f := newSessionFixture()

	_, err := f.controller.StartSession(context.Background(), f.user, &StartSessionRequest{
		GameID: uuid.New(),
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStartSession_OpenSessionConflict(t *testing.T) {
	f := newSessionFixture()

	_, err := f.controller.StartSession(context.Background(), f.user, &StartSessionRequest{
		GameID: f.gameID,
	})
	require.NoError(t, err)

	_, err = f.controller.StartSession(context.Background(), f.user, &StartSessionRequest{
		GameID: f.gameID,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestEndSession_Success(t *testing.T) {
	f := newSessionFixture()

	started, err := f.controller.StartSession(context.Background(), f.user, &StartSessionRequest{
		GameID: f.gameID,
	})
	require.NoError(t, err)

	notes := "beat the second boss"
	ended, err := f.controller.EndSession(context.Background(), f.user, started.ID, &EndSessionRequest{
		SessionNotes: &notes,
	})

	require.NoError(t, err)
	assert.False(t, ended.IsOpen())
	require.NotNil(t, ended.SessionNotes)
	assert.Equal(t, notes, *ended.SessionNotes)

	// Ending the open session allows a new one to start.
	_, err = f.controller.StartSession(context.Background(), f.user, &StartSessionRequest{
		GameID: f.gameID,
	})
	assert.NoError(t, err)
}

func TestEndSession_AlreadyEnded(t *testing.T) {
	f := newSessionFixture()

	started, err := f.controller.StartSession(context.Background(), f.user, &StartSessionRequest{
		GameID: f.gameID,
	})
	require.NoError(t, err)

	_, err = f.controller.EndSession(context.Background(), f.user, started.ID, &EndSessionRequest{})
	require.NoError(t, err)

	_, err = f.controller.EndSession(context.Background(), f.user, started.ID, &EndSessionRequest{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEndSession_OtherUsersSession(t *testing.T) {
	f := newSessionFixture()

	started, err := f.controller.StartSession(context.Background(), f.user, &StartSessionRequest{
		GameID: f.gameID,
	})
	require.NoError(t, err)

	stranger := &User{BaseUUIDModel: BaseUUIDModel{ID: uuid.New()}}
	_, err = f.controller.EndSession(context.Background(), stranger, started.ID, &EndSessionRequest{})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestEndSession_AdminCanEnd(t *testing.T) {
	f := newSessionFixture()

	started, err := f.controller.StartSession(context.Background(), f.user, &StartSessionRequest{
		GameID: f.gameID,
	})
	require.NoError(t, err)

	admin := &User{BaseUUIDModel: BaseUUIDModel{ID: uuid.New()}, Role: RoleAdmin}
	_, err = f.controller.EndSession(context.Background(), admin, started.ID, &EndSessionRequest{})
	assert.NoError(t, err)
}

func TestGetPlaytimeStats(t *testing.T) {
	f := newSessionFixture()

	start := time.Now().UTC().Add(-5 * time.Hour)
	end90 := start.Add(90 * time.Minute)
	end30 := start.Add(30 * time.Minute)
	f.store.sessions[1] = &PlaySession{
		BaseModel: BaseModel{ID: 1},
		UserID:    f.user.ID,
		GameID:    f.gameID,
		StartTime: start,
		EndTime:   &end90,
	}
	f.store.sessions[2] = &PlaySession{
		BaseModel: BaseModel{ID: 2},
		UserID:    f.user.ID,
		GameID:    f.gameID,
		StartTime: start,
		EndTime:   &end30,
	}
	// Open sessions are excluded from stats.
	f.store.sessions[3] = &PlaySession{
		BaseModel: BaseModel{ID: 3},
		UserID:    f.user.ID,
		GameID:    f.gameID,
		StartTime: start,
	}

	stats, err := f.controller.GetPlaytimeStats(context.Background(), f.user, nil)

	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalSessions)
	assert.Equal(t, "2h 0m", stats.TotalPlaytime)
	assert.Equal(t, "2", stats.TotalHours)
	assert.Equal(t, "60", stats.AverageMinutes)
	assert.Equal(t, 90.0, stats.LongestMinutes)
}

func TestGetPlaytimeStats_NoSessions(t *testing.T) {
	f := newSessionFixture()

	stats, err := f.controller.GetPlaytimeStats(context.Background(), f.user, nil)

	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalSessions)
	assert.Equal(t, "0m", stats.TotalPlaytime)
	assert.Equal(t, "0", stats.TotalHours)
	assert.Equal(t, "0", stats.AverageMinutes)
}
