package collectionController

import (
	"context"
	"errors"
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

// workflowStore is a tiny in-memory stand-in for the three tables the
// collection workflows touch. The fake transaction executor snapshots it
// before each workflow body and restores it when the body errors, so the
// tests observe the same all-or-nothing behavior a real transaction gives.
type workflowStore struct {
	entries  map[uuid.UUID]CollectionEntry
	reviews  map[uuid.UUID]Review
	sessions map[int]PlaySession
}

func newWorkflowStore() *workflowStore {
	return &workflowStore{
		entries:  make(map[uuid.UUID]CollectionEntry),
		reviews:  make(map[uuid.UUID]Review),
		sessions: make(map[int]PlaySession),
	}
}

func (s *workflowStore) snapshot() *workflowStore {
	snap := newWorkflowStore()
	for k, v := range s.entries {
		snap.entries[k] = v
	}
	for k, v := range s.reviews {
		snap.reviews[k] = v
	}
	for k, v := range s.sessions {
		snap.sessions[k] = v
	}
	return snap
}

func (s *workflowStore) restore(snap *workflowStore) {
	s.entries = snap.entries
	s.reviews = snap.reviews
	s.sessions = snap.sessions
}

type fakeTransactionExecutor struct {
	store *workflowStore
}

func (f *fakeTransactionExecutor) Execute(
	ctx context.Context,
	fn func(context.Context, *gorm.DB) error,
) error {
	snap := f.store.snapshot()
	if err := fn(ctx, nil); err != nil {
		f.store.restore(snap)
		return err
	}
	return nil
}

type fakeCollectionRepo struct {
	repositories.CollectionRepository
	store *workflowStore
}

func (f *fakeCollectionRepo) Create(ctx context.Context, tx *gorm.DB, entry *CollectionEntry) error {
	entry.ID = uuid.New()
	f.store.entries[entry.ID] = *entry
	return nil
}

func (f *fakeCollectionRepo) GetByUserAndGame(
	ctx context.Context,
	tx *gorm.DB,
	userID, gameID uuid.UUID,
) (*CollectionEntry, error) {
	for _, entry := range f.store.entries {
		if entry.UserID == userID && entry.GameID == gameID {
			found := entry
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCollectionRepo) UpdateStatus(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
	status PlayStatus,
) error {
	entry, ok := f.store.entries[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	entry.PlayStatus = status
	f.store.entries[id] = entry
	return nil
}

func (f *fakeCollectionRepo) DeleteByUserAndGame(
	ctx context.Context,
	tx *gorm.DB,
	userID, gameID uuid.UUID,
) (int, error) {
	deleted := 0
	for id, entry := range f.store.entries {
		if entry.UserID == userID && entry.GameID == gameID {
			delete(f.store.entries, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeReviewRepo struct {
	repositories.ReviewRepository
	store *workflowStore
}

func (f *fakeReviewRepo) GetByUserAndGame(
	ctx context.Context,
	tx *gorm.DB,
	userID, gameID uuid.UUID,
) (*Review, error) {
	for _, review := range f.store.reviews {
		if review.UserID == userID && review.GameID == gameID {
			found := review
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReviewRepo) Create(ctx context.Context, tx *gorm.DB, review *Review) error {
	review.ID = uuid.New()
	f.store.reviews[review.ID] = *review
	return nil
}

func (f *fakeReviewRepo) DeleteByUserAndGame(
	ctx context.Context,
	tx *gorm.DB,
	userID, gameID uuid.UUID,
) (int, error) {
	deleted := 0
	for id, review := range f.store.reviews {
		if review.UserID == userID && review.GameID == gameID {
			delete(f.store.reviews, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeGameRepo struct {
	repositories.GameRepository
	known map[uuid.UUID]Game
}

func (f *fakeGameRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Game, error) {
	game, ok := f.known[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	found := game
	return &found, nil
}

type fakeSessionRepo struct {
	repositories.PlaySessionRepository
	store      *workflowStore
	failDelete bool
}

func (f *fakeSessionRepo) DeleteByUserAndGame(
	ctx context.Context,
	tx *gorm.DB,
	userID, gameID uuid.UUID,
) (int, error) {
	if f.failDelete {
		return 0, errors.New("session delete failed")
	}
	deleted := 0
	for id, session := range f.store.sessions {
		if session.UserID == userID && session.GameID == gameID {
			delete(f.store.sessions, id)
			deleted++
		}
	}
	return deleted, nil
}

type workflowFixture struct {
	controller *CollectionController
	store      *workflowStore
	sessions   *fakeSessionRepo
	user       *User
	gameID     uuid.UUID
}

func newWorkflowFixture() *workflowFixture {
	store := newWorkflowStore()
	sessions := &fakeSessionRepo{store: store}
	gameID := uuid.New()

	controller := &CollectionController{
		collectionRepo: &fakeCollectionRepo{store: store},
		reviewRepo:     &fakeReviewRepo{store: store},
		sessionRepo:    sessions,
		gameRepo: &fakeGameRepo{
			known: map[uuid.UUID]Game{gameID: {BaseUUIDModel: BaseUUIDModel{ID: gameID}}},
		},
		transactionService: &fakeTransactionExecutor{store: store},
		db:                 database.DB{},
	}

	return &workflowFixture{
		controller: controller,
		store:      store,
		sessions:   sessions,
		user:       &User{BaseUUIDModel: BaseUUIDModel{ID: uuid.New()}},
		gameID:     gameID,
	}
}

func (f *workflowFixture) addEntry(status PlayStatus) uuid.UUID {
	id := uuid.New()
	f.store.entries[id] = CollectionEntry{
		BaseUUIDModel: BaseUUIDModel{ID: id},
		UserID:        f.user.ID,
		GameID:        f.gameID,
		PlayStatus:    status,
	}
	return id
}

func (f *workflowFixture) addReview(rating int) uuid.UUID {
	id := uuid.New()
	f.store.reviews[id] = Review{
		BaseUUIDModel: BaseUUIDModel{ID: id},
		UserID:        f.user.ID,
		GameID:        f.gameID,
		Rating:        rating,
	}
	return id
}

func (f *workflowFixture) addSessions(count int) {
	for i := 0; i < count; i++ {
		f.store.sessions[i+1] = PlaySession{
			UserID:    f.user.ID,
			GameID:    f.gameID,
			StartTime: time.Now().UTC().Add(-time.Hour),
		}
	}
}

func TestRemoveGameCompletely_DeletesEverythingAndReportsCounts(t *testing.T) {
	f := newWorkflowFixture()
	f.addEntry(StatusCompleted)
	f.addReview(4)
	f.addSessions(3)

	response, err := f.controller.RemoveGameCompletely(context.Background(), f.user, f.gameID)

	require.NoError(t, err)
	assert.Equal(t, 1, response.ReviewsDeleted)
	assert.Equal(t, 3, response.SessionsDeleted)
	assert.True(t, response.CollectionEntryDeleted)

	assert.Empty(t, f.store.entries)
	assert.Empty(t, f.store.reviews)
	assert.Empty(t, f.store.sessions)
}

func TestRemoveGameCompletely_NoReviewOrSessions(t *testing.T) {
	f := newWorkflowFixture()
	f.addEntry(StatusInProgress)

	response, err := f.controller.RemoveGameCompletely(context.Background(), f.user, f.gameID)

	require.NoError(t, err)
	assert.Equal(t, 0, response.ReviewsDeleted)
	assert.Equal(t, 0, response.SessionsDeleted)
	assert.True(t, response.CollectionEntryDeleted)
	assert.Empty(t, f.store.entries)
}

func TestRemoveGameCompletely_RollsBackWhenSessionDeleteFails(t *testing.T) {
	f := newWorkflowFixture()
	f.addEntry(StatusCompleted)
	f.addReview(5)
	f.addSessions(2)
	f.sessions.failDelete = true

	response, err := f.controller.RemoveGameCompletely(context.Background(), f.user, f.gameID)

	assert.Error(t, err)
	assert.Nil(t, response)

	// The review deleted earlier in the workflow must come back.
	assert.Len(t, f.store.entries, 1)
	assert.Len(t, f.store.reviews, 1)
	assert.Len(t, f.store.sessions, 2)
}

func TestRemoveGameCompletely_NotInCollection(t *testing.T) {
	f := newWorkflowFixture()
	f.addReview(3)
	f.addSessions(1)

	response, err := f.controller.RemoveGameCompletely(context.Background(), f.user, f.gameID)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, response)

	// Nothing is deleted when the entry does not exist.
	assert.Len(t, f.store.reviews, 1)
	assert.Len(t, f.store.sessions, 1)
}

func TestRemoveGameCompletely_OnlyRemovesTargetGame(t *testing.T) {
	f := newWorkflowFixture()
	f.addEntry(StatusCompleted)
	f.addSessions(2)

	otherEntryID := uuid.New()
	otherGameID := uuid.New()
	f.store.entries[otherEntryID] = CollectionEntry{
		BaseUUIDModel: BaseUUIDModel{ID: otherEntryID},
		UserID:        f.user.ID,
		GameID:        otherGameID,
		PlayStatus:    StatusInProgress,
	}

	response, err := f.controller.RemoveGameCompletely(context.Background(), f.user, f.gameID)

	require.NoError(t, err)
	assert.True(t, response.CollectionEntryDeleted)
	assert.Len(t, f.store.entries, 1)
	_, stillThere := f.store.entries[otherEntryID]
	assert.True(t, stillThere)
}

func TestRemoveGameCompletely_GameCanBeAddedAgain(t *testing.T) {
	f := newWorkflowFixture()
	f.addEntry(StatusCompleted)
	f.addReview(5)
	f.addSessions(2)

	_, err := f.controller.RemoveGameCompletely(context.Background(), f.user, f.gameID)
	require.NoError(t, err)

	entry, err := f.controller.AddGame(context.Background(), f.user, &AddGameRequest{
		GameID: f.gameID,
	})

	require.NoError(t, err)
	assert.Equal(t, f.gameID, entry.GameID)
	assert.Equal(t, StatusNotStarted, entry.PlayStatus)
	assert.Len(t, f.store.entries, 1)
}

func TestMarkComplete_NoRatingPromptsForReview(t *testing.T) {
	f := newWorkflowFixture()
	entryID := f.addEntry(StatusInProgress)

	response, err := f.controller.MarkCompleteWithReviewPrompt(
		context.Background(), f.user, f.gameID, &MarkCompleteRequest{})

	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, response.PreviousStatus)
	assert.Equal(t, StatusCompleted, response.NewStatus)
	assert.False(t, response.ReviewCreated)
	assert.Nil(t, response.ReviewID)
	assert.True(t, response.NeedsReview)

	assert.Equal(t, StatusCompleted, f.store.entries[entryID].PlayStatus)
	assert.Empty(t, f.store.reviews)
}

func TestMarkComplete_WithRatingCreatesReview(t *testing.T) {
	f := newWorkflowFixture()
	f.addEntry(StatusNotStarted)

	rating := 4
	response, err := f.controller.MarkCompleteWithReviewPrompt(
		context.Background(), f.user, f.gameID, &MarkCompleteRequest{Rating: &rating})

	require.NoError(t, err)
	assert.True(t, response.ReviewCreated)
	require.NotNil(t, response.ReviewID)
	assert.False(t, response.NeedsReview)

	review, ok := f.store.reviews[*response.ReviewID]
	require.True(t, ok)
	assert.Equal(t, 4, review.Rating)
	assert.Nil(t, review.ReviewText)
}

func TestMarkComplete_ExistingReviewIgnoresRating(t *testing.T) {
	f := newWorkflowFixture()
	f.addEntry(StatusInProgress)
	reviewID := f.addReview(5)

	rating := 4
	response, err := f.controller.MarkCompleteWithReviewPrompt(
		context.Background(), f.user, f.gameID, &MarkCompleteRequest{Rating: &rating})

	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, response.NewStatus)
	assert.False(t, response.ReviewCreated)
	assert.Nil(t, response.ReviewID)
	assert.False(t, response.NeedsReview)

	// The existing review keeps its original rating.
	assert.Len(t, f.store.reviews, 1)
	assert.Equal(t, 5, f.store.reviews[reviewID].Rating)
}

func TestMarkComplete_InvalidRatingRollsBackStatusChange(t *testing.T) {
	f := newWorkflowFixture()
	entryID := f.addEntry(StatusInProgress)

	rating := 7
	response, err := f.controller.MarkCompleteWithReviewPrompt(
		context.Background(), f.user, f.gameID, &MarkCompleteRequest{Rating: &rating})

	assert.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, response)

	// The status update happened before validation inside the transaction, so
	// the rollback must undo it.
	assert.Equal(t, StatusInProgress, f.store.entries[entryID].PlayStatus)
	assert.Empty(t, f.store.reviews)
}

func TestMarkComplete_AlreadyCompleted(t *testing.T) {
	f := newWorkflowFixture()
	entryID := f.addEntry(StatusCompleted)

	response, err := f.controller.MarkCompleteWithReviewPrompt(
		context.Background(), f.user, f.gameID, &MarkCompleteRequest{})

	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, response.PreviousStatus)
	assert.Equal(t, StatusCompleted, response.NewStatus)
	assert.Equal(t, StatusCompleted, f.store.entries[entryID].PlayStatus)
}

func TestMarkComplete_NotInCollection(t *testing.T) {
	f := newWorkflowFixture()

	response, err := f.controller.MarkCompleteWithReviewPrompt(
		context.Background(), f.user, f.gameID, &MarkCompleteRequest{})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, response)
}
