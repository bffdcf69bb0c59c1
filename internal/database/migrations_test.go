package database

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMigrationDB(t *testing.T) (DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{})
	require.NoError(t, err)

	return DB{SQL: gormDB}, mock
}

// Uniqueness on (user, game) pairs, usernames, emails, earned achievements,
// and external game IDs must only cover live rows. Deletes are soft deletes,
// and a full unique index would let a tombstone block re-adding a game or
// recreating a review after removal.
func TestCreateIndexes_UniquenessScopedToLiveRows(t *testing.T) {
	db, mock := setupMigrationDB(t)

	expected := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_play_sessions_open ON play_sessions(user_id, game_id) WHERE end_time IS NULL AND deleted_at IS NULL",
		"CREATE INDEX IF NOT EXISTS idx_play_sessions_user_game ON play_sessions(user_id, game_id)",
		"CREATE INDEX IF NOT EXISTS idx_friendships_pair ON friendships(initiator_id, recipient_id)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_collection_user_game ON collection_entries(user_id, game_id) WHERE deleted_at IS NULL",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_reviews_user_game ON reviews(user_id, game_id) WHERE deleted_at IS NULL",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users(username) WHERE deleted_at IS NULL",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email) WHERE deleted_at IS NULL",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_user_achievements_pair ON user_achievements(user_id, achievement_id) WHERE deleted_at IS NULL",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_games_external_api_id ON games(external_api_id) WHERE deleted_at IS NULL",
	}
	for _, stmt := range expected {
		mock.ExpectExec(stmt).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, db.CreateIndexes())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateIndexes_StopsOnFirstFailure(t *testing.T) {
	db, mock := setupMigrationDB(t)

	mock.ExpectExec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_play_sessions_open ON play_sessions(user_id, game_id) WHERE end_time IS NULL AND deleted_at IS NULL",
	).WillReturnError(errors.New("relation play_sessions does not exist"))

	assert.Error(t, db.CreateIndexes())
}
