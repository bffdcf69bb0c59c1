package database

import (
	"gamehub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

// MigrateModels runs GORM AutoMigrate for all models
func (db *DB) MigrateModels() error {
	log := logger.New("database").Function("MigrateModels")
	log.Info("Starting database migration")

	modelsToMigrate := []any{
		&models.User{},
		&models.Game{},
		&models.Achievement{},
		&models.CollectionEntry{},
		&models.Review{},
		&models.PlaySession{},
		&models.UserAchievement{},
		&models.Friendship{},
	}

	for _, model := range modelsToMigrate {
		if err := db.SQL.AutoMigrate(model); err != nil {
			return log.Err("failed to migrate model", err, "model", model)
		}
	}

	log.Info("Database migration completed successfully")
	return nil
}

// CreateIndexes creates indexes that GORM tags cannot express.
func (db *DB) CreateIndexes() error {
	log := logger.New("database").Function("CreateIndexes")
	log.Info("Creating additional database indexes")

	indexes := []string{
		// One open session per (user, game). GORM has no partial unique
		// index tag, so this rule lives here.
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_play_sessions_open ON play_sessions(user_id, game_id) WHERE end_time IS NULL AND deleted_at IS NULL",
		"CREATE INDEX IF NOT EXISTS idx_play_sessions_user_game ON play_sessions(user_id, game_id)",
		"CREATE INDEX IF NOT EXISTS idx_friendships_pair ON friendships(initiator_id, recipient_id)",
		// Uniqueness constraints scoped to live rows. Deletes are soft
		// deletes, so a full unique index would let a tombstone block
		// re-adding a game, re-reviewing it, or re-registering a username.
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_collection_user_game ON collection_entries(user_id, game_id) WHERE deleted_at IS NULL",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_reviews_user_game ON reviews(user_id, game_id) WHERE deleted_at IS NULL",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users(username) WHERE deleted_at IS NULL",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email) WHERE deleted_at IS NULL",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_user_achievements_pair ON user_achievements(user_id, achievement_id) WHERE deleted_at IS NULL",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_games_external_api_id ON games(external_api_id) WHERE deleted_at IS NULL",
	}

	for _, index := range indexes {
		if err := db.SQL.Exec(index).Error; err != nil {
			return log.Err("failed to create index", err, "index", index)
		}
	}

	log.Info("Additional indexes created successfully")
	return nil
}
