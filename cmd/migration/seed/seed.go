package seed

import (
	"time"

	"gamehub/config"
	. "gamehub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func stringPtr(s string) *string {
	return &s
}

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	users, err := seedUsers(db, log)
	if err != nil {
		return err
	}

	if err := seedCollections(db, users, log); err != nil {
		return err
	}

	return nil
}

func seedUsers(db *gorm.DB, log logger.Logger) ([]User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, log.Err("failed to hash seed password", err)
	}

	users := []User{
		{
			Username:     "admin",
			Email:        "admin@example.com",
			PasswordHash: string(hash),
			DisplayName:  "Administrator",
			Role:         RoleAdmin,
		},
		{
			Username:     "player_one",
			Email:        "player.one@example.com",
			PasswordHash: string(hash),
			DisplayName:  "Player One",
			Role:         RoleUser,
		},
		{
			Username:     "ada",
			Email:        "ada.lovelace@example.com",
			PasswordHash: string(hash),
			DisplayName:  "Ada Lovelace",
			Role:         RoleUser,
		},
	}

	for i := range users {
		var existingUser User
		if err := db.First(&existingUser, "username = ?", users[i].Username).Error; err == nil {
			users[i] = existingUser
			log.Info("User already exists", "username", users[i].Username)
			continue
		}
		log.Info("Seeding user", "username", users[i].Username)
		if err := db.Create(&users[i]).Error; err != nil {
			return nil, log.Err("failed to create user", err, "username", users[i].Username)
		}
	}

	return users, nil
}

func seedCollections(db *gorm.DB, users []User, log logger.Logger) error {
	if len(users) < 2 {
		return nil
	}

	var games []Game
	if err := db.Limit(3).Find(&games).Error; err != nil {
		return log.Err("failed to load seed games", err)
	}

	player := users[1]
	for i, game := range games {
		var existing CollectionEntry
		err := db.First(&existing, "user_id = ? AND game_id = ?", player.ID, game.ID).Error
		if err == nil {
			continue
		}

		status := StatusInProgress
		if i == 0 {
			status = StatusCompleted
		}

		entry := CollectionEntry{
			UserID:     player.ID,
			GameID:     game.ID,
			PlayStatus: status,
		}
		if err := db.Create(&entry).Error; err != nil {
			return log.Err("failed to create collection entry", err, "title", game.Title)
		}

		session := PlaySession{
			UserID:    player.ID,
			GameID:    game.ID,
			StartTime: time.Now().UTC().Add(-3 * time.Hour),
			EndTime:   timePtr(time.Now().UTC().Add(-1 * time.Hour)),
		}
		if err := db.Create(&session).Error; err != nil {
			return log.Err("failed to create play session", err, "title", game.Title)
		}

		if status == StatusCompleted {
			review := Review{
				UserID:     player.ID,
				GameID:     game.ID,
				Rating:     5,
				ReviewText: stringPtr("An easy recommendation."),
			}
			if err := db.Create(&review).Error; err != nil {
				return log.Err("failed to create review", err, "title", game.Title)
			}
		}
	}

	log.Info("Seeded collection data", "games", len(games))
	return nil
}

func timePtr(t time.Time) *time.Time {
	return &t
}
