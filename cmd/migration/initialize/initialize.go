package initialize

import (
	"time"

	"gamehub/config"
	. "gamehub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing essential production data")

	if err := initializeCatalog(db, log); err != nil {
		return log.Err("failed to initialize game catalog", err)
	}

	log.Info("Table initialization complete")
	return nil
}

func initializeCatalog(db *gorm.DB, log logger.Logger) error {
	log.Info("Initializing starter game catalog")

	games := getCatalogData()

	for _, game := range games {
		var existingGame Game
		if err := db.First(&existingGame, "title = ?", game.Title).Error; err == nil {
			log.Debug("Game already exists", "title", game.Title)
			continue
		}
		log.Info("Initializing game", "title", game.Title)
		if err := db.Create(&game).Error; err != nil {
			return log.Err("failed to create game", err, "title", game.Title)
		}
	}

	log.Info("Starter game catalog initialized", "count", len(games))
	return nil
}

func stringPtr(s string) *string {
	return &s
}

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func getCatalogData() []Game {
	return []Game{
		{
			Title:       "The Legend of Zelda: Breath of the Wild",
			Developer:   stringPtr("Nintendo"),
			ReleaseDate: datePtr(2017, time.March, 3),
			Genres:      datatypes.NewJSONSlice([]string{"Action", "Adventure"}),
			Platforms:   datatypes.NewJSONSlice([]string{"Nintendo Switch", "Wii U"}),
		},
		{
			Title:       "Hades",
			Developer:   stringPtr("Supergiant Games"),
			ReleaseDate: datePtr(2020, time.September, 17),
			Genres:      datatypes.NewJSONSlice([]string{"Action", "Roguelike"}),
			Platforms:   datatypes.NewJSONSlice([]string{"PC", "Nintendo Switch", "PlayStation 5", "Xbox Series X"}),
		},
		{
			Title:       "Stardew Valley",
			Developer:   stringPtr("ConcernedApe"),
			ReleaseDate: datePtr(2016, time.February, 26),
			Genres:      datatypes.NewJSONSlice([]string{"Simulation", "RPG"}),
			Platforms:   datatypes.NewJSONSlice([]string{"PC", "Nintendo Switch", "PlayStation 4", "Xbox One", "Mobile"}),
		},
		{
			Title:       "Elden Ring",
			Developer:   stringPtr("FromSoftware"),
			ReleaseDate: datePtr(2022, time.February, 25),
			Genres:      datatypes.NewJSONSlice([]string{"Action", "RPG"}),
			Platforms:   datatypes.NewJSONSlice([]string{"PC", "PlayStation 5", "Xbox Series X"}),
		},
		{
			Title:       "Hollow Knight",
			Developer:   stringPtr("Team Cherry"),
			ReleaseDate: datePtr(2017, time.February, 24),
			Genres:      datatypes.NewJSONSlice([]string{"Metroidvania", "Action"}),
			Platforms:   datatypes.NewJSONSlice([]string{"PC", "Nintendo Switch", "PlayStation 4", "Xbox One"}),
		},
		{
			Title:       "Portal 2",
			Developer:   stringPtr("Valve"),
			ReleaseDate: datePtr(2011, time.April, 19),
			Genres:      datatypes.NewJSONSlice([]string{"Puzzle", "Platformer"}),
			Platforms:   datatypes.NewJSONSlice([]string{"PC", "PlayStation 3", "Xbox 360"}),
		},
	}
}
