package jobs

import (
	"context"
	"errors"

	"gamehub/internal/repositories"
	"gamehub/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

const catalogRefreshLimit = 40

// CatalogRefreshJob pulls popular games from RAWG once a day and upserts
// them into the local catalog so searches hit fresh data.
type CatalogRefreshJob struct {
	rawg        *services.RawgService
	transaction *services.TransactionService
	gameRepo    repositories.GameRepository
	log         logger.Logger
	schedule    services.Schedule
}

func NewCatalogRefreshJob(
	rawg *services.RawgService,
	transaction *services.TransactionService,
	gameRepo repositories.GameRepository,
	schedule services.Schedule,
) *CatalogRefreshJob {
	log := logger.New("catalogRefreshJob")
	log.Info("Creating new catalog refresh job", "schedule", schedule)

	return &CatalogRefreshJob{
		rawg:        rawg,
		transaction: transaction,
		gameRepo:    gameRepo,
		log:         log,
		schedule:    schedule,
	}
}

func (j *CatalogRefreshJob) Name() string {
	return "DailyCatalogRefresh"
}

func (j *CatalogRefreshJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	popular, err := j.rawg.GetPopularGames(ctx, catalogRefreshLimit)
	if err != nil {
		return log.Err("failed to fetch popular games", err)
	}

	var created, updated int
	err = j.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		for i := range popular {
			game := popular[i].ToGame()

			existing, err := j.gameRepo.GetByExternalAPIID(ctx, tx, *game.ExternalAPIID)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return log.Err("failed to look up game", err, "externalAPIID", *game.ExternalAPIID)
			}

			if existing != nil {
				existing.Title = game.Title
				existing.Developer = game.Developer
				existing.ReleaseDate = game.ReleaseDate
				existing.CoverImageURL = game.CoverImageURL
				existing.Genres = game.Genres
				existing.Platforms = game.Platforms
				if err := j.gameRepo.Update(ctx, tx, existing); err != nil {
					return err
				}
				updated++
				continue
			}

			if err := j.gameRepo.Create(ctx, tx, game); err != nil {
				return err
			}
			created++
		}

		return nil
	})
	if err != nil {
		return err
	}

	log.Info("Catalog refresh completed", "created", created, "updated", updated)
	return nil
}

func (j *CatalogRefreshJob) Schedule() services.Schedule {
	return j.schedule
}
