package jobs

import (
	"gamehub/config"
	"gamehub/internal/repositories"
	"gamehub/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

// Import schedule constants
const (
	Daily  = services.Daily
	Hourly = services.Hourly
)

func RegisterAllJobs(
	schedulerService *services.SchedulerService,
	config config.Config,
	services services.Service,
	repos repositories.Repository,
) error {
	log := logger.New("jobs").Function("RegisterAllJobs")
	log.Info("Registering jobs")

	staleSessionJob := NewStaleSessionJob(
		services.Transaction,
		repos.PlaySession,
		config.StaleSessionHours,
		Hourly,
	)
	if err := schedulerService.AddJob(staleSessionJob); err != nil {
		return log.Err("failed to register stale session job", err)
	}
	log.Info("Registered stale session job", "schedule", "hourly")

	catalogRefreshJob := NewCatalogRefreshJob(
		services.Rawg,
		services.Transaction,
		repos.Game,
		Daily,
	)
	if err := schedulerService.AddJob(catalogRefreshJob); err != nil {
		return log.Err("failed to register catalog refresh job", err)
	}
	log.Info("Registered catalog refresh job", "schedule", "daily")

	return nil
}
