package jobs

import (
	"context"
	"time"

	"gamehub/internal/repositories"
	"gamehub/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

// StaleSessionJob closes play sessions that were started but never ended.
// A session left open longer than the configured cutoff is ended at the
// cutoff boundary so playtime totals stay sane.
type StaleSessionJob struct {
	transaction *services.TransactionService
	sessionRepo repositories.PlaySessionRepository
	maxOpenAge  time.Duration
	log         logger.Logger
	schedule    services.Schedule
}

func NewStaleSessionJob(
	transaction *services.TransactionService,
	sessionRepo repositories.PlaySessionRepository,
	maxOpenHours int,
	schedule services.Schedule,
) *StaleSessionJob {
	log := logger.New("staleSessionJob")
	log.Info("Creating new stale session job", "maxOpenHours", maxOpenHours)

	return &StaleSessionJob{
		transaction: transaction,
		sessionRepo: sessionRepo,
		maxOpenAge:  time.Duration(maxOpenHours) * time.Hour,
		log:         log,
		schedule:    schedule,
	}
}

func (j *StaleSessionJob) Name() string {
	return "HourlyStaleSessionCleanup"
}

func (j *StaleSessionJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	cutoff := time.Now().UTC().Add(-j.maxOpenAge)

	return j.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		stale, err := j.sessionRepo.ListStaleOpen(ctx, tx, cutoff)
		if err != nil {
			return log.Err("failed to list stale sessions", err)
		}

		if len(stale) == 0 {
			return nil
		}

		for _, session := range stale {
			endTime := session.StartTime.Add(j.maxOpenAge)
			if err := j.sessionRepo.End(ctx, tx, session.ID, endTime, nil); err != nil {
				return log.Err("failed to close stale session", err, "sessionID", session.ID)
			}
		}

		log.Info("Closed stale play sessions", "count", len(stale))
		return nil
	})
}

func (j *StaleSessionJob) Schedule() services.Schedule {
	return j.schedule
}
