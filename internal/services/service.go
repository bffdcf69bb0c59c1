package services

import (
	"gamehub/config"
	"gamehub/internal/database"
)

type Service struct {
	Rawg        *RawgService
	Token       *TokenService
	Transaction *TransactionService
	Scheduler   *SchedulerService
}

func New(db database.DB, config config.Config) (Service, error) {
	transactionService := NewTransactionService(db)
	tokenService := NewTokenService(config)
	rawgService := NewRawgService(config, db.Cache.ClientAPI)
	schedulerService := NewSchedulerService()

	return Service{
		Rawg:        rawgService,
		Token:       tokenService,
		Transaction: transactionService,
		Scheduler:   schedulerService,
	}, nil
}
