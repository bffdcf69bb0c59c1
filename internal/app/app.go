package app

import (
	"context"

	"gamehub/config"
	"gamehub/internal/controllers"
	"gamehub/internal/database"
	"gamehub/internal/handlers/middleware"
	"gamehub/internal/jobs"
	"gamehub/internal/repositories"
	"gamehub/internal/services"
	"gamehub/pkg/logger"
)

type App struct {
	Database    database.DB
	Middleware  middleware.Middleware
	Config      config.Config
	Services    services.Service
	Repos       repositories.Repository
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	repos := repositories.New(db)

	svcs, err := services.New(db, config)
	if err != nil {
		return &App{}, log.Err("failed to create services", err)
	}

	ctrls := controllers.New(svcs, repos, config, db)
	mw := middleware.New(db, config, repos)

	if config.SchedulerEnabled {
		if err := jobs.RegisterAllJobs(svcs.Scheduler, config, svcs, repos); err != nil {
			return &App{}, log.Err("failed to register jobs", err)
		}
		if err := svcs.Scheduler.Start(context.Background()); err != nil {
			return &App{}, log.Err("failed to start scheduler", err)
		}
	}

	app := &App{
		Database:    db,
		Middleware:  mw,
		Config:      config,
		Services:    svcs,
		Repos:       repos,
		Controllers: ctrls,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")

	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Services.Transaction,
		a.Services.Token,
		a.Services.Rawg,
		a.Services.Scheduler,
		a.Controllers.Auth,
		a.Controllers.User,
		a.Controllers.Game,
		a.Controllers.Collection,
		a.Controllers.Review,
		a.Controllers.Session,
		a.Controllers.Achievement,
		a.Controllers.Friend,
		a.Repos.User,
		a.Repos.Game,
		a.Repos.Collection,
		a.Repos.Review,
		a.Repos.PlaySession,
		a.Repos.Achievement,
		a.Repos.Friendship,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
