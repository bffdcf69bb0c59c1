package controllers

import (
	"gamehub/config"
	"gamehub/internal/database"
	"gamehub/internal/repositories"
	"gamehub/internal/services"

	achievementController "gamehub/internal/controllers/achievements"
	authController "gamehub/internal/controllers/auth"
	collectionController "gamehub/internal/controllers/collection"
	friendController "gamehub/internal/controllers/friends"
	gameController "gamehub/internal/controllers/games"
	reviewController "gamehub/internal/controllers/reviews"
	sessionController "gamehub/internal/controllers/sessions"
	userController "gamehub/internal/controllers/users"
)

type Controllers struct {
	Auth        authController.AuthControllerInterface
	User        userController.UserControllerInterface
	Game        gameController.GameControllerInterface
	Collection  collectionController.CollectionControllerInterface
	Review      reviewController.ReviewControllerInterface
	Session     sessionController.SessionControllerInterface
	Achievement achievementController.AchievementControllerInterface
	Friend      friendController.FriendControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	config config.Config,
	db database.DB,
) Controllers {
	return Controllers{
		Auth:        authController.New(services, repos, db),
		User:        userController.New(repos, services, config, db),
		Game:        gameController.New(repos, services, config, db),
		Collection:  collectionController.New(repos, services, config, db),
		Review:      reviewController.New(repos, services, config, db),
		Session:     sessionController.New(repos, services, config, db),
		Achievement: achievementController.New(repos, services, config, db),
		Friend:      friendController.New(repos, services, config, db),
	}
}
