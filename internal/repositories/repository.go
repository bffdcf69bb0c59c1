package repositories

import (
	"gamehub/internal/database"
)

type Repository struct {
	User        UserRepository
	Game        GameRepository
	Collection  CollectionRepository
	Review      ReviewRepository
	PlaySession PlaySessionRepository
	Achievement AchievementRepository
	Friendship  FriendshipRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:        NewUserRepository(db), // User repo caches profiles in valkey
		Game:        NewGameRepository(db.Cache.ClientAPI),
		Collection:  NewCollectionRepository(db.Cache.User),
		Review:      NewReviewRepository(),
		PlaySession: NewPlaySessionRepository(),
		Achievement: NewAchievementRepository(),
		Friendship:  NewFriendshipRepository(),
	}
}
