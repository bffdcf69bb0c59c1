package repositories

import (
	"context"
	"time"

	"gamehub/internal/database"
	. "gamehub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	USER_CACHE_EXPIRY = 24 * time.Hour
	USER_CACHE_PREFIX = "user:"
)

type UserRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*User, error)
	Create(ctx context.Context, tx *gorm.DB, user *User) error
	Update(ctx context.Context, tx *gorm.DB, user *User) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	Search(ctx context.Context, tx *gorm.DB, query string, limit, offset int) ([]User, error)
	List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]User, error)
}

type userRepository struct {
	db  database.DB
	log logger.Logger
}

func NewUserRepository(db database.DB) UserRepository {
	return &userRepository{
		db:  db,
		log: logger.New("userRepository"),
	}
}

func (r *userRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*User, error) {
	log := r.log.Function("GetByID")

	var cached User
	if found := r.getCacheByID(ctx, id, &cached); found {
		return &cached, nil
	}

	user, err := gorm.G[*User](tx).Where("id = ?", id).First(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.addUserToCache(ctx, user); err != nil {
		log.Warn("failed to add user to cache", "userID", id, "error", err)
	}

	return user, nil
}

func (r *userRepository) GetByUsername(
	ctx context.Context,
	tx *gorm.DB,
	username string,
) (*User, error) {
	return gorm.G[*User](tx).Where("username = ?", username).First(ctx)
}

func (r *userRepository) GetByEmail(
	ctx context.Context,
	tx *gorm.DB,
	email string,
) (*User, error) {
	return gorm.G[*User](tx).Where("email = ?", email).First(ctx)
}

func (r *userRepository) Create(ctx context.Context, tx *gorm.DB, user *User) error {
	log := r.log.Function("Create")

	if err := gorm.G[User](tx).Create(ctx, user); err != nil {
		return log.Err("failed to create user", err, "username", user.Username)
	}

	return nil
}

func (r *userRepository) Update(ctx context.Context, tx *gorm.DB, user *User) error {
	log := r.log.Function("Update")

	if err := tx.WithContext(ctx).Save(user).Error; err != nil {
		return log.Err("failed to update user", err, "userID", user.ID)
	}

	r.clearUserCache(ctx, user.ID)

	return nil
}

func (r *userRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	log := r.log.Function("Delete")

	rowsAffected, err := gorm.G[*User](tx).Where("id = ?", id).Delete(ctx)
	if err != nil {
		return log.Err("failed to delete user", err, "userID", id)
	}

	if rowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.clearUserCache(ctx, id)

	return nil
}

func (r *userRepository) Search(
	ctx context.Context,
	tx *gorm.DB,
	query string,
	limit, offset int,
) ([]User, error) {
	log := r.log.Function("Search")

	pattern := "%" + query + "%"
	users, err := gorm.G[User](tx).
		Where("username ILIKE ? OR display_name ILIKE ?", pattern, pattern).
		Limit(limit).
		Offset(offset).
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to search users", err, "query", query)
	}

	return users, nil
}

func (r *userRepository) List(
	ctx context.Context,
	tx *gorm.DB,
	limit, offset int,
) ([]User, error) {
	log := r.log.Function("List")

	users, err := gorm.G[User](tx).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(ctx)
	if err != nil {
		return nil, log.Err("failed to list users", err)
	}

	return users, nil
}

func (r *userRepository) getCacheByID(ctx context.Context, userID uuid.UUID, user *User) bool {
	if r.db.Cache.User == nil {
		return false
	}

	cacheKey := USER_CACHE_PREFIX + userID.String()
	found, err := database.NewCacheBuilder(r.db.Cache.User, cacheKey).WithContext(ctx).Get(user)
	if err != nil {
		r.log.Function("getCacheByID").
			Warn("failed to get user from cache", "userID", userID, "error", err)
		return false
	}

	return found
}

func (r *userRepository) addUserToCache(ctx context.Context, user *User) error {
	if r.db.Cache.User == nil {
		return nil
	}

	cacheKey := USER_CACHE_PREFIX + user.ID.String()
	return database.NewCacheBuilder(r.db.Cache.User, cacheKey).
		WithStruct(user).
		WithTTL(USER_CACHE_EXPIRY).
		WithContext(ctx).
		Set()
}

func (r *userRepository) clearUserCache(ctx context.Context, userID uuid.UUID) {
	if r.db.Cache.User == nil {
		return
	}

	cacheKey := USER_CACHE_PREFIX + userID.String()
	if err := database.NewCacheBuilder(r.db.Cache.User, cacheKey).WithContext(ctx).Delete(); err != nil {
		r.log.Function("clearUserCache").
			Warn("failed to clear user cache", "userID", userID, "error", err)
	}
}
