package adapter

import (
	"context"
	"encoding/json"
	"time"

	cacheport "go-chatline/internal/infrastructure/cache/port"
	repository "go-chatline/internal/repository/port"
)

const (
	userListCacheKey = "directory:users"
	userListCacheTTL = 30 * time.Second
)

// CachedUserRepository is a read-through cache in front of a UserRepository.
// Only the full directory listing is cached; it is the one query every client
// issues on login, and it is invalidated whenever a user registers. Cache
// faults degrade to the underlying repository, never to an error.
type CachedUserRepository struct {
	source repository.UserRepository
	cache  cacheport.Cache
}

func NewCachedUserRepository(source repository.UserRepository, cache cacheport.Cache) *CachedUserRepository {
	return &CachedUserRepository{source: source, cache: cache}
}

var _ repository.UserRepository = (*CachedUserRepository)(nil)

func (r *CachedUserRepository) Create(ctx context.Context, user *repository.User) error {
	if err := r.source.Create(ctx, user); err != nil {
		return err
	}
	_, _ = r.cache.Del(ctx, userListCacheKey)
	return nil
}

func (r *CachedUserRepository) FindByID(ctx context.Context, id string) (*repository.User, error) {
	return r.source.FindByID(ctx, id)
}

func (r *CachedUserRepository) FindByUsername(ctx context.Context, username string) (*repository.User, error) {
	return r.source.FindByUsername(ctx, username)
}

func (r *CachedUserRepository) List(ctx context.Context) ([]repository.User, error) {
	if raw, err := r.cache.Get(ctx, userListCacheKey); err == nil {
		var users []repository.User
		if err := json.Unmarshal([]byte(raw), &users); err == nil {
			return users, nil
		}
	}

	users, err := r.source.List(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(users); err == nil {
		_ = r.cache.Set(ctx, userListCacheKey, string(raw), userListCacheTTL)
	}
	return users, nil
}
