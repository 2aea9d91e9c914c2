package auth

import (
	"context"
	"encoding/json"
	"time"

	"projman/internal/cache"
	"projman/internal/model"
)

const (
	userCacheKeyPrefix = "user:login:"
	userCacheTTL       = 5 * time.Minute
)

// UserCacheInterface defines the cache used by the request middleware to
// resolve a token subject into a user without hitting the database each time.
type UserCacheInterface interface {
	Get(ctx context.Context, login string) (*model.User, bool)
	Set(ctx context.Context, user *model.User)
}

// UserCache stores user lookups in Redis. Users are immutable apart from
// credential rotation (out of scope), so a short TTL is the only invalidation.
type UserCache struct {
	cache *cache.Client
}

var _ UserCacheInterface = (*UserCache)(nil)

// NewUserCache creates a new user cache.
func NewUserCache(cache *cache.Client) *UserCache {
	return &UserCache{cache: cache}
}

// Get returns the cached user for a login, or (nil, false) on a miss.
func (c *UserCache) Get(ctx context.Context, login string) (*model.User, bool) {
	data, err := c.cache.Get(ctx, userCacheKeyPrefix+login)
	if err != nil || data == nil {
		return nil, false
	}
	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, false
	}
	return &user, true
}

// Set caches a user keyed by login, ignoring cache errors.
func (c *UserCache) Set(ctx context.Context, user *model.User) {
	payload, err := json.Marshal(user)
	if err != nil {
		return
	}
	_ = c.cache.Set(ctx, userCacheKeyPrefix+user.Login, payload, userCacheTTL)
}
