// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/usecase"
)

// CachingUserRepository decorates a UserRepository with Redis caching for
// lookups by ID. It implements the decorator pattern, transparently adding
// caching without modifying the underlying repository.
//
// Credential lookups (by email, by biometric key) always pass through to
// the primary store: stale entries there would let a removed or changed
// credential keep authenticating for the cache TTL.
type CachingUserRepository struct {
	inner     usecase.UserRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// CachingUserRepositoryがUserRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.UserRepository = (*CachingUserRepository)(nil)

// NewCachingUserRepository decorates a UserRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "users".
func NewCachingUserRepository(rdb *redis.Client, ttl time.Duration, inner usecase.UserRepository, namespace string) *CachingUserRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "users"
	}
	return &CachingUserRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// cacheKey returns the Redis key for a user ID.
func (c *CachingUserRepository) cacheKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", c.namespace, id)
}

// Create persists a new user through the underlying repository.
// Nothing is cached for the new ID yet, so there is no entry to invalidate.
func (c *CachingUserRepository) Create(ctx context.Context, u *entity.User) error {
	return c.inner.Create(ctx, u)
}

// FindByID retrieves a user, checking the cache first then falling back to
// the database.
func (c *CachingUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.cacheKey(id)
	if data, err := c.rdb.Get(ctx, key).Bytes(); err == nil {
		var u entity.User
		if err := json.Unmarshal(data, &u); err == nil {
			return &u, nil
		}
		// Corrupt entry: drop it and fall through to the database
		_ = c.rdb.Del(ctx, key).Err()
	}

	u, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(u); err == nil {
		_ = c.rdb.Set(ctx, key, data, c.ttl).Err() // Best effort: don't fail the lookup on a cache error
	}
	return u, nil
}

// FindByEmail always queries the primary store.
func (c *CachingUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return c.inner.FindByEmail(ctx, email)
}

// FindByBiometricKey always queries the primary store.
func (c *CachingUserRepository) FindByBiometricKey(ctx context.Context, key string) (*entity.User, error) {
	return c.inner.FindByBiometricKey(ctx, key)
}
