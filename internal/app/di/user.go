// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"auth_backend/internal/feature/auth/adapters"
	"auth_backend/internal/feature/auth/usecase"
	"auth_backend/internal/platform/cache"
)

// userCacheTTL is how long a user record fetched by ID may be served from Redis.
const userCacheTTL = 5 * time.Minute

// NewUserRepository creates a UserRepository implementation.
// If Redis is available, lookups by ID are served through a Redis cache.
// Otherwise, the plain Postgres repository is returned.
func NewUserRepository(rdb *redis.Client, db *gorm.DB) usecase.UserRepository {
	repo := adapters.NewUserPostgres(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingUserRepository(rdb, userCacheTTL, repo, "users")
}
