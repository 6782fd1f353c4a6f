package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	casesadapters "lucius_backend/internal/feature/cases/adapters"
	"lucius_backend/internal/feature/cases/usecase"
	"lucius_backend/internal/platform/cache"
)

// NewCaseRepository returns the gorm case repository wrapped in the Redis read-through cache.
// With a nil rdb the cache is bypassed.
func NewCaseRepository(db *gorm.DB, rdb *redis.Client, ttl time.Duration) usecase.CaseRepository {
	return cache.NewCachingCaseRepository(rdb, ttl, casesadapters.NewCaseGorm(db), "cases")
}
