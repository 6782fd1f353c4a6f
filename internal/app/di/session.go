package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "lucius_backend/internal/feature/auth/adapters"
	"lucius_backend/internal/feature/auth/usecase"
	"lucius_backend/internal/platform/session"
)

// NewSessionRepository creates a SessionRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the relational store.
func NewSessionRepository(rdb *redis.Client, db *gorm.DB, prefix string) usecase.SessionRepository {
	if rdb != nil {
		return session.NewSessionRedis(rdb, prefix)
	}
	return authadapters.NewSessionGorm(db)
}
