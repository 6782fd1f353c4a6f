// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"lucius_backend/internal/feature/cases/domain/entity"
	"lucius_backend/internal/feature/cases/usecase"
)

// CachingCaseRepository decorates a CaseRepository with a Redis read-through
// cache for single-case reads. Writes go to the inner repository first and then
// drop the cached entry.
type CachingCaseRepository struct {
	inner     usecase.CaseRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.CaseRepository = (*CachingCaseRepository)(nil)

// NewCachingCaseRepository decorates a CaseRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "cases".
// A nil rdb disables caching.
func NewCachingCaseRepository(rdb *redis.Client, ttl time.Duration, inner usecase.CaseRepository, namespace string) *CachingCaseRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "cases"
	}
	return &CachingCaseRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

func (c *CachingCaseRepository) Create(ctx context.Context, cs *entity.Case) error {
	return c.inner.Create(ctx, cs)
}

// FindByID はキャッシュを先に確認し、なければDBから取得してキャッシュします。
func (c *CachingCaseRepository) FindByID(ctx context.Context, id uint) (*entity.Case, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.cacheKey(id)

	// 1) キャッシュ確認
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Case
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// 壊れたエントリは削除
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) DBへフォールバック
	out, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3) キャッシュに保存（失敗しても続行）
	if b, err := json.Marshal(out); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
			slog.Warn("failed to cache case", "id", id, "error", err)
		}
	}
	return out, nil
}

func (c *CachingCaseRepository) List(ctx context.Context, offset, limit int) ([]entity.Case, int64, error) {
	return c.inner.List(ctx, offset, limit)
}

func (c *CachingCaseRepository) Update(ctx context.Context, cs *entity.Case) error {
	if err := c.inner.Update(ctx, cs); err != nil {
		return err
	}
	c.invalidate(ctx, cs.ID)
	return nil
}

func (c *CachingCaseRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

func (c *CachingCaseRepository) invalidate(ctx context.Context, id uint) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, c.cacheKey(id)).Err(); err != nil {
		slog.Warn("failed to invalidate cached case", "id", id, "error", err)
	}
}

func (c *CachingCaseRepository) cacheKey(id uint) string {
	return fmt.Sprintf("%s:%d", c.namespace, id)
}
