package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ripcamargo/daily-check-maromba/internal/application/query"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// RANKING CACHE
// Guarda o resultado montado dos rankings por temporada. Fonte da verdade
// continua sendo o Postgres; um miss aqui só custa um recálculo.
// ══════════════════════════════════════════════════════════════════════════════

// RankingCache caches assembled ranking results. It implements both
// query.RankingCache (read side) and the write side invalidation used by
// the commands.
type RankingCache struct {
	cache *Cache
}

// NewRankingCache creates a new RankingCache.
func NewRankingCache(cache *Cache) *RankingCache {
	return &RankingCache{cache: cache}
}

// GetRankings returns the cached result of a season, or a NotFound error on
// miss.
func (c *RankingCache) GetRankings(ctx context.Context, seasonID string) (*query.GetRankingsResult, error) {
	var result query.GetRankingsResult
	err := c.cache.Get(ctx, RankingKey(seasonID), &result)
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, shared.NewDomainError("cache", "GetRankings", shared.ErrNotFound,
				fmt.Sprintf("no cached rankings for season %s", seasonID))
		}
		return nil, fmt.Errorf("failed to get cached rankings: %w", err)
	}
	return &result, nil
}

// SetRankings stores the assembled result with a TTL.
func (c *RankingCache) SetRankings(ctx context.Context, seasonID string, result *query.GetRankingsResult, ttl time.Duration) error {
	if err := c.cache.Set(ctx, RankingKey(seasonID), result, ttl); err != nil {
		return fmt.Errorf("failed to cache rankings: %w", err)
	}
	return nil
}

// InvalidateSeason drops every cached key of a season. Called after each
// check-in, reprocessing pass or policy change.
func (c *RankingCache) InvalidateSeason(ctx context.Context, seasonID string) error {
	if err := c.cache.DeleteByPattern(ctx, SeasonPattern(seasonID)); err != nil {
		return fmt.Errorf("failed to invalidate season cache: %w", err)
	}
	return nil
}
