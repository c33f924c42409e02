// Package jobs contains implementations of scheduled jobs for Daily Check
// Maromba.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ripcamargo/daily-check-maromba/internal/application/command"
	"github.com/ripcamargo/daily-check-maromba/internal/application/query"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/season"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// REBUILD RANKINGS JOB
// ══════════════════════════════════════════════════════════════════════════════

// RebuildRankingsJob drops and repopulates the cached rankings of the active
// season. Keeps the board warm even when no check-in happened recently and
// recovers from lost cache invalidations.
type RebuildRankingsJob struct {
	seasonRepo      season.Repository
	rankingsHandler *query.GetRankingsHandler
	cache           command.RankingCache
	logger          *slog.Logger

	// Timeout is the maximum duration for one rebuild.
	Timeout time.Duration
}

// NewRebuildRankingsJob creates a new rebuild rankings job.
func NewRebuildRankingsJob(
	seasonRepo season.Repository,
	rankingsHandler *query.GetRankingsHandler,
	cache command.RankingCache,
	logger *slog.Logger,
) *RebuildRankingsJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &RebuildRankingsJob{
		seasonRepo:      seasonRepo,
		rankingsHandler: rankingsHandler,
		cache:           cache,
		logger:          logger,
		Timeout:         2 * time.Minute,
	}
}

// Name returns the job name.
func (j *RebuildRankingsJob) Name() string {
	return "rebuild_rankings"
}

// Description returns a human-readable description.
func (j *RebuildRankingsJob) Description() string {
	return "Recomputes and caches the rankings of the active season"
}

// Run executes the rebuild job.
func (j *RebuildRankingsJob) Run(ctx context.Context) error {
	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}

	active, err := j.seasonRepo.GetActive(ctx)
	if err != nil {
		if shared.IsNotFound(err) {
			j.logger.Info("rebuild_rankings: no active season, nothing to do")
			return nil
		}
		return fmt.Errorf("rebuild_rankings: %w", err)
	}

	if j.cache != nil {
		if err := j.cache.InvalidateSeason(ctx, active.ID); err != nil {
			j.logger.Warn("rebuild_rankings: cache invalidation failed", "error", err)
		}
	}

	// O handler recalcula dos registros e devolve o cache populado.
	result, err := j.rankingsHandler.Handle(ctx, query.GetRankingsQuery{SeasonID: active.ID})
	if err != nil {
		return fmt.Errorf("rebuild_rankings: %w", err)
	}

	j.logger.Info("rebuild_rankings: rankings rebuilt",
		"season", active.ID,
		"athletes", result.TotalAthletes,
	)
	return nil
}
