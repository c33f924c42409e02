package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ripcamargo/daily-check-maromba/internal/application/command"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPROCESS SEASON JOB
// ══════════════════════════════════════════════════════════════════════════════

// ReprocessSeasonJob replays the attendance history of the active season from
// scratch. Scheduled nightly so that late policy edits and hand-patched
// records converge to a self-consistent classification.
type ReprocessSeasonJob struct {
	handler *command.ReprocessSeasonHandler
	logger  *slog.Logger

	// Timeout is the maximum duration for one full reprocessing pass.
	Timeout time.Duration
}

// NewReprocessSeasonJob creates a new reprocess season job.
func NewReprocessSeasonJob(handler *command.ReprocessSeasonHandler, logger *slog.Logger) *ReprocessSeasonJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReprocessSeasonJob{
		handler: handler,
		logger:  logger,
		Timeout: 5 * time.Minute,
	}
}

// Name returns the job name.
func (j *ReprocessSeasonJob) Name() string {
	return "reprocess_season"
}

// Description returns a human-readable description.
func (j *ReprocessSeasonJob) Description() string {
	return "Replays the attendance history of the active season"
}

// Run executes the reprocessing job.
func (j *ReprocessSeasonJob) Run(ctx context.Context) error {
	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}

	result, err := j.handler.Handle(ctx, command.ReprocessSeasonCommand{})
	if err != nil {
		if shared.IsNotFound(err) {
			j.logger.Info("reprocess_season: no active season, nothing to do")
			return nil
		}
		if command.IsReprocessFailure(err) {
			// Dias anteriores ao ponto de falha já foram persistidos.
			j.logger.Error("reprocess_season: history replay aborted mid-way", "error", err)
		}
		return fmt.Errorf("reprocess_season: %w", err)
	}

	j.logger.Info("reprocess_season: history replayed",
		"season", result.SeasonID,
		"days_processed", result.DaysProcessed,
		"days_changed", result.DaysChanged,
		"duration", result.Duration.String(),
	)
	return nil
}
