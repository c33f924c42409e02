package command

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ripcamargo/daily-check-maromba/internal/domain/attendance"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/season"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/shared"
	"github.com/ripcamargo/daily-check-maromba/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPROCESS SEASON COMMAND
// Reclassifica todos os dias de uma temporada em ordem cronologica a partir
// das marcacoes originais. Usado apos mudancas de politica (limite semanal,
// dias de bonus) ou para corrigir historico inconsistente.
// ══════════════════════════════════════════════════════════════════════════════

// ReprocessSeasonCommand triggers a full chronological reclassification.
type ReprocessSeasonCommand struct {
	// SeasonID is the target season. If empty, the active season is used.
	SeasonID string

	// DryRun computes the result without persisting anything.
	DryRun bool
}

// ReprocessSeasonResult summarizes the reprocessing pass.
type ReprocessSeasonResult struct {
	// SeasonID is the season that was reprocessed.
	SeasonID string

	// DaysProcessed is the number of day records replayed.
	DaysProcessed int

	// DaysChanged is how many days ended with a different classification.
	DaysChanged int

	// FirstDate and LastDate bound the replayed range. Zero when empty.
	FirstDate attendance.Date
	LastDate  attendance.Date

	// Changes lists the days whose classification changed, with the
	// per-athlete transitions.
	Changes []DayChange

	// Duration is how long the pass took.
	Duration time.Duration
}

// DayChange is one day whose classification changed during reprocessing.
type DayChange struct {
	Date     attendance.Date
	Athletes []StatusChange
}

// StatusChange is the status transition of one athlete within a day.
type StatusChange struct {
	AthleteID string
	From      attendance.DerivedStatus
	To        attendance.DerivedStatus
}

// ReprocessSeasonHandler handles the ReprocessSeasonCommand.
type ReprocessSeasonHandler struct {
	seasonRepo  season.Repository
	checkinRepo attendance.Repository
	cache       RankingCache
	retrier     *retry.Retrier
}

// NewReprocessSeasonHandler creates a new ReprocessSeasonHandler.
func NewReprocessSeasonHandler(
	seasonRepo season.Repository,
	checkinRepo attendance.Repository,
	cache RankingCache,
) *ReprocessSeasonHandler {
	return &ReprocessSeasonHandler{
		seasonRepo:  seasonRepo,
		checkinRepo: checkinRepo,
		cache:       cache,
		retrier:     retry.DatabaseRetrier(),
	}
}

// Handle executes the reprocess command.
// On failure the error reports the offending date and the last date that was
// fully persisted, so operators know where the stored history stops being
// consistent.
func (h *ReprocessSeasonHandler) Handle(ctx context.Context, cmd ReprocessSeasonCommand) (*ReprocessSeasonResult, error) {
	startedAt := time.Now()

	s, err := resolveSeason(ctx, h.seasonRepo, cmd.SeasonID)
	if err != nil {
		return nil, fmt.Errorf("reprocess: %w", err)
	}

	records, err := h.checkinRepo.GetDayRecords(ctx, s.ID, s.StartDate, s.EndDate)
	if err != nil {
		return nil, fmt.Errorf("reprocess: failed to load season records: %w", err)
	}

	result := &ReprocessSeasonResult{SeasonID: s.ID}
	if len(records) == 0 {
		result.Duration = time.Since(startedAt)
		return result, nil
	}

	// Classificacao antiga por dia, para contar o que mudou.
	before := make(map[attendance.Date]map[string]attendance.DerivedStatus, len(records))
	for _, rec := range records {
		day := make(map[string]attendance.DerivedStatus, len(rec.Athletes))
		for athleteID, mark := range rec.Athletes {
			day[athleteID] = mark.Status
		}
		before[rec.Date] = day
	}

	err = attendance.Reprocess(ctx, s.Policy, s.ID, records, func(rec *attendance.DayRecord) error {
		if !cmd.DryRun {
			if putErr := h.retrier.Do(ctx, func(ctx context.Context) error {
				return retry.Retryable(h.checkinRepo.PutDayRecord(ctx, s.ID, rec))
			}); putErr != nil {
				return putErr
			}
		}

		if result.DaysProcessed == 0 {
			result.FirstDate = rec.Date
		}
		result.DaysProcessed++
		result.LastDate = rec.Date

		if transitions := dayChanges(before[rec.Date], rec); len(transitions) > 0 {
			result.DaysChanged++
			result.Changes = append(result.Changes, DayChange{Date: rec.Date, Athletes: transitions})
		}
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("reprocess: %w", err)
	}

	if !cmd.DryRun && h.cache != nil {
		_ = h.cache.InvalidateSeason(ctx, s.ID)
	}

	result.Duration = time.Since(startedAt)
	return result, nil
}

// dayChanges lists the athletes of the day whose derived status changed,
// ordered by athlete ID.
func dayChanges(before map[string]attendance.DerivedStatus, after *attendance.DayRecord) []StatusChange {
	var transitions []StatusChange
	for athleteID, mark := range after.Athletes {
		if before[athleteID] != mark.Status {
			transitions = append(transitions, StatusChange{
				AthleteID: athleteID,
				From:      before[athleteID],
				To:        mark.Status,
			})
		}
	}
	sort.Slice(transitions, func(i, j int) bool {
		return transitions[i].AthleteID < transitions[j].AthleteID
	})
	return transitions
}

// IsReprocessFailure checks if the error came from a failed reprocessing pass.
func IsReprocessFailure(err error) bool {
	return errors.Is(err, shared.ErrReprocessing)
}
