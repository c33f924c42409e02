// Package command contains write operations (CQRS - Commands).
// Commands are responsible for changing the state of the system.
// Toda escrita passa por aqui: check-in diario, reprocessamento,
// temporadas e pagamentos.
package command

import (
	"context"
	"fmt"
	"time"

	"github.com/ripcamargo/daily-check-maromba/internal/domain/attendance"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/season"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/shared"
	"github.com/ripcamargo/daily-check-maromba/pkg/retry"
)

// ══════════════════════════════════════════════════════════════════════════════
// CHECK-IN DAY COMMAND
// Registra as marcacoes cruas de um dia e grava o dia ja classificado.
// A classificacao usa apenas os dias anteriores da mesma semana.
// ══════════════════════════════════════════════════════════════════════════════

// CheckInDayCommand contains the raw marks of one training day.
type CheckInDayCommand struct {
	// SeasonID is the target season. If empty, the active season is used.
	SeasonID string

	// Date is the training day in yyyy-mm-dd.
	Date attendance.Date

	// Marks maps athlete ID to the raw status chosen on the board.
	// Athletes missing from the map keep whatever was stored before,
	// athletes present overwrite their previous mark for the day.
	Marks map[string]attendance.RawStatus
}

// Validate validates the command.
func (c CheckInDayCommand) Validate() error {
	if !c.Date.IsValid() {
		return shared.NewDomainError("attendance", "CheckInDay", shared.ErrInvalidFormat, "date must be yyyy-mm-dd")
	}
	if len(c.Marks) == 0 {
		return shared.NewDomainError("attendance", "CheckInDay", shared.ErrEmptyValue, "at least one mark is required")
	}
	for athleteID, raw := range c.Marks {
		if athleteID == "" {
			return shared.NewDomainError("attendance", "CheckInDay", shared.ErrEmptyValue, "athlete id cannot be empty")
		}
		if !raw.IsValid() {
			return shared.NewDomainError("attendance", "CheckInDay", shared.ErrInvalidInput,
				fmt.Sprintf("unknown raw status %q for athlete %s", string(raw), athleteID))
		}
	}
	return nil
}

// CheckInDayResult contains the stored, classified day.
type CheckInDayResult struct {
	// Record is the full day record after classification.
	Record *attendance.DayRecord

	// SavedAt is when the record was persisted.
	SavedAt time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// DEPENDENCIES (Interfaces)
// ══════════════════════════════════════════════════════════════════════════════

// RankingCache invalidates cached rankings after writes.
type RankingCache interface {
	// InvalidateSeason drops all cached rankings and stats of a season.
	InvalidateSeason(ctx context.Context, seasonID string) error
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// CheckInDayHandler handles the CheckInDayCommand.
type CheckInDayHandler struct {
	seasonRepo  season.Repository
	checkinRepo attendance.Repository
	cache       RankingCache
	retrier     *retry.Retrier
}

// NewCheckInDayHandler creates a new CheckInDayHandler.
// cache may be nil when no cache is configured.
func NewCheckInDayHandler(
	seasonRepo season.Repository,
	checkinRepo attendance.Repository,
	cache RankingCache,
) *CheckInDayHandler {
	return &CheckInDayHandler{
		seasonRepo:  seasonRepo,
		checkinRepo: checkinRepo,
		cache:       cache,
		retrier:     retry.DatabaseRetrier(),
	}
}

// Handle executes the check-in command.
func (h *CheckInDayHandler) Handle(ctx context.Context, cmd CheckInDayCommand) (*CheckInDayResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("check_in: validation failed: %w", err)
	}

	s, err := resolveSeason(ctx, h.seasonRepo, cmd.SeasonID)
	if err != nil {
		return nil, fmt.Errorf("check_in: %w", err)
	}

	if !s.ContainsDate(cmd.Date) {
		return nil, shared.NewDomainError("attendance", "CheckInDay", shared.ErrValueOutOfRange,
			fmt.Sprintf("date %s is outside season %s", cmd.Date, s.ID))
	}
	for athleteID := range cmd.Marks {
		if !s.HasParticipant(athleteID) {
			return nil, shared.NewDomainError("attendance", "CheckInDay", shared.ErrInvalidInput,
				fmt.Sprintf("athlete %s is not a participant of season %s", athleteID, s.ID))
		}
	}

	// Marcacoes cruas do dia: o que ja estava salvo mais o que chegou agora.
	rawMarks, err := h.mergeExistingMarks(ctx, s.ID, cmd)
	if err != nil {
		return nil, fmt.Errorf("check_in: %w", err)
	}

	// A classificacao olha apenas a semana da data, do inicio ate a vespera.
	weekStart, _ := attendance.WeekBounds(cmd.Date, s.Policy.WeekStartsOn)
	weekRecords, err := h.checkinRepo.GetDayRecords(ctx, s.ID, weekStart, cmd.Date)
	if err != nil {
		return nil, fmt.Errorf("check_in: failed to load week records: %w", err)
	}

	record, err := attendance.ProcessDay(s.Policy, s.ID, cmd.Date, rawMarks, weekRecords)
	if err != nil {
		return nil, fmt.Errorf("check_in: %w", err)
	}

	if err := h.retrier.Do(ctx, func(ctx context.Context) error {
		return retry.Retryable(h.checkinRepo.PutDayRecord(ctx, s.ID, record))
	}); err != nil {
		return nil, fmt.Errorf("check_in: failed to save day record: %w", err)
	}

	// Cache velho nao pode sobreviver a uma escrita. Falha de cache nao
	// derruba o check-in.
	if h.cache != nil {
		_ = h.cache.InvalidateSeason(ctx, s.ID)
	}

	return &CheckInDayResult{
		Record:  record,
		SavedAt: record.UpdatedAt,
	}, nil
}

// mergeExistingMarks combines the stored raw marks of the day with the
// incoming ones. Incoming marks win.
func (h *CheckInDayHandler) mergeExistingMarks(ctx context.Context, seasonID string, cmd CheckInDayCommand) (map[string]attendance.RawStatus, error) {
	rawMarks := make(map[string]attendance.RawStatus, len(cmd.Marks))

	existing, err := h.checkinRepo.GetDayRecord(ctx, seasonID, cmd.Date)
	if err != nil && !shared.IsNotFound(err) {
		return nil, fmt.Errorf("failed to load existing day: %w", err)
	}
	if existing != nil {
		for athleteID, mark := range existing.Athletes {
			rawMarks[athleteID] = mark.Raw()
		}
	}
	for athleteID, raw := range cmd.Marks {
		rawMarks[athleteID] = raw
	}
	return rawMarks, nil
}

// resolveSeason loads a season by ID, or the active one when id is empty.
func resolveSeason(ctx context.Context, repo season.Repository, id string) (*season.Season, error) {
	if id != "" {
		s, err := repo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load season %s: %w", id, err)
		}
		return s, nil
	}
	s, err := repo.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load active season: %w", err)
	}
	return s, nil
}
