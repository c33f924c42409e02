package query

import (
	"context"
	"fmt"
	"time"

	"github.com/ripcamargo/daily-check-maromba/internal/domain/athlete"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/attendance"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/payment"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/season"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/shared"
	"github.com/ripcamargo/daily-check-maromba/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET ATHLETE STATS QUERY
// Painel individual do atleta: contadores, taxa de presença, nível de
// desempenho, pontuação, posição no ranking e situação financeira.
// ══════════════════════════════════════════════════════════════════════════════

// GetAthleteStatsQuery requests the full panel of one athlete.
type GetAthleteStatsQuery struct {
	// SeasonID is the target season. If empty, the active season is used.
	SeasonID string

	AthleteID string
}

// Validate checks the query parameters.
func (q *GetAthleteStatsQuery) Validate() error {
	if q.AthleteID == "" {
		return shared.NewDomainError("query", "GetAthleteStats", shared.ErrEmptyValue, "athlete id is required")
	}
	return nil
}

// AthleteStatsResult is the assembled athlete panel.
type AthleteStatsResult struct {
	SeasonID  string `json:"seasonId"`
	AthleteID string `json:"athleteId"`
	Name      string `json:"name"`

	// Stats already reflects the season benefit and neutral-day exclusion.
	Stats attendance.Stats `json:"stats"`

	// ClassifiedDays is the number of days with an effective mark.
	ClassifiedDays int `json:"classifiedDays"`

	// AttendanceRate is the presence percentage over classified days.
	AttendanceRate float64 `json:"attendanceRate"`

	// PerformanceLevel is the display band for the attendance rate.
	PerformanceLevel string `json:"performanceLevel"`

	// Points is the weighted score.
	Points int `json:"points"`

	// Position in the primary ranking, 1-based. Zero if not ranked.
	Position int `json:"position"`

	// Fine is the computed fine for the season.
	Fine attendance.Fine `json:"fine"`

	// TotalPaid is the sum of recorded payments.
	TotalPaid float64 `json:"totalPaid"`

	// Debt is the outstanding balance, never negative.
	Debt float64 `json:"debt"`

	GeneratedAt time.Time `json:"generatedAt"`
}

// GetAthleteStatsHandler handles the GetAthleteStatsQuery.
type GetAthleteStatsHandler struct {
	seasonRepo  season.Repository
	checkinRepo attendance.Repository
	athleteRepo athlete.Repository
	paymentRepo payment.Repository
}

// NewGetAthleteStatsHandler creates a new GetAthleteStatsHandler.
func NewGetAthleteStatsHandler(
	seasonRepo season.Repository,
	checkinRepo attendance.Repository,
	athleteRepo athlete.Repository,
	paymentRepo payment.Repository,
) *GetAthleteStatsHandler {
	return &GetAthleteStatsHandler{
		seasonRepo:  seasonRepo,
		checkinRepo: checkinRepo,
		athleteRepo: athleteRepo,
		paymentRepo: paymentRepo,
	}
}

// Handle executes the athlete stats query.
func (h *GetAthleteStatsHandler) Handle(ctx context.Context, query GetAthleteStatsQuery) (*AthleteStatsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("get_athlete_stats: %w", err)
	}

	s, err := resolveSeason(ctx, h.seasonRepo, query.SeasonID)
	if err != nil {
		return nil, fmt.Errorf("get_athlete_stats: %w", err)
	}
	if !s.HasParticipant(query.AthleteID) {
		return nil, shared.NewDomainError("query", "GetAthleteStats", shared.ErrInvalidInput,
			fmt.Sprintf("athlete %s is not a participant of season %s", query.AthleteID, s.ID))
	}

	// O ranking inteiro é necessário só para a posição; as estatísticas do
	// atleta saem do mesmo conjunto de standings.
	standings, err := buildStandings(ctx, h.checkinRepo, h.athleteRepo, s)
	if err != nil {
		return nil, fmt.Errorf("get_athlete_stats: %w", err)
	}

	var stats attendance.Stats
	name := query.AthleteID
	for _, st := range standings {
		if st.AthleteID == query.AthleteID {
			stats = st.Stats
			name = st.Name
			break
		}
	}

	payments, err := h.paymentRepo.GetByAthlete(ctx, s.ID, query.AthleteID)
	if err != nil {
		return nil, fmt.Errorf("get_athlete_stats: failed to load payments: %w", err)
	}

	fine := attendance.ComputeFine(stats, s.Policy.FinePerAbsence)
	paid := payment.TotalPaid(payments)
	rate := attendance.AttendanceRate(stats, stats.ClassifiedDays())

	return &AthleteStatsResult{
		SeasonID:         s.ID,
		AthleteID:        query.AthleteID,
		Name:             name,
		Stats:            stats,
		ClassifiedDays:   stats.ClassifiedDays(),
		AttendanceRate:   rate,
		PerformanceLevel: attendance.PerformanceLevel(rate),
		Points:           attendance.TotalPoints(stats),
		Position:         attendance.AthletePosition(query.AthleteID, standings),
		Fine:             fine,
		TotalPaid:        paid,
		Debt:             attendance.Debt(fine.Amount, paid),
		GeneratedAt:      timeutil.Now(),
	}, nil
}
