package query

import (
	"context"
	"fmt"
	"time"

	"github.com/ripcamargo/daily-check-maromba/internal/domain/athlete"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/attendance"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/payment"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/season"
	"github.com/ripcamargo/daily-check-maromba/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET FINES QUERY
// Fechamento financeiro da temporada: multa calculada, pago e saldo por
// atleta. Dias neutros já saem da conta antes da multa.
// ══════════════════════════════════════════════════════════════════════════════

// GetFinesQuery requests the fine report of a season.
type GetFinesQuery struct {
	// SeasonID is the target season. If empty, the active season is used.
	SeasonID string

	// OnlyDebtors keeps only athletes with outstanding balance.
	OnlyDebtors bool
}

// FineEntryDTO is the financial situation of one athlete.
type FineEntryDTO struct {
	AthleteID string `json:"athleteId"`
	Name      string `json:"name"`

	TotalAbsences int     `json:"totalAbsences"`
	FineAmount    float64 `json:"fineAmount"`
	TotalPaid     float64 `json:"totalPaid"`
	Debt          float64 `json:"debt"`
}

// GetFinesResult contains the season fine report.
type GetFinesResult struct {
	SeasonID string `json:"seasonId"`

	// FinePerAbsence is the rate used for the report.
	FinePerAbsence float64 `json:"finePerAbsence"`

	Entries []FineEntryDTO `json:"entries"`

	TotalOwed float64 `json:"totalOwed"`
	TotalPaid float64 `json:"totalPaid"`
	TotalDebt float64 `json:"totalDebt"`

	GeneratedAt time.Time `json:"generatedAt"`
}

// GetFinesHandler handles the GetFinesQuery.
type GetFinesHandler struct {
	seasonRepo  season.Repository
	checkinRepo attendance.Repository
	athleteRepo athlete.Repository
	paymentRepo payment.Repository
}

// NewGetFinesHandler creates a new GetFinesHandler.
func NewGetFinesHandler(
	seasonRepo season.Repository,
	checkinRepo attendance.Repository,
	athleteRepo athlete.Repository,
	paymentRepo payment.Repository,
) *GetFinesHandler {
	return &GetFinesHandler{
		seasonRepo:  seasonRepo,
		checkinRepo: checkinRepo,
		athleteRepo: athleteRepo,
		paymentRepo: paymentRepo,
	}
}

// Handle executes the fines query.
func (h *GetFinesHandler) Handle(ctx context.Context, query GetFinesQuery) (*GetFinesResult, error) {
	s, err := resolveSeason(ctx, h.seasonRepo, query.SeasonID)
	if err != nil {
		return nil, fmt.Errorf("get_fines: %w", err)
	}

	standings, err := buildStandings(ctx, h.checkinRepo, h.athleteRepo, s)
	if err != nil {
		return nil, fmt.Errorf("get_fines: %w", err)
	}

	payments, err := h.paymentRepo.GetBySeason(ctx, s.ID)
	if err != nil {
		return nil, fmt.Errorf("get_fines: failed to load payments: %w", err)
	}
	paidByAthlete := make(map[string]float64, len(payments))
	for _, p := range payments {
		paidByAthlete[p.AthleteID] += p.Amount
	}

	result := &GetFinesResult{
		SeasonID:       s.ID,
		FinePerAbsence: s.Policy.FinePerAbsence,
		Entries:        make([]FineEntryDTO, 0, len(standings)),
		GeneratedAt:    timeutil.Now(),
	}

	for _, st := range standings {
		fine := attendance.ComputeFine(st.Stats, s.Policy.FinePerAbsence)
		paid := paidByAthlete[st.AthleteID]
		debt := attendance.Debt(fine.Amount, paid)

		result.TotalOwed += fine.Amount
		result.TotalPaid += paid
		result.TotalDebt += debt

		if query.OnlyDebtors && debt == 0 {
			continue
		}
		result.Entries = append(result.Entries, FineEntryDTO{
			AthleteID:     st.AthleteID,
			Name:          st.Name,
			TotalAbsences: fine.TotalAbsences,
			FineAmount:    fine.Amount,
			TotalPaid:     paid,
			Debt:          debt,
		})
	}

	return result, nil
}
