// Package query contains read operations following CQRS pattern.
// Queries never modify state - they only read and return data.
// Cada query é um caso de uso completo, com request e response próprios.
package query

import (
	"context"
	"fmt"
	"time"

	"github.com/ripcamargo/daily-check-maromba/internal/domain/athlete"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/attendance"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/season"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/shared"
	"github.com/ripcamargo/daily-check-maromba/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET RANKINGS QUERY
// Monta o ranking principal e os rankings secundários da temporada.
// Estatísticas sempre recalculadas dos registros; o cache guarda só o
// resultado montado, nunca os contadores.
// ══════════════════════════════════════════════════════════════════════════════

// GetRankingsQuery contains the ranking request parameters.
type GetRankingsQuery struct {
	// SeasonID is the target season. If empty, the active season is used.
	SeasonID string

	// Limit caps each ranking list (0 = all athletes).
	Limit int
}

// Validate checks the query parameters.
func (q *GetRankingsQuery) Validate() error {
	if q.Limit < 0 {
		return shared.NewDomainError("query", "GetRankings", shared.ErrNegativeValue, "limit cannot be negative")
	}
	return nil
}

// RankingEntryDTO is one row of a ranking list.
type RankingEntryDTO struct {
	// Position in the list, 1-based.
	Position int `json:"position"`

	AthleteID string `json:"athleteId"`
	Name      string `json:"name"`

	Present   int `json:"present"`
	Rest      int `json:"rest"`
	Absence   int `json:"absence"`
	Hospital  int `json:"hospital"`
	Justified int `json:"justified"`
	Extra     int `json:"extra"`

	// Points is the weighted score of the athlete.
	Points int `json:"points"`
}

// GetRankingsResult contains the assembled rankings of a season.
type GetRankingsResult struct {
	SeasonID string `json:"seasonId"`

	// Primary is the main ranking: most present wins, ties broken by
	// fewest absences, rests, justified and hospital, in that order.
	Primary []RankingEntryDTO `json:"primary"`

	// Secondary single-key rankings.
	MostRest     []RankingEntryDTO `json:"mostRest"`
	MostAbsence  []RankingEntryDTO `json:"mostAbsence"`
	MostHospital []RankingEntryDTO `json:"mostHospital"`
	MostExtra    []RankingEntryDTO `json:"mostExtra"`

	// TotalAthletes is the number of participants ranked.
	TotalAthletes int `json:"totalAthletes"`

	GeneratedAt time.Time `json:"generatedAt"`
}

// ══════════════════════════════════════════════════════════════════════════════
// DEPENDENCIES (Interfaces)
// ══════════════════════════════════════════════════════════════════════════════

// RankingCache caches assembled ranking results per season.
type RankingCache interface {
	// GetRankings returns the cached result, or a NotFound error on miss.
	GetRankings(ctx context.Context, seasonID string) (*GetRankingsResult, error)

	// SetRankings stores the result with a TTL.
	SetRankings(ctx context.Context, seasonID string, result *GetRankingsResult, ttl time.Duration) error
}

// rankingCacheTTL bounds how stale a cached ranking can get if an
// invalidation is lost.
const rankingCacheTTL = 5 * time.Minute

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// GetRankingsHandler handles the GetRankingsQuery.
type GetRankingsHandler struct {
	seasonRepo  season.Repository
	checkinRepo attendance.Repository
	athleteRepo athlete.Repository
	cache       RankingCache
}

// NewGetRankingsHandler creates a new GetRankingsHandler.
// cache may be nil when no cache is configured.
func NewGetRankingsHandler(
	seasonRepo season.Repository,
	checkinRepo attendance.Repository,
	athleteRepo athlete.Repository,
	cache RankingCache,
) *GetRankingsHandler {
	return &GetRankingsHandler{
		seasonRepo:  seasonRepo,
		checkinRepo: checkinRepo,
		athleteRepo: athleteRepo,
		cache:       cache,
	}
}

// Handle executes the rankings query.
func (h *GetRankingsHandler) Handle(ctx context.Context, query GetRankingsQuery) (*GetRankingsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("get_rankings: %w", err)
	}

	s, err := resolveSeason(ctx, h.seasonRepo, query.SeasonID)
	if err != nil {
		return nil, fmt.Errorf("get_rankings: %w", err)
	}

	if h.cache != nil {
		if cached, err := h.cache.GetRankings(ctx, s.ID); err == nil && cached != nil {
			return limitResult(cached, query.Limit), nil
		}
	}

	standings, err := buildStandings(ctx, h.checkinRepo, h.athleteRepo, s)
	if err != nil {
		return nil, fmt.Errorf("get_rankings: %w", err)
	}

	result := &GetRankingsResult{
		SeasonID:      s.ID,
		Primary:       toEntries(attendance.RankAthletes(standings)),
		MostRest:      toEntries(attendance.ByMostRest(standings)),
		MostAbsence:   toEntries(attendance.ByMostAbsence(standings)),
		MostHospital:  toEntries(attendance.ByMostHospital(standings)),
		MostExtra:     toEntries(attendance.ByMostExtra(standings)),
		TotalAthletes: len(standings),
		GeneratedAt:   timeutil.Now(),
	}

	if h.cache != nil {
		_ = h.cache.SetRankings(ctx, s.ID, result, rankingCacheTTL)
	}

	return limitResult(result, query.Limit), nil
}

// buildStandings computes the stats of every participant from the stored
// day records, with neutral days already filtered out.
func buildStandings(
	ctx context.Context,
	checkinRepo attendance.Repository,
	athleteRepo athlete.Repository,
	s *season.Season,
) ([]attendance.Standing, error) {
	records, err := checkinRepo.GetDayRecords(ctx, s.ID, s.StartDate, s.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load day records: %w", err)
	}
	records = attendance.FilterNeutralDays(records, s.Policy.NeutralDays)

	names, err := athleteNames(ctx, athleteRepo, s.Participants)
	if err != nil {
		return nil, err
	}

	standings := make([]attendance.Standing, 0, len(s.Participants))
	for _, athleteID := range s.Participants {
		name := names[athleteID]
		if name == "" {
			name = athleteID
		}
		standings = append(standings, attendance.Standing{
			AthleteID: athleteID,
			Name:      name,
			Stats:     attendance.ComputeStats(records, athleteID, s.Policy.BonusBenefit),
		})
	}
	return standings, nil
}

// athleteNames resolves display names, skipping unknown athletes.
func athleteNames(ctx context.Context, repo athlete.Repository, ids []string) (map[string]string, error) {
	athletes, err := repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load athletes: %w", err)
	}
	names := make(map[string]string, len(athletes))
	for _, a := range athletes {
		names[a.ID] = a.Name
	}
	return names, nil
}

// toEntries converts ranked standings into DTOs with 1-based positions.
func toEntries(ranked []attendance.Standing) []RankingEntryDTO {
	entries := make([]RankingEntryDTO, len(ranked))
	for i, st := range ranked {
		entries[i] = RankingEntryDTO{
			Position:  i + 1,
			AthleteID: st.AthleteID,
			Name:      st.Name,
			Present:   st.Stats.Present,
			Rest:      st.Stats.Rest,
			Absence:   st.Stats.Absence,
			Hospital:  st.Stats.Hospital,
			Justified: st.Stats.Justified,
			Extra:     st.Stats.Extra,
			Points:    attendance.TotalPoints(st.Stats),
		}
	}
	return entries
}

// limitResult trims every ranking list to the requested size.
func limitResult(result *GetRankingsResult, limit int) *GetRankingsResult {
	if limit <= 0 {
		return result
	}
	trimmed := *result
	trimmed.Primary = head(result.Primary, limit)
	trimmed.MostRest = head(result.MostRest, limit)
	trimmed.MostAbsence = head(result.MostAbsence, limit)
	trimmed.MostHospital = head(result.MostHospital, limit)
	trimmed.MostExtra = head(result.MostExtra, limit)
	return &trimmed
}

func head(entries []RankingEntryDTO, n int) []RankingEntryDTO {
	if len(entries) <= n {
		return entries
	}
	return entries[:n]
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

// ══════════════════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ══════════════════════════════════════════════════════════════════════════════

// FormatPositionEmoji returns the medal emoji for a ranking position.
func FormatPositionEmoji(position int) string {
	switch position {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("#%d", position)
	}
}
