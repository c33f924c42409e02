package query

import (
	"context"
	"time"

	"github.com/ripcamargo/daily-check-maromba/internal/domain/athlete"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/attendance"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/payment"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/season"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/shared"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória, espelhando os contratos dos repositórios de domínio.
// ──────────────────────────────────────────────────────────────────────────────

type fakeSeasonRepo struct {
	seasons map[string]*season.Season
}

func newFakeSeasonRepo(seasons ...*season.Season) *fakeSeasonRepo {
	r := &fakeSeasonRepo{seasons: make(map[string]*season.Season)}
	for _, s := range seasons {
		r.seasons[s.ID] = s
	}
	return r
}

func (r *fakeSeasonRepo) Create(_ context.Context, s *season.Season) error {
	r.seasons[s.ID] = s
	return nil
}

func (r *fakeSeasonRepo) GetByID(_ context.Context, id string) (*season.Season, error) {
	s, ok := r.seasons[id]
	if !ok {
		return nil, shared.ErrSeasonNotFound
	}
	return s, nil
}

func (r *fakeSeasonRepo) GetActive(_ context.Context) (*season.Season, error) {
	for _, s := range r.seasons {
		if s.Active {
			return s, nil
		}
	}
	return nil, shared.ErrNoActiveSeason
}

func (r *fakeSeasonRepo) GetAll(_ context.Context) ([]*season.Season, error) {
	all := make([]*season.Season, 0, len(r.seasons))
	for _, s := range r.seasons {
		all = append(all, s)
	}
	return all, nil
}

func (r *fakeSeasonRepo) Update(_ context.Context, s *season.Season) error {
	r.seasons[s.ID] = s
	return nil
}

func (r *fakeSeasonRepo) Delete(_ context.Context, id string) error {
	delete(r.seasons, id)
	return nil
}

type fakeCheckinRepo struct {
	days map[attendance.Date]*attendance.DayRecord
}

func newFakeCheckinRepo(records ...*attendance.DayRecord) *fakeCheckinRepo {
	r := &fakeCheckinRepo{days: make(map[attendance.Date]*attendance.DayRecord)}
	for _, rec := range records {
		r.days[rec.Date] = rec
	}
	return r
}

func (r *fakeCheckinRepo) GetDayRecord(_ context.Context, _ string, date attendance.Date) (*attendance.DayRecord, error) {
	rec, ok := r.days[date]
	if !ok {
		return nil, shared.NewDomainError("attendance", "GetDayRecord", shared.ErrNotFound, "day not recorded")
	}
	return rec.Clone(), nil
}

func (r *fakeCheckinRepo) GetDayRecords(_ context.Context, _ string, from, to attendance.Date) ([]*attendance.DayRecord, error) {
	var records []*attendance.DayRecord
	for _, rec := range r.days {
		if !from.IsZero() && rec.Date.Before(from) {
			continue
		}
		if !to.IsZero() && rec.Date.After(to) {
			continue
		}
		records = append(records, rec.Clone())
	}
	return records, nil
}

func (r *fakeCheckinRepo) PutDayRecord(_ context.Context, _ string, record *attendance.DayRecord) error {
	r.days[record.Date] = record.Clone()
	return nil
}

type fakeAthleteRepo struct {
	athletes map[string]*athlete.Athlete
}

func newFakeAthleteRepo(athletes ...*athlete.Athlete) *fakeAthleteRepo {
	r := &fakeAthleteRepo{athletes: make(map[string]*athlete.Athlete)}
	for _, a := range athletes {
		r.athletes[a.ID] = a
	}
	return r
}

func (r *fakeAthleteRepo) Create(_ context.Context, a *athlete.Athlete) error {
	r.athletes[a.ID] = a
	return nil
}

func (r *fakeAthleteRepo) GetByID(_ context.Context, id string) (*athlete.Athlete, error) {
	a, ok := r.athletes[id]
	if !ok {
		return nil, shared.ErrAthleteNotFound
	}
	return a, nil
}

func (r *fakeAthleteRepo) GetByIDs(_ context.Context, ids []string) ([]*athlete.Athlete, error) {
	var out []*athlete.Athlete
	for _, id := range ids {
		if a, ok := r.athletes[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAthleteRepo) GetAll(_ context.Context) ([]*athlete.Athlete, error) {
	all := make([]*athlete.Athlete, 0, len(r.athletes))
	for _, a := range r.athletes {
		all = append(all, a)
	}
	return all, nil
}

func (r *fakeAthleteRepo) Update(_ context.Context, a *athlete.Athlete) error {
	r.athletes[a.ID] = a
	return nil
}

func (r *fakeAthleteRepo) Delete(_ context.Context, id string) error {
	delete(r.athletes, id)
	return nil
}

type fakePaymentRepo struct {
	payments []*payment.Payment
}

func (r *fakePaymentRepo) Add(_ context.Context, p *payment.Payment) error {
	r.payments = append(r.payments, p)
	return nil
}

func (r *fakePaymentRepo) GetBySeason(_ context.Context, seasonID string) ([]*payment.Payment, error) {
	var out []*payment.Payment
	for _, p := range r.payments {
		if p.SeasonID == seasonID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) GetByAthlete(_ context.Context, seasonID, athleteID string) ([]*payment.Payment, error) {
	var out []*payment.Payment
	for _, p := range r.payments {
		if p.SeasonID == seasonID && p.AthleteID == athleteID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) Delete(_ context.Context, _ string) error {
	return nil
}

type fakeRankingCache struct {
	stored map[string]*GetRankingsResult
	hits   int
	sets   int
}

func newFakeRankingCache() *fakeRankingCache {
	return &fakeRankingCache{stored: make(map[string]*GetRankingsResult)}
}

func (c *fakeRankingCache) GetRankings(_ context.Context, seasonID string) (*GetRankingsResult, error) {
	result, ok := c.stored[seasonID]
	if !ok {
		return nil, shared.NewDomainError("cache", "GetRankings", shared.ErrNotFound, "cache miss")
	}
	c.hits++
	return result, nil
}

func (c *fakeRankingCache) SetRankings(_ context.Context, seasonID string, result *GetRankingsResult, _ time.Duration) error {
	c.stored[seasonID] = result
	c.sets++
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────────────────────

func testSeason() *season.Season {
	return &season.Season{
		ID:        "season-1",
		Title:     "Temporada Verão",
		StartDate: "2025-01-01",
		EndDate:   "2025-03-31",
		Policy: attendance.Policy{
			WeeklyRestLimit: 2,
			WeekStartsOn:    1,
			BonusDates:      attendance.NewDateSet(),
			BonusBenefit:    attendance.BenefitNone,
			FinePerAbsence:  10,
			NeutralDays:     attendance.NewDateSet(),
		},
		Participants: []string{"ath-1", "ath-2"},
		Active:       true,
	}
}

func testAthletes() *fakeAthleteRepo {
	return newFakeAthleteRepo(
		&athlete.Athlete{ID: "ath-1", Name: "Rip"},
		&athlete.Athlete{ID: "ath-2", Name: "Careca"},
	)
}

// day monta um registro classificado com um status por atleta.
func day(date attendance.Date, marks map[string]attendance.DerivedStatus) *attendance.DayRecord {
	athletes := make(map[string]attendance.AthleteMark, len(marks))
	for id, status := range marks {
		athletes[id] = attendance.AthleteMark{Status: status}
	}
	return &attendance.DayRecord{SeasonID: "season-1", Date: date, Athletes: athletes}
}
