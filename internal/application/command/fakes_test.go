package command

import (
	"context"
	"fmt"

	"github.com/ripcamargo/daily-check-maromba/internal/domain/attendance"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/payment"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/season"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/shared"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória para os handlers. Sem goroutines, sem locks: cada teste
// usa suas próprias instâncias.
// ──────────────────────────────────────────────────────────────────────────────

type fakeSeasonRepo struct {
	seasons map[string]*season.Season
	updates int
}

func newFakeSeasonRepo(seasons ...*season.Season) *fakeSeasonRepo {
	r := &fakeSeasonRepo{seasons: make(map[string]*season.Season)}
	for _, s := range seasons {
		r.seasons[s.ID] = s
	}
	return r
}

func (r *fakeSeasonRepo) Create(_ context.Context, s *season.Season) error {
	if _, ok := r.seasons[s.ID]; ok {
		return shared.NewDomainError("season", "Create", shared.ErrAlreadyExists, "duplicate season")
	}
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
	var active *season.Season
	for _, s := range r.seasons {
		if !s.Active {
			continue
		}
		if active == nil || s.StartDate.After(active.StartDate) {
			active = s
		}
	}
	if active == nil {
		return nil, shared.ErrNoActiveSeason
	}
	return active, nil
}

func (r *fakeSeasonRepo) GetAll(_ context.Context) ([]*season.Season, error) {
	all := make([]*season.Season, 0, len(r.seasons))
	for _, s := range r.seasons {
		all = append(all, s)
	}
	return all, nil
}

func (r *fakeSeasonRepo) Update(_ context.Context, s *season.Season) error {
	if _, ok := r.seasons[s.ID]; !ok {
		return shared.ErrSeasonNotFound
	}
	r.seasons[s.ID] = s
	r.updates++
	return nil
}

func (r *fakeSeasonRepo) Delete(_ context.Context, id string) error {
	delete(r.seasons, id)
	return nil
}

type fakeCheckinRepo struct {
	days map[attendance.Date]*attendance.DayRecord
	puts int

	// failPutAfter faz PutDayRecord falhar a partir da N-ésima gravação
	// (1-based). Zero desliga.
	failPutAfter int
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
	r.puts++
	if r.failPutAfter > 0 && r.puts >= r.failPutAfter {
		return fmt.Errorf("disk on fire")
	}
	r.days[record.Date] = record.Clone()
	return nil
}

type fakeRankingCache struct {
	invalidated []string
}

func (c *fakeRankingCache) InvalidateSeason(_ context.Context, seasonID string) error {
	c.invalidated = append(c.invalidated, seasonID)
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

func (r *fakePaymentRepo) Delete(_ context.Context, id string) error {
	for i, p := range r.payments {
		if p.ID == id {
			r.payments = append(r.payments[:i], r.payments[i+1:]...)
			return nil
		}
	}
	return shared.ErrPaymentNotFound
}

// testSeason monta uma temporada ativa de janeiro a março com dois atletas.
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
