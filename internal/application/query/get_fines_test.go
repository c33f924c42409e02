package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ripcamargo/daily-check-maromba/internal/domain/attendance"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/payment"
)

// finesFixture: ath-1 tem 2 faltas (multa 20), ath-2 nenhuma.
func finesFixture() (*fakeSeasonRepo, *fakeCheckinRepo) {
	seasonRepo := newFakeSeasonRepo(testSeason())
	checkinRepo := newFakeCheckinRepo(
		day("2025-01-06", map[string]attendance.DerivedStatus{
			"ath-1": attendance.StatusAbsence,
			"ath-2": attendance.StatusPresent,
		}),
		day("2025-01-07", map[string]attendance.DerivedStatus{
			"ath-1": attendance.StatusAbsence,
			"ath-2": attendance.StatusPresent,
		}),
	)
	return seasonRepo, checkinRepo
}

func TestGetFines_ComputesFinesAndDebts(t *testing.T) {
	seasonRepo, checkinRepo := finesFixture()
	paymentRepo := &fakePaymentRepo{payments: []*payment.Payment{
		{ID: "pay-1", SeasonID: "season-1", AthleteID: "ath-1", Amount: 5, Date: "2025-01-10"},
	}}
	handler := NewGetFinesHandler(seasonRepo, checkinRepo, testAthletes(), paymentRepo)

	result, err := handler.Handle(context.Background(), GetFinesQuery{SeasonID: "season-1"})
	require.NoError(t, err)

	assert.Equal(t, "season-1", result.SeasonID)
	assert.Equal(t, 10.0, result.FinePerAbsence)
	require.Len(t, result.Entries, 2)

	byID := make(map[string]FineEntryDTO)
	for _, e := range result.Entries {
		byID[e.AthleteID] = e
	}

	rip := byID["ath-1"]
	assert.Equal(t, 2, rip.TotalAbsences)
	assert.Equal(t, 20.0, rip.FineAmount)
	assert.Equal(t, 5.0, rip.TotalPaid)
	assert.Equal(t, 15.0, rip.Debt)

	careca := byID["ath-2"]
	assert.Zero(t, careca.TotalAbsences)
	assert.Zero(t, careca.Debt)

	assert.Equal(t, 20.0, result.TotalOwed)
	assert.Equal(t, 5.0, result.TotalPaid)
	assert.Equal(t, 15.0, result.TotalDebt)
}

func TestGetFines_OnlyDebtorsFiltersEntriesNotTotals(t *testing.T) {
	seasonRepo, checkinRepo := finesFixture()
	paymentRepo := &fakePaymentRepo{payments: []*payment.Payment{
		{ID: "pay-1", SeasonID: "season-1", AthleteID: "ath-1", Amount: 5, Date: "2025-01-10"},
		{ID: "pay-2", SeasonID: "season-1", AthleteID: "ath-2", Amount: 3, Date: "2025-01-11"},
	}}
	handler := NewGetFinesHandler(seasonRepo, checkinRepo, testAthletes(), paymentRepo)

	result, err := handler.Handle(context.Background(), GetFinesQuery{SeasonID: "season-1", OnlyDebtors: true})
	require.NoError(t, err)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, "ath-1", result.Entries[0].AthleteID)

	// Os totais continuam cobrindo a temporada inteira.
	assert.Equal(t, 20.0, result.TotalOwed)
	assert.Equal(t, 8.0, result.TotalPaid)
	assert.Equal(t, 15.0, result.TotalDebt)
}

func TestGetFines_OverpaymentNeverGoesNegative(t *testing.T) {
	seasonRepo, checkinRepo := finesFixture()
	paymentRepo := &fakePaymentRepo{payments: []*payment.Payment{
		{ID: "pay-1", SeasonID: "season-1", AthleteID: "ath-1", Amount: 50, Date: "2025-01-10"},
	}}
	handler := NewGetFinesHandler(seasonRepo, checkinRepo, testAthletes(), paymentRepo)

	result, err := handler.Handle(context.Background(), GetFinesQuery{SeasonID: "season-1"})
	require.NoError(t, err)

	byID := make(map[string]FineEntryDTO)
	for _, e := range result.Entries {
		byID[e.AthleteID] = e
	}
	assert.Equal(t, 0.0, byID["ath-1"].Debt)
	assert.Equal(t, 0.0, result.TotalDebt)
}

func TestGetFines_ValeFolgaReducesFine(t *testing.T) {
	s := testSeason()
	s.Policy.BonusBenefit = attendance.BenefitValeFolga
	s.Policy.BonusDates = attendance.NewDateSet("2025-01-08")
	seasonRepo := newFakeSeasonRepo(s)
	checkinRepo := newFakeCheckinRepo(
		day("2025-01-06", map[string]attendance.DerivedStatus{"ath-1": attendance.StatusAbsence}),
		day("2025-01-07", map[string]attendance.DerivedStatus{"ath-1": attendance.StatusAbsence}),
		day("2025-01-08", map[string]attendance.DerivedStatus{"ath-1": attendance.StatusExtra}),
	)
	handler := NewGetFinesHandler(seasonRepo, checkinRepo, testAthletes(), &fakePaymentRepo{})

	result, err := handler.Handle(context.Background(), GetFinesQuery{SeasonID: "season-1"})
	require.NoError(t, err)

	byID := make(map[string]FineEntryDTO)
	for _, e := range result.Entries {
		byID[e.AthleteID] = e
	}
	// Uma estrela anula uma falta: sobra 1 falta de 2.
	assert.Equal(t, 1, byID["ath-1"].TotalAbsences)
	assert.Equal(t, 10.0, byID["ath-1"].FineAmount)
}
