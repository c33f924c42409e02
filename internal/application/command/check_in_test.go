package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ripcamargo/daily-check-maromba/internal/domain/attendance"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/shared"
)

func TestCheckInDay_ClassifiesAndPersists(t *testing.T) {
	seasonRepo := newFakeSeasonRepo(testSeason())
	checkinRepo := newFakeCheckinRepo()
	cache := &fakeRankingCache{}
	handler := NewCheckInDayHandler(seasonRepo, checkinRepo, cache)

	result, err := handler.Handle(context.Background(), CheckInDayCommand{
		Date: "2025-01-15",
		Marks: map[string]attendance.RawStatus{
			"ath-1": attendance.RawPresent,
			"ath-2": attendance.RawAbsent,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusPresent, result.Record.Athletes["ath-1"].Status)
	// Primeira ausência da semana, dentro do limite: folga.
	assert.Equal(t, attendance.StatusRest, result.Record.Athletes["ath-2"].Status)

	stored := checkinRepo.days["2025-01-15"]
	require.NotNil(t, stored)
	assert.Equal(t, "season-1", stored.SeasonID)
	assert.Equal(t, []string{"season-1"}, cache.invalidated)
}

func TestCheckInDay_ResolvesActiveSeasonWhenIDEmpty(t *testing.T) {
	s := testSeason()
	seasonRepo := newFakeSeasonRepo(s)
	handler := NewCheckInDayHandler(seasonRepo, newFakeCheckinRepo(), nil)

	result, err := handler.Handle(context.Background(), CheckInDayCommand{
		Date:  "2025-02-01",
		Marks: map[string]attendance.RawStatus{"ath-1": attendance.RawPresent},
	})
	require.NoError(t, err)
	assert.Equal(t, s.ID, result.Record.SeasonID)
}

func TestCheckInDay_MergesExistingMarks(t *testing.T) {
	seasonRepo := newFakeSeasonRepo(testSeason())
	checkinRepo := newFakeCheckinRepo(&attendance.DayRecord{
		SeasonID: "season-1",
		Date:     "2025-01-15",
		Athletes: map[string]attendance.AthleteMark{
			"ath-1": {Status: attendance.StatusPresent, OriginalStatus: attendance.RawPresent},
			"ath-2": {Status: attendance.StatusRest, OriginalStatus: attendance.RawAbsent},
		},
	})
	handler := NewCheckInDayHandler(seasonRepo, checkinRepo, nil)

	// Só ath-2 chega de novo; ath-1 mantém a marcação anterior.
	result, err := handler.Handle(context.Background(), CheckInDayCommand{
		SeasonID: "season-1",
		Date:     "2025-01-15",
		Marks:    map[string]attendance.RawStatus{"ath-2": attendance.RawPresent},
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusPresent, result.Record.Athletes["ath-1"].Status)
	assert.Equal(t, attendance.StatusPresent, result.Record.Athletes["ath-2"].Status)
}

func TestCheckInDay_WeeklyLimitAcrossStoredDays(t *testing.T) {
	s := testSeason()
	s.Policy.WeeklyRestLimit = 1
	seasonRepo := newFakeSeasonRepo(s)
	checkinRepo := newFakeCheckinRepo()
	handler := NewCheckInDayHandler(seasonRepo, checkinRepo, nil)

	// Segunda: primeira ausência da semana → folga.
	mon, err := handler.Handle(context.Background(), CheckInDayCommand{
		Date:  "2025-01-13",
		Marks: map[string]attendance.RawStatus{"ath-1": attendance.RawAbsent},
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusRest, mon.Record.Athletes["ath-1"].Status)

	// Terça: segunda ausência, acima do limite → falta.
	tue, err := handler.Handle(context.Background(), CheckInDayCommand{
		Date:  "2025-01-14",
		Marks: map[string]attendance.RawStatus{"ath-1": attendance.RawAbsent},
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsence, tue.Record.Athletes["ath-1"].Status)

	// Segunda seguinte: semana nova, contador zerado → folga.
	nextMon, err := handler.Handle(context.Background(), CheckInDayCommand{
		Date:  "2025-01-20",
		Marks: map[string]attendance.RawStatus{"ath-1": attendance.RawAbsent},
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusRest, nextMon.Record.Athletes["ath-1"].Status)
}

func TestCheckInDay_RejectsDateOutsideSeason(t *testing.T) {
	handler := NewCheckInDayHandler(newFakeSeasonRepo(testSeason()), newFakeCheckinRepo(), nil)

	_, err := handler.Handle(context.Background(), CheckInDayCommand{
		Date:  "2025-06-01",
		Marks: map[string]attendance.RawStatus{"ath-1": attendance.RawPresent},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrValueOutOfRange)
}

func TestCheckInDay_RejectsNonParticipant(t *testing.T) {
	handler := NewCheckInDayHandler(newFakeSeasonRepo(testSeason()), newFakeCheckinRepo(), nil)

	_, err := handler.Handle(context.Background(), CheckInDayCommand{
		Date:  "2025-01-15",
		Marks: map[string]attendance.RawStatus{"intruso": attendance.RawPresent},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestCheckInDay_RejectsUnknownRawStatus(t *testing.T) {
	handler := NewCheckInDayHandler(newFakeSeasonRepo(testSeason()), newFakeCheckinRepo(), nil)

	_, err := handler.Handle(context.Background(), CheckInDayCommand{
		Date:  "2025-01-15",
		Marks: map[string]attendance.RawStatus{"ath-1": "dormiu"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestCheckInDay_NoActiveSeason(t *testing.T) {
	handler := NewCheckInDayHandler(newFakeSeasonRepo(), newFakeCheckinRepo(), nil)

	_, err := handler.Handle(context.Background(), CheckInDayCommand{
		Date:  "2025-01-15",
		Marks: map[string]attendance.RawStatus{"ath-1": attendance.RawPresent},
	})
	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))
}
