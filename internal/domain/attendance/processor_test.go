package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy() Policy {
	return Policy{
		WeeklyRestLimit: 2,
		WeekStartsOn:    1,
		BonusDates:      NewDateSet(),
		BonusBenefit:    BenefitNone,
		NeutralDays:     NewDateSet(),
	}
}

func TestProcessDay_ClassifiesEachAthlete(t *testing.T) {
	marks := map[string]RawStatus{
		"ath-1": RawPresent,
		"ath-2": RawAbsent,
		"ath-3": RawHospital,
	}

	record, err := ProcessDay(testPolicy(), "season-1", "2025-01-15", marks, nil)
	require.NoError(t, err)

	assert.Equal(t, Date("2025-01-15"), record.Date)
	assert.Equal(t, "season-1", record.SeasonID)
	assert.Equal(t, AthleteMark{Status: StatusPresent, OriginalStatus: RawPresent}, record.Athletes["ath-1"])
	assert.Equal(t, AthleteMark{Status: StatusRest, OriginalStatus: RawAbsent}, record.Athletes["ath-2"])
	assert.Equal(t, AthleteMark{Status: StatusHospital, OriginalStatus: RawHospital}, record.Athletes["ath-3"])
}

func TestProcessDay_NotSetSkipsAbsenceCounting(t *testing.T) {
	marks := map[string]RawStatus{"ath-1": RawNotSet}

	record, err := ProcessDay(testPolicy(), "season-1", "2025-01-15", marks, nil)
	require.NoError(t, err)

	// NotSet é emitido direto, sem status original.
	assert.Equal(t, AthleteMark{Status: StatusNotSet}, record.Athletes["ath-1"])
}

func TestProcessDay_WeeklyScenario(t *testing.T) {
	// Limite 2, semana sem bônus, ausente seg/qua/sex:
	// seg: 0 anteriores → total 1 ≤ 2 → folga
	// qua: 1 anterior   → total 2 ≤ 2 → folga
	// sex: 2 anteriores → total 3 > 2 → falta
	policy := testPolicy()
	var history []*DayRecord

	for _, tc := range []struct {
		date Date
		want DerivedStatus
	}{
		{"2025-01-13", StatusRest},
		{"2025-01-15", StatusRest},
		{"2025-01-17", StatusAbsence},
	} {
		record, err := ProcessDay(policy, "season-1", tc.date, map[string]RawStatus{"ath-1": RawAbsent}, history)
		require.NoError(t, err)
		assert.Equal(t, tc.want, record.Athletes["ath-1"].Status, "date %s", tc.date)
		history = append(history, record)
	}
}

func TestProcessDay_CounterResetsAcrossWeeks(t *testing.T) {
	policy := testPolicy()
	policy.WeeklyRestLimit = 1

	// Semana 1: duas ausências, a segunda vira falta.
	mon, err := ProcessDay(policy, "s", "2025-01-13", map[string]RawStatus{"a": RawAbsent}, nil)
	require.NoError(t, err)
	tue, err := ProcessDay(policy, "s", "2025-01-14", map[string]RawStatus{"a": RawAbsent}, []*DayRecord{mon})
	require.NoError(t, err)
	assert.Equal(t, StatusAbsence, tue.Athletes["a"].Status)

	// Semana seguinte: o contador zera na fronteira da semana.
	nextMon, err := ProcessDay(policy, "s", "2025-01-20", map[string]RawStatus{"a": RawAbsent}, []*DayRecord{mon, tue})
	require.NoError(t, err)
	assert.Equal(t, StatusRest, nextMon.Athletes["a"].Status)
}

func TestProcessDay_BonusDateScenario(t *testing.T) {
	policy := testPolicy()
	policy.BonusDates = NewDateSet("2025-01-10")

	// Presente em data bônus → Extra.
	record, err := ProcessDay(policy, "s", "2025-01-10", map[string]RawStatus{"a": RawPresent}, nil)
	require.NoError(t, err)
	assert.Equal(t, StatusExtra, record.Athletes["a"].Status)

	// Ausente na mesma data → Rest, mesmo com limite já estourado na semana.
	policy.WeeklyRestLimit = 0
	week := []*DayRecord{
		dayWith("2025-01-06", "a", AthleteMark{Status: StatusAbsence, OriginalStatus: RawAbsent}),
		dayWith("2025-01-07", "a", AthleteMark{Status: StatusAbsence, OriginalStatus: RawAbsent}),
	}
	record, err = ProcessDay(policy, "s", "2025-01-10", map[string]RawStatus{"a": RawAbsent}, week)
	require.NoError(t, err)
	assert.Equal(t, StatusRest, record.Athletes["a"].Status)
}

func TestProcessDay_IgnoresRecordsOutsideWeekOrFuture(t *testing.T) {
	policy := testPolicy()
	policy.WeeklyRestLimit = 1

	week := []*DayRecord{
		// Semana anterior: fora da janela, não conta.
		dayWith("2025-01-10", "a", AthleteMark{Status: StatusAbsence, OriginalStatus: RawAbsent}),
		// Mesmo dia e futuro: estritamente anteriores apenas.
		dayWith("2025-01-15", "a", AthleteMark{Status: StatusAbsence, OriginalStatus: RawAbsent}),
		dayWith("2025-01-16", "a", AthleteMark{Status: StatusAbsence, OriginalStatus: RawAbsent}),
	}

	record, err := ProcessDay(policy, "s", "2025-01-15", map[string]RawStatus{"a": RawAbsent}, week)
	require.NoError(t, err)
	assert.Equal(t, StatusRest, record.Athletes["a"].Status)
}

func TestProcessDay_Idempotent(t *testing.T) {
	policy := testPolicy()
	marks := map[string]RawStatus{"a": RawAbsent, "b": RawPresent}
	week := []*DayRecord{
		dayWith("2025-01-13", "a", AthleteMark{Status: StatusRest, OriginalStatus: RawAbsent}),
	}

	first, err := ProcessDay(policy, "s", "2025-01-15", marks, week)
	require.NoError(t, err)
	second, err := ProcessDay(policy, "s", "2025-01-15", marks, week)
	require.NoError(t, err)

	assert.Equal(t, first.Athletes, second.Athletes)
}

func TestProcessDay_MissingPolicyFieldsFail(t *testing.T) {
	marks := map[string]RawStatus{"a": RawPresent}

	p := testPolicy()
	p.WeeklyRestLimit = Unset
	_, err := ProcessDay(p, "s", "2025-01-15", marks, nil)
	assert.ErrorIs(t, err, ErrMissingRestLimit)

	p = testPolicy()
	p.WeekStartsOn = Unset
	_, err = ProcessDay(p, "s", "2025-01-15", marks, nil)
	assert.ErrorIs(t, err, ErrMissingWeekStart)

	p = testPolicy()
	p.WeekStartsOn = 7
	_, err = ProcessDay(p, "s", "2025-01-15", marks, nil)
	assert.ErrorIs(t, err, ErrInvalidWeekStart)
}
