package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func dayWith(date Date, athleteID string, mark AthleteMark) *DayRecord {
	return &DayRecord{
		SeasonID: "season-1",
		Date:     date,
		Athletes: map[string]AthleteMark{athleteID: mark},
	}
}

func TestCountWeeklyAbsences_CountsOnlyDirectAbsences(t *testing.T) {
	records := []*DayRecord{
		dayWith("2025-01-13", "ath-1", AthleteMark{Status: StatusRest, OriginalStatus: RawAbsent}),
		dayWith("2025-01-14", "ath-1", AthleteMark{Status: StatusPresent, OriginalStatus: RawPresent}),
		dayWith("2025-01-15", "ath-1", AthleteMark{Status: StatusHospital, OriginalStatus: RawHospital}),
		dayWith("2025-01-16", "ath-1", AthleteMark{Status: StatusJustified, OriginalStatus: RawJustified}),
		dayWith("2025-01-17", "ath-1", AthleteMark{Status: StatusAbsence, OriginalStatus: RawAbsent}),
	}

	got := CountWeeklyAbsences(records, "ath-1", nil)
	assert.Equal(t, 2, got)
}

func TestCountWeeklyAbsences_SkipsBonusDates(t *testing.T) {
	// Ausência em data bônus não conta no limite, qualquer que seja o status.
	records := []*DayRecord{
		dayWith("2025-01-13", "ath-1", AthleteMark{Status: StatusRest, OriginalStatus: RawAbsent}),
		dayWith("2025-01-14", "ath-1", AthleteMark{Status: StatusRest, OriginalStatus: RawAbsent}),
	}
	bonus := NewDateSet("2025-01-14")

	assert.Equal(t, 1, CountWeeklyAbsences(records, "ath-1", bonus))
}

func TestCountWeeklyAbsences_UsesOriginalStatus(t *testing.T) {
	// O status derivado pode ser folga, mas o original ausente é o que conta.
	records := []*DayRecord{
		dayWith("2025-01-13", "ath-1", AthleteMark{Status: StatusRest, OriginalStatus: RawAbsent}),
	}
	assert.Equal(t, 1, CountWeeklyAbsences(records, "ath-1", nil))
}

func TestCountWeeklyAbsences_LegacyFallback(t *testing.T) {
	// Registro antigo sem original: cai no status derivado migrado.
	records := []*DayRecord{
		dayWith("2025-01-13", "ath-1", AthleteMark{Status: StatusAbsence}),
		dayWith("2025-01-14", "ath-1", AthleteMark{Status: StatusRest}),
		dayWith("2025-01-15", "ath-1", AthleteMark{Status: StatusExtra}),
	}
	assert.Equal(t, 2, CountWeeklyAbsences(records, "ath-1", nil))
}

func TestCountWeeklyAbsences_IgnoresOtherAthletes(t *testing.T) {
	records := []*DayRecord{
		dayWith("2025-01-13", "ath-2", AthleteMark{Status: StatusAbsence, OriginalStatus: RawAbsent}),
	}
	assert.Equal(t, 0, CountWeeklyAbsences(records, "ath-1", nil))
}

func TestCountWeeklyAbsences_EmptyInput(t *testing.T) {
	assert.Equal(t, 0, CountWeeklyAbsences(nil, "ath-1", nil))
}
