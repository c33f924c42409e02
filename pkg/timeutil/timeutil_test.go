package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfWeek(t *testing.T) {
	// Quinta-feira, 9 de janeiro de 2025.
	thursday := Date(2025, 1, 9)

	monday := StartOfWeek(thursday, time.Monday)
	assert.Equal(t, time.Monday, monday.Weekday())
	assert.Equal(t, 6, monday.Day())

	sunday := StartOfWeek(thursday, time.Sunday)
	assert.Equal(t, time.Sunday, sunday.Weekday())
	assert.Equal(t, 5, sunday.Day())
}

func TestStartOfWeek_OnTheBoundary(t *testing.T) {
	monday := Date(2025, 1, 6)
	assert.Equal(t, 6, StartOfWeek(monday, time.Monday).Day())
}

func TestEndOfWeek(t *testing.T) {
	thursday := Date(2025, 1, 9)
	end := EndOfWeek(thursday, time.Monday)
	assert.Equal(t, time.Sunday, end.Weekday())
	assert.Equal(t, 12, end.Day())
}

func TestStartAndEndOfDay(t *testing.T) {
	noon := DateTime(2025, 1, 9, 12, 30, 0)

	start := StartOfDay(noon)
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, 9, start.Day())

	end := EndOfDay(noon)
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Minute())
}

func TestFormatBrazilian(t *testing.T) {
	d := Date(2025, 3, 7)
	assert.Equal(t, "07/03/2025", FormatBrazilian(d))
	assert.Equal(t, "2025-03-07", FormatDateStr(d))
}

func TestParseDateSaoPaulo(t *testing.T) {
	parsed, err := ParseDateSaoPaulo("2025-01-09")
	require.NoError(t, err)
	assert.Equal(t, 2025, parsed.Year())
	assert.Equal(t, time.January, parsed.Month())
	assert.Equal(t, 9, parsed.Day())

	_, err = ParseDateSaoPaulo("09/01/2025")
	assert.Error(t, err)
}

func TestIsSameDayAndConsecutive(t *testing.T) {
	morning := DateTime(2025, 1, 9, 7, 0, 0)
	evening := DateTime(2025, 1, 9, 22, 0, 0)
	nextDay := DateTime(2025, 1, 10, 7, 0, 0)

	assert.True(t, IsSameDay(morning, evening))
	assert.False(t, IsSameDay(morning, nextDay))
	assert.True(t, IsConsecutiveDay(morning, nextDay))
	assert.False(t, IsConsecutiveDay(morning, evening))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 3, DaysBetween(Date(2025, 1, 6), Date(2025, 1, 9)))
	assert.Equal(t, 3, DaysBetween(Date(2025, 1, 9), Date(2025, 1, 6)))
	assert.Equal(t, 0, DaysBetween(Date(2025, 1, 6), Date(2025, 1, 6)))
}

func TestIsGymOpen(t *testing.T) {
	assert.True(t, IsGymOpen(DateTime(2025, 1, 9, 6, 0, 0)))
	assert.True(t, IsGymOpen(DateTime(2025, 1, 9, 22, 59, 0)))
	assert.False(t, IsGymOpen(DateTime(2025, 1, 9, 23, 0, 0)))
	assert.False(t, IsGymOpen(DateTime(2025, 1, 9, 5, 59, 0)))
}

func TestWeekdayAndMonthNamesPt(t *testing.T) {
	assert.Equal(t, "Segunda-feira", WeekdayNamePt(Date(2025, 1, 6)))
	assert.Equal(t, "Domingo", WeekdayNamePt(Date(2025, 1, 12)))
	assert.Equal(t, "Janeiro", MonthNamePt(time.January))
	assert.Equal(t, "Dezembro", MonthNamePt(time.December))
}
