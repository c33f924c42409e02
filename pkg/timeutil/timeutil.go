// Package timeutil provides timezone utilities for the São Paulo timezone (UTC-3).
// This is essential for Daily Check Maromba as the whole crew trains in Brazil
// and a check-in day is defined by the local calendar date.
// Handles date formatting, gym hours, and timezone-aware time operations.
// No external dependencies - uses only standard library.
package timeutil

import (
	"fmt"
	"time"
)

// SaoPauloTZ is the São Paulo timezone (UTC-3, no DST).
// Brazil abolished DST in 2019, so this is constant year-round.
var SaoPauloTZ = time.FixedZone("America/Sao_Paulo", -3*60*60)

// Now returns the current time in São Paulo timezone.
func Now() time.Time {
	return time.Now().In(SaoPauloTZ)
}

// ToSaoPaulo converts a time to São Paulo timezone.
func ToSaoPaulo(t time.Time) time.Time {
	return t.In(SaoPauloTZ)
}

// ToUTC converts a time to UTC.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// Date creates a time in São Paulo timezone with the given date.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, SaoPauloTZ)
}

// DateTime creates a time in São Paulo timezone with the given date and time.
func DateTime(year, month, day, hour, min, sec int) time.Time {
	return time.Date(year, time.Month(month), day, hour, min, sec, 0, SaoPauloTZ)
}

// StartOfDay returns the start of the day (00:00:00) in São Paulo timezone.
func StartOfDay(t time.Time) time.Time {
	sp := ToSaoPaulo(t)
	return time.Date(sp.Year(), sp.Month(), sp.Day(), 0, 0, 0, 0, SaoPauloTZ)
}

// EndOfDay returns the end of the day (23:59:59.999999999) in São Paulo timezone.
func EndOfDay(t time.Time) time.Time {
	sp := ToSaoPaulo(t)
	return time.Date(sp.Year(), sp.Month(), sp.Day(), 23, 59, 59, 999999999, SaoPauloTZ)
}

// StartOfWeek returns the start of the week in São Paulo timezone.
// weekStartsOn follows time.Weekday numbering (Sunday = 0).
func StartOfWeek(t time.Time, weekStartsOn time.Weekday) time.Time {
	sp := ToSaoPaulo(t)
	offset := (int(sp.Weekday()) - int(weekStartsOn) + 7) % 7
	return StartOfDay(sp.AddDate(0, 0, -offset))
}

// EndOfWeek returns the end of the week (6 days after its start).
func EndOfWeek(t time.Time, weekStartsOn time.Weekday) time.Time {
	start := StartOfWeek(t, weekStartsOn)
	return EndOfDay(start.AddDate(0, 0, 6))
}

// StartOfMonth returns the start of the month in São Paulo timezone.
func StartOfMonth(t time.Time) time.Time {
	sp := ToSaoPaulo(t)
	return time.Date(sp.Year(), sp.Month(), 1, 0, 0, 0, 0, SaoPauloTZ)
}

// EndOfMonth returns the end of the month in São Paulo timezone.
func EndOfMonth(t time.Time) time.Time {
	start := StartOfMonth(t)
	return EndOfDay(start.AddDate(0, 1, -1))
}

// IsToday checks if the given time is today in São Paulo timezone.
func IsToday(t time.Time) bool {
	now := Now()
	sp := ToSaoPaulo(t)
	return sp.Year() == now.Year() &&
		sp.Month() == now.Month() &&
		sp.Day() == now.Day()
}

// IsYesterday checks if the given time is yesterday in São Paulo timezone.
func IsYesterday(t time.Time) bool {
	yesterday := Now().AddDate(0, 0, -1)
	sp := ToSaoPaulo(t)
	return sp.Year() == yesterday.Year() &&
		sp.Month() == yesterday.Month() &&
		sp.Day() == yesterday.Day()
}

// DaysSince calculates the number of days since the given time.
func DaysSince(t time.Time) int {
	now := StartOfDay(Now())
	then := StartOfDay(t)
	duration := now.Sub(then)
	return int(duration.Hours() / 24)
}

// Gym opening hours.
const (
	// GymOpenTime is when the gym opens (6:00 AM).
	GymOpenTime = 6
	// GymCloseTime is when the gym closes (11:00 PM).
	GymCloseTime = 23
)

// IsGymOpen checks if the gym is open (6:00-23:00).
func IsGymOpen(t time.Time) bool {
	sp := ToSaoPaulo(t)
	hour := sp.Hour()
	return hour >= GymOpenTime && hour < GymCloseTime
}

// IsWeekend checks if the given time is on a weekend.
func IsWeekend(t time.Time) bool {
	sp := ToSaoPaulo(t)
	weekday := sp.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// Common date/time formats.
const (
	// FormatDate is the standard date format (YYYY-MM-DD).
	FormatDate = "2006-01-02"
	// FormatTime is the standard time format (HH:MM).
	FormatTime = "15:04"
	// FormatDateTime is the standard datetime format.
	FormatDateTime = "2006-01-02 15:04"
	// FormatDateTimeSeconds includes seconds.
	FormatDateTimeSeconds = "2006-01-02 15:04:05"
	// FormatBrazilianDate is the Brazilian date format (DD/MM/YYYY).
	FormatBrazilianDate = "02/01/2006"
	// FormatBrazilianDateTime is the Brazilian datetime format.
	FormatBrazilianDateTime = "02/01/2006 15:04"
	// FormatShortDate is a short format (Jan 2).
	FormatShortDate = "Jan 2"
)

// FormatSaoPaulo formats a time in São Paulo timezone with the given layout.
func FormatSaoPaulo(t time.Time, layout string) string {
	return ToSaoPaulo(t).Format(layout)
}

// FormatDateStr formats a time as a date string (YYYY-MM-DD) in São Paulo timezone.
func FormatDateStr(t time.Time) string {
	return FormatSaoPaulo(t, FormatDate)
}

// FormatTimeStr formats a time as a time string (HH:MM) in São Paulo timezone.
func FormatTimeStr(t time.Time) string {
	return FormatSaoPaulo(t, FormatTime)
}

// FormatBrazilian formats a time in Brazilian format (DD/MM/YYYY).
func FormatBrazilian(t time.Time) string {
	return FormatSaoPaulo(t, FormatBrazilianDate)
}

// FormatRelative returns a human-readable relative time string in Portuguese.
func FormatRelative(t time.Time) string {
	now := Now()
	sp := ToSaoPaulo(t)
	duration := now.Sub(sp)

	if duration < 0 {
		duration = -duration
		return formatFutureDuration(duration)
	}

	return formatPastDuration(duration)
}

func formatPastDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "agora mesmo"
	case d < time.Hour:
		mins := int(d.Minutes())
		return fmt.Sprintf("%d min atrás", mins)
	case d < 24*time.Hour:
		hours := int(d.Hours())
		return fmt.Sprintf("%d h atrás", hours)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "ontem"
		}
		return fmt.Sprintf("%d dias atrás", days)
	case d < 30*24*time.Hour:
		weeks := int(d.Hours() / 24 / 7)
		return fmt.Sprintf("%d sem atrás", weeks)
	default:
		months := int(d.Hours() / 24 / 30)
		if months < 12 {
			return fmt.Sprintf("%d meses atrás", months)
		}
		years := months / 12
		return fmt.Sprintf("%d anos atrás", years)
	}
}

func formatFutureDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "agora"
	case d < time.Hour:
		mins := int(d.Minutes())
		return fmt.Sprintf("em %d min", mins)
	case d < 24*time.Hour:
		hours := int(d.Hours())
		return fmt.Sprintf("em %d h", hours)
	default:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "amanhã"
		}
		return fmt.Sprintf("em %d dias", days)
	}
}

// ParseSaoPaulo parses a time string in São Paulo timezone.
func ParseSaoPaulo(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, SaoPauloTZ)
}

// ParseDateSaoPaulo parses a date string (YYYY-MM-DD) in São Paulo timezone.
func ParseDateSaoPaulo(value string) (time.Time, error) {
	return ParseSaoPaulo(FormatDate, value)
}

// IsSameDay checks if two times are on the same day in São Paulo timezone.
func IsSameDay(t1, t2 time.Time) bool {
	a1, a2 := ToSaoPaulo(t1), ToSaoPaulo(t2)
	return a1.Year() == a2.Year() && a1.YearDay() == a2.YearDay()
}

// IsConsecutiveDay checks if t2 is the day after t1.
func IsConsecutiveDay(t1, t2 time.Time) bool {
	a1, a2 := ToSaoPaulo(t1), ToSaoPaulo(t2)
	nextDay := a1.AddDate(0, 0, 1)
	return IsSameDay(nextDay, a2)
}

// DaysBetween calculates the number of days between two times.
func DaysBetween(t1, t2 time.Time) int {
	a1 := StartOfDay(t1)
	a2 := StartOfDay(t2)
	duration := a2.Sub(a1)
	days := int(duration.Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}

// WeekdayNamePt returns the Portuguese name for a weekday.
func WeekdayNamePt(t time.Time) string {
	sp := ToSaoPaulo(t)
	switch sp.Weekday() {
	case time.Monday:
		return "Segunda-feira"
	case time.Tuesday:
		return "Terça-feira"
	case time.Wednesday:
		return "Quarta-feira"
	case time.Thursday:
		return "Quinta-feira"
	case time.Friday:
		return "Sexta-feira"
	case time.Saturday:
		return "Sábado"
	case time.Sunday:
		return "Domingo"
	default:
		return ""
	}
}

// MonthNamePt returns the Portuguese name for a month.
func MonthNamePt(m time.Month) string {
	names := []string{
		"", "Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}
	if int(m) >= 1 && int(m) <= 12 {
		return names[m]
	}
	return ""
}
