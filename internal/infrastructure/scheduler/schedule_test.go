package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIntervalSchedule_Next(t *testing.T) {
	s := NewIntervalSchedule(10 * time.Minute)
	now := time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, now.Add(10*time.Minute), s.Next(now))
	assert.Equal(t, "@every 10m0s", s.String())
}

func TestDailySchedule_NextBeforeScheduledTime(t *testing.T) {
	s := NewDailySchedule(3, 30, time.UTC)
	now := time.Date(2025, 1, 6, 1, 0, 0, 0, time.UTC)

	next := s.Next(now)
	assert.Equal(t, time.Date(2025, 1, 6, 3, 30, 0, 0, time.UTC), next)
}

func TestDailySchedule_NextAfterScheduledTimeRollsToTomorrow(t *testing.T) {
	s := NewDailySchedule(3, 30, time.UTC)
	now := time.Date(2025, 1, 6, 4, 0, 0, 0, time.UTC)

	next := s.Next(now)
	assert.Equal(t, time.Date(2025, 1, 7, 3, 30, 0, 0, time.UTC), next)
}

func TestDailySchedule_ExactTimeRollsToTomorrow(t *testing.T) {
	s := NewDailySchedule(3, 30, time.UTC)
	now := time.Date(2025, 1, 6, 3, 30, 0, 0, time.UTC)

	next := s.Next(now)
	assert.Equal(t, time.Date(2025, 1, 7, 3, 30, 0, 0, time.UTC), next)
}

func TestDailySchedule_UsesLocation(t *testing.T) {
	sp := time.FixedZone("America/Sao_Paulo", -3*60*60)
	s := NewDailySchedule(3, 30, sp)
	// 05:00 UTC = 02:00 em São Paulo, antes das 03:30 locais.
	now := time.Date(2025, 1, 6, 5, 0, 0, 0, time.UTC)

	next := s.Next(now)
	assert.Equal(t, time.Date(2025, 1, 6, 3, 30, 0, 0, sp).Unix(), next.Unix())
}

func TestDailySchedule_NilLocationDefaultsToUTC(t *testing.T) {
	s := NewDailySchedule(12, 0, nil)
	assert.Equal(t, time.UTC, s.Location)
	assert.Equal(t, "@daily 12:00 UTC", s.String())
}
