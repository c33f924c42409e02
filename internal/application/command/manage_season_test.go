package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ripcamargo/daily-check-maromba/internal/domain/attendance"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/shared"
)

func validPolicy() attendance.Policy {
	return attendance.Policy{
		WeeklyRestLimit: 2,
		WeekStartsOn:    1,
		BonusDates:      attendance.NewDateSet(),
		BonusBenefit:    attendance.BenefitValeFolga,
		FinePerAbsence:  15,
		NeutralDays:     attendance.NewDateSet(),
	}
}

func TestCreateSeason_CreatesValidatedSeason(t *testing.T) {
	seasonRepo := newFakeSeasonRepo()
	handler := NewCreateSeasonHandler(seasonRepo)

	s, err := handler.Handle(context.Background(), CreateSeasonCommand{
		Title:        "Temporada Inverno",
		StartDate:    "2025-06-01",
		EndDate:      "2025-08-31",
		Policy:       validPolicy(),
		Participants: []string{"ath-1"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, s.ID)
	assert.False(t, s.Active)
	assert.Equal(t, []string{"ath-1"}, s.Participants)
	assert.Contains(t, seasonRepo.seasons, s.ID)
}

func TestCreateSeason_ActivateDeactivatesCurrent(t *testing.T) {
	current := testSeason()
	seasonRepo := newFakeSeasonRepo(current)
	handler := NewCreateSeasonHandler(seasonRepo)

	s, err := handler.Handle(context.Background(), CreateSeasonCommand{
		Title:     "Temporada Nova",
		StartDate: "2025-04-01",
		EndDate:   "2025-06-30",
		Policy:    validPolicy(),
		Activate:  true,
	})
	require.NoError(t, err)

	assert.True(t, s.Active)
	assert.False(t, seasonRepo.seasons[current.ID].Active)
}

func TestCreateSeason_RejectsIncompletePolicy(t *testing.T) {
	handler := NewCreateSeasonHandler(newFakeSeasonRepo())

	policy := validPolicy()
	policy.WeeklyRestLimit = attendance.Unset

	_, err := handler.Handle(context.Background(), CreateSeasonCommand{
		Title:     "Sem limite",
		StartDate: "2025-06-01",
		EndDate:   "2025-08-31",
		Policy:    policy,
	})
	require.Error(t, err)
	assert.True(t, shared.IsConfiguration(err))
}

func TestUpdateSeasonPolicy_UpdatesAndReprocesses(t *testing.T) {
	s := testSeason()
	seasonRepo := newFakeSeasonRepo(s)
	checkinRepo := newFakeCheckinRepo(legacyDay("2025-01-13", attendance.StatusAbsence))
	reprocessor := NewReprocessSeasonHandler(seasonRepo, checkinRepo, nil)
	handler := NewUpdateSeasonPolicyHandler(seasonRepo, reprocessor)

	newPolicy := validPolicy()
	newPolicy.WeeklyRestLimit = 3

	result, err := handler.Handle(context.Background(), UpdateSeasonPolicyCommand{
		SeasonID: s.ID,
		Policy:   newPolicy,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, seasonRepo.seasons[s.ID].Policy.WeeklyRestLimit)
	require.NotNil(t, result.Reprocess)
	assert.Equal(t, 1, result.Reprocess.DaysProcessed)
	// Com limite 3, a falta antiga vira folga.
	assert.Equal(t, attendance.StatusRest, checkinRepo.days["2025-01-13"].Athletes["ath-1"].Status)
}

func TestUpdateSeasonPolicy_SkipReprocessLeavesHistory(t *testing.T) {
	s := testSeason()
	seasonRepo := newFakeSeasonRepo(s)
	checkinRepo := newFakeCheckinRepo(legacyDay("2025-01-13", attendance.StatusAbsence))
	reprocessor := NewReprocessSeasonHandler(seasonRepo, checkinRepo, nil)
	handler := NewUpdateSeasonPolicyHandler(seasonRepo, reprocessor)

	result, err := handler.Handle(context.Background(), UpdateSeasonPolicyCommand{
		SeasonID:      s.ID,
		Policy:        validPolicy(),
		SkipReprocess: true,
	})
	require.NoError(t, err)

	assert.Nil(t, result.Reprocess)
	assert.Equal(t, 0, checkinRepo.puts)
}

func TestUpdateSeasonPolicy_RejectsInvalidPolicy(t *testing.T) {
	s := testSeason()
	handler := NewUpdateSeasonPolicyHandler(newFakeSeasonRepo(s), nil)

	bad := validPolicy()
	bad.WeekStartsOn = 9

	_, err := handler.Handle(context.Background(), UpdateSeasonPolicyCommand{
		SeasonID: s.ID,
		Policy:   bad,
	})
	require.Error(t, err)
	assert.True(t, shared.IsConfiguration(err))
}
