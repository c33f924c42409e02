package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ripcamargo/daily-check-maromba/internal/domain/shared"
)

func TestRecordPayment_StoresValidatedPayment(t *testing.T) {
	paymentRepo := &fakePaymentRepo{}
	handler := NewRecordPaymentHandler(newFakeSeasonRepo(testSeason()), paymentRepo)

	p, err := handler.Handle(context.Background(), RecordPaymentCommand{
		AthleteID: "ath-1",
		Amount:    25.50,
		Date:      "2025-02-10",
		Note:      "pix",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "season-1", p.SeasonID)
	assert.Equal(t, "pix", p.Note)
	require.Len(t, paymentRepo.payments, 1)
	assert.Equal(t, 25.50, paymentRepo.payments[0].Amount)
}

func TestRecordPayment_RejectsNonParticipant(t *testing.T) {
	handler := NewRecordPaymentHandler(newFakeSeasonRepo(testSeason()), &fakePaymentRepo{})

	_, err := handler.Handle(context.Background(), RecordPaymentCommand{
		AthleteID: "intruso",
		Amount:    10,
		Date:      "2025-02-10",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestRecordPayment_RejectsNonPositiveAmount(t *testing.T) {
	handler := NewRecordPaymentHandler(newFakeSeasonRepo(testSeason()), &fakePaymentRepo{})

	_, err := handler.Handle(context.Background(), RecordPaymentCommand{
		AthleteID: "ath-1",
		Amount:    0,
		Date:      "2025-02-10",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrInvalidAmount)
}
