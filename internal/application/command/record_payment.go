package command

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ripcamargo/daily-check-maromba/internal/domain/attendance"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/payment"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/season"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECORD PAYMENT COMMAND
// Registra o pagamento de multa de um atleta. A divida nunca fica negativa:
// pagar mais que o devido apenas zera o saldo.
// ══════════════════════════════════════════════════════════════════════════════

// RecordPaymentCommand records a fine payment.
type RecordPaymentCommand struct {
	// SeasonID is the target season. If empty, the active season is used.
	SeasonID string

	AthleteID string
	Amount    float64
	Date      attendance.Date
	Note      string
}

// RecordPaymentHandler handles the RecordPaymentCommand.
type RecordPaymentHandler struct {
	seasonRepo  season.Repository
	paymentRepo payment.Repository
}

// NewRecordPaymentHandler creates a new RecordPaymentHandler.
func NewRecordPaymentHandler(
	seasonRepo season.Repository,
	paymentRepo payment.Repository,
) *RecordPaymentHandler {
	return &RecordPaymentHandler{
		seasonRepo:  seasonRepo,
		paymentRepo: paymentRepo,
	}
}

// Handle executes the record payment command.
func (h *RecordPaymentHandler) Handle(ctx context.Context, cmd RecordPaymentCommand) (*payment.Payment, error) {
	s, err := resolveSeason(ctx, h.seasonRepo, cmd.SeasonID)
	if err != nil {
		return nil, fmt.Errorf("record_payment: %w", err)
	}
	if !s.HasParticipant(cmd.AthleteID) {
		return nil, shared.NewDomainError("payment", "Record", shared.ErrInvalidInput,
			fmt.Sprintf("athlete %s is not a participant of season %s", cmd.AthleteID, s.ID))
	}

	p, err := payment.New(uuid.NewString(), s.ID, cmd.AthleteID, cmd.Amount, cmd.Date)
	if err != nil {
		return nil, fmt.Errorf("record_payment: %w", err)
	}
	p.Note = cmd.Note

	if err := h.paymentRepo.Add(ctx, p); err != nil {
		return nil, fmt.Errorf("record_payment: failed to save: %w", err)
	}
	return p, nil
}
