// Package payment contains fine payments recorded against a season.
// Debt is always owed fines minus paid amounts, never negative.
package payment

import (
	"context"
	"time"

	"github.com/ripcamargo/daily-check-maromba/internal/domain/attendance"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/shared"
)

// Payment is a single fine payment by an athlete within a season.
type Payment struct {
	ID        string
	SeasonID  string
	AthleteID string
	Amount    float64
	Date      attendance.Date
	Note      string
	CreatedAt time.Time
}

// New creates a validated payment.
func New(id, seasonID, athleteID string, amount float64, date attendance.Date) (*Payment, error) {
	p := &Payment{
		ID:        id,
		SeasonID:  seasonID,
		AthleteID: athleteID,
		Amount:    amount,
		Date:      date,
		CreatedAt: time.Now().UTC(),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the payment invariants.
func (p *Payment) Validate() error {
	if p.SeasonID == "" || p.AthleteID == "" {
		return shared.NewDomainError("payment", "Validate", shared.ErrEmptyValue, "payment requires season and athlete")
	}
	if p.Amount <= 0 {
		return shared.ErrInvalidAmount
	}
	if !p.Date.IsValid() {
		return shared.NewDomainError("payment", "Validate", shared.ErrInvalidFormat, "payment date must be yyyy-mm-dd")
	}
	return nil
}

// TotalPaid sums the amounts of the given payments.
func TotalPaid(payments []*Payment) float64 {
	var total float64
	for _, p := range payments {
		total += p.Amount
	}
	return total
}

// Repository defines the storage contract for payments.
type Repository interface {
	// Add records a new payment.
	Add(ctx context.Context, payment *Payment) error

	// GetBySeason returns all payments of a season, most recent first.
	GetBySeason(ctx context.Context, seasonID string) ([]*Payment, error)

	// GetByAthlete returns the payments of one athlete in a season,
	// most recent first.
	GetByAthlete(ctx context.Context, seasonID, athleteID string) ([]*Payment, error)

	// Delete removes a payment.
	Delete(ctx context.Context, id string) error
}
