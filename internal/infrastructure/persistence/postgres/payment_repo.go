package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ripcamargo/daily-check-maromba/internal/domain/attendance"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/payment"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PAYMENT REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// PaymentRepository implements payment.Repository for PostgreSQL.
type PaymentRepository struct {
	conn *Connection
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(conn *Connection) *PaymentRepository {
	return &PaymentRepository{conn: conn}
}

const paymentColumns = `id, season_id, athlete_id, amount, date, note, created_at`

// Add records a new payment.
func (r *PaymentRepository) Add(ctx context.Context, p *payment.Payment) error {
	query := `
		INSERT INTO payments (id, season_id, athlete_id, amount, date, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.conn.Exec(ctx, query,
		p.ID,
		p.SeasonID,
		p.AthleteID,
		p.Amount,
		p.Date.Time(),
		p.Note,
		p.CreatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return shared.NewDomainError("payment", "Add", shared.ErrInvalidInput,
				"payment references an unknown season or athlete")
		}
		return fmt.Errorf("failed to add payment: %w", err)
	}
	return nil
}

// GetBySeason returns all payments of a season, most recent first.
func (r *PaymentRepository) GetBySeason(ctx context.Context, seasonID string) ([]*payment.Payment, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM payments
		WHERE season_id = $1
		ORDER BY date DESC, created_at DESC
	`, paymentColumns)

	rows, err := r.conn.Query(ctx, query, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	return r.collectPayments(rows)
}

// GetByAthlete returns the payments of one athlete in a season, most recent
// first.
func (r *PaymentRepository) GetByAthlete(ctx context.Context, seasonID, athleteID string) ([]*payment.Payment, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM payments
		WHERE season_id = $1 AND athlete_id = $2
		ORDER BY date DESC, created_at DESC
	`, paymentColumns)

	rows, err := r.conn.Query(ctx, query, seasonID, athleteID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	return r.collectPayments(rows)
}

// Delete removes a payment.
func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.conn.Exec(ctx, "DELETE FROM payments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return shared.ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepository) collectPayments(rows pgx.Rows) ([]*payment.Payment, error) {
	var payments []*payment.Payment
	for rows.Next() {
		p := &payment.Payment{}
		var date time.Time
		if err := rows.Scan(&p.ID, &p.SeasonID, &p.AthleteID, &p.Amount, &date, &p.Note, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		p.Date = attendance.NewDate(date)
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
