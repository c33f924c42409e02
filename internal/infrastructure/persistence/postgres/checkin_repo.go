package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ripcamargo/daily-check-maromba/internal/domain/attendance"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CHECK-IN DAY REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// CheckinRepository implements attendance.Repository for PostgreSQL.
// Each row is one (season, date) document; the athlete marks live in a
// jsonb column with the same shape the domain serializes.
type CheckinRepository struct {
	conn *Connection
}

// NewCheckinRepository creates a new CheckinRepository.
func NewCheckinRepository(conn *Connection) *CheckinRepository {
	return &CheckinRepository{conn: conn}
}

// GetDayRecord returns the record of one date.
func (r *CheckinRepository) GetDayRecord(ctx context.Context, seasonID string, date attendance.Date) (*attendance.DayRecord, error) {
	query := `
		SELECT season_id, date, athletes, updated_at
		FROM checkin_days
		WHERE season_id = $1 AND date = $2
	`

	record, err := r.scanDayRecord(r.conn.QueryRow(ctx, query, seasonID, date.Time()))
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.NewDomainError("attendance", "GetDayRecord", shared.ErrNotFound,
				fmt.Sprintf("no check-in for %s", date))
		}
		return nil, fmt.Errorf("failed to get day record: %w", err)
	}
	return record, nil
}

// GetDayRecords returns the records of a season within [from, to].
// Empty bounds mean unbounded.
func (r *CheckinRepository) GetDayRecords(ctx context.Context, seasonID string, from, to attendance.Date) ([]*attendance.DayRecord, error) {
	query := `
		SELECT season_id, date, athletes, updated_at
		FROM checkin_days
		WHERE season_id = $1
		  AND ($2::date IS NULL OR date >= $2)
		  AND ($3::date IS NULL OR date <= $3)
		ORDER BY date
	`

	rows, err := r.conn.Query(ctx, query, seasonID, nullableDate(from), nullableDate(to))
	if err != nil {
		return nil, fmt.Errorf("failed to query day records: %w", err)
	}
	defer rows.Close()

	var records []*attendance.DayRecord
	for rows.Next() {
		record, err := r.scanDayRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan day record: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// PutDayRecord overwrites the full athlete map of one date.
func (r *CheckinRepository) PutDayRecord(ctx context.Context, seasonID string, record *attendance.DayRecord) error {
	query := `
		INSERT INTO checkin_days (season_id, date, athletes, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (season_id, date)
		DO UPDATE SET athletes = EXCLUDED.athletes, updated_at = EXCLUDED.updated_at
	`

	athletesJSON, err := json.Marshal(record.Athletes)
	if err != nil {
		return fmt.Errorf("failed to marshal athlete marks: %w", err)
	}

	updatedAt := record.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	if _, err := r.conn.Exec(ctx, query, seasonID, record.Date.Time(), athletesJSON, updatedAt); err != nil {
		return fmt.Errorf("failed to put day record: %w", err)
	}
	return nil
}

// rowScanner abstracts pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanDayRecord scans one check-in row.
func (r *CheckinRepository) scanDayRecord(row rowScanner) (*attendance.DayRecord, error) {
	var (
		record       attendance.DayRecord
		date         time.Time
		athletesJSON []byte
	)

	if err := row.Scan(&record.SeasonID, &date, &athletesJSON, &record.UpdatedAt); err != nil {
		return nil, err
	}

	record.Date = attendance.NewDate(date)
	record.Athletes = make(map[string]attendance.AthleteMark)
	if len(athletesJSON) > 0 {
		if err := json.Unmarshal(athletesJSON, &record.Athletes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal athlete marks: %w", err)
		}
	}

	return &record, nil
}

// nullableDate maps a zero Date to SQL NULL.
func nullableDate(d attendance.Date) interface{} {
	if d.IsZero() {
		return nil
	}
	return d.Time()
}
