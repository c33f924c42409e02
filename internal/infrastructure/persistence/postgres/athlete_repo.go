package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ripcamargo/daily-check-maromba/internal/domain/athlete"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ATHLETE REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// AthleteRepository implements athlete.Repository for PostgreSQL.
type AthleteRepository struct {
	conn *Connection
}

// NewAthleteRepository creates a new AthleteRepository.
func NewAthleteRepository(conn *Connection) *AthleteRepository {
	return &AthleteRepository{conn: conn}
}

const athleteColumns = `id, name, experience_level, photo_ref, created_at`

// Create stores a new athlete.
func (r *AthleteRepository) Create(ctx context.Context, a *athlete.Athlete) error {
	query := `
		INSERT INTO athletes (id, name, experience_level, photo_ref, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.conn.Exec(ctx, query, a.ID, a.Name, a.ExperienceLevel, a.PhotoRef, a.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.NewDomainError("athlete", "Create", shared.ErrAlreadyExists,
				fmt.Sprintf("athlete %s already exists", a.ID))
		}
		return fmt.Errorf("failed to create athlete: %w", err)
	}
	return nil
}

// GetByID returns an athlete by ID.
func (r *AthleteRepository) GetByID(ctx context.Context, id string) (*athlete.Athlete, error) {
	query := fmt.Sprintf("SELECT %s FROM athletes WHERE id = $1", athleteColumns)

	a, err := r.scanAthlete(r.conn.QueryRow(ctx, query, id))
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrAthleteNotFound
		}
		return nil, fmt.Errorf("failed to get athlete: %w", err)
	}
	return a, nil
}

// GetByIDs returns the athletes for the given IDs, skipping unknown ones.
func (r *AthleteRepository) GetByIDs(ctx context.Context, ids []string) ([]*athlete.Athlete, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf("SELECT %s FROM athletes WHERE id = ANY($1)", athleteColumns)

	rows, err := r.conn.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query athletes: %w", err)
	}
	defer rows.Close()

	return r.collectAthletes(rows)
}

// GetAll returns all athletes ordered by name.
func (r *AthleteRepository) GetAll(ctx context.Context) ([]*athlete.Athlete, error) {
	query := fmt.Sprintf("SELECT %s FROM athletes ORDER BY name", athleteColumns)

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query athletes: %w", err)
	}
	defer rows.Close()

	return r.collectAthletes(rows)
}

// Update overwrites athlete data.
func (r *AthleteRepository) Update(ctx context.Context, a *athlete.Athlete) error {
	query := `
		UPDATE athletes SET name = $1, experience_level = $2, photo_ref = $3
		WHERE id = $4
	`

	result, err := r.conn.Exec(ctx, query, a.Name, a.ExperienceLevel, a.PhotoRef, a.ID)
	if err != nil {
		return fmt.Errorf("failed to update athlete: %w", err)
	}
	if result.RowsAffected() == 0 {
		return shared.ErrAthleteNotFound
	}
	return nil
}

// Delete removes an athlete.
func (r *AthleteRepository) Delete(ctx context.Context, id string) error {
	result, err := r.conn.Exec(ctx, "DELETE FROM athletes WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete athlete: %w", err)
	}
	if result.RowsAffected() == 0 {
		return shared.ErrAthleteNotFound
	}
	return nil
}

func (r *AthleteRepository) scanAthlete(row rowScanner) (*athlete.Athlete, error) {
	a := &athlete.Athlete{}
	if err := row.Scan(&a.ID, &a.Name, &a.ExperienceLevel, &a.PhotoRef, &a.CreatedAt); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AthleteRepository) collectAthletes(rows pgx.Rows) ([]*athlete.Athlete, error) {
	var athletes []*athlete.Athlete
	for rows.Next() {
		a, err := r.scanAthlete(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan athlete: %w", err)
		}
		athletes = append(athletes, a)
	}
	return athletes, rows.Err()
}
