package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ripcamargo/daily-check-maromba/internal/domain/attendance"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/season"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// SEASON REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// SeasonRepository implements season.Repository for PostgreSQL.
type SeasonRepository struct {
	conn *Connection
}

// NewSeasonRepository creates a new SeasonRepository.
func NewSeasonRepository(conn *Connection) *SeasonRepository {
	return &SeasonRepository{conn: conn}
}

const seasonColumns = `id, title, start_date, end_date, policy, participants, active, created_at`

// Create creates a new season.
func (r *SeasonRepository) Create(ctx context.Context, s *season.Season) error {
	query := `
		INSERT INTO seasons (id, title, start_date, end_date, policy, participants, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	policyJSON, participantsJSON, err := marshalSeason(s)
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(ctx, query,
		s.ID,
		s.Title,
		s.StartDate.Time(),
		s.EndDate.Time(),
		policyJSON,
		participantsJSON,
		s.Active,
		s.CreatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.NewDomainError("season", "Create", shared.ErrAlreadyExists,
				fmt.Sprintf("season %s already exists", s.ID))
		}
		return fmt.Errorf("failed to create season: %w", err)
	}
	return nil
}

// GetByID returns a season by ID.
func (r *SeasonRepository) GetByID(ctx context.Context, id string) (*season.Season, error) {
	query := fmt.Sprintf("SELECT %s FROM seasons WHERE id = $1", seasonColumns)

	s, err := r.scanSeason(r.conn.QueryRow(ctx, query, id))
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrSeasonNotFound
		}
		return nil, fmt.Errorf("failed to get season: %w", err)
	}
	return s, nil
}

// GetActive returns the active season. With more than one active, the most
// recently started wins.
func (r *SeasonRepository) GetActive(ctx context.Context) (*season.Season, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM seasons
		WHERE active
		ORDER BY start_date DESC
		LIMIT 1
	`, seasonColumns)

	s, err := r.scanSeason(r.conn.QueryRow(ctx, query))
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrNoActiveSeason
		}
		return nil, fmt.Errorf("failed to get active season: %w", err)
	}
	return s, nil
}

// GetAll returns all seasons, most recent first.
func (r *SeasonRepository) GetAll(ctx context.Context) ([]*season.Season, error) {
	query := fmt.Sprintf("SELECT %s FROM seasons ORDER BY start_date DESC", seasonColumns)

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query seasons: %w", err)
	}
	defer rows.Close()

	var seasons []*season.Season
	for rows.Next() {
		s, err := r.scanSeason(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan season: %w", err)
		}
		seasons = append(seasons, s)
	}
	return seasons, rows.Err()
}

// Update overwrites season data.
func (r *SeasonRepository) Update(ctx context.Context, s *season.Season) error {
	query := `
		UPDATE seasons SET
			title = $1,
			start_date = $2,
			end_date = $3,
			policy = $4,
			participants = $5,
			active = $6
		WHERE id = $7
	`

	policyJSON, participantsJSON, err := marshalSeason(s)
	if err != nil {
		return err
	}

	result, err := r.conn.Exec(ctx, query,
		s.Title,
		s.StartDate.Time(),
		s.EndDate.Time(),
		policyJSON,
		participantsJSON,
		s.Active,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update season: %w", err)
	}
	if result.RowsAffected() == 0 {
		return shared.ErrSeasonNotFound
	}
	return nil
}

// Delete removes a season and, by cascade, its check-in days and payments.
func (r *SeasonRepository) Delete(ctx context.Context, id string) error {
	result, err := r.conn.Exec(ctx, "DELETE FROM seasons WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete season: %w", err)
	}
	if result.RowsAffected() == 0 {
		return shared.ErrSeasonNotFound
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Serialization
// ─────────────────────────────────────────────────────────────────────────────

// policyDoc is the jsonb shape of the classification policy. DateSet maps
// become sorted arrays so the stored document stays diffable.
type policyDoc struct {
	WeeklyRestLimit int      `json:"weeklyRestLimit"`
	WeekStartsOn    int      `json:"weekStartsOn"`
	BonusDates      []string `json:"bonusDates,omitempty"`
	BonusBenefit    string   `json:"bonusBenefit,omitempty"`
	FinePerAbsence  float64  `json:"finePerAbsence,omitempty"`
	NeutralDays     []string `json:"neutralDays,omitempty"`
}

func toPolicyDoc(p attendance.Policy) policyDoc {
	return policyDoc{
		WeeklyRestLimit: p.WeeklyRestLimit,
		WeekStartsOn:    p.WeekStartsOn,
		BonusDates:      dateStrings(p.BonusDates),
		BonusBenefit:    string(p.BonusBenefit),
		FinePerAbsence:  p.FinePerAbsence,
		NeutralDays:     dateStrings(p.NeutralDays),
	}
}

func (d policyDoc) toPolicy() attendance.Policy {
	benefit := attendance.BonusBenefit(d.BonusBenefit)
	if benefit == "" {
		benefit = attendance.BenefitNone
	}
	return attendance.Policy{
		WeeklyRestLimit: d.WeeklyRestLimit,
		WeekStartsOn:    d.WeekStartsOn,
		BonusDates:      toDateSet(d.BonusDates),
		BonusBenefit:    benefit,
		FinePerAbsence:  d.FinePerAbsence,
		NeutralDays:     toDateSet(d.NeutralDays),
	}
}

func dateStrings(set attendance.DateSet) []string {
	dates := set.Dates()
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.String()
	}
	return out
}

func toDateSet(dates []string) attendance.DateSet {
	set := make(attendance.DateSet, len(dates))
	for _, d := range dates {
		set.Add(attendance.Date(d))
	}
	return set
}

func marshalSeason(s *season.Season) (policyJSON, participantsJSON []byte, err error) {
	policyJSON, err = json.Marshal(toPolicyDoc(s.Policy))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal policy: %w", err)
	}

	participants := s.Participants
	if participants == nil {
		participants = []string{}
	}
	participantsJSON, err = json.Marshal(participants)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal participants: %w", err)
	}
	return policyJSON, participantsJSON, nil
}

// scanSeason scans one season row.
func (r *SeasonRepository) scanSeason(row rowScanner) (*season.Season, error) {
	var (
		startDate        time.Time
		endDate          time.Time
		policyJSON       []byte
		participantsJSON []byte
	)

	result := &season.Season{}
	if err := row.Scan(
		&result.ID,
		&result.Title,
		&startDate,
		&endDate,
		&policyJSON,
		&participantsJSON,
		&result.Active,
		&result.CreatedAt,
	); err != nil {
		return nil, err
	}

	result.StartDate = attendance.NewDate(startDate)
	result.EndDate = attendance.NewDate(endDate)

	var doc policyDoc
	if err := json.Unmarshal(policyJSON, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal policy: %w", err)
	}
	result.Policy = doc.toPolicy()

	if err := json.Unmarshal(participantsJSON, &result.Participants); err != nil {
		return nil, fmt.Errorf("failed to unmarshal participants: %w", err)
	}

	return result, nil
}
