package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ripcamargo/daily-check-maromba/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATIONS
// ══════════════════════════════════════════════════════════════════════════════

// Migration represents a database migration.
type Migration struct {
	Version   int
	Name      string
	UpSQL     string
	DownSQL   string
	AppliedAt time.Time
	IsApplied bool
}

// Migrator handles database migrations.
type Migrator struct {
	conn       *Connection
	migrations []Migration
	tableName  string
	log        *logger.Logger
}

// NewMigrator creates a new migrator with the embedded migrations.
func NewMigrator(conn *Connection) *Migrator {
	return &Migrator{
		conn:       conn,
		migrations: GetMigrations(),
		tableName:  "schema_migrations",
		log:        logger.Default().With(logger.Component("migrator")),
	}
}

// EnsureMigrationTable creates the migration tracking table if it doesn't exist.
func (m *Migrator) EnsureMigrationTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)
	`, m.tableName)

	if _, err := m.conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// GetAppliedMigrations returns all applied migrations.
func (m *Migrator) GetAppliedMigrations(ctx context.Context) (map[int]time.Time, error) {
	query := fmt.Sprintf("SELECT version, applied_at FROM %s ORDER BY version", m.tableName)

	rows, err := m.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]time.Time)
	for rows.Next() {
		var version int
		var appliedAt time.Time
		if err := rows.Scan(&version, &appliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}
		applied[version] = appliedAt
	}

	return applied, rows.Err()
}

// Migrate applies all pending migrations, each in its own transaction.
func (m *Migrator) Migrate(ctx context.Context) error {
	if err := m.EnsureMigrationTable(ctx); err != nil {
		return err
	}

	applied, err := m.GetAppliedMigrations(ctx)
	if err != nil {
		return err
	}

	for _, mig := range m.migrations {
		if _, isApplied := applied[mig.Version]; isApplied {
			continue
		}

		if mig.UpSQL == "" {
			return fmt.Errorf("%w: missing up SQL for migration %d", ErrMigrationFailed, mig.Version)
		}

		err := m.conn.WithTx(ctx, DefaultTxOptions(), func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, mig.UpSQL); err != nil {
				return fmt.Errorf("failed to execute migration %d: %w", mig.Version, err)
			}

			insertQuery := fmt.Sprintf(
				"INSERT INTO %s (version, name) VALUES ($1, $2)",
				m.tableName,
			)
			_, err := tx.Exec(ctx, insertQuery, mig.Version, mig.Name)
			return err
		})
		if err != nil {
			return fmt.Errorf("%w: version %d: %v", ErrMigrationFailed, mig.Version, err)
		}

		m.log.Info("migration applied",
			logger.Int("version", mig.Version),
			logger.String("name", mig.Name),
		)
	}

	return nil
}

// Status returns the migration status.
func (m *Migrator) Status(ctx context.Context) ([]Migration, error) {
	if err := m.EnsureMigrationTable(ctx); err != nil {
		return nil, err
	}

	applied, err := m.GetAppliedMigrations(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]Migration, len(m.migrations))
	copy(result, m.migrations)

	for i := range result {
		if appliedAt, ok := applied[result[i].Version]; ok {
			result[i].IsApplied = true
			result[i].AppliedAt = appliedAt
		}
	}

	return result, nil
}

// GetMigrations returns all embedded migrations.
func GetMigrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_athletes",
			UpSQL:   migration001Up,
			DownSQL: migration001Down,
		},
		{
			Version: 2,
			Name:    "create_seasons",
			UpSQL:   migration002Up,
			DownSQL: migration002Down,
		},
		{
			Version: 3,
			Name:    "create_checkin_days",
			UpSQL:   migration003Up,
			DownSQL: migration003Down,
		},
		{
			Version: 4,
			Name:    "create_payments",
			UpSQL:   migration004Up,
			DownSQL: migration004Down,
		},
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// SCHEMA
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
CREATE TABLE IF NOT EXISTS athletes (
	id               UUID PRIMARY KEY,
	name             TEXT NOT NULL,
	experience_level TEXT NOT NULL DEFAULT '',
	photo_ref        TEXT NOT NULL DEFAULT '',
	created_at       TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_athletes_name ON athletes (name);
`

const migration001Down = `
DROP TABLE IF EXISTS athletes;
`

/// A política de classificação vive inteira na temporada, em jsonb: limite
// semanal, início da semana, dias de bônus, benefício, multa e dias neutros.
const migration002Up = `
CREATE TABLE IF NOT EXISTS seasons (
	id           UUID PRIMARY KEY,
	title        TEXT NOT NULL,
	start_date   DATE NOT NULL,
	end_date     DATE NOT NULL,
	policy       JSONB NOT NULL DEFAULT '{}'::jsonb,
	participants JSONB NOT NULL DEFAULT '[]'::jsonb,
	active       BOOLEAN NOT NULL DEFAULT FALSE,
	created_at   TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

	CONSTRAINT seasons_date_range CHECK (start_date <= end_date)
);

CREATE INDEX IF NOT EXISTS idx_seasons_active ON seasons (active) WHERE active;
`

const migration002Down = `
DROP TABLE IF EXISTS seasons;
`

// Um documento por (temporada, data). O mapa de atletas é sobrescrito por
// inteiro a cada gravação, nunca mesclado.
const migration003Up = `
CREATE TABLE IF NOT EXISTS checkin_days (
	season_id  UUID NOT NULL REFERENCES seasons (id) ON DELETE CASCADE,
	date       DATE NOT NULL,
	athletes   JSONB NOT NULL DEFAULT '{}'::jsonb,
	updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

	PRIMARY KEY (season_id, date)
);

CREATE INDEX IF NOT EXISTS idx_checkin_days_date ON checkin_days (date);
`

const migration003Down = `
DROP TABLE IF EXISTS checkin_days;
`

const migration004Up = `
CREATE TABLE IF NOT EXISTS payments (
	id         UUID PRIMARY KEY,
	season_id  UUID NOT NULL REFERENCES seasons (id) ON DELETE CASCADE,
	athlete_id UUID NOT NULL REFERENCES athletes (id) ON DELETE CASCADE,
	amount     NUMERIC(10, 2) NOT NULL CHECK (amount > 0),
	date       DATE NOT NULL,
	note       TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_payments_season ON payments (season_id);
CREATE INDEX IF NOT EXISTS idx_payments_athlete ON payments (season_id, athlete_id);
`

const migration004Down = `
DROP TABLE IF EXISTS payments;
`
