// Package athlete contains the athlete directory entity. Consumed only for
// display and reporting; classification logic never depends on it.
package athlete

import (
	"context"
	"strings"
	"time"

	"github.com/ripcamargo/daily-check-maromba/internal/domain/shared"
)

// Athlete is a gym member tracked across seasons.
type Athlete struct {
	ID              string
	Name            string
	ExperienceLevel string
	PhotoRef        string
	CreatedAt       time.Time
}

// New creates a validated athlete.
func New(id, name, experienceLevel string) (*Athlete, error) {
	a := &Athlete{
		ID:              id,
		Name:            name,
		ExperienceLevel: experienceLevel,
		CreatedAt:       time.Now().UTC(),
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate checks the athlete invariants.
func (a *Athlete) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return shared.NewDomainError("athlete", "Validate", shared.ErrEmptyValue, "athlete name cannot be empty")
	}
	return nil
}

// Repository defines the storage contract for the athlete directory.
type Repository interface {
	// Create stores a new athlete.
	Create(ctx context.Context, athlete *Athlete) error

	// GetByID returns an athlete by ID.
	// Returns shared.ErrAthleteNotFound when absent.
	GetByID(ctx context.Context, id string) (*Athlete, error)

	// GetByIDs returns the athletes for the given IDs, skipping unknown ones.
	GetByIDs(ctx context.Context, ids []string) ([]*Athlete, error)

	// GetAll returns all athletes ordered by name.
	GetAll(ctx context.Context) ([]*Athlete, error)

	// Update overwrites athlete data.
	Update(ctx context.Context, athlete *Athlete) error

	// Delete removes an athlete.
	Delete(ctx context.Context, id string) error
}
