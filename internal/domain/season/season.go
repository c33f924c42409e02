// Package season contém a temporada do Daily Check Maromba: um intervalo de
// datas com política própria de classificação e elenco de participantes.
package season

import (
	"context"
	"strings"
	"time"

	"github.com/ripcamargo/daily-check-maromba/internal/domain/attendance"
	"github.com/ripcamargo/daily-check-maromba/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// TEMPORADA
// ══════════════════════════════════════════════════════════════════════════════

// Season é uma temporada de treinos: intervalo de datas, política de
// classificação e participantes. A política é somente leitura para o motor
// de classificação - mutável apenas pela configuração do admin, e toda
// mudança de política pede reprocessamento do histórico.
type Season struct {
	ID        string
	Title     string
	StartDate attendance.Date
	EndDate   attendance.Date
	Policy    attendance.Policy

	// Participants são os IDs dos atletas inscritos na temporada.
	Participants []string

	Active    bool
	CreatedAt time.Time
}

// Erros de validação da temporada.
var (
	ErrEmptyTitle = shared.NewDomainError("season", "Validate", shared.ErrEmptyValue, "season title cannot be empty")
	ErrBadDates   = shared.ErrInvalidDateRange
)

// New cria uma temporada validada.
func New(id, title string, start, end attendance.Date, policy attendance.Policy) (*Season, error) {
	s := &Season{
		ID:        id,
		Title:     title,
		StartDate: start,
		EndDate:   end,
		Policy:    policy,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate verifica os invariantes da temporada: título, intervalo de datas
// e política de classificação completa.
func (s *Season) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return ErrEmptyTitle
	}
	if !s.StartDate.IsValid() || !s.EndDate.IsValid() {
		return shared.NewDomainError("season", "Validate", shared.ErrInvalidFormat, "season dates must be yyyy-mm-dd")
	}
	if s.StartDate.After(s.EndDate) {
		return ErrBadDates
	}
	return s.Policy.Validate()
}

// ContainsDate verifica se a data cai dentro da temporada.
func (s *Season) ContainsDate(d attendance.Date) bool {
	return !d.Before(s.StartDate) && !d.After(s.EndDate)
}

// Dates gera todas as datas da temporada, em ordem crescente.
func (s *Season) Dates() []attendance.Date {
	return attendance.DatesBetween(s.StartDate, s.EndDate)
}

// HasParticipant verifica se o atleta participa da temporada.
func (s *Season) HasParticipant(athleteID string) bool {
	for _, id := range s.Participants {
		if id == athleteID {
			return true
		}
	}
	return false
}

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITÓRIO
// ══════════════════════════════════════════════════════════════════════════════

// Repository define o contrato de armazenamento de temporadas.
type Repository interface {
	// Create cria uma temporada nova.
	Create(ctx context.Context, season *Season) error

	// GetByID busca uma temporada. Retorna shared.ErrSeasonNotFound se
	// não existir.
	GetByID(ctx context.Context, id string) (*Season, error)

	// GetActive busca a temporada ativa. Havendo mais de uma, vale a de
	// início mais recente. Retorna shared.ErrNoActiveSeason se nenhuma.
	GetActive(ctx context.Context) (*Season, error)

	// GetAll lista todas as temporadas, mais recentes primeiro.
	GetAll(ctx context.Context) ([]*Season, error)

	// Update sobrescreve os dados da temporada.
	Update(ctx context.Context, season *Season) error

	// Delete remove uma temporada.
	Delete(ctx context.Context, id string) error
}
