package attendance

import (
	"context"
	"sort"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// REGISTRO DO DIA
// ══════════════════════════════════════════════════════════════════════════════

// AthleteMark é a marcação de um atleta em um dia, já classificada.
// OriginalStatus preserva o que o usuário marcou, para que o dia possa ser
// reeditado ou reprocessado sem perder a intenção original.
type AthleteMark struct {
	Status         DerivedStatus `json:"status"`
	OriginalStatus RawStatus     `json:"originalStatus,omitempty"`
}

// Raw retorna o status bruto da marcação: o original quando existe, senão
// o recuperado do status derivado (registros antigos da migração).
func (m AthleteMark) Raw() RawStatus {
	if m.OriginalStatus != "" {
		return m.OriginalStatus
	}
	return RawFromLegacy(m.Status)
}

// DayRecord é o registro persistido de um dia de check-in: um documento por
// (temporada, data), com o mapa de marcações por atleta. Criado ou
// sobrescrito por inteiro pelo processador do dia.
type DayRecord struct {
	SeasonID  string                 `json:"seasonId"`
	Date      Date                   `json:"date"`
	Athletes  map[string]AthleteMark `json:"athletes"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// Mark retorna a marcação de um atleta no dia, se existir.
func (r *DayRecord) Mark(athleteID string) (AthleteMark, bool) {
	m, ok := r.Athletes[athleteID]
	return m, ok
}

// Clone cria uma cópia profunda do registro.
func (r *DayRecord) Clone() *DayRecord {
	if r == nil {
		return nil
	}
	clone := *r
	clone.Athletes = make(map[string]AthleteMark, len(r.Athletes))
	for id, m := range r.Athletes {
		clone.Athletes[id] = m
	}
	return &clone
}

// SortByDate ordena registros por data crescente (ordem ISO).
// Ordenação estável e in-place.
func SortByDate(records []*DayRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.Before(records[j].Date)
	})
}

// FilterNeutralDays remove os registros cuja data é dia neutro.
// A exclusão acontece aqui, antes do cálculo de estatísticas - nunca dentro
// do cálculo de multa.
func FilterNeutralDays(records []*DayRecord, neutralDays DateSet) []*DayRecord {
	if len(neutralDays) == 0 {
		return records
	}
	filtered := make([]*DayRecord, 0, len(records))
	for _, r := range records {
		if neutralDays.Contains(r.Date) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

// ══════════════════════════════════════════════════════════════════════════════
// INTERFACE DE ARMAZENAMENTO
// ══════════════════════════════════════════════════════════════════════════════

// Repository define o contrato de armazenamento dos registros de check-in.
// A implementação fica em infrastructure/persistence; o motor nunca faz I/O.
type Repository interface {
	// GetDayRecord busca o registro de uma data. Retorna erro NotFound se
	// o dia ainda não foi registrado.
	GetDayRecord(ctx context.Context, seasonID string, date Date) (*DayRecord, error)

	// GetDayRecords busca os registros da temporada dentro do intervalo
	// [from, to], inclusivo. Datas vazias significam sem limite. A ordem
	// não é garantida; quem precisa de ordem usa SortByDate.
	GetDayRecords(ctx context.Context, seasonID string, from, to Date) ([]*DayRecord, error)

	// PutDayRecord grava o registro de um dia, sobrescrevendo por completo
	// o mapa de atletas daquela data (nunca merge).
	PutDayRecord(ctx context.Context, seasonID string, record *DayRecord) error
}
