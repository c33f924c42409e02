package attendance

import (
	"context"
	"fmt"

	"github.com/ripcamargo/daily-check-maromba/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPROCESSADOR DA TEMPORADA
// ══════════════════════════════════════════════════════════════════════════════

// ReprocessError embrulha a falha de um dia durante o reprocessamento,
// com a data do dia que falhou e a última data processada com sucesso,
// para que o operador possa retomar dali.
type ReprocessError struct {
	Date     Date
	LastGood Date
	Err      error
}

// Error implementa a interface error.
func (e *ReprocessError) Error() string {
	if e.LastGood.IsZero() {
		return fmt.Sprintf("attendance.Reprocess: day %s failed (no day completed): %v", e.Date, e.Err)
	}
	return fmt.Sprintf("attendance.Reprocess: day %s failed (last good day %s): %v", e.Date, e.LastGood, e.Err)
}

// Unwrap retorna o erro original.
func (e *ReprocessError) Unwrap() error {
	return e.Err
}

// Is casa com shared.ErrReprocessing via errors.Is().
func (e *ReprocessError) Is(target error) bool {
	return target == shared.ErrReprocessing
}

// Reprocess reexecuta a classificação sobre todo o histórico da temporada,
// em ordem cronológica, e entrega cada dia reclassificado ao callback yield
// assim que fica pronto - a temporada inteira nunca precisa ser
// materializada antes de o chamador começar a persistir.
//
// O replay é autoconsistente: as ausências anteriores de cada dia vêm dos
// registros JÁ REPROCESSADOS desta mesma passada, não dos registros velhos -
// uma mudança no limite semanal muda a classificação, que muda o que conta
// como ausência anterior nos dias seguintes da mesma semana. A entrada bruta
// de cada atleta é sempre o status original guardado (nunca o derivado
// anterior), preservando a intenção do usuário entre reprocessamentos.
//
// Dias são processados estritamente em sequência (dias posteriores dependem
// causalmente dos anteriores na mesma semana). O contexto é checado uma vez
// por dia: um reprocessamento de temporada inteira pode ser longo, e o
// progresso já entregue continua válido após o cancelamento.
//
// Qualquer falha aborta a passada (fail-fast, sem commit parcial aqui) com
// ReprocessError carregando a data ofensora.
func Reprocess(ctx context.Context, policy Policy, seasonID string, records []*DayRecord, yield func(*DayRecord) error) error {
	if err := policy.Validate(); err != nil {
		return err
	}

	ordered := make([]*DayRecord, len(records))
	copy(ordered, records)
	SortByDate(ordered)

	reprocessed := make([]*DayRecord, 0, len(ordered))
	var lastGood Date

	for _, stored := range ordered {
		if err := ctx.Err(); err != nil {
			return &ReprocessError{Date: stored.Date, LastGood: lastGood, Err: err}
		}

		// Entrada bruta a partir do que o usuário marcou, com migração de
		// registros antigos sem status original.
		rawMarks := make(map[string]RawStatus, len(stored.Athletes))
		for athleteID, mark := range stored.Athletes {
			rawMarks[athleteID] = mark.Raw()
		}

		weekStart, weekEnd := WeekBounds(stored.Date, policy.WeekStartsOn)
		week := make([]*DayRecord, 0, 7)
		for i := len(reprocessed) - 1; i >= 0; i-- {
			r := reprocessed[i]
			if r.Date.Before(weekStart) {
				break
			}
			if !r.Date.After(weekEnd) {
				week = append(week, r)
			}
		}

		record, err := ProcessDay(policy, seasonID, stored.Date, rawMarks, week)
		if err != nil {
			return &ReprocessError{Date: stored.Date, LastGood: lastGood, Err: err}
		}

		if err := yield(record); err != nil {
			return &ReprocessError{Date: stored.Date, LastGood: lastGood, Err: err}
		}

		reprocessed = append(reprocessed, record)
		lastGood = record.Date
	}

	return nil
}
