package attendance

import (
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROCESSADOR DO DIA
// ══════════════════════════════════════════════════════════════════════════════

// ProcessDay classifica as marcações brutas de um dia inteiro e monta o
// registro pronto para persistir.
//
// weekRecords são os registros já persistidos da temporada na janela semanal
// de date (buscados pelo orquestrador; o processador não faz I/O). O recorte
// relevante - mesma semana, estritamente anteriores a date - é feito aqui,
// então passar a semana inteira é seguro.
//
// Para cada atleta: marcação NotSet é emitida direto, sem contagem de
// ausências; as demais passam pelo contador semanal e pela tabela de
// decisão. Idempotente: mesmas entradas e mesmo histórico produzem sempre o
// mesmo resultado (fora o UpdatedAt, que é carimbo de gravação).
func ProcessDay(policy Policy, seasonID string, date Date, rawMarks map[string]RawStatus, weekRecords []*DayRecord) (*DayRecord, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	weekStart, weekEnd := WeekBounds(date, policy.WeekStartsOn)
	isBonusDate := policy.IsBonusDate(date)

	// Só registros da mesma semana, estritamente antes do dia classificado.
	prior := make([]*DayRecord, 0, len(weekRecords))
	for _, r := range weekRecords {
		if r.Date.Before(weekStart) || r.Date.After(weekEnd) {
			continue
		}
		if !r.Date.Before(date) {
			continue
		}
		prior = append(prior, r)
	}

	record := &DayRecord{
		SeasonID:  seasonID,
		Date:      date,
		Athletes:  make(map[string]AthleteMark, len(rawMarks)),
		UpdatedAt: time.Now().UTC(),
	}

	for athleteID, raw := range rawMarks {
		if raw == RawNotSet {
			record.Athletes[athleteID] = AthleteMark{Status: StatusNotSet}
			continue
		}

		priorAbsences := CountWeeklyAbsences(prior, athleteID, policy.BonusDates)
		final := Classify(raw, isBonusDate, priorAbsences, policy.WeeklyRestLimit)

		record.Athletes[athleteID] = AthleteMark{
			Status:         final,
			OriginalStatus: raw,
		}
	}

	return record, nil
}
