package attendance

// ══════════════════════════════════════════════════════════════════════════════
// CLASSIFICADOR DO DIA
// ══════════════════════════════════════════════════════════════════════════════

// Classify deriva o status final de um dia a partir do status bruto e do
// contexto (data bônus, ausências anteriores na semana, limite semanal).
//
// Tabela de decisão pura, avaliada exatamente nesta ordem:
//
//  1. Presente em data bônus       → Extra
//  2. Presente                     → Present
//  3. Hospital ou Justificado      → passa direto, mesmo em data bônus
//  4. Ausente em data bônus        → Rest (nunca penaliza)
//  5. Ausente em dia normal        → conta a ausência de hoje junto:
//     anteriores+1 ≤ limite → Rest, senão → Absence
//  6. Não marcado (ou desconhecido) → NotSet
//
// A ordem importa: hospital/justificado vencem a lógica de data bônus, e
// presente+bônus é verificado antes de presente normal.
func Classify(raw RawStatus, isBonusDate bool, priorAbsencesInWeek, weeklyRestLimit int) DerivedStatus {
	if raw == RawPresent && isBonusDate {
		return StatusExtra
	}

	if raw == RawPresent {
		return StatusPresent
	}

	if raw == RawHospital {
		return StatusHospital
	}
	if raw == RawJustified {
		return StatusJustified
	}

	if raw == RawAbsent && isBonusDate {
		return StatusRest
	}

	if raw == RawAbsent {
		total := priorAbsencesInWeek + 1 // inclui a ausência de hoje
		if total <= weeklyRestLimit {
			return StatusRest
		}
		return StatusAbsence
	}

	return StatusNotSet
}
