package attendance

// ══════════════════════════════════════════════════════════════════════════════
// CONTADOR DE AUSÊNCIAS SEMANAIS
// ══════════════════════════════════════════════════════════════════════════════

// CountWeeklyAbsences conta as ausências de um atleta nos registros
// recebidos, que devem ser da mesma janela semanal e estritamente anteriores
// ao dia sendo classificado (o processador faz esse recorte).
//
// Datas bônus são puladas: nunca contam no limite de folgas, qualquer que
// seja o status. Para cada registro restante vale o status ORIGINAL do
// atleta (com fallback no derivado, para registros antigos), e só ausência
// direta conta - hospital e justificado não.
//
// Função pura: não muta os registros recebidos.
func CountWeeklyAbsences(records []*DayRecord, athleteID string, bonusDates DateSet) int {
	count := 0
	for _, record := range records {
		if bonusDates.Contains(record.Date) {
			continue
		}
		mark, ok := record.Mark(athleteID)
		if !ok {
			continue
		}
		if mark.Raw() == RawAbsent {
			count++
		}
	}
	return count
}
