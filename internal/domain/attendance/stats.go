package attendance

import "math"

// ══════════════════════════════════════════════════════════════════════════════
// ESTATÍSTICAS DO ATLETA
// ══════════════════════════════════════════════════════════════════════════════

// Stats são os contadores de status derivados de um atleta em um intervalo.
// Efêmeras por definição: sempre recalculadas a partir dos registros,
// nunca persistidas.
type Stats struct {
	Present   int `json:"present"`
	Rest      int `json:"rest"`
	Absence   int `json:"absence"`
	Hospital  int `json:"hospital"`
	Justified int `json:"justified"`
	Extra     int `json:"extra"`
	NotSet    int `json:"notSet"`
}

// ClassifiedDays retorna o total de dias com marcação efetiva (sem NotSet).
func (s Stats) ClassifiedDays() int {
	return s.Present + s.Rest + s.Absence + s.Hospital + s.Justified
}

// ComputeStats conta as ocorrências de cada status derivado do atleta nos
// registros recebidos e aplica o benefício da temporada.
//
// Extra incrementa extra E present: um dia extra continua sendo presença.
//
// Com vale-folga ativo, cada estrela anula uma falta: min(extra, absence)
// faltas viram folgas. As estrelas não são consumidas - só o efeito delas é
// aplicado, uma única vez, depois da contagem bruta (nunca intercalado com
// a classificação).
//
// Registros de dias neutros devem ser removidos ANTES, via
// FilterNeutralDays - a exclusão nunca acontece aqui dentro.
func ComputeStats(records []*DayRecord, athleteID string, benefit BonusBenefit) Stats {
	var stats Stats

	for _, record := range records {
		mark, ok := record.Mark(athleteID)
		if !ok {
			continue
		}

		switch mark.Status {
		case StatusPresent:
			stats.Present++
		case StatusRest:
			stats.Rest++
		case StatusAbsence:
			stats.Absence++
		case StatusHospital:
			stats.Hospital++
		case StatusJustified:
			stats.Justified++
		case StatusExtra:
			stats.Extra++
			stats.Present++
		default:
			stats.NotSet++
		}
	}

	if benefit == BenefitValeFolga && stats.Extra > 0 && stats.Absence > 0 {
		used := stats.Extra
		if stats.Absence < used {
			used = stats.Absence
		}
		stats.Absence -= used
		stats.Rest += used
	}

	return stats
}

// ══════════════════════════════════════════════════════════════════════════════
// MULTAS
// ══════════════════════════════════════════════════════════════════════════════

// Fine é o resultado do cálculo de multa de um atleta.
type Fine struct {
	TotalAbsences int     `json:"totalAbsences"`
	Amount        float64 `json:"fineAmount"`
}

// ComputeFine calcula a multa a partir das estatísticas já agregadas.
// As stats já refletem o vale-folga e a exclusão de dias neutros; aqui é
// só faltas vezes valor, nunca negativo.
func ComputeFine(stats Stats, finePerAbsence float64) Fine {
	amount := float64(stats.Absence) * finePerAbsence
	if amount < 0 {
		amount = 0
	}
	return Fine{
		TotalAbsences: stats.Absence,
		Amount:        amount,
	}
}

// Debt calcula o saldo devedor: total devido menos total pago, nunca
// negativo.
func Debt(totalOwed, totalPaid float64) float64 {
	return math.Max(0, totalOwed-totalPaid)
}

// ══════════════════════════════════════════════════════════════════════════════
// MÉTRICAS DE DESEMPENHO
// ══════════════════════════════════════════════════════════════════════════════

// AttendanceRate retorna a taxa de presença (0-100) sobre o total de dias.
func AttendanceRate(stats Stats, totalDays int) float64 {
	if totalDays == 0 {
		return 0
	}
	return float64(stats.Present) / float64(totalDays) * 100
}

// Pontos por status para a pontuação total.
const (
	pointsPresent = 10
	pointsExtra   = 15
	pointsAbsence = -5
)

// TotalPoints calcula a pontuação ponderada do atleta.
func TotalPoints(stats Stats) int {
	return stats.Present*pointsPresent +
		stats.Extra*pointsExtra +
		stats.Absence*pointsAbsence
}

// PerformanceLevel classifica a taxa de presença em uma faixa de desempenho.
func PerformanceLevel(rate float64) string {
	switch {
	case rate >= 90:
		return "Excelente"
	case rate >= 75:
		return "Muito Bom"
	case rate >= 60:
		return "Bom"
	case rate >= 50:
		return "Regular"
	default:
		return "Precisa Melhorar"
	}
}
