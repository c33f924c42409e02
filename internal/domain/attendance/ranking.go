package attendance

import "sort"

// ══════════════════════════════════════════════════════════════════════════════
// RANKING
// ══════════════════════════════════════════════════════════════════════════════

// Standing é a posição de um atleta no ranking: identificação + estatísticas.
type Standing struct {
	AthleteID string `json:"athleteId"`
	Name      string `json:"name"`
	Stats     Stats  `json:"stats"`
}

// RankAthletes ordena os atletas pelo ranking principal, aplicando os
// critérios de desempate em ordem estrita:
//
//  1. mais presenças primeiro;
//  2. empate → menos faltas primeiro;
//  3. empate → menos folgas primeiro;
//  4. empate → menos justificadas primeiro;
//  5. empate → menos hospital primeiro;
//  6. empate total → ordem original preservada (ordenação estável).
//
// Retorna uma nova fatia; a entrada não é mutada.
func RankAthletes(standings []Standing) []Standing {
	ranked := make([]Standing, len(standings))
	copy(ranked, standings)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].Stats, ranked[j].Stats
		if a.Present != b.Present {
			return a.Present > b.Present
		}
		if a.Absence != b.Absence {
			return a.Absence < b.Absence
		}
		if a.Rest != b.Rest {
			return a.Rest < b.Rest
		}
		if a.Justified != b.Justified {
			return a.Justified < b.Justified
		}
		if a.Hospital != b.Hospital {
			return a.Hospital < b.Hospital
		}
		return false
	})

	return ranked
}

// AthletePosition retorna a posição (1-based) do atleta no ranking
// principal, ou 0 se o atleta não está na lista.
func AthletePosition(athleteID string, standings []Standing) int {
	ranked := RankAthletes(standings)
	for i, s := range ranked {
		if s.AthleteID == athleteID {
			return i + 1
		}
	}
	return 0
}

// Rankings secundários: ordenações descendentes de chave única,
// independentes do comparador principal. Todas estáveis e sem mutar a
// entrada.

// ByMostRest ordena por quem mais descansou.
func ByMostRest(standings []Standing) []Standing {
	return sortByKeyDesc(standings, func(s Stats) int { return s.Rest })
}

// ByMostAbsence ordena por quem mais faltou.
func ByMostAbsence(standings []Standing) []Standing {
	return sortByKeyDesc(standings, func(s Stats) int { return s.Absence })
}

// ByMostHospital ordena por quem mais foi ao hospital.
func ByMostHospital(standings []Standing) []Standing {
	return sortByKeyDesc(standings, func(s Stats) int { return s.Hospital })
}

// ByMostExtra ordena por quem mais fez extras.
func ByMostExtra(standings []Standing) []Standing {
	return sortByKeyDesc(standings, func(s Stats) int { return s.Extra })
}

func sortByKeyDesc(standings []Standing, key func(Stats) int) []Standing {
	sorted := make([]Standing, len(standings))
	copy(sorted, standings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return key(sorted[i].Stats) > key(sorted[j].Stats)
	})
	return sorted
}
