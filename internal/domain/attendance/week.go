package attendance

// ══════════════════════════════════════════════════════════════════════════════
// JANELA SEMANAL
// ══════════════════════════════════════════════════════════════════════════════

// WeekBounds resolve a janela semanal que contém date, para qualquer dia de
// início de semana (0=domingo ... 6=sábado). O início é a ocorrência mais
// recente do dia weekStartsOn igual ou anterior a date, com wraparound
// correto quando o dia da semana de date é menor que weekStartsOn; o fim é
// sempre início + 6 dias. Intervalo inclusivo nas duas pontas.
func WeekBounds(date Date, weekStartsOn int) (start, end Date) {
	diff := (date.Weekday() - weekStartsOn + 7) % 7
	start = date.AddDays(-diff)
	end = start.AddDays(6)
	return start, end
}

// SameWeek verifica se duas datas caem na mesma janela semanal.
func SameWeek(a, b Date, weekStartsOn int) bool {
	startA, _ := WeekBounds(a, weekStartsOn)
	startB, _ := WeekBounds(b, weekStartsOn)
	return startA == startB
}
