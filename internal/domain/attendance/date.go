package attendance

import (
	"fmt"
	"sort"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// DATA CIVIL
// ══════════════════════════════════════════════════════════════════════════════

// Date é uma data de calendário no formato ISO (yyyy-mm-dd), sem hora e sem
// fuso. A ordenação lexicográfica coincide com a cronológica, então datas
// podem ser comparadas e ordenadas como strings - exatamente como os
// registros são indexados no armazenamento.
type Date string

const dateLayout = "2006-01-02"

// NewDate cria uma Date a partir de um time.Time (descarta hora e fuso).
func NewDate(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

// MakeDate cria uma Date a partir de ano, mês e dia.
func MakeDate(year int, month time.Month, day int) Date {
	return NewDate(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDate valida e converte uma string yyyy-mm-dd em Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", fmt.Errorf("attendance: invalid date %q: %w", s, err)
	}
	return NewDate(t), nil
}

// IsValid verifica se a data está no formato correto.
func (d Date) IsValid() bool {
	_, err := time.Parse(dateLayout, string(d))
	return err == nil
}

// IsZero retorna true se a data está vazia.
func (d Date) IsZero() bool {
	return d == ""
}

// Time converte a data em time.Time (meia-noite UTC).
func (d Date) Time() time.Time {
	t, _ := time.Parse(dateLayout, string(d))
	return t
}

// Weekday retorna o dia da semana (0=domingo ... 6=sábado).
func (d Date) Weekday() int {
	return int(d.Time().Weekday())
}

// AddDays retorna a data deslocada em n dias.
func (d Date) AddDays(n int) Date {
	return NewDate(d.Time().AddDate(0, 0, n))
}

// Before retorna true se d é anterior a other.
func (d Date) Before(other Date) bool {
	return string(d) < string(other)
}

// After retorna true se d é posterior a other.
func (d Date) After(other Date) bool {
	return string(d) > string(other)
}

// String retorna a data no formato yyyy-mm-dd.
func (d Date) String() string {
	return string(d)
}

// DatesBetween gera todas as datas de from até to, inclusive.
// Retorna nil se from for posterior a to.
func DatesBetween(from, to Date) []Date {
	if from.After(to) {
		return nil
	}
	var dates []Date
	for d := from; !d.After(to); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates
}

// ══════════════════════════════════════════════════════════════════════════════
// CONJUNTO DE DATAS
// ══════════════════════════════════════════════════════════════════════════════

// DateSet é um conjunto de datas (datas bônus, dias neutros).
type DateSet map[Date]struct{}

// NewDateSet cria um conjunto a partir das datas informadas.
func NewDateSet(dates ...Date) DateSet {
	set := make(DateSet, len(dates))
	for _, d := range dates {
		set[d] = struct{}{}
	}
	return set
}

// Contains verifica se a data pertence ao conjunto.
func (s DateSet) Contains(d Date) bool {
	_, ok := s[d]
	return ok
}

// Add adiciona uma data ao conjunto.
func (s DateSet) Add(d Date) {
	s[d] = struct{}{}
}

// Dates retorna as datas do conjunto em ordem crescente.
func (s DateSet) Dates() []Date {
	dates := make([]Date, 0, len(s))
	for d := range s {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
