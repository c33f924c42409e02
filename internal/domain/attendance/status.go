package attendance

import "fmt"

// ══════════════════════════════════════════════════════════════════════════════
// STATUS BRUTO (marcado pelo usuário)
// ══════════════════════════════════════════════════════════════════════════════

// RawStatus é o status marcado pelo usuário no check-in de um dia.
// Os valores serializam exatamente com os tokens usados pelo armazenamento
// e pelos consumidores externos (exportação, geração de imagem).
type RawStatus string

const (
	// RawNotSet - dia ainda não marcado.
	RawNotSet RawStatus = "-"
	// RawPresent - atleta presente no treino.
	RawPresent RawStatus = "present"
	// RawAbsent - atleta ausente (vira folga ou falta após classificação).
	RawAbsent RawStatus = "absent"
	// RawHospital - ausência por internação/consulta.
	RawHospital RawStatus = "hospital"
	// RawJustified - ausência justificada.
	RawJustified RawStatus = "justified"
)

// IsValid verifica se o status bruto é um dos valores conhecidos.
func (s RawStatus) IsValid() bool {
	switch s {
	case RawNotSet, RawPresent, RawAbsent, RawHospital, RawJustified:
		return true
	}
	return false
}

// String retorna o token estável do status.
func (s RawStatus) String() string {
	return string(s)
}

// ParseRawStatus converte um token em RawStatus.
func ParseRawStatus(s string) (RawStatus, error) {
	rs := RawStatus(s)
	if !rs.IsValid() {
		return RawNotSet, fmt.Errorf("attendance: unknown raw status %q", s)
	}
	return rs, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// STATUS DERIVADO (calculado pelo sistema)
// ══════════════════════════════════════════════════════════════════════════════

// DerivedStatus é o status final de um dia após a classificação.
// Rest, Absence e Extra são sempre calculados, nunca marcados pelo usuário;
// os demais passam direto do status bruto (com a exceção de presença em
// data bônus, que vira Extra).
type DerivedStatus string

const (
	// StatusNotSet - dia não marcado.
	StatusNotSet DerivedStatus = "-"
	// StatusPresent - presença normal.
	StatusPresent DerivedStatus = "present"
	// StatusHospital - hospital (passa direto do status bruto).
	StatusHospital DerivedStatus = "hospital"
	// StatusJustified - justificado (passa direto do status bruto).
	StatusJustified DerivedStatus = "justified"
	// StatusRest - folga: ausência dentro do limite semanal, sem multa.
	StatusRest DerivedStatus = "rest"
	// StatusAbsence - falta: ausência acima do limite semanal, com multa.
	StatusAbsence DerivedStatus = "absence"
	// StatusExtra - presença em data bônus: conta como presença + estrela.
	StatusExtra DerivedStatus = "extra"
)

// IsValid verifica se o status derivado é um dos valores conhecidos.
func (s DerivedStatus) IsValid() bool {
	switch s {
	case StatusNotSet, StatusPresent, StatusHospital, StatusJustified,
		StatusRest, StatusAbsence, StatusExtra:
		return true
	}
	return false
}

// String retorna o token estável do status.
func (s DerivedStatus) String() string {
	return string(s)
}

// IsPresence retorna true se o status conta como presença.
func (s DerivedStatus) IsPresence() bool {
	return s == StatusPresent || s == StatusExtra
}

// Emoji retorna o emoji de exibição do status.
func (s DerivedStatus) Emoji() string {
	switch s {
	case StatusPresent:
		return "✅"
	case StatusHospital:
		return "🚑"
	case StatusJustified:
		return "📄"
	case StatusRest:
		return "🔷"
	case StatusAbsence:
		return "❌"
	case StatusExtra:
		return "⭐"
	default:
		return "-"
	}
}

// Color retorna a cor hex de exibição do status.
func (s DerivedStatus) Color() string {
	switch s {
	case StatusPresent:
		return "#10b981"
	case StatusHospital:
		return "#f59e0b"
	case StatusJustified:
		return "#6366f1"
	case StatusRest:
		return "#3b82f6"
	case StatusAbsence:
		return "#ef4444"
	case StatusExtra:
		return "#eab308"
	default:
		return "#9ca3af"
	}
}

// ParseDerivedStatus converte um token em DerivedStatus.
func ParseDerivedStatus(s string) (DerivedStatus, error) {
	ds := DerivedStatus(s)
	if !ds.IsValid() {
		return StatusNotSet, fmt.Errorf("attendance: unknown derived status %q", s)
	}
	return ds, nil
}

// RawFromLegacy recupera o status bruto a partir de um status derivado,
// para registros antigos que não guardaram o status original:
// folga e falta voltam a ser ausência, extra volta a ser presença e os
// demais passam direto. Usado pela migração no reprocessamento.
func RawFromLegacy(s DerivedStatus) RawStatus {
	switch s {
	case StatusRest, StatusAbsence:
		return RawAbsent
	case StatusExtra, StatusPresent:
		return RawPresent
	case StatusHospital:
		return RawHospital
	case StatusJustified:
		return RawJustified
	default:
		return RawNotSet
	}
}
