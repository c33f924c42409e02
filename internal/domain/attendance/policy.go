package attendance

import "github.com/ripcamargo/daily-check-maromba/internal/domain/shared"

// ══════════════════════════════════════════════════════════════════════════════
// BENEFÍCIO DE BÔNUS
// ══════════════════════════════════════════════════════════════════════════════

// BonusBenefit define o que as estrelas (extras) valem na temporada.
type BonusBenefit string

const (
	// BenefitNone - extras são apenas contabilizados, sem efeito nas faltas.
	BenefitNone BonusBenefit = "-"
	// BenefitValeFolga - cada estrela anula uma falta, convertendo-a em folga.
	BenefitValeFolga BonusBenefit = "vale-folga"
)

// ══════════════════════════════════════════════════════════════════════════════
// POLÍTICA DE CLASSIFICAÇÃO
// ══════════════════════════════════════════════════════════════════════════════

// Política não configurada: o motor nunca assume defaults silenciosamente.
// Valores ausentes são representados por Unset e rejeitados na validação;
// qualquer default pertence à camada de configuração externa.
const Unset = -1

// Policy é o snapshot dos parâmetros da temporada usados pela classificação.
// É somente leitura para o motor: cada chamada recebe a política como
// argumento e nada aqui é mutado.
type Policy struct {
	// WeeklyRestLimit é o número de ausências por semana que ainda contam
	// como folga. Acima disso, ausência vira falta. Unset se não configurado.
	WeeklyRestLimit int

	// WeekStartsOn é o dia de início da semana (0=domingo ... 6=sábado).
	// Unset se não configurado.
	WeekStartsOn int

	// BonusDates são as datas bônus: presença vira Extra e ausência nunca
	// penaliza nem conta no limite semanal.
	BonusDates DateSet

	// BonusBenefit define o efeito das estrelas acumuladas.
	BonusBenefit BonusBenefit

	// FinePerAbsence é o valor da multa por falta.
	FinePerAbsence float64

	// NeutralDays são datas excluídas do cálculo de estatísticas e multas.
	NeutralDays DateSet
}

// Erros de configuração da política.
var (
	ErrMissingRestLimit = shared.NewDomainError("attendance", "Validate", shared.ErrConfiguration, "weekly rest limit is not set")
	ErrMissingWeekStart = shared.NewDomainError("attendance", "Validate", shared.ErrConfiguration, "week start day is not set")
	ErrInvalidWeekStart = shared.NewDomainError("attendance", "Validate", shared.ErrConfiguration, "week start day must be between 0 and 6")
	ErrNegativeLimit    = shared.NewDomainError("attendance", "Validate", shared.ErrConfiguration, "weekly rest limit cannot be negative")
)

// Validate verifica se a política tem os campos obrigatórios para
// classificação. Falha com erro de configuração - nunca assume defaults.
func (p Policy) Validate() error {
	if p.WeeklyRestLimit == Unset {
		return ErrMissingRestLimit
	}
	if p.WeeklyRestLimit < 0 {
		return ErrNegativeLimit
	}
	if p.WeekStartsOn == Unset {
		return ErrMissingWeekStart
	}
	if p.WeekStartsOn < 0 || p.WeekStartsOn > 6 {
		return ErrInvalidWeekStart
	}
	return nil
}

// IsBonusDate verifica se a data é bônus nesta temporada.
func (p Policy) IsBonusDate(d Date) bool {
	return p.BonusDates.Contains(d)
}

// IsNeutralDay verifica se a data é um dia neutro nesta temporada.
func (p Policy) IsNeutralDay(d Date) bool {
	return p.NeutralDays.Contains(d)
}
