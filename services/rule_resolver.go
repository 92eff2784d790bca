package services

import (
	"github.com/shopspring/decimal"

	"vacarent/constants"
	"vacarent/models"
)

// BillingDefaults son los valores de última instancia de la cadena de
// resolución. Se pasan explícitamente al resolver para que los tests
// puedan fijarlos por caso.
type BillingDefaults struct {
	CommissionType    string
	CommissionValue   decimal.Decimal
	VATRate           float64
	CleaningType      string
	CleaningValue     decimal.Decimal
	MonthlyFee        decimal.Decimal
	MonthlyFeeVATRate float64
	IncomeReceiver    string
	RetentionEmpresa  float64
}

func DefaultBilling() BillingDefaults {
	return BillingDefaults{
		CommissionType:    constants.ChargeTypePercentage,
		CommissionValue:   decimal.Zero,
		VATRate:           21,
		CleaningType:      constants.ChargeTypeFixedPerReservation,
		CleaningValue:     decimal.Zero,
		MonthlyFee:        decimal.Zero,
		MonthlyFeeVATRate: 21,
		IncomeReceiver:    constants.IncomeReceiverManager,
		RetentionEmpresa:  15,
	}
}

// RuleSet es el juego de reglas efectivo para una reserva o un ámbito
// de liquidación, ya sin campos opcionales.
type RuleSet struct {
	CommissionType    string
	CommissionValue   decimal.Decimal
	CommissionVATRate float64
	CleaningType      string
	CleaningValue     decimal.Decimal
	MonthlyFee        decimal.Decimal
	MonthlyFeeVATRate float64
	IncomeReceiver    string
}

// ruleFields es un proveedor de la cadena: cada campo puede estar sin
// definir. La unidad, el grupo y la configuración antigua comparten
// esta forma.
type ruleFields struct {
	commissionType    *string
	commissionValue   *decimal.Decimal
	commissionVATRate *float64
	cleaningType      *string
	cleaningValue     *decimal.Decimal
	monthlyFee        *decimal.Decimal
	monthlyFeeVATRate *float64
	incomeReceiver    *string
}

func fieldsFromUnit(u *models.BillingUnit) ruleFields {
	if u == nil {
		return ruleFields{}
	}
	return ruleFields{
		commissionType:    u.CommissionType,
		commissionValue:   u.CommissionValue,
		commissionVATRate: u.CommissionVATRate,
		cleaningType:      u.CleaningType,
		cleaningValue:     u.CleaningValue,
		monthlyFee:        u.MonthlyFee,
		monthlyFeeVATRate: u.MonthlyFeeVATRate,
		incomeReceiver:    u.IncomeReceiver,
	}
}

func fieldsFromGroup(g *models.BillingUnitGroup) ruleFields {
	if g == nil {
		return ruleFields{}
	}
	return ruleFields{
		commissionType:    g.CommissionType,
		commissionValue:   g.CommissionValue,
		commissionVATRate: g.CommissionVATRate,
		cleaningType:      g.CleaningType,
		cleaningValue:     g.CleaningValue,
		monthlyFee:        g.MonthlyFee,
		monthlyFeeVATRate: g.MonthlyFeeVATRate,
		incomeReceiver:    g.IncomeReceiver,
	}
}

func fieldsFromConfig(c *models.PropertyBillingConfig) ruleFields {
	if c == nil {
		return ruleFields{}
	}
	return ruleFields{
		commissionType:    c.CommissionType,
		commissionValue:   c.CommissionValue,
		commissionVATRate: c.CommissionVATRate,
		cleaningType:      c.CleaningType,
		cleaningValue:     c.CleaningValue,
		monthlyFee:        c.MonthlyFee,
		monthlyFeeVATRate: c.MonthlyFeeVATRate,
		incomeReceiver:    c.IncomeReceiver,
	}
}

// ResolveRules construye el juego de reglas efectivo campo a campo,
// del nivel más específico al más genérico. Con unidad vinculada la
// cadena es unidad > grupo > defaults; un grupo sin unidad (el ámbito
// de una liquidación en modo grupo) aporta sus campos directamente; sin
// ninguno de los dos, la configuración antigua los sustituye. La tarifa
// de limpieza propia de la reserva se aplica después, en cleaningFor.
func ResolveRules(unit *models.BillingUnit, group *models.BillingUnitGroup, config *models.PropertyBillingConfig, d BillingDefaults) RuleSet {
	var chain []ruleFields
	switch {
	case unit != nil:
		if group == nil {
			group = unit.Group
		}
		chain = []ruleFields{fieldsFromUnit(unit), fieldsFromGroup(group)}
	case group != nil:
		chain = []ruleFields{fieldsFromGroup(group)}
	default:
		chain = []ruleFields{fieldsFromConfig(config)}
	}

	return RuleSet{
		CommissionType:    firstString(chain, func(f ruleFields) *string { return f.commissionType }, d.CommissionType),
		CommissionValue:   firstDecimal(chain, func(f ruleFields) *decimal.Decimal { return f.commissionValue }, d.CommissionValue),
		CommissionVATRate: firstFloat(chain, func(f ruleFields) *float64 { return f.commissionVATRate }, d.VATRate),
		CleaningType:      firstString(chain, func(f ruleFields) *string { return f.cleaningType }, d.CleaningType),
		CleaningValue:     firstDecimal(chain, func(f ruleFields) *decimal.Decimal { return f.cleaningValue }, d.CleaningValue),
		MonthlyFee:        firstDecimal(chain, func(f ruleFields) *decimal.Decimal { return f.monthlyFee }, d.MonthlyFee),
		MonthlyFeeVATRate: firstFloat(chain, func(f ruleFields) *float64 { return f.monthlyFeeVATRate }, d.MonthlyFeeVATRate),
		IncomeReceiver:    firstString(chain, func(f ruleFields) *string { return f.incomeReceiver }, d.IncomeReceiver),
	}
}

func firstString(chain []ruleFields, get func(ruleFields) *string, def string) string {
	for _, f := range chain {
		if v := get(f); v != nil && *v != "" {
			return *v
		}
	}
	return def
}

func firstDecimal(chain []ruleFields, get func(ruleFields) *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	for _, f := range chain {
		if v := get(f); v != nil {
			return *v
		}
	}
	return def
}

func firstFloat(chain []ruleFields, get func(ruleFields) *float64, def float64) float64 {
	for _, f := range chain {
		if v := get(f); v != nil {
			return *v
		}
	}
	return def
}

// CleaningFor calcula la limpieza de una reserva. La tarifa explícita
// de la propia reserva es el nivel más prioritario de la cadena; para
// PER_NIGHT una reserva con 0 noches computa como 1, ver nightsForCleaning.
func (r RuleSet) CleaningFor(res *models.Reservation) decimal.Decimal {
	if res.CleaningFee != nil && res.CleaningFee.IsPositive() {
		return *res.CleaningFee
	}
	switch r.CleaningType {
	case constants.ChargeTypePerNight:
		return r.CleaningValue.Mul(decimal.NewFromInt(int64(nightsForCleaning(res.Nights))))
	default:
		return r.CleaningValue
	}
}

// nightsForCleaning: los exports traen a veces 0 noches en estancias de
// día suelto; la limpieza se factura como mínimo por una noche.
func nightsForCleaning(nights int) int {
	if nights < 1 {
		return 1
	}
	return nights
}

// CommissionOn aplica la fórmula de comisión sobre la base ya neta de
// limpieza. FIXED_PER_RESERVATION ignora la base.
func (r RuleSet) CommissionOn(base decimal.Decimal) decimal.Decimal {
	switch r.CommissionType {
	case constants.ChargeTypeFixedPerReservation:
		return r.CommissionValue
	default:
		return base.Mul(r.CommissionValue).Div(decimal.NewFromInt(100))
	}
}

// CommissionVATOn calcula el IVA de una comisión ya resuelta
func (r RuleSet) CommissionVATOn(commission decimal.Decimal) decimal.Decimal {
	return commission.Mul(decimal.NewFromFloat(r.CommissionVATRate)).Div(decimal.NewFromInt(100))
}

// RetentionRateFor devuelve la retención IRPF aplicable al propietario:
// su tipo explícito si lo tiene, y si no el defecto por tipo fiscal.
func RetentionRateFor(owner *models.PropertyOwner, d BillingDefaults) float64 {
	if owner == nil {
		return 0
	}
	if owner.RetentionRate != nil {
		return *owner.RetentionRate
	}
	if owner.Type == constants.OwnerTypeEmpresa {
		return d.RetentionEmpresa
	}
	return 0
}
