package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"vacarent/models"
)

// SettlementScope define el ámbito de una liquidación: el propietario,
// el nivel que aporta las reglas del ámbito (grupo, unidades o
// configuración antigua) y los defaults en vigor.
type SettlementScope struct {
	Owner    *models.PropertyOwner
	Group    *models.BillingUnitGroup
	Units    []models.BillingUnit
	Config   *models.PropertyBillingConfig
	Defaults BillingDefaults
}

// UnitBreakdown es el desglose informativo por alojamiento. No vuelve a
// derivar comisiones: solo cuenta reservas e ingreso bruto.
type UnitBreakdown struct {
	UnitID           *uint           `json:"unitId,omitempty"`
	Name             string          `json:"name"`
	ReservationCount int             `json:"reservationCount"`
	Income           decimal.Decimal `json:"income"`
}

// SettlementResult son los totales de una liquidación más las reglas
// de ámbito con las que se calcularon.
type SettlementResult struct {
	TotalIncome        decimal.Decimal
	TotalCommission    decimal.Decimal
	TotalCommissionVAT decimal.Decimal
	TotalCleaning      decimal.Decimal
	TotalExpenses      decimal.Decimal
	TotalRetention     decimal.Decimal
	TotalAmount        decimal.Decimal
	OwnerPaysManager   decimal.Decimal
	RetentionRate      float64
	ScopeRules         RuleSet
	IncomeReceiver     string
	ByUnit             []UnitBreakdown
}

// scopeRules resuelve las reglas del ámbito completo de la liquidación
// (cuota mensual, receptor de ingresos y resumen de comisión). En modo
// grupo las aporta el grupo; en modo individual, la primera unidad; sin
// unidades, la configuración antigua.
func scopeRules(scope SettlementScope) RuleSet {
	switch {
	case scope.Group != nil:
		return ResolveRules(nil, scope.Group, nil, scope.Defaults)
	case len(scope.Units) > 0:
		u := scope.Units[0]
		return ResolveRules(&u, u.Group, nil, scope.Defaults)
	default:
		return ResolveRules(nil, nil, scope.Config, scope.Defaults)
	}
}

// CalculateSettlement es el paso único acumular→cerrar de una
// liquidación. Recibe las reservas y gastos ya filtrados por periodo,
// estado y liquidation_id nulo; con cero elementos devuelve una
// liquidación a cero, que no es un error.
func CalculateSettlement(scope SettlementScope, reservations []models.Reservation, expenses []models.Expense) SettlementResult {
	result := SettlementResult{
		TotalIncome:        decimal.Zero,
		TotalCommission:    decimal.Zero,
		TotalCommissionVAT: decimal.Zero,
		TotalCleaning:      decimal.Zero,
		TotalExpenses:      decimal.Zero,
	}

	byUnit := make(map[string]*UnitBreakdown)
	var unitOrder []string

	for i := range reservations {
		res := &reservations[i]

		rules := ResolveRules(res.BillingUnit, nil, res.PropertyConfig, scope.Defaults)

		cleaning := rules.CleaningFor(res)
		result.TotalCleaning = result.TotalCleaning.Add(cleaning)

		// La comisión se aplica sobre el ingreso neto de limpieza, no
		// sobre el abono completo de la OTA.
		commissionBase := res.HostEarnings.Sub(cleaning)
		commission := rules.CommissionOn(commissionBase)
		result.TotalCommission = result.TotalCommission.Add(commission)
		result.TotalCommissionVAT = result.TotalCommissionVAT.Add(rules.CommissionVATOn(commission))

		result.TotalIncome = result.TotalIncome.Add(res.HostEarnings)

		key, name, unitID := breakdownIdentity(res)
		entry, ok := byUnit[key]
		if !ok {
			entry = &UnitBreakdown{UnitID: unitID, Name: name, Income: decimal.Zero}
			byUnit[key] = entry
			unitOrder = append(unitOrder, key)
		}
		entry.ReservationCount++
		entry.Income = entry.Income.Add(res.HostEarnings)
	}

	// La cuota mensual se factura una sola vez por liquidación, haya
	// las reservas que haya.
	rules := scopeRules(scope)
	if rules.MonthlyFee.IsPositive() {
		result.TotalCommission = result.TotalCommission.Add(rules.MonthlyFee)
		monthlyVAT := rules.MonthlyFee.Mul(decimal.NewFromFloat(rules.MonthlyFeeVATRate)).Div(decimal.NewFromInt(100))
		result.TotalCommissionVAT = result.TotalCommissionVAT.Add(monthlyVAT)
	}
	result.ScopeRules = rules
	result.IncomeReceiver = rules.IncomeReceiver

	for i := range expenses {
		result.TotalExpenses = result.TotalExpenses.Add(expenses[i].Amount.Add(expenses[i].VATAmount))
	}

	// Retención IRPF: informativa, no se descuenta del neto
	result.RetentionRate = RetentionRateFor(scope.Owner, scope.Defaults)
	result.TotalRetention = result.TotalCommission.
		Mul(decimal.NewFromFloat(result.RetentionRate)).
		Div(decimal.NewFromInt(100))

	// Las dos cifras netas se calculan siempre; cuál aplica depende de
	// quién cobre de las OTAs.
	result.TotalAmount = result.TotalIncome.
		Sub(result.TotalCommission).
		Sub(result.TotalCommissionVAT).
		Sub(result.TotalCleaning).
		Sub(result.TotalExpenses)
	result.OwnerPaysManager = result.TotalCommission.
		Add(result.TotalCommissionVAT).
		Add(result.TotalCleaning)

	for _, key := range unitOrder {
		result.ByUnit = append(result.ByUnit, *byUnit[key])
	}

	return result
}

// breakdownIdentity agrupa por id de unidad si existe y por nombre de
// propiedad si la reserva cuelga de la configuración antigua.
func breakdownIdentity(res *models.Reservation) (key, name string, unitID *uint) {
	if res.BillingUnit != nil {
		return fmt.Sprintf("u:%d", res.BillingUnit.ID), res.BillingUnit.Name, &res.BillingUnit.ID
	}
	if res.PropertyConfig != nil {
		return "c:" + res.PropertyConfig.PropertyName, res.PropertyConfig.PropertyName, nil
	}
	return "?", "Sin alojamiento", nil
}
