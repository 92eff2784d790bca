package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vacarent/constants"
	"vacarent/models"
)

func testUnit() *models.BillingUnit {
	return &models.BillingUnit{
		ID:              1,
		Name:            "Piso Centro Málaga",
		CommissionType:  strPtr(constants.ChargeTypePercentage),
		CommissionValue: decPtr("15"),
		CleaningType:    strPtr(constants.ChargeTypeFixedPerReservation),
		CleaningValue:   decPtr("50"),
	}
}

func testScope(unit *models.BillingUnit) SettlementScope {
	return SettlementScope{
		Owner:    &models.PropertyOwner{Type: constants.OwnerTypeEmpresa},
		Units:    []models.BillingUnit{*unit},
		Defaults: DefaultBilling(),
	}
}

func TestCalculateSettlement(t *testing.T) {
	unit := testUnit()

	t.Run("una reserva", func(t *testing.T) {
		reservations := []models.Reservation{{
			HostEarnings: decimal.NewFromInt(1000),
			Nights:       3,
			BillingUnit:  unit,
		}}

		result := CalculateSettlement(testScope(unit), reservations, nil)

		assert.Equal(t, "1000", result.TotalIncome.String())
		assert.Equal(t, "50", result.TotalCleaning.String())
		// comisión sobre 950, no sobre 1000
		assert.Equal(t, "142.5", result.TotalCommission.String())
		assert.Equal(t, "29.925", result.TotalCommissionVAT.String())
		// 1000 - 142.5 - 29.925 - 50
		assert.Equal(t, "777.575", result.TotalAmount.String())
		assert.Equal(t, "222.425", result.OwnerPaysManager.String())
		// retención informativa sobre la comisión, empresa al 15%
		assert.Equal(t, 15.0, result.RetentionRate)
		assert.Equal(t, "21.375", result.TotalRetention.String())
		assert.Equal(t, constants.IncomeReceiverManager, result.IncomeReceiver)
	})

	t.Run("ámbito vacío liquida a cero", func(t *testing.T) {
		result := CalculateSettlement(testScope(unit), nil, nil)
		assert.Equal(t, "0", result.TotalIncome.String())
		assert.Equal(t, "0", result.TotalCommission.String())
		assert.Equal(t, "0", result.TotalAmount.String())
		assert.Empty(t, result.ByUnit)
	})

	t.Run("gastos con IVA descontados del neto", func(t *testing.T) {
		reservations := []models.Reservation{{
			HostEarnings: decimal.NewFromInt(1000),
			Nights:       3,
			BillingUnit:  unit,
		}}
		expenses := []models.Expense{{
			Amount:    decimal.NewFromInt(80),
			VATAmount: decimal.Zero,
		}, {
			Amount:    decimal.NewFromInt(20),
			VATAmount: decimal.RequireFromString("4.2"),
		}}

		result := CalculateSettlement(testScope(unit), reservations, expenses)

		assert.Equal(t, "104.2", result.TotalExpenses.String())
		// 777.575 - 104.2
		assert.Equal(t, "673.375", result.TotalAmount.String())
		// los gastos no entran en lo que el propietario paga al gestor
		assert.Equal(t, "222.425", result.OwnerPaysManager.String())
	})

	t.Run("cada reserva con sus propias reglas", func(t *testing.T) {
		other := &models.BillingUnit{
			ID:              2,
			Name:            "Ático Playa",
			CommissionType:  strPtr(constants.ChargeTypeFixedPerReservation),
			CommissionValue: decPtr("90"),
			CleaningType:    strPtr(constants.ChargeTypeFixedPerReservation),
			CleaningValue:   decPtr("0"),
		}
		scope := testScope(unit)
		scope.Units = append(scope.Units, *other)

		reservations := []models.Reservation{
			{HostEarnings: decimal.NewFromInt(1000), Nights: 3, BillingUnit: unit},
			{HostEarnings: decimal.NewFromInt(500), Nights: 2, BillingUnit: other},
		}

		result := CalculateSettlement(scope, reservations, nil)

		// 142.5 del piso + 90 fijos del ático
		assert.Equal(t, "232.5", result.TotalCommission.String())
		assert.Equal(t, "1500", result.TotalIncome.String())
	})
}

func TestCalculateSettlementMonthlyFee(t *testing.T) {
	unit := testUnit()
	unit.MonthlyFee = decPtr("100")

	reservations := func(n int) []models.Reservation {
		out := make([]models.Reservation, n)
		for i := range out {
			out[i] = models.Reservation{
				HostEarnings: decimal.NewFromInt(1000),
				Nights:       3,
				BillingUnit:  unit,
			}
		}
		return out
	}

	t.Run("sin reservas se factura igualmente", func(t *testing.T) {
		result := CalculateSettlement(testScope(unit), nil, nil)
		assert.Equal(t, "100", result.TotalCommission.String())
		assert.Equal(t, "21", result.TotalCommissionVAT.String())
	})

	t.Run("una sola vez con una reserva", func(t *testing.T) {
		result := CalculateSettlement(testScope(unit), reservations(1), nil)
		assert.Equal(t, "242.5", result.TotalCommission.String())
	})

	t.Run("una sola vez con varias reservas", func(t *testing.T) {
		result := CalculateSettlement(testScope(unit), reservations(4), nil)
		// 4 x 142.5 + 100, nunca 4 x 100
		assert.Equal(t, "670", result.TotalCommission.String())
	})
}

func TestCalculateSettlementByUnit(t *testing.T) {
	unit := testUnit()
	other := &models.BillingUnit{ID: 2, Name: "Ático Playa"}
	config := &models.PropertyBillingConfig{ID: 10, PropertyName: "Casa Rural El Olivo"}

	reservations := []models.Reservation{
		{HostEarnings: decimal.NewFromInt(1000), BillingUnit: unit},
		{HostEarnings: decimal.NewFromInt(400), BillingUnit: other},
		{HostEarnings: decimal.NewFromInt(600), BillingUnit: unit},
		{HostEarnings: decimal.NewFromInt(300), PropertyConfig: config},
	}

	result := CalculateSettlement(testScope(unit), reservations, nil)

	require.Len(t, result.ByUnit, 3)

	assert.Equal(t, "Piso Centro Málaga", result.ByUnit[0].Name)
	assert.Equal(t, 2, result.ByUnit[0].ReservationCount)
	assert.Equal(t, "1600", result.ByUnit[0].Income.String())
	require.NotNil(t, result.ByUnit[0].UnitID)
	assert.Equal(t, uint(1), *result.ByUnit[0].UnitID)

	assert.Equal(t, "Ático Playa", result.ByUnit[1].Name)
	assert.Equal(t, 1, result.ByUnit[1].ReservationCount)

	assert.Equal(t, "Casa Rural El Olivo", result.ByUnit[2].Name)
	assert.Nil(t, result.ByUnit[2].UnitID)
	assert.Equal(t, "300", result.ByUnit[2].Income.String())
}

func TestCalculateSettlementIncomeReceiver(t *testing.T) {
	unit := testUnit()
	unit.IncomeReceiver = strPtr(constants.IncomeReceiverOwner)

	reservations := []models.Reservation{{
		HostEarnings: decimal.NewFromInt(1000),
		Nights:       3,
		BillingUnit:  unit,
	}}

	result := CalculateSettlement(testScope(unit), reservations, nil)

	// con cobro del propietario las dos cifras se calculan igual;
	// cambia cuál aplica, que queda registrado en el receptor
	assert.Equal(t, constants.IncomeReceiverOwner, result.IncomeReceiver)
	assert.Equal(t, "777.575", result.TotalAmount.String())
	assert.Equal(t, "222.425", result.OwnerPaysManager.String())
}

func TestScopeRules(t *testing.T) {
	t.Run("modo grupo", func(t *testing.T) {
		scope := SettlementScope{
			Group:    &models.BillingUnitGroup{MonthlyFee: decPtr("75")},
			Defaults: DefaultBilling(),
		}
		assert.Equal(t, "75", scopeRules(scope).MonthlyFee.String())
	})

	t.Run("modo individual toma la primera unidad", func(t *testing.T) {
		scope := SettlementScope{
			Units:    []models.BillingUnit{{MonthlyFee: decPtr("60")}, {MonthlyFee: decPtr("999")}},
			Defaults: DefaultBilling(),
		}
		assert.Equal(t, "60", scopeRules(scope).MonthlyFee.String())
	})

	t.Run("configuración antigua sin unidades", func(t *testing.T) {
		scope := SettlementScope{
			Config:   &models.PropertyBillingConfig{MonthlyFee: decPtr("40")},
			Defaults: DefaultBilling(),
		}
		assert.Equal(t, "40", scopeRules(scope).MonthlyFee.String())
	})
}
