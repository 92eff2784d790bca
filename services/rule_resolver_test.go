package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"vacarent/constants"
	"vacarent/models"
)

func strPtr(s string) *string          { return &s }
func floatPtr(f float64) *float64      { return &f }
func decPtr(s string) *decimal.Decimal { d := decimal.RequireFromString(s); return &d }

func TestResolveRulesHierarchy(t *testing.T) {
	defaults := DefaultBilling()

	t.Run("sin nada aplica los defaults", func(t *testing.T) {
		rules := ResolveRules(nil, nil, nil, defaults)
		assert.Equal(t, constants.ChargeTypePercentage, rules.CommissionType)
		assert.Equal(t, "0", rules.CommissionValue.String())
		assert.Equal(t, 21.0, rules.CommissionVATRate)
		assert.Equal(t, constants.ChargeTypeFixedPerReservation, rules.CleaningType)
		assert.Equal(t, constants.IncomeReceiverManager, rules.IncomeReceiver)
	})

	t.Run("la unidad prevalece sobre el grupo", func(t *testing.T) {
		group := &models.BillingUnitGroup{
			CommissionValue: decPtr("10"),
			CleaningValue:   decPtr("30"),
		}
		unit := &models.BillingUnit{
			CommissionValue: decPtr("18"),
		}
		rules := ResolveRules(unit, group, nil, defaults)
		assert.Equal(t, "18", rules.CommissionValue.String())
		// el campo que la unidad no define baja al grupo
		assert.Equal(t, "30", rules.CleaningValue.String())
	})

	t.Run("el grupo cubre los campos sin valor de la unidad", func(t *testing.T) {
		group := &models.BillingUnitGroup{
			CommissionValue:   decPtr("12"),
			CommissionVATRate: floatPtr(10),
			MonthlyFee:        decPtr("50"),
		}
		unit := &models.BillingUnit{Group: group}
		rules := ResolveRules(unit, nil, nil, defaults)
		assert.Equal(t, "12", rules.CommissionValue.String())
		assert.Equal(t, 10.0, rules.CommissionVATRate)
		assert.Equal(t, "50", rules.MonthlyFee.String())
	})

	t.Run("el grupo aporta sus campos sin unidad", func(t *testing.T) {
		group := &models.BillingUnitGroup{
			MonthlyFee:     decPtr("75"),
			IncomeReceiver: strPtr(constants.IncomeReceiverOwner),
		}
		rules := ResolveRules(nil, group, nil, defaults)
		assert.Equal(t, "75", rules.MonthlyFee.String())
		assert.Equal(t, constants.IncomeReceiverOwner, rules.IncomeReceiver)
		// los campos que el grupo no define bajan a los defaults
		assert.Equal(t, 21.0, rules.CommissionVATRate)
	})

	t.Run("la configuración antigua solo aplica sin unidad", func(t *testing.T) {
		config := &models.PropertyBillingConfig{
			CommissionValue: decPtr("25"),
			IncomeReceiver:  strPtr(constants.IncomeReceiverOwner),
		}
		rules := ResolveRules(nil, nil, config, defaults)
		assert.Equal(t, "25", rules.CommissionValue.String())
		assert.Equal(t, constants.IncomeReceiverOwner, rules.IncomeReceiver)

		// con unidad vinculada la configuración antigua se ignora
		unit := &models.BillingUnit{CommissionValue: decPtr("15")}
		rules = ResolveRules(unit, nil, config, defaults)
		assert.Equal(t, "15", rules.CommissionValue.String())
		assert.Equal(t, constants.IncomeReceiverManager, rules.IncomeReceiver)
	})
}

func TestCommissionAfterCleaning(t *testing.T) {
	// earnings 1000, limpieza 50, comisión 15% => 142.50, nunca 150
	rules := RuleSet{
		CommissionType:  constants.ChargeTypePercentage,
		CommissionValue: decimal.NewFromInt(15),
	}
	base := decimal.NewFromInt(1000).Sub(decimal.NewFromInt(50))
	commission := rules.CommissionOn(base)
	assert.Equal(t, "142.5", commission.String())
}

func TestCommissionFixed(t *testing.T) {
	rules := RuleSet{
		CommissionType:  constants.ChargeTypeFixedPerReservation,
		CommissionValue: decimal.NewFromInt(90),
	}
	// el tipo fijo ignora la base
	assert.Equal(t, "90", rules.CommissionOn(decimal.NewFromInt(10000)).String())
	assert.Equal(t, "90", rules.CommissionOn(decimal.Zero).String())
}

func TestCommissionVAT(t *testing.T) {
	rules := RuleSet{CommissionVATRate: 21}
	vat := rules.CommissionVATOn(decimal.RequireFromString("142.5"))
	assert.Equal(t, "29.925", vat.String())
}

func TestCleaningFor(t *testing.T) {
	t.Run("tarifa fija por reserva", func(t *testing.T) {
		rules := RuleSet{
			CleaningType:  constants.ChargeTypeFixedPerReservation,
			CleaningValue: decimal.NewFromInt(50),
		}
		res := &models.Reservation{Nights: 7}
		assert.Equal(t, "50", rules.CleaningFor(res).String())
	})

	t.Run("por noche", func(t *testing.T) {
		rules := RuleSet{
			CleaningType:  constants.ChargeTypePerNight,
			CleaningValue: decimal.NewFromInt(10),
		}
		res := &models.Reservation{Nights: 3}
		assert.Equal(t, "30", rules.CleaningFor(res).String())
	})

	t.Run("por noche con 0 noches computa una", func(t *testing.T) {
		rules := RuleSet{
			CleaningType:  constants.ChargeTypePerNight,
			CleaningValue: decimal.NewFromInt(10),
		}
		res := &models.Reservation{Nights: 0}
		assert.Equal(t, "10", rules.CleaningFor(res).String())
	})

	t.Run("la tarifa propia de la reserva prevalece", func(t *testing.T) {
		rules := RuleSet{
			CleaningType:  constants.ChargeTypeFixedPerReservation,
			CleaningValue: decimal.NewFromInt(50),
		}
		res := &models.Reservation{CleaningFee: decPtr("65")}
		assert.Equal(t, "65", rules.CleaningFor(res).String())
	})
}

func TestRetentionRateFor(t *testing.T) {
	defaults := DefaultBilling()

	t.Run("empresa sin tipo explícito", func(t *testing.T) {
		owner := &models.PropertyOwner{Type: constants.OwnerTypeEmpresa}
		assert.Equal(t, 15.0, RetentionRateFor(owner, defaults))
	})

	t.Run("persona física sin tipo explícito", func(t *testing.T) {
		owner := &models.PropertyOwner{Type: constants.OwnerTypePersonaFisica}
		assert.Equal(t, 0.0, RetentionRateFor(owner, defaults))
	})

	t.Run("el tipo explícito siempre gana", func(t *testing.T) {
		owner := &models.PropertyOwner{Type: constants.OwnerTypeEmpresa, RetentionRate: floatPtr(7)}
		assert.Equal(t, 7.0, RetentionRateFor(owner, defaults))
	})

	t.Run("sin propietario", func(t *testing.T) {
		assert.Equal(t, 0.0, RetentionRateFor(nil, defaults))
	})
}
