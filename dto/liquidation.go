package dto

import (
	"github.com/shopspring/decimal"

	"vacarent/models"
)

// LiquidationTotals son los totales de una liquidación o de su previa
type LiquidationTotals struct {
	TotalIncome        decimal.Decimal `json:"totalIncome"`
	TotalCommission    decimal.Decimal `json:"totalCommission"`
	TotalCommissionVAT decimal.Decimal `json:"totalCommissionVat"`
	TotalCleaning      decimal.Decimal `json:"totalCleaning"`
	TotalExpenses      decimal.Decimal `json:"totalExpenses"`
	TotalRetention     decimal.Decimal `json:"totalRetention"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	OwnerPaysManager   decimal.Decimal `json:"ownerPaysManager"`
}

// CommissionInfo resume la regla de comisión del ámbito liquidado
type CommissionInfo struct {
	Type    string          `json:"type"`
	Value   decimal.Decimal `json:"value"`
	VATRate float64         `json:"vatRate"`
}

// RetentionInfo resume la retención IRPF aplicada
type RetentionInfo struct {
	Rate      float64 `json:"rate"`
	OwnerType string  `json:"ownerType"`
}

// UnitBreakdown es el desglose informativo por alojamiento
type UnitBreakdown struct {
	UnitID           *uint           `json:"unitId,omitempty"`
	Name             string          `json:"name"`
	ReservationCount int             `json:"reservationCount"`
	Income           decimal.Decimal `json:"income"`
}

// LiquidationPreview es la respuesta de la previa: los registros en
// ámbito, los totales y las reglas con las que se calcularon. La previa
// no muta nada.
type LiquidationPreview struct {
	Reservations   []models.Reservation `json:"reservations"`
	Expenses       []models.Expense     `json:"expenses"`
	Totals         LiquidationTotals    `json:"totals"`
	Commission     CommissionInfo       `json:"commission"`
	Retention      RetentionInfo        `json:"retention"`
	IncomeReceiver string               `json:"incomeReceiver"`
	ByUnit         []UnitBreakdown      `json:"byUnit"`
}

// LiquidationQuery son los parámetros ya validados de previa y
// generación
type LiquidationQuery struct {
	OwnerID uint
	Year    int
	Month   int
	Mode    string
	GroupID *uint
	UnitIDs []uint
}
