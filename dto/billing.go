package dto

import "github.com/shopspring/decimal"

// BillingUnitRequest es el payload de alta/edición de un alojamiento.
// Los campos de reglas en nil dejan el campo sin valor propio.
type BillingUnitRequest struct {
	Name              string           `json:"name" binding:"required"`
	Address           string           `json:"address"`
	OwnerID           uint             `json:"ownerId" binding:"required"`
	GroupID           *uint            `json:"groupId"`
	CommissionType    *string          `json:"commissionType"`
	CommissionValue   *decimal.Decimal `json:"commissionValue"`
	CommissionVATRate *float64         `json:"commissionVatRate"`
	CleaningType      *string          `json:"cleaningType"`
	CleaningValue     *decimal.Decimal `json:"cleaningValue"`
	MonthlyFee        *decimal.Decimal `json:"monthlyFee"`
	MonthlyFeeVATRate *float64         `json:"monthlyFeeVatRate"`
	IncomeReceiver    *string          `json:"incomeReceiver"`
}

// BillingGroupRequest es el payload de alta de un grupo de alojamientos
type BillingGroupRequest struct {
	Name              string           `json:"name" binding:"required"`
	OwnerID           uint             `json:"ownerId"`
	CommissionType    *string          `json:"commissionType"`
	CommissionValue   *decimal.Decimal `json:"commissionValue"`
	CommissionVATRate *float64         `json:"commissionVatRate"`
	CleaningType      *string          `json:"cleaningType"`
	CleaningValue     *decimal.Decimal `json:"cleaningValue"`
	MonthlyFee        *decimal.Decimal `json:"monthlyFee"`
	MonthlyFeeVATRate *float64         `json:"monthlyFeeVatRate"`
	IncomeReceiver    *string          `json:"incomeReceiver"`
}

// OwnerRequest es el payload de alta de un propietario
type OwnerRequest struct {
	Name          string   `json:"name" binding:"required"`
	Email         string   `json:"email"`
	TaxID         string   `json:"taxId"`
	Type          string   `json:"type"`
	RetentionRate *float64 `json:"retentionRate"`
	IBAN          string   `json:"iban"`
}

// ExpenseRequest es el payload de alta de un gasto
type ExpenseRequest struct {
	Concept          string          `json:"concept" binding:"required"`
	Amount           decimal.Decimal `json:"amount"`
	VATAmount        decimal.Decimal `json:"vatAmount"`
	Date             string          `json:"date" binding:"required"` // YYYY-MM-DD
	ChargeToOwner    *bool           `json:"chargeToOwner"`
	BillingUnitID    *uint           `json:"billingUnitId"`
	PropertyConfigID *uint           `json:"propertyConfigId"`
}
