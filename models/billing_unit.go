package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillingUnit es un alojamiento gestionado. Los campos de reglas son
// punteros: nil significa "sin valor propio, usar el del grupo o el
// valor por defecto".
type BillingUnit struct {
	ID      uint              `json:"id" gorm:"primaryKey"`
	Name    string            `json:"name" gorm:"not null"`
	Address string            `json:"address"`
	OwnerID uint              `json:"ownerId" gorm:"not null;index"`
	Owner   *PropertyOwner    `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	GroupID *uint             `json:"groupId,omitempty"`
	Group   *BillingUnitGroup `json:"group,omitempty" gorm:"foreignKey:GroupID"`

	CommissionType    *string          `json:"commissionType,omitempty" gorm:"size:32"`
	CommissionValue   *decimal.Decimal `json:"commissionValue,omitempty" gorm:"type:decimal(12,2)"`
	CommissionVATRate *float64         `json:"commissionVatRate,omitempty"`
	CleaningType      *string          `json:"cleaningType,omitempty" gorm:"size:32"`
	CleaningValue     *decimal.Decimal `json:"cleaningValue,omitempty" gorm:"type:decimal(12,2)"`
	MonthlyFee        *decimal.Decimal `json:"monthlyFee,omitempty" gorm:"type:decimal(12,2)"`
	MonthlyFeeVATRate *float64         `json:"monthlyFeeVatRate,omitempty"`
	IncomeReceiver    *string          `json:"incomeReceiver,omitempty" gorm:"size:16"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// BillingUnitGroup agrupa alojamientos que comparten reglas de
// facturación por defecto. Los valores propios de la unidad prevalecen.
type BillingUnitGroup struct {
	ID      uint           `json:"id" gorm:"primaryKey"`
	Name    string         `json:"name" gorm:"not null"`
	OwnerID uint           `json:"ownerId" gorm:"index"`
	Owner   *PropertyOwner `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Units   []BillingUnit  `json:"units,omitempty" gorm:"foreignKey:GroupID"`

	CommissionType    *string          `json:"commissionType,omitempty" gorm:"size:32"`
	CommissionValue   *decimal.Decimal `json:"commissionValue,omitempty" gorm:"type:decimal(12,2)"`
	CommissionVATRate *float64         `json:"commissionVatRate,omitempty"`
	CleaningType      *string          `json:"cleaningType,omitempty" gorm:"size:32"`
	CleaningValue     *decimal.Decimal `json:"cleaningValue,omitempty" gorm:"type:decimal(12,2)"`
	MonthlyFee        *decimal.Decimal `json:"monthlyFee,omitempty" gorm:"type:decimal(12,2)"`
	MonthlyFeeVATRate *float64         `json:"monthlyFeeVatRate,omitempty"`
	IncomeReceiver    *string          `json:"incomeReceiver,omitempty" gorm:"size:16"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// PropertyBillingConfig es la configuración antigua por propiedad.
// Solo se consulta cuando la reserva no tiene BillingUnit vinculada.
type PropertyBillingConfig struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	PropertyName string         `json:"propertyName" gorm:"not null"`
	OwnerID      uint           `json:"ownerId" gorm:"index"`
	Owner        *PropertyOwner `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`

	CommissionType    *string          `json:"commissionType,omitempty" gorm:"size:32"`
	CommissionValue   *decimal.Decimal `json:"commissionValue,omitempty" gorm:"type:decimal(12,2)"`
	CommissionVATRate *float64         `json:"commissionVatRate,omitempty"`
	CleaningType      *string          `json:"cleaningType,omitempty" gorm:"size:32"`
	CleaningValue     *decimal.Decimal `json:"cleaningValue,omitempty" gorm:"type:decimal(12,2)"`
	MonthlyFee        *decimal.Decimal `json:"monthlyFee,omitempty" gorm:"type:decimal(12,2)"`
	MonthlyFeeVATRate *float64         `json:"monthlyFeeVatRate,omitempty"`
	IncomeReceiver    *string          `json:"incomeReceiver,omitempty" gorm:"size:16"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
