package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense es un gasto de explotación imputado a una unidad o a una
// configuración antigua. Un gasto solo entra en una liquidación.
type Expense struct {
	ID               uint                   `json:"id" gorm:"primaryKey"`
	Concept          string                 `json:"concept" gorm:"not null"`
	Amount           decimal.Decimal        `json:"amount" gorm:"type:decimal(12,2)"`
	VATAmount        decimal.Decimal        `json:"vatAmount" gorm:"type:decimal(12,2)"`
	Date             time.Time              `json:"date" gorm:"index"`
	ChargeToOwner    bool                   `json:"chargeToOwner" gorm:"default:true"`
	BillingUnitID    *uint                  `json:"billingUnitId,omitempty"`
	BillingUnit      *BillingUnit           `json:"billingUnit,omitempty" gorm:"foreignKey:BillingUnitID"`
	PropertyConfigID *uint                  `json:"propertyConfigId,omitempty"`
	PropertyConfig   *PropertyBillingConfig `json:"propertyConfig,omitempty" gorm:"foreignKey:PropertyConfigID"`
	LiquidationID    *uint                  `json:"liquidationId,omitempty" gorm:"index"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
