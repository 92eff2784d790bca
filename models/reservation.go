package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reservation es una estancia importada desde una OTA o creada a mano.
// Puede estar vinculada a una BillingUnit o a una PropertyBillingConfig
// antigua, nunca a las dos.
type Reservation struct {
	ID               uint             `json:"id" gorm:"primaryKey"`
	ConfirmationCode string           `json:"confirmationCode" gorm:"size:64;index"`
	GuestName        string           `json:"guestName"`
	CheckInDate      time.Time        `json:"checkInDate" gorm:"index"`
	CheckOutDate     time.Time        `json:"checkOutDate"`
	Nights           int              `json:"nights"`
	Platform         string           `json:"platform" gorm:"size:16;index"`
	Status           int              `json:"status"`
	HostEarnings     decimal.Decimal  `json:"hostEarnings" gorm:"type:decimal(12,2)"`
	CleaningFee      *decimal.Decimal `json:"cleaningFee,omitempty" gorm:"type:decimal(12,2)"` // tarifa de limpieza propia de la estancia
	Currency         string           `json:"currency" gorm:"size:3;default:EUR"`

	// Reparto calculado en la importación
	OwnerAmount   decimal.Decimal `json:"ownerAmount" gorm:"type:decimal(12,2)"`
	ManagerAmount decimal.Decimal `json:"managerAmount" gorm:"type:decimal(12,2)"`

	BillingUnitID    *uint                  `json:"billingUnitId,omitempty"`
	BillingUnit      *BillingUnit           `json:"billingUnit,omitempty" gorm:"foreignKey:BillingUnitID"`
	PropertyConfigID *uint                  `json:"propertyConfigId,omitempty"`
	PropertyConfig   *PropertyBillingConfig `json:"propertyConfig,omitempty" gorm:"foreignKey:PropertyConfigID"`

	// Una reserva solo se liquida una vez
	LiquidationID *uint `json:"liquidationId,omitempty" gorm:"index"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
