package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Liquidation es el resultado de liquidar un propietario en un
// periodo. TotalAmount es el neto a pagar al propietario cuando el
// gestor cobra de las OTAs; OwnerPaysManager es la cifra inversa
// cuando cobra el propietario.
type Liquidation struct {
	ID      uint           `json:"id" gorm:"primaryKey"`
	OwnerID uint           `json:"ownerId" gorm:"not null;index"`
	Owner   *PropertyOwner `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Year    int            `json:"year" gorm:"not null"`
	Month   int            `json:"month" gorm:"not null"`
	Mode    string         `json:"mode" gorm:"size:16"`
	GroupID *uint          `json:"groupId,omitempty"`
	UnitIDs pq.Int64Array  `json:"unitIds" gorm:"type:integer[]"`

	TotalIncome        decimal.Decimal `json:"totalIncome" gorm:"type:decimal(12,2)"`
	TotalCommission    decimal.Decimal `json:"totalCommission" gorm:"type:decimal(12,2)"`
	TotalCommissionVAT decimal.Decimal `json:"totalCommissionVat" gorm:"type:decimal(12,2)"`
	TotalCleaning      decimal.Decimal `json:"totalCleaning" gorm:"type:decimal(12,2)"`
	TotalExpenses      decimal.Decimal `json:"totalExpenses" gorm:"type:decimal(12,2)"`
	TotalRetention     decimal.Decimal `json:"totalRetention" gorm:"type:decimal(12,2)"`
	TotalAmount        decimal.Decimal `json:"totalAmount" gorm:"type:decimal(12,2)"`
	OwnerPaysManager   decimal.Decimal `json:"ownerPaysManager" gorm:"type:decimal(12,2)"`
	RetentionRate      float64         `json:"retentionRate"`
	IncomeReceiver     string          `json:"incomeReceiver" gorm:"size:16"`
	ReservationCount   int             `json:"reservationCount"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
