package models

import "time"

// PropertyOwner es el propietario de uno o varios alojamientos.
// Si RetentionRate es nil se aplica la retención por defecto según
// el tipo fiscal: 15% para EMPRESA, 0% para PERSONA_FISICA.
type PropertyOwner struct {
	ID            uint     `json:"id" gorm:"primaryKey"`
	Name          string   `json:"name" gorm:"not null"`
	Email         string   `json:"email"`
	TaxID         string   `json:"taxId" gorm:"size:16"`
	Type          string   `json:"type" gorm:"size:16;default:PERSONA_FISICA"`
	RetentionRate *float64 `json:"retentionRate,omitempty"`
	IBAN          string   `json:"iban" gorm:"size:34"`

	Units []BillingUnit `json:"units,omitempty" gorm:"foreignKey:OwnerID"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
