package models

import (
	"encoding/json"
	"time"
)

// ImportLog es el registro de auditoría de cada importación de
// reservas. Se guarda siempre, también cuando la importación falla.
type ImportLog struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	Filename       string          `json:"filename"`
	Source         string          `json:"source" gorm:"size:16"` // CSV o XLSX
	TotalRows      int             `json:"totalRows"`
	ImportedCount  int             `json:"importedCount"`
	SkippedCount   int             `json:"skippedCount"`
	ErrorCount     int             `json:"errorCount"`
	Errors         json.RawMessage `json:"errors" gorm:"type:json"`
	UnmatchedUnits json.RawMessage `json:"unmatchedUnits" gorm:"type:json"`
	DefaultUnitID  *uint           `json:"defaultUnitId,omitempty"`
	UserID         *uint           `json:"userId,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
