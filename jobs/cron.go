package jobs

import (
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"vacarent/constants"
	"vacarent/models"
	"vacarent/utils"
)

// Los logs de importación se conservan este tiempo antes de purgarse
const importLogRetention = 365 * 24 * time.Hour

// InitCronJobs registra las tareas periódicas del backend
func InitCronJobs(c *cron.Cron, db *gorm.DB) error {
	// Cada madrugada las reservas confirmadas con salida pasada pasan
	// a completadas, para que entren en la siguiente liquidación.
	if _, err := c.AddFunc("0 4 * * *", func() {
		completePastReservations(db)
	}); err != nil {
		return err
	}

	// Purga mensual del histórico de importaciones
	if _, err := c.AddFunc("0 5 1 * *", func() {
		purgeOldImportLogs(db)
	}); err != nil {
		return err
	}

	c.Start()
	return nil
}

func completePastReservations(db *gorm.DB) {
	result := db.Model(&models.Reservation{}).
		Where("status = ? AND check_out_date < ?", constants.ReservationStatusConfirmed, time.Now()).
		Update("status", constants.ReservationStatusCompleted)
	if result.Error != nil {
		utils.LogError("error al completar reservas pasadas: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		utils.LogInfo("%d reservas marcadas como completadas", result.RowsAffected)
	}
}

func purgeOldImportLogs(db *gorm.DB) {
	cutoff := time.Now().Add(-importLogRetention)
	result := db.Where("created_at < ?", cutoff).Delete(&models.ImportLog{})
	if result.Error != nil {
		utils.LogError("error al purgar logs de importación: %v", result.Error)
		return
	}
	utils.LogInfo("purgados %d logs de importación anteriores a %s", result.RowsAffected, cutoff.Format("2006-01-02"))
}
