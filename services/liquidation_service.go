package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"vacarent/constants"
	"vacarent/dto"
	apperrors "vacarent/errors"
	"vacarent/models"
	"vacarent/services/logger"
)

// LiquidationServiceOptions son las dependencias del servicio
type LiquidationServiceOptions struct {
	DB       *gorm.DB
	Logger   logger.Logger
	Defaults BillingDefaults
}

type LiquidationService struct {
	db       *gorm.DB
	log      logger.Logger
	defaults BillingDefaults
}

func NewLiquidationService(opts LiquidationServiceOptions) *LiquidationService {
	return &LiquidationService{
		db:       opts.DB,
		log:      opts.Logger,
		defaults: opts.Defaults,
	}
}

// scopeData son los registros en ámbito ya cargados para un periodo
type scopeData struct {
	scope        SettlementScope
	reservations []models.Reservation
	expenses     []models.Expense
}

// Preview calcula la previa de liquidación sin mutar nada. Un
// propietario inexistente o un periodo vacío devuelven una liquidación
// a cero.
func (s *LiquidationService) Preview(ctx context.Context, q dto.LiquidationQuery) (*dto.LiquidationPreview, error) {
	data, err := s.loadScope(ctx, s.db, &q)
	if err != nil {
		return nil, err
	}

	result := CalculateSettlement(data.scope, data.reservations, data.expenses)
	return buildPreview(data, result), nil
}

// Generate crea la liquidación y marca sus reservas y gastos dentro de
// una misma transacción. Si otra generación concurrente reclamó algún
// registro entre la lectura y el marcado, la operación entera se
// aborta con un conflicto reintentable.
func (s *LiquidationService) Generate(ctx context.Context, q dto.LiquidationQuery) (*models.Liquidation, error) {
	var owner models.PropertyOwner
	if err := s.db.WithContext(ctx).First(&owner, q.OwnerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeNotFound, "Propietario no encontrado", apperrors.ErrOwnerNotFound)
		}
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Error al consultar el propietario", err)
	}

	var liquidation *models.Liquidation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		data, err := s.loadScope(ctx, tx, &q)
		if err != nil {
			return err
		}

		result := CalculateSettlement(data.scope, data.reservations, data.expenses)

		unitIDs := make([]int64, 0, len(q.UnitIDs))
		for _, id := range q.UnitIDs {
			unitIDs = append(unitIDs, int64(id))
		}

		liquidation = &models.Liquidation{
			OwnerID:            q.OwnerID,
			Year:               q.Year,
			Month:              q.Month,
			Mode:               q.Mode,
			GroupID:            q.GroupID,
			UnitIDs:            pq.Int64Array(unitIDs),
			TotalIncome:        result.TotalIncome,
			TotalCommission:    result.TotalCommission,
			TotalCommissionVAT: result.TotalCommissionVAT,
			TotalCleaning:      result.TotalCleaning,
			TotalExpenses:      result.TotalExpenses,
			TotalRetention:     result.TotalRetention,
			TotalAmount:        result.TotalAmount,
			OwnerPaysManager:   result.OwnerPaysManager,
			RetentionRate:      result.RetentionRate,
			IncomeReceiver:     result.IncomeReceiver,
			ReservationCount:   len(data.reservations),
		}
		if err := tx.Create(liquidation).Error; err != nil {
			return apperrors.NewAppError(apperrors.ErrCodeDBError, "Error al crear la liquidación", err)
		}

		if err := claimRecords(tx, &models.Reservation{}, reservationIDs(data.reservations), liquidation.ID); err != nil {
			return err
		}
		if err := claimRecords(tx, &models.Expense{}, expenseIDs(data.expenses), liquidation.ID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("liquidación %d generada: propietario %d, periodo %d-%02d, %d reservas",
		liquidation.ID, q.OwnerID, q.Year, q.Month, liquidation.ReservationCount)
	return liquidation, nil
}

// GetByID devuelve una liquidación generada
func (s *LiquidationService) GetByID(ctx context.Context, id uint) (*models.Liquidation, error) {
	var liquidation models.Liquidation
	if err := s.db.WithContext(ctx).Preload("Owner").First(&liquidation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeNotFound, "Liquidación no encontrada", err)
		}
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Error al consultar la liquidación", err)
	}
	return &liquidation, nil
}

// List devuelve las liquidaciones de un propietario, o todas si owner
// es 0
func (s *LiquidationService) List(ctx context.Context, ownerID uint) ([]models.Liquidation, error) {
	query := s.db.WithContext(ctx).Preload("Owner").Order("created_at DESC")
	if ownerID != 0 {
		query = query.Where("owner_id = ?", ownerID)
	}
	var liquidations []models.Liquidation
	if err := query.Find(&liquidations).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Error al listar las liquidaciones", err)
	}
	return liquidations, nil
}

// loadScope resuelve el ámbito (grupo, unidades o configuración
// antigua) y carga reservas y gastos del periodo aún sin liquidar.
func (s *LiquidationService) loadScope(ctx context.Context, db *gorm.DB, q *dto.LiquidationQuery) (*scopeData, error) {
	data := &scopeData{}
	data.scope.Defaults = s.defaults

	var owner models.PropertyOwner
	if err := db.WithContext(ctx).First(&owner, q.OwnerID).Error; err == nil {
		data.scope.Owner = &owner
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Error al consultar el propietario", err)
	}

	periodStart := time.Date(q.Year, time.Month(q.Month), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, 0)

	reservations := db.WithContext(ctx).
		Preload("BillingUnit").Preload("BillingUnit.Group").Preload("PropertyConfig").
		Where("status IN ?", []int{constants.ReservationStatusConfirmed, constants.ReservationStatusCompleted}).
		Where("check_in_date >= ? AND check_in_date < ?", periodStart, periodEnd).
		Where("liquidation_id IS NULL")

	expenses := db.WithContext(ctx).
		Where("date >= ? AND date < ?", periodStart, periodEnd).
		Where("charge_to_owner = ?", true).
		Where("liquidation_id IS NULL")

	switch {
	case q.Mode == constants.LiquidationModeGroup && q.GroupID != nil:
		var group models.BillingUnitGroup
		if err := db.WithContext(ctx).Preload("Units").First(&group, *q.GroupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NewAppError(apperrors.ErrCodeNotFound, "Grupo no encontrado", apperrors.ErrGroupNotFound)
			}
			return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Error al consultar el grupo", err)
		}
		if err := ensureGroupOwned(&group, q.OwnerID); err != nil {
			return nil, err
		}
		data.scope.Group = &group
		data.scope.Units = group.Units

		ids := make([]uint, 0, len(group.Units))
		for _, u := range group.Units {
			ids = append(ids, u.ID)
		}
		q.UnitIDs = ids
		reservations = reservations.Where("billing_unit_id IN ?", ids)
		expenses = expenses.Where("billing_unit_id IN ?", ids)

	case len(q.UnitIDs) > 0:
		var units []models.BillingUnit
		if err := db.WithContext(ctx).Preload("Group").Where("id IN ?", q.UnitIDs).Find(&units).Error; err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Error al consultar los alojamientos", err)
		}
		if len(units) != len(q.UnitIDs) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeNotFound, "Alguno de los alojamientos no existe", apperrors.ErrUnitNotFound)
		}
		if err := ensureUnitsOwned(units, q.OwnerID); err != nil {
			return nil, err
		}
		data.scope.Units = units
		reservations = reservations.Where("billing_unit_id IN ?", q.UnitIDs)
		expenses = expenses.Where("billing_unit_id IN ?", q.UnitIDs)

	default:
		// Sin unidades: ámbito de configuración antigua del propietario
		var configs []models.PropertyBillingConfig
		if err := db.WithContext(ctx).Where("owner_id = ?", q.OwnerID).Find(&configs).Error; err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Error al consultar la configuración", err)
		}
		if len(configs) > 0 {
			data.scope.Config = &configs[0]
		}
		ids := make([]uint, 0, len(configs))
		for _, c := range configs {
			ids = append(ids, c.ID)
		}
		reservations = reservations.Where("property_config_id IN ?", ids)
		expenses = expenses.Where("property_config_id IN ?", ids)
	}

	if err := reservations.Find(&data.reservations).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Error al consultar las reservas", err)
	}
	if err := expenses.Find(&data.expenses).Error; err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Error al consultar los gastos", err)
	}
	return data, nil
}

// ensureGroupOwned comprueba que el grupo pertenece al propietario que
// se liquida; un grupo ajeno no debe liquidarse bajo su retención.
func ensureGroupOwned(group *models.BillingUnitGroup, ownerID uint) error {
	if group.OwnerID != ownerID {
		return apperrors.NewAppError(apperrors.ErrCodeNotFound, "El grupo no pertenece al propietario", apperrors.ErrGroupNotFound)
	}
	return nil
}

// ensureUnitsOwned comprueba que todos los alojamientos del ámbito
// pertenecen al propietario que se liquida.
func ensureUnitsOwned(units []models.BillingUnit, ownerID uint) error {
	for i := range units {
		if units[i].OwnerID != ownerID {
			return apperrors.NewAppError(apperrors.ErrCodeNotFound,
				fmt.Sprintf("El alojamiento %q no pertenece al propietario", units[i].Name),
				apperrors.ErrUnitNotFound)
		}
	}
	return nil
}

// claimRecords marca los registros con el id de liquidación
// comprobando que nadie los reclamó entre la lectura y el marcado.
func claimRecords(tx *gorm.DB, model interface{}, ids []uint, liquidationID uint) error {
	if len(ids) == 0 {
		return nil
	}
	update := tx.Model(model).
		Where("id IN ? AND liquidation_id IS NULL", ids).
		Update("liquidation_id", liquidationID)
	if update.Error != nil {
		return apperrors.NewAppError(apperrors.ErrCodeDBError, "Error al marcar los registros liquidados", update.Error)
	}
	if update.RowsAffected != int64(len(ids)) {
		return apperrors.NewAppError(apperrors.ErrCodeConflict,
			fmt.Sprintf("Otra liquidación en curso reclamó %d registros, vuelva a intentarlo", int64(len(ids))-update.RowsAffected),
			apperrors.ErrAlreadySettled)
	}
	return nil
}

func reservationIDs(reservations []models.Reservation) []uint {
	ids := make([]uint, 0, len(reservations))
	for _, r := range reservations {
		ids = append(ids, r.ID)
	}
	return ids
}

func expenseIDs(expenses []models.Expense) []uint {
	ids := make([]uint, 0, len(expenses))
	for _, e := range expenses {
		ids = append(ids, e.ID)
	}
	return ids
}

func buildPreview(data *scopeData, result SettlementResult) *dto.LiquidationPreview {
	preview := &dto.LiquidationPreview{
		Reservations: data.reservations,
		Expenses:     data.expenses,
		Totals: dto.LiquidationTotals{
			TotalIncome:        result.TotalIncome,
			TotalCommission:    result.TotalCommission,
			TotalCommissionVAT: result.TotalCommissionVAT,
			TotalCleaning:      result.TotalCleaning,
			TotalExpenses:      result.TotalExpenses,
			TotalRetention:     result.TotalRetention,
			TotalAmount:        result.TotalAmount,
			OwnerPaysManager:   result.OwnerPaysManager,
		},
		Commission: dto.CommissionInfo{
			Type:    result.ScopeRules.CommissionType,
			Value:   result.ScopeRules.CommissionValue,
			VATRate: result.ScopeRules.CommissionVATRate,
		},
		Retention: dto.RetentionInfo{
			Rate: result.RetentionRate,
		},
		IncomeReceiver: result.IncomeReceiver,
		ByUnit:         []dto.UnitBreakdown{},
	}
	if data.scope.Owner != nil {
		preview.Retention.OwnerType = data.scope.Owner.Type
	}
	if preview.Reservations == nil {
		preview.Reservations = []models.Reservation{}
	}
	if preview.Expenses == nil {
		preview.Expenses = []models.Expense{}
	}
	for _, b := range result.ByUnit {
		preview.ByUnit = append(preview.ByUnit, dto.UnitBreakdown{
			UnitID:           b.UnitID,
			Name:             b.Name,
			ReservationCount: b.ReservationCount,
			Income:           b.Income,
		})
	}
	return preview
}
