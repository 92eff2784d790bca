package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "vacarent/errors"
	"vacarent/models"
	"vacarent/services/logger"
)

// RowError es el error de una fila concreta del fichero; no aborta el
// lote. Row es 1-based y cuenta la cabecera.
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
	Data  Row    `json:"data,omitempty"`
}

// ImportResult es el resumen de una importación completa.
type ImportResult struct {
	TotalRows      int        `json:"totalRows"`
	ImportedCount  int        `json:"importedCount"`
	SkippedCount   int        `json:"skippedCount"`
	ErrorCount     int        `json:"errorCount"`
	Errors         []RowError `json:"errors"`
	UnmatchedUnits []string   `json:"unmatchedUnits"`
	Warnings       []string   `json:"warnings,omitempty"`
}

// ImportOptions son los parámetros de una importación.
type ImportOptions struct {
	Filename       string
	Data           []byte
	DefaultUnitID  *uint
	SkipDuplicates bool
	UserID         *uint
}

// ImportStore abstrae la persistencia que necesita el orquestador.
type ImportStore interface {
	Properties() ([]Property, error)
	UnitByID(id uint) (*models.BillingUnit, error)
	ConfigByID(id uint) (*models.PropertyBillingConfig, error)
	IsDuplicate(platform, code string, unitID, configID *uint) (bool, error)
	SaveReservation(r *models.Reservation) error
	SaveLog(l *models.ImportLog) error
}

// ImportServiceOptions son las dependencias del servicio
type ImportServiceOptions struct {
	DB       *gorm.DB
	Logger   logger.Logger
	Defaults BillingDefaults
}

type ImportService struct {
	store    ImportStore
	log      logger.Logger
	defaults BillingDefaults
	now      func() time.Time
}

func NewImportService(opts ImportServiceOptions) *ImportService {
	return &ImportService{
		store:    &gormImportStore{db: opts.DB},
		log:      opts.Logger,
		defaults: opts.Defaults,
		now:      time.Now,
	}
}

// newImportServiceWithStore permite inyectar un store falso en tests
func newImportServiceWithStore(store ImportStore, log logger.Logger, defaults BillingDefaults) *ImportService {
	return &ImportService{store: store, log: log, defaults: defaults, now: time.Now}
}

// ImportReservations procesa el fichero fila a fila. Los fallos de fila
// se acumulan en el resultado; solo un fichero ilegible o la falta
// total de alojamientos configurados abortan la importación. El
// registro de auditoría se guarda siempre.
func (s *ImportService) ImportReservations(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{
		Errors:         []RowError{},
		UnmatchedUnits: []string{},
	}

	source := "CSV"
	lower := strings.ToLower(opts.Filename)
	if strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xls") {
		source = "XLSX"
	}

	rows, err := NormalizeFile(opts.Filename, opts.Data)
	if err != nil {
		s.saveLog(opts, source, result)
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "No se pudo leer el fichero: "+err.Error(), err)
	}
	result.TotalRows = len(rows)

	properties, err := s.store.Properties()
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeDBError, "Error al cargar los alojamientos", err)
	}

	var defaultProperty *Property
	if opts.DefaultUnitID != nil {
		for i := range properties {
			if properties[i].UnitID != nil && *properties[i].UnitID == *opts.DefaultUnitID {
				defaultProperty = &properties[i]
				break
			}
		}
		if defaultProperty == nil {
			return nil, apperrors.NewAppError(apperrors.ErrCodeNotFound, "El alojamiento por defecto no existe", apperrors.ErrUnitNotFound)
		}
	}

	matcher := NewUnitMatcher(properties)
	unmatched := make(map[string]bool)
	now := s.now()

	for i, row := range rows {
		// fila 1 es la cabecera
		rowNumber := i + 2

		if err := s.importRow(row, matcher, defaultProperty, opts, unmatched, result, now); err != nil {
			result.Errors = append(result.Errors, RowError{Row: rowNumber, Error: err.Error(), Data: row})
			result.ErrorCount++
		}
	}

	for label := range unmatched {
		result.UnmatchedUnits = append(result.UnmatchedUnits, label)
	}
	sort.Strings(result.UnmatchedUnits)

	s.saveLog(opts, source, result)
	s.log.Info("importación %s: %d filas, %d importadas, %d omitidas, %d con error",
		opts.Filename, result.TotalRows, result.ImportedCount, result.SkippedCount, result.ErrorCount)

	return result, nil
}

func (s *ImportService) importRow(row Row, matcher *UnitMatcher, defaultProperty *Property, opts ImportOptions, unmatched map[string]bool, result *ImportResult, now time.Time) error {
	imported, skip, err := MapRow(row, now)
	if err != nil {
		return err
	}
	if skip {
		result.SkippedCount++
		return nil
	}
	for _, w := range imported.Warnings {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %s", imported.ConfirmationCode, w))
	}

	property := defaultProperty
	if imported.UnitLabel = strings.TrimSpace(imported.UnitLabel); imported.UnitLabel != "" {
		if matched := matcher.Match(imported.UnitLabel); matched != nil {
			property = matched
		} else {
			unmatched[imported.UnitLabel] = true
		}
	}
	if property == nil {
		if defaultProperty == nil && len(matcher.properties) == 0 {
			return apperrors.ErrNoProperties
		}
		return fmt.Errorf("no se encontró alojamiento para %q", imported.UnitLabel)
	}

	if opts.SkipDuplicates {
		dup, err := s.store.IsDuplicate(imported.Platform, imported.ConfirmationCode, property.UnitID, property.ConfigID)
		if err != nil {
			return err
		}
		if dup {
			result.SkippedCount++
			return nil
		}
	}

	reservation, err := s.buildReservation(imported, property)
	if err != nil {
		return err
	}

	if err := s.store.SaveReservation(reservation); err != nil {
		return err
	}
	result.ImportedCount++
	return nil
}

// buildReservation monta el modelo persistible con el reparto
// económico calculado en el momento de la importación.
func (s *ImportService) buildReservation(imported *ImportedReservation, property *Property) (*models.Reservation, error) {
	reservation := &models.Reservation{
		ConfirmationCode: imported.ConfirmationCode,
		GuestName:        imported.GuestName,
		CheckInDate:      imported.CheckIn,
		CheckOutDate:     imported.CheckOut,
		Nights:           imported.Nights,
		Platform:         imported.Platform,
		Status:           imported.Status,
		HostEarnings:     imported.HostEarnings,
		Currency:         imported.Currency,
		BillingUnitID:    property.UnitID,
		PropertyConfigID: property.ConfigID,
	}
	if imported.CleaningFee.IsPositive() {
		fee := imported.CleaningFee
		reservation.CleaningFee = &fee
	}

	// En la importación solo cuentan las reglas propias del alojamiento
	// casado; el grupo es un concepto de liquidación.
	var rules RuleSet
	switch {
	case property.UnitID != nil:
		unit, err := s.store.UnitByID(*property.UnitID)
		if err != nil {
			return nil, err
		}
		bare := *unit
		bare.Group = nil
		rules = ResolveRules(&bare, nil, nil, s.defaults)
	case property.ConfigID != nil:
		config, err := s.store.ConfigByID(*property.ConfigID)
		if err != nil {
			return nil, err
		}
		rules = ResolveRules(nil, nil, config, s.defaults)
	default:
		rules = ResolveRules(nil, nil, nil, s.defaults)
	}

	cleaning := rules.CleaningFor(reservation)
	accommodationEarnings := imported.HostEarnings.Sub(cleaning)
	// El redondeo a 2 decimales se hace en el reparto, no antes
	manager := rules.CommissionOn(accommodationEarnings).Round(2)
	owner := imported.HostEarnings.Sub(manager).Round(2)

	reservation.ManagerAmount = manager
	reservation.OwnerAmount = owner
	return reservation, nil
}

func (s *ImportService) saveLog(opts ImportOptions, source string, result *ImportResult) {
	errorsJSON, _ := json.Marshal(result.Errors)
	unmatchedJSON, _ := json.Marshal(result.UnmatchedUnits)

	entry := &models.ImportLog{
		Filename:       opts.Filename,
		Source:         source,
		TotalRows:      result.TotalRows,
		ImportedCount:  result.ImportedCount,
		SkippedCount:   result.SkippedCount,
		ErrorCount:     result.ErrorCount,
		Errors:         errorsJSON,
		UnmatchedUnits: unmatchedJSON,
		DefaultUnitID:  opts.DefaultUnitID,
		UserID:         opts.UserID,
	}
	if err := s.store.SaveLog(entry); err != nil {
		s.log.Error("no se pudo guardar el registro de importación: %v", err)
	}
}

// gormImportStore es la implementación sobre la base de datos
type gormImportStore struct {
	db *gorm.DB
}

func (g *gormImportStore) Properties() ([]Property, error) {
	var units []models.BillingUnit
	if err := g.db.Find(&units).Error; err != nil {
		return nil, err
	}
	var configs []models.PropertyBillingConfig
	if err := g.db.Find(&configs).Error; err != nil {
		return nil, err
	}

	properties := make([]Property, 0, len(units)+len(configs))
	for i := range units {
		id := units[i].ID
		properties = append(properties, Property{UnitID: &id, Name: units[i].Name})
	}
	for i := range configs {
		id := configs[i].ID
		properties = append(properties, Property{ConfigID: &id, Name: configs[i].PropertyName})
	}
	return properties, nil
}

func (g *gormImportStore) UnitByID(id uint) (*models.BillingUnit, error) {
	var unit models.BillingUnit
	if err := g.db.Preload("Group").First(&unit, id).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

func (g *gormImportStore) ConfigByID(id uint) (*models.PropertyBillingConfig, error) {
	var config models.PropertyBillingConfig
	if err := g.db.First(&config, id).Error; err != nil {
		return nil, err
	}
	return &config, nil
}

func (g *gormImportStore) IsDuplicate(platform, code string, unitID, configID *uint) (bool, error) {
	query := g.db.Model(&models.Reservation{}).
		Where("platform = ? AND confirmation_code = ?", platform, code)
	switch {
	case unitID != nil:
		query = query.Where("billing_unit_id = ?", *unitID)
	case configID != nil:
		query = query.Where("property_config_id = ?", *configID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (g *gormImportStore) SaveReservation(r *models.Reservation) error {
	return g.db.Create(r).Error
}

func (g *gormImportStore) SaveLog(l *models.ImportLog) error {
	return g.db.Create(l).Error
}
