package validator

import (
	"strconv"
	"strings"
	"time"

	"vacarent/constants"
	"vacarent/dto"
	"vacarent/errors"
)

// ValidateLiquidationQuery comprueba los parámetros de previa y
// generación antes de tocar la base de datos.
func ValidateLiquidationQuery(ownerID, year, month, mode, groupID, unitIDs string) (dto.LiquidationQuery, error) {
	var q dto.LiquidationQuery

	if ownerID == "" {
		return q, errors.NewAppError(errors.ErrCodeRequiredField, "El propietario es obligatorio", nil)
	}
	owner, err := strconv.ParseUint(ownerID, 10, 32)
	if err != nil {
		return q, errors.NewAppError(errors.ErrCodeInvalidFormat, "El identificador de propietario no es válido", err)
	}
	q.OwnerID = uint(owner)

	y, err := strconv.Atoi(year)
	if err != nil || y < 2000 || y > 2100 {
		return q, errors.NewAppError(errors.ErrCodeInvalidFormat, "El año no es válido", err)
	}
	q.Year = y

	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return q, errors.NewAppError(errors.ErrCodeInvalidFormat, "El mes no es válido", err)
	}
	q.Month = m

	switch mode {
	case "", constants.LiquidationModeIndividual:
		q.Mode = constants.LiquidationModeIndividual
	case constants.LiquidationModeGroup:
		q.Mode = constants.LiquidationModeGroup
	default:
		return q, errors.NewAppError(errors.ErrCodeValidation, "El modo debe ser GROUP o INDIVIDUAL", nil)
	}

	if q.Mode == constants.LiquidationModeGroup {
		if groupID == "" {
			return q, errors.NewAppError(errors.ErrCodeRequiredField, "El grupo es obligatorio en modo GROUP", nil)
		}
		g, err := strconv.ParseUint(groupID, 10, 32)
		if err != nil {
			return q, errors.NewAppError(errors.ErrCodeInvalidFormat, "El identificador de grupo no es válido", err)
		}
		gid := uint(g)
		q.GroupID = &gid
	} else if unitIDs != "" {
		for _, part := range strings.Split(unitIDs, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseUint(part, 10, 32)
			if err != nil {
				return q, errors.NewAppError(errors.ErrCodeInvalidFormat, "La lista de alojamientos no es válida", err)
			}
			q.UnitIDs = append(q.UnitIDs, uint(id))
		}
	}

	return q, nil
}

// ValidateOwner comprueba el alta de un propietario
func ValidateOwner(req *dto.OwnerRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "El nombre no puede estar vacío", nil)
	}
	switch req.Type {
	case "", constants.OwnerTypePersonaFisica, constants.OwnerTypeEmpresa:
	default:
		return errors.NewAppError(errors.ErrCodeValidation, "El tipo debe ser PERSONA_FISICA o EMPRESA", nil)
	}
	if req.RetentionRate != nil && (*req.RetentionRate < 0 || *req.RetentionRate > 100) {
		return errors.NewAppError(errors.ErrCodeValidation, "La retención debe estar entre 0 y 100", nil)
	}
	return nil
}

// ValidateChargeType comprueba un tipo de cargo opcional
func ValidateChargeType(value *string, perNightAllowed bool) error {
	if value == nil || *value == "" {
		return nil
	}
	switch *value {
	case constants.ChargeTypePercentage, constants.ChargeTypeFixedPerReservation:
		return nil
	case constants.ChargeTypePerNight:
		if perNightAllowed {
			return nil
		}
	}
	return errors.NewAppError(errors.ErrCodeValidation, "Tipo de cargo no válido: "+*value, nil)
}

// ValidateUnit comprueba el alta de un alojamiento
func ValidateUnit(req *dto.BillingUnitRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "El nombre no puede estar vacío", nil)
	}
	if req.OwnerID == 0 {
		return errors.NewAppError(errors.ErrCodeRequiredField, "El propietario es obligatorio", nil)
	}
	if err := ValidateChargeType(req.CommissionType, false); err != nil {
		return err
	}
	if err := ValidateChargeType(req.CleaningType, true); err != nil {
		return err
	}
	if req.IncomeReceiver != nil && *req.IncomeReceiver != "" &&
		*req.IncomeReceiver != constants.IncomeReceiverManager && *req.IncomeReceiver != constants.IncomeReceiverOwner {
		return errors.NewAppError(errors.ErrCodeValidation, "El receptor debe ser MANAGER u OWNER", nil)
	}
	return nil
}

// ValidateExpense comprueba el alta de un gasto y resuelve su fecha
func ValidateExpense(req *dto.ExpenseRequest) (time.Time, error) {
	if strings.TrimSpace(req.Concept) == "" {
		return time.Time{}, errors.NewAppError(errors.ErrCodeRequiredField, "El concepto no puede estar vacío", nil)
	}
	if req.Amount.IsNegative() || req.VATAmount.IsNegative() {
		return time.Time{}, errors.NewAppError(errors.ErrCodeValidation, "El importe no puede ser negativo", nil)
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return time.Time{}, errors.NewAppError(errors.ErrCodeInvalidFormat, "La fecha debe tener formato YYYY-MM-DD", err)
	}
	if req.BillingUnitID == nil && req.PropertyConfigID == nil {
		return time.Time{}, errors.NewAppError(errors.ErrCodeRequiredField, "El gasto debe imputarse a un alojamiento", nil)
	}
	if req.BillingUnitID != nil && req.PropertyConfigID != nil {
		return time.Time{}, errors.NewAppError(errors.ErrCodeValidation, "El gasto no puede imputarse a dos alojamientos", nil)
	}
	return date, nil
}
