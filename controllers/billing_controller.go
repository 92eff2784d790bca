package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"vacarent/constants"
	"vacarent/dto"
	"vacarent/models"
	"vacarent/response"
	"vacarent/validator"
)

type BillingController struct {
	DB *gorm.DB
}

func NewBillingController(db *gorm.DB) *BillingController {
	return &BillingController{DB: db}
}

// GetUnits lista los alojamientos con su grupo y propietario
func (ctl *BillingController) GetUnits(c *gin.Context) {
	query := ctl.DB.Preload("Owner").Preload("Group")
	if ownerStr := c.Query("ownerId"); ownerStr != "" {
		ownerID, err := strconv.ParseUint(ownerStr, 10, 32)
		if err != nil {
			response.BadRequest(c, "El identificador de propietario no es válido")
			return
		}
		query = query.Where("owner_id = ?", ownerID)
	}

	var units []models.BillingUnit
	if err := query.Find(&units).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, units)
}

// CreateUnit da de alta un alojamiento
func (ctl *BillingController) CreateUnit(c *gin.Context) {
	var req dto.BillingUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Payload no válido")
		return
	}
	if err := validator.ValidateUnit(&req); err != nil {
		response.FromError(c, err)
		return
	}

	var owner models.PropertyOwner
	if err := ctl.DB.First(&owner, req.OwnerID).Error; err != nil {
		response.NotFound(c, "Propietario no encontrado")
		return
	}

	unit := models.BillingUnit{
		Name:              req.Name,
		Address:           req.Address,
		OwnerID:           req.OwnerID,
		GroupID:           req.GroupID,
		CommissionType:    req.CommissionType,
		CommissionValue:   req.CommissionValue,
		CommissionVATRate: req.CommissionVATRate,
		CleaningType:      req.CleaningType,
		CleaningValue:     req.CleaningValue,
		MonthlyFee:        req.MonthlyFee,
		MonthlyFeeVATRate: req.MonthlyFeeVATRate,
		IncomeReceiver:    req.IncomeReceiver,
	}
	if err := ctl.DB.Create(&unit).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, unit)
}

// UpdateUnit modifica las reglas propias de un alojamiento
func (ctl *BillingController) UpdateUnit(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "El identificador no es válido")
		return
	}

	var unit models.BillingUnit
	if err := ctl.DB.First(&unit, uint(id)).Error; err != nil {
		response.NotFound(c, "Alojamiento no encontrado")
		return
	}

	var req dto.BillingUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Payload no válido")
		return
	}
	if err := validator.ValidateUnit(&req); err != nil {
		response.FromError(c, err)
		return
	}

	unit.Name = req.Name
	unit.Address = req.Address
	unit.OwnerID = req.OwnerID
	unit.GroupID = req.GroupID
	unit.CommissionType = req.CommissionType
	unit.CommissionValue = req.CommissionValue
	unit.CommissionVATRate = req.CommissionVATRate
	unit.CleaningType = req.CleaningType
	unit.CleaningValue = req.CleaningValue
	unit.MonthlyFee = req.MonthlyFee
	unit.MonthlyFeeVATRate = req.MonthlyFeeVATRate
	unit.IncomeReceiver = req.IncomeReceiver

	if err := ctl.DB.Save(&unit).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, unit)
}

// GetGroups lista los grupos con sus unidades
func (ctl *BillingController) GetGroups(c *gin.Context) {
	var groups []models.BillingUnitGroup
	if err := ctl.DB.Preload("Units").Find(&groups).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, groups)
}

// CreateGroup da de alta un grupo de alojamientos
func (ctl *BillingController) CreateGroup(c *gin.Context) {
	var req dto.BillingGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Payload no válido")
		return
	}
	if err := validator.ValidateChargeType(req.CommissionType, false); err != nil {
		response.FromError(c, err)
		return
	}
	if err := validator.ValidateChargeType(req.CleaningType, true); err != nil {
		response.FromError(c, err)
		return
	}

	group := models.BillingUnitGroup{
		Name:              req.Name,
		OwnerID:           req.OwnerID,
		CommissionType:    req.CommissionType,
		CommissionValue:   req.CommissionValue,
		CommissionVATRate: req.CommissionVATRate,
		CleaningType:      req.CleaningType,
		CleaningValue:     req.CleaningValue,
		MonthlyFee:        req.MonthlyFee,
		MonthlyFeeVATRate: req.MonthlyFeeVATRate,
		IncomeReceiver:    req.IncomeReceiver,
	}
	if err := ctl.DB.Create(&group).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, group)
}

// GetOwners lista los propietarios
func (ctl *BillingController) GetOwners(c *gin.Context) {
	var owners []models.PropertyOwner
	if err := ctl.DB.Find(&owners).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, owners)
}

// CreateOwner da de alta un propietario
func (ctl *BillingController) CreateOwner(c *gin.Context) {
	var req dto.OwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Payload no válido")
		return
	}
	if err := validator.ValidateOwner(&req); err != nil {
		response.FromError(c, err)
		return
	}

	ownerType := req.Type
	if ownerType == "" {
		ownerType = constants.OwnerTypePersonaFisica
	}

	owner := models.PropertyOwner{
		Name:          req.Name,
		Email:         req.Email,
		TaxID:         req.TaxID,
		Type:          ownerType,
		RetentionRate: req.RetentionRate,
		IBAN:          req.IBAN,
	}
	if err := ctl.DB.Create(&owner).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, owner)
}
