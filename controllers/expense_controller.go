package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"vacarent/dto"
	"vacarent/models"
	"vacarent/response"
	"vacarent/validator"
)

type ExpenseController struct {
	DB *gorm.DB
}

func NewExpenseController(db *gorm.DB) *ExpenseController {
	return &ExpenseController{DB: db}
}

// GetExpenses lista gastos, filtrables por alojamiento y por estado de
// liquidación
func (ctl *ExpenseController) GetExpenses(c *gin.Context) {
	query := ctl.DB.Preload("BillingUnit").Order("date DESC")

	if unitStr := c.Query("unitId"); unitStr != "" {
		unitID, err := strconv.ParseUint(unitStr, 10, 32)
		if err != nil {
			response.BadRequest(c, "El identificador de alojamiento no es válido")
			return
		}
		query = query.Where("billing_unit_id = ?", unitID)
	}
	if c.Query("pending") == "true" {
		query = query.Where("liquidation_id IS NULL")
	}

	var expenses []models.Expense
	if err := query.Find(&expenses).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, expenses)
}

// CreateExpense da de alta un gasto de explotación
func (ctl *ExpenseController) CreateExpense(c *gin.Context) {
	var req dto.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Payload no válido")
		return
	}

	date, err := validator.ValidateExpense(&req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	chargeToOwner := true
	if req.ChargeToOwner != nil {
		chargeToOwner = *req.ChargeToOwner
	}

	expense := models.Expense{
		Concept:          req.Concept,
		Amount:           req.Amount,
		VATAmount:        req.VATAmount,
		Date:             date,
		ChargeToOwner:    chargeToOwner,
		BillingUnitID:    req.BillingUnitID,
		PropertyConfigID: req.PropertyConfigID,
	}
	if err := ctl.DB.Create(&expense).Error; err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, expense)
}
