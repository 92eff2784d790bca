package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"vacarent/config"
	"vacarent/dto"
	"vacarent/response"
	"vacarent/services"
	"vacarent/services/logger"
	"vacarent/utils"
	"vacarent/validator"
)

type LiquidationController struct {
	Redis   *redis.Client
	Service *services.LiquidationService
}

func NewLiquidationController(db *gorm.DB, rdb *redis.Client) *LiquidationController {
	return &LiquidationController{
		Redis: rdb,
		Service: services.NewLiquidationService(services.LiquidationServiceOptions{
			DB:       db,
			Logger:   logger.NewDefaultLogger(logger.InfoLevel),
			Defaults: services.DefaultBilling(),
		}),
	}
}

func previewCacheKey(q dto.LiquidationQuery) string {
	group := uint(0)
	if q.GroupID != nil {
		group = *q.GroupID
	}
	return fmt.Sprintf("liquidation:preview:%d:%d:%d:%s:%d:%v", q.OwnerID, q.Year, q.Month, q.Mode, group, q.UnitIDs)
}

// Preview calcula la previa de liquidación. El resultado se cachea
// unos minutos porque el panel la repite mientras el gestor revisa.
func (ctl *LiquidationController) Preview(c *gin.Context) {
	q, err := validator.ValidateLiquidationQuery(
		c.Query("ownerId"), c.Query("year"), c.Query("month"),
		c.Query("mode"), c.Query("groupId"), c.Query("unitIds"),
	)
	if err != nil {
		response.FromError(c, err)
		return
	}

	cacheKey := previewCacheKey(q)
	var cached dto.LiquidationPreview
	if err := services.GetFromRedis(config.Ctx, ctl.Redis, cacheKey, &cached); err == nil && len(cached.Reservations)+len(cached.Expenses) > 0 {
		response.Success(c, cached)
		return
	}

	preview, err := ctl.Service.Preview(c.Request.Context(), q)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := services.SetToRedis(config.Ctx, ctl.Redis, cacheKey, preview, 5*time.Minute); err != nil {
		utils.LogError("no se pudo cachear la previa %s: %v", cacheKey, err)
	}

	response.Success(c, preview)
}

// Create genera la liquidación y marca sus reservas y gastos. Un
// conflicto con otra generación concurrente devuelve 409 y se puede
// reintentar.
func (ctl *LiquidationController) Create(c *gin.Context) {
	q, err := validator.ValidateLiquidationQuery(
		c.Query("ownerId"), c.Query("year"), c.Query("month"),
		c.Query("mode"), c.Query("groupId"), c.Query("unitIds"),
	)
	if err != nil {
		response.FromError(c, err)
		return
	}

	liquidation, err := ctl.Service.Generate(c.Request.Context(), q)
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := services.DeleteFromRedis(config.Ctx, ctl.Redis, "liquidation:preview:*"); err != nil {
		utils.LogError("no se pudo invalidar la cache de previas: %v", err)
	}

	response.Success(c, liquidation)
}

// GetAll lista liquidaciones, filtrables por propietario
func (ctl *LiquidationController) GetAll(c *gin.Context) {
	var ownerID uint
	if ownerStr := c.Query("ownerId"); ownerStr != "" {
		parsed, err := strconv.ParseUint(ownerStr, 10, 32)
		if err != nil {
			response.BadRequest(c, "El identificador de propietario no es válido")
			return
		}
		ownerID = uint(parsed)
	}

	liquidations, err := ctl.Service.List(c.Request.Context(), ownerID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, liquidations)
}

// GetByID devuelve el detalle de una liquidación
func (ctl *LiquidationController) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "El identificador no es válido")
		return
	}

	liquidation, err := ctl.Service.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, liquidation)
}
