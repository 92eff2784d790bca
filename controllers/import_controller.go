package controllers

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"vacarent/config"
	"vacarent/models"
	"vacarent/response"
	"vacarent/services"
	"vacarent/services/logger"
	"vacarent/utils"
)

type ImportController struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Service *services.ImportService
}

func NewImportController(db *gorm.DB, rdb *redis.Client) *ImportController {
	return &ImportController{
		DB:    db,
		Redis: rdb,
		Service: services.NewImportService(services.ImportServiceOptions{
			DB:       db,
			Logger:   logger.NewDefaultLogger(logger.InfoLevel),
			Defaults: services.DefaultBilling(),
		}),
	}
}

// ImportReservations recibe el fichero exportado de la OTA y lo vuelca
// como reservas. Los errores por fila van dentro del resultado.
func (ctl *ImportController) ImportReservations(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Falta el fichero a importar")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ServerError(c)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.ServerError(c)
		return
	}

	opts := services.ImportOptions{
		Filename:       fileHeader.Filename,
		Data:           data,
		SkipDuplicates: c.DefaultPostForm("skipDuplicates", "true") != "false",
	}

	if unitID := c.PostForm("defaultUnitId"); unitID != "" {
		id, err := strconv.ParseUint(unitID, 10, 32)
		if err != nil {
			response.BadRequest(c, "El alojamiento por defecto no es válido")
			return
		}
		uid := uint(id)
		opts.DefaultUnitID = &uid
	}

	if userID, exists := c.Get("userID"); exists {
		if id, ok := userID.(uint); ok {
			opts.UserID = &id
		}
	}

	result, err := ctl.Service.ImportReservations(c.Request.Context(), opts)
	if err != nil {
		response.FromError(c, err)
		return
	}

	// Las previas cacheadas quedan obsoletas con reservas nuevas
	if err := services.DeleteFromRedis(config.Ctx, ctl.Redis, "liquidation:preview:*"); err != nil {
		utils.LogError("no se pudo invalidar la cache de previas: %v", err)
	}

	response.Success(c, result)
}

// GetImportLogs lista el histórico de importaciones
func (ctl *ImportController) GetImportLogs(c *gin.Context) {
	page := 0
	limit := 10
	if pageStr := c.Query("page"); pageStr != "" {
		if parsed, err := strconv.Atoi(pageStr); err == nil && parsed >= 0 {
			page = parsed
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	var total int64
	if err := ctl.DB.Model(&models.ImportLog{}).Count(&total).Error; err != nil {
		response.ServerError(c)
		return
	}

	var logs []models.ImportLog
	if err := ctl.DB.Order("created_at DESC").Offset(page * limit).Limit(limit).Find(&logs).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.SuccessWithPagination(c, logs, page, limit, int(total))
}
