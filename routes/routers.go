package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"vacarent/constants"
	"vacarent/controllers"
	middlewares "vacarent/middleware"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client) {

	authController := controllers.NewAuthController(db)
	importController := controllers.NewImportController(db, redisCli)
	liquidationController := controllers.NewLiquidationController(db, redisCli)
	billingController := controllers.NewBillingController(db)
	expenseController := controllers.NewExpenseController(db)

	manager := middlewares.AuthMiddleware(constants.RoleAdmin, constants.RoleManager)

	v1 := router.Group("/api/v1")

	v1.POST("/auth/login", authController.Login)

	v1.POST("/import/reservations", manager, importController.ImportReservations)
	v1.GET("/import/logs", manager, importController.GetImportLogs)

	v1.GET("/liquidations/preview", manager, liquidationController.Preview)
	v1.POST("/liquidations", manager, liquidationController.Create)
	v1.GET("/liquidations", manager, liquidationController.GetAll)
	v1.GET("/liquidations/:id", manager, liquidationController.GetByID)

	v1.GET("/units", manager, billingController.GetUnits)
	v1.POST("/units", manager, billingController.CreateUnit)
	v1.PUT("/units/:id", manager, billingController.UpdateUnit)
	v1.GET("/groups", manager, billingController.GetGroups)
	v1.POST("/groups", manager, billingController.CreateGroup)
	v1.GET("/owners", manager, billingController.GetOwners)
	v1.POST("/owners", manager, billingController.CreateOwner)

	v1.GET("/expenses", manager, expenseController.GetExpenses)
	v1.POST("/expenses", manager, expenseController.CreateExpense)
}
