package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"vacarent/config"
	"vacarent/jobs"
	"vacarent/routes"
)

func migrateTables() {
	// if err := config.DB.AutoMigrate(&models.User{}, &models.PropertyOwner{}, &models.BillingUnitGroup{}, &models.BillingUnit{}, &models.PropertyBillingConfig{}, &models.Reservation{}, &models.Expense{}, &models.Liquidation{}, &models.ImportLog{}); err != nil {
	// 	panic("Failed to migrate tables: " + err.Error())
	// }
}

func main() {

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: no se pudo cargar el fichero .env, se usan las variables de entorno: %v", err)
	}

	router, c, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	migrateTables()

	if err := jobs.InitCronJobs(c, config.DB); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	routes.SetupRoutes(router, config.DB, config.RedisClient)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}

	log.Println("Server starting on port " + port + "...")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
