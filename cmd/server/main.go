package main

import (
	"net/http"

	"github.com/Negp05/twittor-listas/internal/config"
	"github.com/Negp05/twittor-listas/internal/database"
	"github.com/Negp05/twittor-listas/internal/handler"
	"github.com/Negp05/twittor-listas/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	// Swagger imports
	_ "github.com/Negp05/twittor-listas/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
	logger.Init(config.AppConfig.LogLevel)
}

// @title           Twittor API
// @version         1.0
// @description     This is the API for the Twittor micro-blogging service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	handler.RegisterRoutes(router.Group("/api/v1"))

	logger.Log.Info("server listening",
		zap.String("addr", ":8080"),
		zap.String("swagger", "http://localhost:8080/swagger/index.html"))
	if err := router.Run(":8080"); err != nil {
		logger.Log.Fatal("server stopped", zap.Error(err))
	}
}
