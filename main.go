package main

import (
	"log"
	"net/http"
	"time"

	"github.com/picbingo/bingo-backend/catalog"
	"github.com/picbingo/bingo-backend/config"
	"github.com/picbingo/bingo-backend/controllers"
	"github.com/picbingo/bingo-backend/routes"
	"github.com/picbingo/bingo-backend/services"
	"github.com/picbingo/bingo-backend/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// setupRouter initializes Gin routes and middleware
func setupRouter(cfg *config.AppConfig, api *controllers.API, coordinator *services.Coordinator, hub *services.Hub) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Host-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, api)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	// WebSocket session endpoint
	r.GET("/ws/:code", services.WSHandler(coordinator, hub))

	return r
}

func main() {
	cfg := config.Load()

	db := config.SetupDatabase(cfg.DatabaseURL)

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("[FATAL] Failed to load image catalog: %v", err)
	}
	log.Printf("Loaded %d catalog images", cat.Len())

	hub := services.NewHub()
	coordinator := services.NewCoordinator(store.NewGorm(db), hub, cat)
	api := controllers.New(coordinator)

	router := setupRouter(cfg, api, coordinator, hub)

	log.Printf("Bingo backend server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("[FATAL] Failed to start server: %v", err)
	}
}
