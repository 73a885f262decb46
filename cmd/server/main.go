package main

import (
	"log"
	"net/http"
	"os"

	_ "blizzint/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"blizzint/internal/auth"
	"blizzint/internal/cache"
	"blizzint/internal/config"
	"blizzint/internal/db"
	"blizzint/internal/handler"
	"blizzint/internal/model"
	"blizzint/internal/repository"
	"blizzint/internal/router"
	"blizzint/internal/service"
)

// @title Blizzint API
// @version 1.0
// @description Ski resort browsing API with geospatial nearby search, JWT authentication, and admin management.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.Resort{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Resort{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	// Location geography column, sync trigger, and GIST index
	if err := db.EnsurePostGIS(gormDB); err != nil {
		log.Fatalf("postgis setup: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	resortRepo := repository.NewResortRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiry)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	resortService := service.NewResortService(resortRepo, cacheClient)
	userService := service.NewUserService(userRepo)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(gormDB)
	authHandler := handler.NewAuthHandler(authService)
	resortHandler := handler.NewResortHandler(resortService)
	userHandler := handler.NewUserHandler(userService)

	// Register routes
	router.Register(
		e,
		cfg,
		healthHandler,
		authHandler,
		resortHandler,
		userHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
