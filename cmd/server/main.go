package main

import (
	"log"

	"cadastro/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"cadastro/internal/auth"
	"cadastro/internal/config"
	"cadastro/internal/db"
	"cadastro/internal/handler"
	"cadastro/internal/model"
	"cadastro/internal/repository"
	"cadastro/internal/router"
	"cadastro/internal/service"
)

// @title Cadastro API
// @version 1.0
// @description User and address registry with JWT authentication and ownership checks.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Address{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	addressRepo := repository.NewAddressRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenExpiry)

	// Initialize services
	userService := service.NewUserService(userRepo)
	addressService := service.NewAddressService(addressRepo, userRepo)
	authService := service.NewAuthService(userRepo, jwtService)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService)
	addressHandler := handler.NewAddressHandler(addressService)
	authHandler := handler.NewAuthHandler(authService)

	// Register routes
	router.Register(e, cfg, userHandler, addressHandler, authHandler)

	log.Printf("starting server on :%s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("server: %v", err)
	}
}
