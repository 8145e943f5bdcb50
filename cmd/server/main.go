package main

import (
	"context"
	"log"
	"net/http"

	_ "bizdash/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"bizdash/internal/auth"
	"bizdash/internal/cache"
	"bizdash/internal/config"
	"bizdash/internal/db"
	"bizdash/internal/handler"
	"bizdash/internal/model"
	"bizdash/internal/repository"
	"bizdash/internal/router"
	"bizdash/internal/service"
)

// @title Business Dashboard API
// @version 1.0
// @description Business management dashboard backend with user CRUD and cookie-based JWT sessions.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, db.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	})
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.Printf("redis unreachable, user cache disabled: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)

	// Auth components
	tokenService := auth.NewTokenService(cfg.JWTSecret)
	cookieManager := auth.NewCookieManager(cfg.CookieSecure())
	routeGuard := auth.NewRouteGuard(tokenService, cookieManager)

	// Services
	authService := service.NewAuthService(userRepo, tokenService)
	userService := service.NewUserService(userRepo, cacheClient)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cookieManager)
	userHandler := handler.NewUserHandler(userService)

	router.Register(e, cfg, routeGuard, authHandler, userHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
