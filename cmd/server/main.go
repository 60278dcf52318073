package main

import (
	"github.com/labstack/echo/v4"

	"github.com/sunayp/medium-blog/backend/internal/auth"
	"github.com/sunayp/medium-blog/backend/internal/router"
	"github.com/sunayp/medium-blog/backend/pkg/config"
	"github.com/sunayp/medium-blog/backend/pkg/logger"
	"github.com/sunayp/medium-blog/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New(cfg.LogLevel, cfg.PrettyLog)
	defer func() { _ = log.Sync() }()

	// Initialize database connection
	db, err := config.InitDB()
	if err != nil {
		log.Fatal("failed to initialize database", logger.Error(err))
	}
	defer db.CloseDB()

	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		log.Fatal("failed to initialize token service", logger.Error(err))
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Validator
	e.Validator = validators.NewValidator()

	// Setup global middleware
	router.SetupMiddleware(e, log)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, tokens, log)

	// Start server
	log.Info("starting server", logger.String("port", cfg.Port), logger.String("env", cfg.Env))
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", logger.Error(err))
	}
}
