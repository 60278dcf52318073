package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/sunayp/medium-blog/backend/internal/auth"
	"github.com/sunayp/medium-blog/backend/internal/handlers"
	"github.com/sunayp/medium-blog/backend/internal/middleware"
	"github.com/sunayp/medium-blog/backend/internal/models"
	"github.com/sunayp/medium-blog/backend/internal/repositories"
	"github.com/sunayp/medium-blog/backend/pkg/logger"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, log logger.Logger) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			log.Info("request",
				logger.String("method", v.Method),
				logger.String("uri", v.URI),
				logger.Int("status", v.Status),
				logger.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
}

// SetupRoutes runs migrations, wires repositories and handlers, and
// registers all application routes
func SetupRoutes(e *echo.Echo, db *gorm.DB, tokens *auth.TokenService, log logger.Logger) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Bookmark{},
	)
	if err != nil {
		log.Fatal("auto migration failed", logger.Error(err))
	}
	log.Info("migrations completed")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	bookmarkRepo := repositories.NewPostgresBookmarkRepository(db)

	// Strict routes reject anonymous callers; soft routes resolve the
	// identity when present and continue as anonymous otherwise.
	strict := middleware.RequireAuth(tokens)
	soft := middleware.OptionalAuth(tokens)

	// --- User routes (signup/signin anonymous, profile strict) ---
	userGroup := e.Group("/api/v1/user")
	authHandler := handlers.NewAuthHandler(userRepo, tokens)
	authHandler.RegisterAuthRoutes(userGroup)

	userHandler := handlers.NewUserHandler(userRepo, postRepo, likeRepo)
	userHandler.RegisterProfileRoutes(userGroup, strict)
	log.Info("user routes configured")

	// --- Blog routes ---
	blogGroup := e.Group("/api/v1/blog")
	blogHandler := handlers.NewBlogHandler(postRepo, likeRepo, bookmarkRepo)
	blogHandler.RegisterBlogRoutes(blogGroup, strict, soft)

	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo)
	commentHandler.RegisterCommentRoutes(blogGroup, strict, soft)

	reactionHandler := handlers.NewReactionHandler(likeRepo, bookmarkRepo, postRepo)
	reactionHandler.RegisterReactionRoutes(blogGroup, strict)
	log.Info("blog routes configured")
}
