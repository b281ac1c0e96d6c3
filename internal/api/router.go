package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/planejaula/planejaula-api/internal/api/handler"
	"github.com/planejaula/planejaula-api/internal/api/middleware"
	"github.com/planejaula/planejaula-api/internal/core/service"
	"github.com/planejaula/planejaula-api/internal/infrastructure/config"
	mongodb "github.com/planejaula/planejaula-api/internal/infrastructure/db/mongo"
	redisdb "github.com/planejaula/planejaula-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("planejaula"))
	e.Use(echomiddleware.CORSWithConfig(corsConfig(cfg)))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	lessonRepo := mongodb.NewLessonRepository(db)
	statsCache := redisdb.NewStatsCache(rdb)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 0)
	lessonService := service.NewLessonService(lessonRepo, statsCache, log)

	authHandler := handler.NewAuthHandler(authService)
	lessonHandler := handler.NewLessonHandler(lessonService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	authGuard := middleware.Auth(cfg.JWTSecret, userRepo)

	// --- Public routes ---
	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/profile", authHandler.Profile, authGuard)

	// --- Lesson routes (all behind the auth gate) ---
	lessons := e.Group("/api/lessons", authGuard)
	lessons.GET("", lessonHandler.List)
	lessons.POST("", lessonHandler.Create)
	lessons.GET("/stats", lessonHandler.Stats)
	lessons.GET("/:id", lessonHandler.Get)
	lessons.PUT("/:id", lessonHandler.Update)
	lessons.DELETE("/:id", lessonHandler.Delete)

	return e
}

// corsConfig builds the CORS policy from configuration. Accepting all origins
// is an explicit opt-in, never a fallback.
func corsConfig(cfg *config.Config) echomiddleware.CORSConfig {
	if cfg.CORSAllowAll {
		return echomiddleware.CORSConfig{AllowOrigins: []string{"*"}}
	}
	return echomiddleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}
}
