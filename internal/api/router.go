package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/repairshop/technotes/docs"
	"github.com/repairshop/technotes/internal/api/handler"
	"github.com/repairshop/technotes/internal/api/middleware"
	"github.com/repairshop/technotes/internal/core/domain"
	"github.com/repairshop/technotes/internal/core/ports"
	"github.com/repairshop/technotes/internal/core/service"
	"github.com/repairshop/technotes/internal/infrastructure/config"
	mongorepo "github.com/repairshop/technotes/internal/infrastructure/db/mongo"
	redisinfra "github.com/repairshop/technotes/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, audit ports.AuditSink, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("technotes"))

	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(db)
	noteRepo := mongorepo.NewNoteRepository(db)
	userService := service.NewUserService(userRepo, noteRepo, audit, log)
	noteService := service.NewNoteService(noteRepo, userRepo, audit, log)
	userHandler := handler.NewUserHandler(userService)
	noteHandler := handler.NewNoteHandler(noteService)

	rateLimit := middleware.RateLimit(redisinfra.NewRateLimiter(rdb), cfg.RateLimitPerMinute, log)

	// --- User directory routes ---
	users := e.Group("/users")
	if cfg.JWTSecret != "" {
		users.Use(middleware.Auth(cfg.JWTSecret))
		users.Use(middleware.RBAC(domain.RoleManager, domain.RoleAdmin))
	}
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create, rateLimit)
	users.PATCH("", userHandler.Update, rateLimit)
	users.DELETE("", userHandler.Delete, rateLimit)

	// --- Note ledger routes ---
	notes := e.Group("/notes")
	if cfg.JWTSecret != "" {
		notes.Use(middleware.Auth(cfg.JWTSecret))
	}
	notes.GET("", noteHandler.List)
	notes.POST("", noteHandler.Create, rateLimit)
	notes.PATCH("", noteHandler.Update, rateLimit)
	notes.DELETE("", noteHandler.Delete, rateLimit)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
