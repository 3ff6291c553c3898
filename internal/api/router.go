package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/banco-obrero/comuna-api/docs"
	"github.com/banco-obrero/comuna-api/internal/api/handler"
	"github.com/banco-obrero/comuna-api/internal/api/middleware"
	"github.com/banco-obrero/comuna-api/internal/core/domain"
	"github.com/banco-obrero/comuna-api/internal/core/service"
	mongodb "github.com/banco-obrero/comuna-api/internal/infrastructure/db/mongo"
	redisdb "github.com/banco-obrero/comuna-api/internal/infrastructure/db/redis"
	"github.com/banco-obrero/comuna-api/internal/infrastructure/registry"
	"github.com/banco-obrero/comuna-api/internal/pkg/config"
)

// NewRouter wires the dependency graph and returns the Echo instance with
// all routes registered. The permission matrix is built here once and
// injected into the identity service and the authorization guards.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("comuna"))

	// --- Dependencies ---
	matrix := domain.NewPermissionMatrix()
	userRepo := mongodb.NewUserRepository(db)
	registryCache := redisdb.NewRegistryCache(rdb)
	registryClient := registry.NewClient(registry.Config{
		BaseURL: cfg.Registry.BaseURL,
		Timeout: cfg.Registry.Timeout,
	}, registryCache, log)

	identity := service.NewIdentityService(
		userRepo,
		registryClient,
		matrix,
		cfg.JWTSecret,
		time.Duration(cfg.TokenTTLSeconds)*time.Second,
		log,
	)

	authHandler := handler.NewAuthHandler(identity)
	adminHandler := handler.NewAdminHandler(userRepo)
	authMiddleware := middleware.Auth(cfg.JWTSecret)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/check-cedula", authHandler.CheckCedula)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/me", authHandler.Me, authMiddleware)

	// --- Admin routes ---
	admin := e.Group("/api/admin",
		authMiddleware,
		middleware.RequireRole(domain.RoleAdmin),
		middleware.RequirePermission(matrix, log, "user", "management", "global"),
	)
	admin.GET("/users", adminHandler.ListUsers)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
