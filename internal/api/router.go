package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/random-knowledge/knowledge-api/internal/api/handler"
	"github.com/random-knowledge/knowledge-api/internal/api/middleware"
	"github.com/random-knowledge/knowledge-api/internal/core/domain"
	"github.com/random-knowledge/knowledge-api/internal/core/ports"
	"github.com/random-knowledge/knowledge-api/internal/core/service"
	"github.com/random-knowledge/knowledge-api/internal/core/token"
	"github.com/random-knowledge/knowledge-api/internal/infrastructure/config"
	mongodb "github.com/random-knowledge/knowledge-api/internal/infrastructure/db/mongo"
	redisdb "github.com/random-knowledge/knowledge-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The route table below is the single place where the role policy is
// declared; it is fixed at startup.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, audit ports.AuditRecorder, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("knowledge"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)
	curiosityRepo := mongodb.NewCuriosityRepository(db)
	randomCache := redisdb.NewRandomCuriosityCache(rdb)

	codec := token.NewCodec(cfg.JWT.Secret, cfg.JWT.Issuer)
	authService := service.NewAuthService(userRepo, codec, audit, cfg.JWT.AccessTTL(), cfg.JWT.RefreshTTL(), log)
	userService := service.NewUserService(userRepo, audit, log)
	categoryService := service.NewCategoryService(categoryRepo, curiosityRepo, log)
	curiosityService := service.NewCuriosityService(curiosityRepo, categoryRepo, randomCache, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	curiosityHandler := handler.NewCuriosityHandler(curiosityService)

	// Identity is resolved once per request; role gates run per route.
	e.Use(middleware.Authenticate(authService, userRepo))
	admin := middleware.RequireRole(domain.RoleAdmin)
	user := middleware.RequireRole(domain.RoleUser)

	// --- Users ---
	e.POST("/users/sign-up", userHandler.SignUp)

	// --- Auth ---
	// The refresh endpoint requires an already-valid USER token in addition
	// to the refresh token in the body.
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh-token", authHandler.Refresh, user)

	// --- Categories ---
	e.POST("/categories", categoryHandler.Create, admin)
	e.GET("/categories", categoryHandler.List, user)
	e.GET("/categories/:id", categoryHandler.Get, user)
	e.GET("/categories/:id/curiosities", categoryHandler.ListCuriosities)
	e.PUT("/categories/:id", categoryHandler.Update, admin)
	e.DELETE("/categories/:id", categoryHandler.Delete, admin)

	// --- Curiosities ---
	e.POST("/curiosities", curiosityHandler.Create, admin)
	e.GET("/curiosities", curiosityHandler.List, user)
	e.GET("/curiosities/random", curiosityHandler.Random)
	e.GET("/curiosities/:id", curiosityHandler.Get, user)
	e.PUT("/curiosities/:id", curiosityHandler.Update, admin)
	e.DELETE("/curiosities/:id", curiosityHandler.Delete, admin)

	// --- Observability & docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
