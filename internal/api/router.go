package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/focustrack/focus-tracker-api/internal/api/handler"
	"github.com/focustrack/focus-tracker-api/internal/api/middleware"
	"github.com/focustrack/focus-tracker-api/internal/core/ports"
	"github.com/focustrack/focus-tracker-api/internal/core/service"
	"github.com/focustrack/focus-tracker-api/internal/infrastructure/config"
)

// Version is the service banner version reported on the root endpoint.
const Version = "1.0.0"

// Dependencies carries everything the router needs that owns external
// state. Repositories and the rate-limit store are interfaces so tests can
// wire in-memory fakes; Mongo and Redis clients feed the readiness probe
// and may be nil outside a full deployment.
type Dependencies struct {
	Users     ports.UserRepository
	Sessions  ports.SessionRepository
	Tokens    *service.TokenManager
	RateStore middleware.CounterStore
	Mongo     *mongo.Database
	Redis     *redis.Client
	Registry  *prometheus.Registry
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log, cfg.IsProduction())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(echomiddleware.Gzip())
	e.Use(echomiddleware.BodyLimit("10M"))

	// HTTP metrics default to the process-wide registry; tests pass their
	// own so building several routers does not collide on registration.
	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if deps.Registry != nil {
		registerer = deps.Registry
		gatherer = deps.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "focustrack",
		Registerer: registerer,
	}))

	if deps.RateStore != nil {
		e.Use(middleware.RateLimit(deps.RateStore, "global", cfg.RateLimit.GlobalLimit, cfg.RateLimit.Window, deps.Log))
	}

	// --- Dependencies ---
	authService := service.NewAuthService(deps.Users, deps.Tokens, deps.Log)
	sessionService := service.NewSessionService(deps.Sessions, deps.Log)

	authHandler := handler.NewAuthHandler(authService)
	sessionHandler := handler.NewSessionHandler(sessionService)
	authMiddleware := middleware.Auth(deps.Tokens)

	// --- User routes (tighter rate limit on the credential endpoints) ---
	users := e.Group("/api/users")
	if deps.RateStore != nil {
		users.Use(middleware.RateLimit(deps.RateStore, "auth", cfg.RateLimit.AuthLimit, cfg.RateLimit.Window, deps.Log))
	}
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.GET("/me", authHandler.Me, authMiddleware)
	users.PUT("/profile", authHandler.UpdateProfile, authMiddleware)

	// --- Session routes (all protected) ---
	sessions := e.Group("/api/sessions", authMiddleware)
	sessions.GET("", sessionHandler.List)
	sessions.POST("", sessionHandler.Create)
	sessions.DELETE("", sessionHandler.Clear)

	// --- Meta, health and observability (no auth required) ---
	metaHandler := handler.NewMetaHandler(Version)
	healthHandler := handler.NewHealthHandler()

	e.GET("/", metaHandler.Root)
	e.GET("/health", healthHandler.Liveness)
	if deps.Mongo != nil && deps.Redis != nil {
		readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)
		e.GET("/health/ready", readinessHandler.Readiness)
	}
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
