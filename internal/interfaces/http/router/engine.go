package router

import (
	"fmt"
	"net/http"

	"github.com/erp/bizid/internal/infrastructure/logger"
	"github.com/erp/bizid/internal/interfaces/http/dto"
	"github.com/erp/bizid/internal/interfaces/http/handler"
	"github.com/erp/bizid/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// EngineConfig holds everything NewEngine needs besides the handlers
type EngineConfig struct {
	Logger         *zap.Logger
	CORS           middleware.CORSConfig
	Tracing        middleware.TracingConfig
	Meter          metric.Meter // nil disables HTTP metrics
	MaxBodyBytes   int64
	TrustedProxies []string
	RateLimiter    *middleware.RateLimiter // nil disables rate limiting
	Profiling      bool                    // label requests for Pyroscope
}

// NewEngine builds the gin engine with the middleware chain and all API routes.
//
// Middleware order: recovery, request ID, tracing, span attributes,
// span error marker, request logging, CORS, metrics, rate limit,
// profiling labels, body limit. Logging runs inside the server span so
// request logs carry trace and span IDs.
func NewEngine(cfg EngineConfig, identifiers *handler.IdentifierHandler, system *handler.SystemHandler) (*gin.Engine, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	metricsMiddleware, err := middleware.HTTPMetrics(cfg.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP metrics: %w", err)
	}

	engine.Use(
		logger.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.TracingWithConfig(cfg.Tracing),
		middleware.SpanAttributes(),
		middleware.SpanErrorMarker(),
		logger.GinMiddleware(cfg.Logger),
		middleware.CORSWithConfig(cfg.CORS),
		metricsMiddleware,
		middleware.RateLimit(cfg.RateLimiter),
		middleware.Profiling(cfg.Profiling, "/api/v1/system/ping", "/api/v1/system/info"),
	)
	if cfg.MaxBodyBytes > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound,
			"Route not found",
			middleware.GetRequestID(c),
		))
	})

	NewRouter(engine).
		Register(IdentifierRoutes(identifiers)).
		Register(SystemRoutes(system)).
		Setup()

	return engine, nil
}

// IdentifierRoutes maps the identifier endpoints under /identifiers
func IdentifierRoutes(h *handler.IdentifierHandler) *DomainGroup {
	g := NewDomainGroup("identifiers", "/identifiers")
	g.GET("/acn", h.GenerateACNs)
	g.GET("/abn", h.GenerateABNs)
	g.GET("/pairs", h.GeneratePairs)
	g.POST("/abn/derive", h.DeriveABN)
	return g
}

// SystemRoutes maps the health endpoints under /system
func SystemRoutes(h *handler.SystemHandler) *DomainGroup {
	return NewDomainGroup("system", "/system").
		GET("/ping", h.Ping).
		GET("/info", h.GetSystemInfo)
}
