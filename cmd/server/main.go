package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	appregistration "github.com/erp/bizid/internal/application/registration"
	"github.com/erp/bizid/internal/domain/registration"
	"github.com/erp/bizid/internal/infrastructure/config"
	"github.com/erp/bizid/internal/infrastructure/logger"
	"github.com/erp/bizid/internal/infrastructure/random"
	"github.com/erp/bizid/internal/infrastructure/telemetry"
	"github.com/erp/bizid/internal/interfaces/http/handler"
	"github.com/erp/bizid/internal/interfaces/http/middleware"
	"github.com/erp/bizid/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: logger.DefaultTimeFormat,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting identifier service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// OTLP log export: tee the zap logger into the OTEL log pipeline
	lp, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = lp.Bridge(log, log.Level())

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:              cfg.Telemetry.ProfilingEnabled,
		ServerAddress:        cfg.Telemetry.ProfilingServerAddress,
		ApplicationName:      cfg.Telemetry.ServiceName,
		BasicAuthUser:        cfg.Telemetry.ProfilingBasicAuthUser,
		BasicAuthPassword:    cfg.Telemetry.ProfilingBasicAuthPassword,
		ProfileTypes:         cfg.Telemetry.ProfilingProfileTypes,
		MutexProfileFraction: cfg.Telemetry.ProfilingMutexFraction,
		BlockProfileRate:     cfg.Telemetry.ProfilingBlockRate,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize profiler", zap.Error(err))
	}

	// Telemetry
	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
		LinkProfiles:      cfg.Telemetry.ProfilingEnabled,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}

	mp, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsExportInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	meter := mp.Meter(telemetry.TracerName)

	generationMetrics, err := telemetry.NewGenerationMetrics(telemetry.GenerationMetricsConfig{
		Meter:  meter,
		Logger: log,
	})
	if err != nil {
		log.Fatal("Failed to initialize generation metrics", zap.Error(err))
	}

	// Random source: a configured seed makes output reproducible
	var rng *random.Source
	if cfg.Generator.Seed != 0 {
		rng = random.New(cfg.Generator.Seed)
	} else {
		rng = random.NewFromEntropy()
	}
	log.Info("Random source ready", zap.Uint64("seed", rng.Seed()))

	identifierService := appregistration.NewIdentifierService(
		registration.NewGenerator(rng),
		appregistration.ServiceConfig{MaxBatchSize: cfg.Generator.MaxBatchSize},
		log,
		appregistration.WithMetrics(generationMetrics),
	)

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	var limiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Stop()
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders

	engine, err := router.NewEngine(router.EngineConfig{
		Logger: log,
		CORS:   corsConfig,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     tp.IsEnabled(),
		},
		Meter:          meter,
		MaxBodyBytes:   cfg.HTTP.MaxBodyBytes,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		RateLimiter:    limiter,
		Profiling:      profiler.IsEnabled(),
	},
		handler.NewIdentifierHandler(identifierService),
		handler.NewSystemHandler(cfg.App.Name),
	)
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := mp.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shutdown meter provider", zap.Error(err))
	}
	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shutdown tracer provider", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Failed to stop profiler", zap.Error(err))
	}

	log.Info("Server exited gracefully")
	if err := lp.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shutdown logger provider", zap.Error(err))
	}
}
