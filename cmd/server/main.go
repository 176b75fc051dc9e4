// @title           Outsourced Work Order Report API
// @version         1.0
// @description     Read-only queries over outsourced manufacturing work orders
// @BasePath        /api/v1
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appoutsourcing "github.com/erp/outsourcing/internal/application/outsourcing"
	"github.com/erp/outsourcing/internal/infrastructure/config"
	"github.com/erp/outsourcing/internal/infrastructure/logger"
	"github.com/erp/outsourcing/internal/infrastructure/persistence"
	"github.com/erp/outsourcing/internal/infrastructure/telemetry"
	"github.com/erp/outsourcing/internal/interfaces/http/handler"
	"github.com/erp/outsourcing/internal/interfaces/http/middleware"
	"github.com/erp/outsourcing/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	bootLog, err := logger.New(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logCfg, bootLog); err != nil {
		bootLog.Error("Server exited with error", zap.Error(err))
		_ = bootLog.Sync()
		os.Exit(1)
	}
	_ = bootLog.Sync()
}

func run(ctx context.Context, cfg *config.Config, logCfg *logger.Config, bootLog *zap.Logger) error {
	// Log export needs a logger to report on itself, so the exporting
	// logger is built second and tees into the OTEL bridge.
	logProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, bootLog)
	if err != nil {
		return err
	}
	defer shutdownWith(bootLog, "logger provider", logProvider.Shutdown)

	log, err := logger.New(logCfg, telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
		ServiceName:    cfg.Telemetry.ServiceName,
		LoggerProvider: logProvider,
		Level:          logger.ParseLevel(cfg.Log.Level),
	}))
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting outsourcing report API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return err
	}
	defer shutdownWith(log, "tracer provider", tracerProvider.Shutdown)

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsExportInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		return err
	}
	defer shutdownWith(log, "meter provider", meterProvider.Shutdown)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Database.LogLevel),
		logger.WithSlowThreshold(cfg.Database.SlowThreshold),
		logger.WithFullSQL(cfg.Telemetry.DBLogFullSQL),
	)
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithLogger(gormLog))
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:        cfg.Database.Driver,
	}, log)
	if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
		return fmt.Errorf("failed to register database tracing: %w", err)
	}

	queryMetrics, err := telemetry.NewQueryMetrics(meterProvider.Meter("outsourcing.report"), telemetry.QueryMetricsConfig{
		SlowQueryThreshold: cfg.Database.SlowThreshold,
	}, log)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		queryMetrics.StartPoolStatsCollection(ctx, sqlDB)
	}
	defer queryMetrics.Stop()

	executor := telemetry.NewInstrumentedQueryExecutor(
		persistence.NewGormQueryExecutor(db.DB, persistence.WithQueryTimeout(cfg.Database.QueryTimeout)),
		queryMetrics,
	)
	workOrderService := appoutsourcing.NewWorkOrderQueryService(executor, log)

	engine := newEngine(cfg, log, meterProvider)
	router.NewRouter(engine).
		RegisterRoot(handler.NewHealthHandler(db)).
		Register(handler.NewWorkOrderHandler(workOrderService)).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, failed := <-serveErr:
		if failed {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server exited gracefully")
	return nil
}

func newEngine(cfg *config.Config, log *zap.Logger, meterProvider *telemetry.MeterProvider) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Warn("Invalid trusted proxies, trusting none", zap.Error(err))
		_ = engine.SetTrustedProxies(nil)
	}

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		}),
		logger.GinMiddleware(log),
		middleware.SpanEnricher(),
		middleware.CORSWithConfig(corsCfg),
		middleware.SecureWithConfig(middleware.SecurityConfig{
			HSTSEnabled: cfg.App.Env == "production",
			HSTSMaxAge:  31536000,
		}),
	)
	if meterProvider.IsEnabled() {
		engine.Use(middleware.HTTPMetrics(meterProvider.Meter("http.server"), log))
	}

	return engine
}

func shutdownWith(log *zap.Logger, name string, shutdown func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Error("Shutdown failed", zap.String("component", name), zap.Error(err))
	}
}
