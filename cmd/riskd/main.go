package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MarwanRagab123/Bank-risk-analysis/internal/app"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/application/usecase"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/infrastructure/config"
	grpcpresentation "github.com/MarwanRagab123/Bank-risk-analysis/internal/presentation/grpc"
	"github.com/MarwanRagab123/Bank-risk-analysis/internal/presentation/rest"
	"github.com/MarwanRagab123/Bank-risk-analysis/pkg/observability"
)

func main() {
	if err := run(); err != nil {
		slog.Error("risk daemon failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.ServiceName,
	})

	logger.Info("starting risk daemon",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Tracing is optional; metrics are always exported.
	if cfg.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.ServiceName,
			Endpoint:    cfg.OTLPEndpoint,
			Insecure:    true,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer meterProvider.Shutdown(context.Background())

	policy, err := cfg.Policy()
	if err != nil {
		return fmt.Errorf("failed to load scoring policy: %w", err)
	}

	// Wire infrastructure adapters.
	connectCtx, connectCancel := context.WithTimeout(ctx, 30*time.Second)
	adapters, err := app.Connect(connectCtx, cfg, app.Selection{
		Persist: cfg.DatabaseURL != "",
		Publish: len(cfg.KafkaBrokers) > 0,
	}, logger)
	connectCancel()
	if err != nil {
		return err
	}
	defer adapters.Close()

	// Wire use cases.
	runAssessmentUC := usecase.NewRunAssessment(policy.Pipeline(), adapters.Repo, adapters.Publisher, logger)
	var getRunUC *usecase.GetRun
	if adapters.Repo != nil {
		getRunUC = usecase.NewGetRun(adapters.Repo)
	}

	// gRPC server.
	grpcServer, err := grpcpresentation.NewServer(cfg.GRPCAddress(), grpcpresentation.Options{
		ServiceName: cfg.ServiceName,
		CertFile:    cfg.TLSCertFile,
		KeyFile:     cfg.TLSKeyFile,
		Reflection:  cfg.GRPCReflection,
	}, logger)
	if err != nil {
		return err
	}

	// HTTP server.
	checks := make(map[string]rest.ReadinessCheck, len(adapters.Checks))
	for name, check := range adapters.Checks {
		checks[name] = check
	}
	httpMux := http.NewServeMux()
	rest.NewHealthHandler(cfg.ServiceName, checks, logger).RegisterRoutes(httpMux)
	rest.NewAssessmentHandler(runAssessmentUC, getRunUC, cfg.MaxUploadBytes, logger).
		WithConcurrencyLimit(cfg.MaxConcurrent).
		RegisterRoutes(httpMux)
	httpMux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      rest.LoggingMiddleware(logger)(httpMux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("risk daemon started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
		"environment", cfg.Environment,
		"flag_threshold", policy.Threshold.String(),
	)

	// Wait for shutdown signal.
	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		logger.Error("server error", "error", serveErr)
	}

	// Graceful shutdown.
	logger.Info("shutting down risk daemon")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("risk daemon stopped")
	return serveErr
}
