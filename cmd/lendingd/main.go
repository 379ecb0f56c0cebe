package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ArchanSureja/QuickCredit/internal/application/usecase"
	"github.com/ArchanSureja/QuickCredit/internal/domain/service"
	"github.com/ArchanSureja/QuickCredit/internal/infrastructure/config"
	"github.com/ArchanSureja/QuickCredit/internal/infrastructure/messaging"
	pgRepo "github.com/ArchanSureja/QuickCredit/internal/infrastructure/persistence/postgres"
	grpcPresentation "github.com/ArchanSureja/QuickCredit/internal/presentation/grpc"
	"github.com/ArchanSureja/QuickCredit/internal/presentation/rest"
	"github.com/ArchanSureja/QuickCredit/pkg/auth"
	pkgkafka "github.com/ArchanSureja/QuickCredit/pkg/kafka"
	"github.com/ArchanSureja/QuickCredit/pkg/observability"
	pkgpostgres "github.com/ArchanSureja/QuickCredit/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	cfg.Validate()

	logger := observability.InitLogger(observability.LogConfig{
		Service: cfg.ServiceName,
		Level:   getEnv("LOG_LEVEL", "info"),
		Format:  getEnv("LOG_FORMAT", "json"),
	})
	slog.SetDefault(logger)

	logger.Info("starting lending-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Tracing.
	if cfg.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.ServiceName,
			Endpoint:    cfg.OTLPEndpoint,
			Insecure:    true,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer func() { _ = shutdown(ctx) }() //nolint:errcheck // best-effort tracer shutdown
		}
	}

	// Metrics.
	_, metricsHandler, err := observability.InitMetrics()
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}

	// Database connection.
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, cfg.DB)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if migErr := pkgpostgres.RunMigrations(cfg.DB.DSN(), "file://migrations"); migErr != nil {
		logger.Warn("migration warning", "error", migErr)
	}

	// Infrastructure adapters.
	paramsRepo := pgRepo.NewLenderParamsRepo(pool)
	productRepo := pgRepo.NewLoanProductRepo(pool)
	recordRepo := pgRepo.NewEligibilityRecordRepo(pool)
	appRepo := pgRepo.NewLoanApplicationRepo(pool)

	kafkaProducer := pkgkafka.NewProducer(cfg.Kafka)
	defer kafkaProducer.Close()
	publisher := messaging.NewKafkaEventPublisher(kafkaProducer, cfg.KafkaTopic, logger)

	engine := service.NewEligibilityEngine()

	// Use cases.
	checkLoansUC := usecase.NewCheckAvailableLoansUseCase(
		paramsRepo, productRepo, recordRepo, engine, publisher, cfg.Eligibility.RecordValidity)
	applyLoanUC := usecase.NewApplyForLoanUseCase(
		recordRepo, productRepo, appRepo, publisher, cfg.Eligibility.EnforceExpiry)
	processUC := usecase.NewProcessApplicationUseCase(appRepo, publisher)
	disburseUC := usecase.NewDisburseLoanUseCase(appRepo, publisher)
	createAppUC := usecase.NewCreateApplicationUseCase(productRepo, appRepo, publisher)
	callLogsUC := usecase.NewCallLogUseCase(appRepo)
	queriesUC := usecase.NewApplicationQueriesUseCase(appRepo)
	paramsUC := usecase.NewManageLenderParamsUseCase(paramsRepo, productRepo, engine)
	productsUC := usecase.NewManageLoanProductsUseCase(productRepo)

	// JWT verification. The secret can come from a mounted file instead of
	// the environment.
	if keyFile := os.Getenv("JWT_SECRET_FILE"); keyFile != "" {
		keyData, loadErr := auth.LoadKeyFromFile(keyFile)
		if loadErr != nil {
			logger.Error("failed to load JWT secret file", "error", loadErr)
			os.Exit(1)
		}
		cfg.JWT.Secret = string(keyData)
	}
	jwtSvc, err := auth.NewJWTService(cfg.JWT)
	if err != nil {
		logger.Error("failed to initialize JWT service", "error", err)
		os.Exit(1)
	}

	// gRPC server.
	grpcHandler := grpcPresentation.NewLendingHandler(checkLoansUC, applyLoanUC, queriesUC)
	grpcServer := grpcPresentation.NewServer(grpcHandler, logger, jwtSvc)

	// HTTP server.
	mux := http.NewServeMux()
	rest.NewHealthHandler(pool, logger).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)
	rest.NewLoanHandler(checkLoansUC, applyLoanUC, queriesUC).RegisterRoutes(mux)
	rest.NewAdminHandler(paramsUC, productsUC, createAppUC, processUC, disburseUC, callLogsUC, queriesUC).RegisterRoutes(mux)

	authMiddleware := auth.HTTPMiddleware(jwtSvc, []string{"/healthz", "/readyz", "/metrics"})
	handler := rest.LoggingMiddleware(logger)(authMiddleware(mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("lending-service stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
