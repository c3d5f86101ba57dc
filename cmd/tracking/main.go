package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/carpool/internal/pkg/config"
	"github.com/piresc/carpool/internal/pkg/database"
	"github.com/piresc/carpool/internal/pkg/health"
	"github.com/piresc/carpool/internal/pkg/logger"
	"github.com/piresc/carpool/internal/pkg/middleware"
	"github.com/piresc/carpool/internal/pkg/nats"
	nrpkg "github.com/piresc/carpool/internal/pkg/newrelic"
	"github.com/piresc/carpool/internal/pkg/retry"
	"github.com/piresc/carpool/internal/pkg/server"
	wspkg "github.com/piresc/carpool/internal/pkg/websocket"
	"github.com/piresc/carpool/services/tracking/gateway"
	"github.com/piresc/carpool/services/tracking/handler"
	"github.com/piresc/carpool/services/tracking/registry"
	"github.com/piresc/carpool/services/tracking/repository"
	"github.com/piresc/carpool/services/tracking/usecase"
)

func main() {
	appName := "tracking-service"
	configPath := "config/tracking.env"
	configs := config.InitConfig(configPath)

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.NewApplication(configs)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	// Set global logger for application-wide access
	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
		logger.String("node_id", configs.Tracking.NodeID),
	)

	auditLogger, err := logger.NewAuditLogger(configs.Logger.AuditLogPath)
	if err != nil {
		zapLogger.Fatal("Failed to create audit logger", logger.Err(err))
	}
	defer auditLogger.Close()

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}

	// Initialize NATS
	natsClient, err := nats.NewClient(configs.NATS.URL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
	}

	// Initialize repositories
	rideRepo := repository.NewRideRepository(configs, postgresClient.GetDB())
	locationCache := repository.NewLocationCache(redisClient)

	// Initialize gateway
	trackGW := gateway.NewTrackingGW(natsClient)

	// Initialize usecase
	retrier := retry.NewWithDefaults(zapLogger)
	trackingUC := usecase.NewTrackingUC(configs, rideRepo, locationCache, trackGW, retrier, nrApp)

	// Initialize session registry and websocket manager
	sessions := registry.NewMemoryRegistry()
	manager := wspkg.NewManager(configs.JWT, configs.Tracking.SendBuffer)

	// Initialize handlers
	trackingHandler := handler.NewHandler(configs, manager, sessions, trackingUC, trackGW, natsClient, auditLogger)

	// Initialize NATS consumers
	if err := trackingHandler.InitNATSConsumers(); err != nil {
		zapLogger.Fatal("Failed to initialize NATS consumers", logger.Err(err))
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Add middlewares (panic recovery should be first)
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(middleware.RequestIDMiddleware())
	e.Use(nrpkg.EchoMiddleware(nrApp))
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	// Register health endpoints
	healthService := health.NewHealthService()
	healthService.AddChecker("postgres", health.NewPostgresHealthChecker(postgresClient))
	healthService.AddChecker("redis", health.NewRedisHealthChecker(redisClient))
	healthService.AddChecker("nats", health.NewNATSHealthChecker(natsClient))
	health.RegisterHealthEndpoints(e, appName, healthService)

	// Register service routes
	trackingHandler.RegisterRoutes(e, redisClient.GetClient())

	// Shutdown order: sockets, relay consumers and join checks, side effect
	// queues, then the clients they use
	shutdownTimeout := time.Duration(configs.Server.ShutdownTimeout) * time.Second
	addr := fmt.Sprintf("%s:%d", configs.Server.Host, configs.Server.Port)
	srv := server.NewGracefulServer(e, addr, shutdownTimeout)
	srv.OnShutdown("websocket", func(context.Context) error {
		// hijacked connections are not closed by echo
		manager.CloseAll()
		return nil
	})
	srv.OnShutdown("handlers", func(context.Context) error {
		trackingHandler.Close()
		return nil
	})
	srv.OnShutdown("tracking", func(context.Context) error {
		trackingUC.Close()
		return nil
	})
	srv.OnShutdown("nats", func(context.Context) error {
		natsClient.Close()
		return nil
	})
	srv.OnShutdown("redis", func(context.Context) error {
		return redisClient.Close()
	})
	srv.OnShutdown("postgres", func(context.Context) error {
		return postgresClient.Close()
	})
	srv.OnShutdown("newrelic", func(context.Context) error {
		if nrApp != nil {
			nrApp.Shutdown(10 * time.Second)
		}
		return nil
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Serving", logger.String("app", appName), logger.String("address", addr))
	if err := srv.Run(ctx); err != nil {
		zapLogger.Error("Server stopped with error", logger.Err(err))
	}
	zapLogger.Info("Server exiting gracefully")
}
