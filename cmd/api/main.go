package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clinidesk/citas-api/config"
	"github.com/clinidesk/citas-api/internal/handler"
	authhandler "github.com/clinidesk/citas-api/internal/handler/auth"
	citahandler "github.com/clinidesk/citas-api/internal/handler/cita"
	pacientehandler "github.com/clinidesk/citas-api/internal/handler/paciente"
	statshandler "github.com/clinidesk/citas-api/internal/handler/stats"
	"github.com/clinidesk/citas-api/internal/middleware"
	"github.com/clinidesk/citas-api/internal/repository/postgres"
	"github.com/clinidesk/citas-api/internal/router"
	authservice "github.com/clinidesk/citas-api/internal/service/auth"
	citaservice "github.com/clinidesk/citas-api/internal/service/cita"
	eventservice "github.com/clinidesk/citas-api/internal/service/event"
	pacienteservice "github.com/clinidesk/citas-api/internal/service/paciente"
	statsservice "github.com/clinidesk/citas-api/internal/service/stats"
	"github.com/clinidesk/citas-api/pkg/auth"
	"github.com/clinidesk/citas-api/pkg/logger"
	messagingredis "github.com/clinidesk/citas-api/pkg/messaging/redis"
	"github.com/clinidesk/citas-api/pkg/metrics"
	"github.com/clinidesk/citas-api/pkg/security"
	"github.com/clinidesk/citas-api/pkg/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(&logger.Config{
		Level:  parseLogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Pretty,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()

	if err := postgres.Migrate(db, cfg.Database.Name); err != nil {
		log.Fatal(err, "Failed to run migrations")
	}

	if err := handler.RegisterValidators(); err != nil {
		log.Fatal(err, "Failed to register validators")
	}

	appMetrics := metrics.New(cfg.Monitoring.MetricsNamespace)

	citaRepo := postgres.NewCitaRepository(db)
	pacienteRepo := postgres.NewPacienteRepository(db)
	userRepo := postgres.NewUserRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	hasher := security.NewBcryptHasher(security.DefaultCost)

	eventSvc := eventservice.NewService(outboxRepo, log)
	citaSvc := citaservice.NewService(citaRepo, pacienteRepo, eventSvc)
	pacienteSvc := pacienteservice.NewService(pacienteRepo, eventSvc)
	statsSvc := statsservice.NewService(citaRepo, pacienteRepo)
	authSvc := authservice.NewService(userRepo, jwtSvc, hasher)

	healthH := handler.New(db)
	authH := authhandler.NewHandler(authSvc)
	citaH := citahandler.NewHandler(citaSvc)
	pacienteH := pacientehandler.NewHandler(pacienteSvc)
	statsH := statshandler.NewHandler(statsSvc)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	routerCfg := router.DefaultConfig()
	routerCfg.RateLimitRPS = cfg.RateLimit.RequestsPerSecond
	routerCfg.RateLimitBurst = cfg.RateLimit.Burst
	routerCfg.RequestTimeout = cfg.Server.RequestTimeout
	routerCfg.MetricsPrefix = cfg.Monitoring.MetricsNamespace
	if len(cfg.CORS.AllowedOrigins) > 0 {
		routerCfg.CORS.AllowOrigins = cfg.CORS.AllowedOrigins
	}

	r := router.New(authMiddleware, healthH, authH, citaH, pacienteH, statsH, routerCfg)
	r.Setup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Redis.Enabled {
		broker, err := messagingredis.NewBroker(messagingredis.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   cfg.Redis.MaxRetries,
			RetryBackoff: cfg.Redis.RetryBackoff,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		})
		if err != nil {
			log.Fatal(err, "Failed to connect to redis")
		}
		defer broker.Close()

		processor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
			BatchSize:     cfg.Outbox.BatchSize,
			PollInterval:  cfg.Outbox.PollInterval,
			RetryAttempts: cfg.Outbox.RetryAttempts,
			RetryDelay:    cfg.Outbox.RetryDelay,
		}, log, appMetrics)
		go processor.Start(ctx)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("Starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err, "Server failed")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(err, "Server forced to shutdown")
	}

	log.Info("Server stopped")
}

func parseLogLevel(level string) logger.Level {
	switch level {
	case "debug":
		return logger.DebugLevel
	case "warn":
		return logger.WarnLevel
	case "error":
		return logger.ErrorLevel
	default:
		return logger.InfoLevel
	}
}
