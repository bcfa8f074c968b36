package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/expensedesk/reimbursement-service/internal/api/http"
	"github.com/expensedesk/reimbursement-service/internal/api/http/handlers"
	"github.com/expensedesk/reimbursement-service/internal/auth"
	"github.com/expensedesk/reimbursement-service/internal/config"
	"github.com/expensedesk/reimbursement-service/internal/events"
	"github.com/expensedesk/reimbursement-service/internal/observability"
	"github.com/expensedesk/reimbursement-service/internal/persistence"
	"github.com/expensedesk/reimbursement-service/internal/repository"
	"github.com/expensedesk/reimbursement-service/internal/service"
	"github.com/expensedesk/reimbursement-service/internal/validation"
	"github.com/expensedesk/reimbursement-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.PoolHandle() != nil {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger, metrics, cfg.Notification))

	rules := validation.New()
	userService := service.NewUserService(service.UserDependencies{
		UserRepo:   repository.NewUserRepository(pg, logger),
		Rules:      rules,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	reimbService := service.NewReimbursementService(service.ReimbursementDependencies{
		ReimbRepo:  repository.NewReimbursementRepository(pg, logger),
		Rules:      rules,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	authService := service.NewAuthService(service.AuthDependencies{
		Users:    userService,
		Sessions: auth.NewRedisSessionStore(redis.Client, cfg.Auth.SessionTTL()),
		Tokens:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL()),
		Logger:   logger,
	})

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.CORS)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Reimbursements: handlers.NewReimbursementsHandler(reimbService),
		AuthMiddleware: auth.NewAuthMiddleware(authService),
		Metrics:        metrics,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
