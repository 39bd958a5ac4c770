package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/sabajiqurashvili/loan-api/internal/api/http"
	"github.com/sabajiqurashvili/loan-api/internal/api/http/handlers"
	"github.com/sabajiqurashvili/loan-api/internal/auth"
	"github.com/sabajiqurashvili/loan-api/internal/config"
	"github.com/sabajiqurashvili/loan-api/internal/events"
	"github.com/sabajiqurashvili/loan-api/internal/observability"
	"github.com/sabajiqurashvili/loan-api/internal/persistence"
	"github.com/sabajiqurashvili/loan-api/internal/repository"
	"github.com/sabajiqurashvili/loan-api/internal/service"
	"github.com/sabajiqurashvili/loan-api/internal/worker"
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

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.Pool, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()

	userRepo := repository.NewUserRepository(pg.Pool)
	credentialRepo := repository.NewCredentialRepository(pg.Pool)
	accountantRepo := repository.NewAccountantRepository(pg.Pool)
	loanRepo := repository.NewLoanRepository(pg.Pool)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:       userRepo,
		CredentialRepo: credentialRepo,
		AccountantRepo: accountantRepo,
	})
	loanService := service.NewLoanService(loanRepo, userRepo, dispatcher)
	accountantService := service.NewAccountantService(loanRepo, userRepo, dispatcher)
	adminService := service.NewAdminService(userRepo, accountantRepo, dispatcher)

	seeder := service.NewAdminSeeder(userRepo, credentialRepo, cfg.Seed, cfg.Auth.BcryptCost)
	if err := seeder.EnsureAdmin(ctx); err != nil {
		logger.Fatal("failed to seed admin user", zap.Error(err))
	}

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis, metrics)
	usersHandler := handlers.NewUsersHandler(authService)
	loansHandler := handlers.NewLoansHandler(loanService)
	accountantHandler := handlers.NewAccountantHandler(accountantService)
	adminHandler := handlers.NewAdminHandler(adminService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         healthHandler,
		Users:          usersHandler,
		Loans:          loansHandler,
		Accountant:     accountantHandler,
		Admin:          adminHandler,
		AuthMiddleware: authMiddleware,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
