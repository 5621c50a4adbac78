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

	httptransport "github.com/spec-kit/agent-admin/internal/api/http"
	"github.com/spec-kit/agent-admin/internal/api/http/handlers"
	"github.com/spec-kit/agent-admin/internal/auth"
	"github.com/spec-kit/agent-admin/internal/config"
	"github.com/spec-kit/agent-admin/internal/observability"
	"github.com/spec-kit/agent-admin/internal/persistence"
	"github.com/spec-kit/agent-admin/internal/repository"
	"github.com/spec-kit/agent-admin/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App.IsProduction())
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	logger = logger.With(zap.String("service", cfg.App.Name), zap.String("version", cfg.App.Version))
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := persistence.OpenDatabase(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to open database", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.RunMigrations {
		if err := persistence.RunMigrations(ctx, db.Handle(), db.Driver, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics(cfg.App.Name)

	userRepo := repository.NewUserRepository(db.Handle(), db.Driver)
	teamRepo := repository.NewTeamRepository(db.Handle(), db.Driver)

	userService := service.NewUserService(service.UserDependencies{
		UserRepo: userRepo,
		TeamRepo: teamRepo,
		Logger:   logger,
	})
	teamService := service.NewTeamService(teamRepo, logger)
	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:    userRepo,
		Revocations: redis,
		Observer:    metrics,
		Logger:      logger,
	})

	if cfg.Bootstrap.AdminUsername != "" {
		admin, created, err := userService.EnsureAdmin(ctx, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminFullName)
		if err != nil {
			logger.Fatal("failed to bootstrap admin", zap.Error(err))
		}
		if created {
			logger.Info("bootstrap admin created", zap.Int64("id", admin.ID), zap.String("username", admin.Username))
		}
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		ErrorHandler:          httptransport.ErrorHandler,
		DisableStartupMessage: cfg.App.IsProduction(),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, db, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(userService),
		Teams:          handlers.NewTeamsHandler(teamService),
		AuthMiddleware: auth.NewAuthMiddleware(authService),
		Metrics:        metrics,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("driver", db.Driver))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
