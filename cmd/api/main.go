package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/devnice/usuarios-api/internal/api/http"
	"github.com/devnice/usuarios-api/internal/api/http/handlers"
	"github.com/devnice/usuarios-api/internal/auth"
	"github.com/devnice/usuarios-api/internal/config"
	"github.com/devnice/usuarios-api/internal/events"
	"github.com/devnice/usuarios-api/internal/observability"
	"github.com/devnice/usuarios-api/internal/persistence"
	"github.com/devnice/usuarios-api/internal/repository"
	"github.com/devnice/usuarios-api/internal/service"
	"github.com/devnice/usuarios-api/internal/worker"
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

	var userRepo repository.UserRepository
	if pg.Configured() {
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		userRepo = repository.NewUserRepository(pg.PoolHandle())
	} else {
		userRepo = repository.NewMemoryUserRepository()
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	if redis.Configured() && cfg.Redis.CacheTTL() > 0 {
		userRepo = repository.NewCachedUserRepository(userRepo, redis.Client, cfg.Redis.CacheTTL(), logger)
	}

	tokens, err := auth.NewTokenAuthority(cfg.Auth.JWTSecret,
		auth.WithIssuer(cfg.Auth.TokenIssuer),
		auth.WithValidity(cfg.Auth.TokenValidity()),
	)
	if err != nil {
		logger.Fatal("failed to init token authority", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	userService := service.NewUserService(service.UserDependencies{
		Users:      userRepo,
		Encoder:    auth.NewPasswordEncoder(cfg.Auth.BcryptCost),
		Tokens:     tokens,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	greetingService := service.NewGreetingService(cfg.Greeting.DefaultName)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:         logger,
		Metrics:        metrics,
		RequestTimeout: cfg.App.RequestTimeout(),
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}, metrics),
		Users:          handlers.NewUsersHandler(userService),
		Greetings:      handlers.NewGreetingHandler(greetingService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, logger),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.Shutdown(); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
