package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/iludo/profile-service/internal/api/http"
	"github.com/iludo/profile-service/internal/api/http/handlers"
	"github.com/iludo/profile-service/internal/auth"
	"github.com/iludo/profile-service/internal/config"
	"github.com/iludo/profile-service/internal/events"
	"github.com/iludo/profile-service/internal/observability"
	"github.com/iludo/profile-service/internal/persistence"
	"github.com/iludo/profile-service/internal/repository"
	"github.com/iludo/profile-service/internal/service"
	"github.com/iludo/profile-service/internal/worker"
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	inviteRepo := repository.NewInviteRepository(pool)
	coinRepo := repository.NewCoinRepository(pool)
	plateRepo := repository.NewPlateRepository(pool)
	deviceRepo := repository.NewDeviceRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	authService := service.NewAuthService(*cfg, userRepo)
	coinService := service.NewCoinService(coinRepo, redis, dispatcher, logger)
	inviteService := service.NewInviteService(service.InviteDependencies{
		InviteRepo:  inviteRepo,
		CoinService: coinService,
		Rewards:     cfg.Rewards,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	profileService := service.NewProfileService(service.ProfileDependencies{
		UserRepo:      userRepo,
		InviteRepo:    inviteRepo,
		PlateRepo:     plateRepo,
		CoinService:   coinService,
		InviteService: inviteService,
		Dispatcher:    dispatcher,
		Logger:        logger,
	})
	plateService := service.NewPlateService(plateRepo, dispatcher, logger)
	notificationService := service.NewNotificationService(deviceRepo, dispatcher, logger, cfg.Notification)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Profiles:       handlers.NewProfileHandler(profileService),
		Invites:        handlers.NewInviteHandler(inviteService),
		Plates:         handlers.NewPlateHandler(plateService),
		Devices:        handlers.NewDeviceHandler(notificationService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
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
