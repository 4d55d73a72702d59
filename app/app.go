// Package app wires the modules into one process: Postgres repositories,
// the Redis-backed derived views, the NATS event bus, the watermill router,
// and the HTTP API all hang off the App struct.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun/migrate"

	"github.com/piclink-games/piclink-backend/api"
	"github.com/piclink-games/piclink-backend/app/eventbus"
	attemptservice "github.com/piclink-games/piclink-backend/app/modules/attempt/application"
	challengeservice "github.com/piclink-games/piclink-backend/app/modules/challenge/application"
	engagementservice "github.com/piclink-games/piclink-backend/app/modules/engagement/application"
	engagementrouter "github.com/piclink-games/piclink-backend/app/modules/engagement/infrastructure/router"
	leaderboardservice "github.com/piclink-games/piclink-backend/app/modules/leaderboard/application"
	"github.com/piclink-games/piclink-backend/app/modules/leaderboard/infrastructure/rankstore"
	userservice "github.com/piclink-games/piclink-backend/app/modules/user/application"
	usercache "github.com/piclink-games/piclink-backend/app/modules/user/infrastructure/cache"
	"github.com/piclink-games/piclink-backend/app/shared/attr"
	"github.com/piclink-games/piclink-backend/app/shared/events"
	"github.com/piclink-games/piclink-backend/app/shared/observability"
	"github.com/piclink-games/piclink-backend/config"
	"github.com/piclink-games/piclink-backend/db/bundb"
	"github.com/piclink-games/piclink-backend/db/bundb/migrations"
)

// App holds the assembled application.
type App struct {
	Cfg *config.Config
	Obs *observability.Provider

	AttemptService     attemptservice.Service
	ChallengeService   challengeservice.Service
	EngagementService  engagementservice.Service
	LeaderboardService *leaderboardservice.LeaderboardService
	UserService        *userservice.UserService

	EngagementRouter *engagementrouter.EngagementRouter

	db         *bundb.DBService
	redis      *redis.Client
	eventBus   eventbus.EventBus
	router     *message.Router
	httpServer *http.Server
	logger     *slog.Logger
}

// NewApp initializes the application with the necessary services and
// configuration. The caller owns shutdown via Close.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	obs, err := observability.Init(ctx, cfg.Observability)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}
	logger := obs.Logger

	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database service: %w", err)
	}

	if err := runMigrations(ctx, dbService); err != nil {
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	bus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create event bus: %w", err)
	}
	if err := bus.CreateStream(ctx, events.EngagementStream, events.EngagementStreamSubject); err != nil {
		return nil, fmt.Errorf("failed to create engagement stream: %w", err)
	}

	profileCache := usercache.NewRedisProfileCache(redisClient, cfg.Game.ProfileCacheTTL)
	rankStore := rankstore.NewRedisRankStore(redisClient, "")

	leaderboardSvc := leaderboardservice.NewLeaderboardService(
		rankStore,
		profileCache,
		dbService.UserDB,
		logger,
		obs.Registry.LeaderboardMetrics,
		obs.Tracer,
	)

	userSvc := userservice.NewUserService(
		dbService.UserDB,
		profileCache,
		logger,
		obs.Tracer,
	)

	attemptSvc := attemptservice.NewAttemptService(
		dbService.AttemptDB,
		dbService.ChallengeDB,
		dbService.UserDB,
		leaderboardSvc,
		logger,
		obs.Registry.AttemptMetrics,
		obs.Tracer,
		dbService.GetDB(),
	)

	challengeSvc := challengeservice.NewChallengeService(
		dbService.ChallengeDB,
		dbService.UserDB,
		userSvc,
		leaderboardSvc,
		logger,
		obs.Registry.ChallengeMetrics,
		obs.Tracer,
		dbService.GetDB(),
		cfg.Game.DedupeTimeout,
		cfg.Game.PrefetchLimit,
	)

	engagementSvc := engagementservice.NewEngagementService(
		dbService.CommentRewardDB,
		dbService.UserDB,
		leaderboardSvc,
		logger,
		obs.Registry.EngagementMetrics,
		obs.Tracer,
		dbService.GetDB(),
	)

	watermillLogger := watermill.NewSlogLogger(logger)
	router, err := message.NewRouter(message.RouterConfig{}, watermillLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create watermill router: %w", err)
	}

	engRouter := engagementrouter.NewEngagementRouter(
		logger,
		router,
		bus,
		bus,
		obs.Tracer,
		obs.PrometheusRegistry,
	)
	if err := engRouter.Configure(ctx, engagementSvc, obs.Registry.EngagementMetrics); err != nil {
		return nil, fmt.Errorf("failed to configure engagement router: %w", err)
	}

	apiRouter := api.NewRouter(api.Dependencies{
		Attempts:    attemptSvc,
		Challenges:  challengeSvc,
		Leaderboard: leaderboardSvc,
		Users:       userSvc,
		Registry:    obs.PrometheusRegistry,
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           apiRouter,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &App{
		Cfg:                cfg,
		Obs:                obs,
		AttemptService:     attemptSvc,
		ChallengeService:   challengeSvc,
		EngagementService:  engagementSvc,
		LeaderboardService: leaderboardSvc,
		UserService:        userSvc,
		EngagementRouter:   engRouter,
		db:                 dbService,
		redis:              redisClient,
		eventBus:           bus,
		router:             router,
		httpServer:         httpServer,
		logger:             logger,
	}, nil
}

// Run starts the watermill router and the HTTP listener and blocks until the
// context is canceled or either component fails.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() {
		a.logger.InfoContext(ctx, "Starting message router")
		if err := a.router.Run(ctx); err != nil {
			errCh <- fmt.Errorf("message router stopped: %w", err)
			return
		}
		errCh <- nil
	}()

	go func() {
		a.logger.InfoContext(ctx, "Starting HTTP server", attr.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server stopped: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Close shuts the components down in dependency order: listeners first, then
// the event bus, then the stores.
func (a *App) Close(ctx context.Context) error {
	var errs []error

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("http server shutdown: %w", err))
	}

	if err := a.EngagementRouter.Close(); err != nil {
		errs = append(errs, fmt.Errorf("engagement router close: %w", err))
	}

	if err := a.eventBus.Close(); err != nil {
		errs = append(errs, fmt.Errorf("event bus close: %w", err))
	}

	if err := a.redis.Close(); err != nil {
		errs = append(errs, fmt.Errorf("redis close: %w", err))
	}

	if err := a.db.GetDB().Close(); err != nil {
		errs = append(errs, fmt.Errorf("database close: %w", err))
	}

	return errors.Join(errs...)
}

// DB returns the database service.
func (a *App) DB() *bundb.DBService {
	return a.db
}

func runMigrations(ctx context.Context, dbService *bundb.DBService) error {
	migrator := migrate.NewMigrator(dbService.GetDB(), migrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return err
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		return err
	}
	return nil
}
