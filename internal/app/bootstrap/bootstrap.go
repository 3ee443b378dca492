package bootstrap

import (
	"context"
	"log/slog"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	pointsengine "belli/contexts/community-experience/points-engine"
	pointspostgres "belli/contexts/community-experience/points-engine/adapters/postgres"
	pointsredis "belli/contexts/community-experience/points-engine/adapters/redis"
	pointsapp "belli/contexts/community-experience/points-engine/application"
	pointsports "belli/contexts/community-experience/points-engine/ports"
	classifierservice "belli/contexts/hazard-reporting/classifier-service"
	confirmationservice "belli/contexts/hazard-reporting/confirmation-service"
	confirmpostgres "belli/contexts/hazard-reporting/confirmation-service/adapters/postgres"
	pinservice "belli/contexts/hazard-reporting/pin-service"
	pinpostgres "belli/contexts/hazard-reporting/pin-service/adapters/postgres"
	"belli/internal/platform/config"
	"belli/internal/platform/db"
	"belli/internal/platform/httpserver"
	"belli/internal/shared/contenthash"
	"belli/internal/store/memory"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	redis    *goredis.Client
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	var redisClient *goredis.Client
	var cache pointsports.LeaderboardCache
	if cfg.RedisAddr != "" {
		redisClient = goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		cache = pointsredis.NewCache(redisClient, cfg.LeaderboardTTL, logger)
	}

	var (
		pins          pinservice.Module
		classifier    classifierservice.Module
		confirmations confirmationservice.Module
		points        pointsengine.Module
		pg            *db.Postgres
	)

	if strings.TrimSpace(cfg.PostgresDSN) != "" {
		pg, err = db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}

		pinRepo := pinpostgres.NewRepository(pg.DB, logger)
		confirmRepo := confirmpostgres.NewRepository(pg.DB, logger)
		userRepo := pointspostgres.NewRepository(pg.DB, logger)

		points = pointsengine.NewModule(pointsengine.Dependencies{
			Users:  userRepo,
			Cache:  cache,
			Clock:  pointspostgres.SystemClock{},
			IDGen:  pointspostgres.UUIDGenerator{},
			Logger: logger,
		})
		awards := pointsBridge{points: points.Service}

		pins = pinservice.NewModule(pinservice.Dependencies{
			Pins:   pinRepo,
			Votes:  pinRepo,
			Awards: awards,
			Hasher: contenthash.SHA256{},
			Clock:  pinpostgres.SystemClock{},
			IDGen:  pinpostgres.UUIDGenerator{},
			Logger: logger,
		})
		classifier = classifierservice.NewModule(classifierservice.Dependencies{
			Images: pinRepo,
			Hasher: contenthash.SHA256{},
			Logger: logger,
		})
		confirmations = confirmationservice.NewModule(confirmationservice.Dependencies{
			Confirmations: confirmRepo,
			Awards:        awards,
			Clock:         confirmpostgres.SystemClock{},
			IDGen:         confirmpostgres.UUIDGenerator{},
			Logger:        logger,
		})
	} else {
		fixtures := memory.Fixtures{}
		if cfg.SeedFixtures {
			fixtures = memory.DefaultFixtures()
		}
		store := memory.NewStore(fixtures)

		points = pointsengine.NewModule(pointsengine.Dependencies{
			Users:  store,
			Cache:  cache,
			Clock:  store,
			IDGen:  store,
			Logger: logger,
		})
		awards := pointsBridge{points: points.Service}

		pins = pinservice.NewModule(pinservice.Dependencies{
			Pins:   store,
			Votes:  store,
			Awards: awards,
			Hasher: store,
			Clock:  store,
			IDGen:  store,
			Logger: logger,
		})
		classifier = classifierservice.NewModule(classifierservice.Dependencies{
			Images: store,
			Hasher: store,
			Logger: logger,
		})
		confirmations = confirmationservice.NewModule(confirmationservice.Dependencies{
			Confirmations: store,
			Awards:        awards,
			Clock:         store,
			IDGen:         store,
			Logger:        logger,
		})
	}

	server := httpserver.New(pins, classifier, confirmations, points, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:   server,
		postgres: pg,
		redis:    redisClient,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	var closeErr error
	if a.redis != nil {
		closeErr = a.redis.Close()
	}
	if a.postgres != nil {
		if err := a.postgres.Close(); err != nil {
			closeErr = err
		}
	}
	return closeErr
}

// pointsBridge exposes the points engine to the other engines through their
// own award ports, discarding the award receipt they have no use for.
type pointsBridge struct {
	points pointsapp.Service
}

func (b pointsBridge) UserExists(ctx context.Context, userID string) (bool, error) {
	return b.points.UserExists(ctx, userID)
}

func (b pointsBridge) AwardPoints(ctx context.Context, userID string, action string) error {
	_, err := b.points.AwardPoints(ctx, userID, action)
	return err
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
