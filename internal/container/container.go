package container

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	database "github.com/FACorreiaa/go-activity-locations/app/db"
	"github.com/FACorreiaa/go-activity-locations/config"
	"github.com/FACorreiaa/go-activity-locations/internal/api/activitylocation"
	"github.com/FACorreiaa/go-activity-locations/internal/api/events"
	"github.com/FACorreiaa/go-activity-locations/internal/api/gazetteer"
	"github.com/FACorreiaa/go-activity-locations/internal/api/locationedit"
)

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *slog.Logger
	Pool            *pgxpool.Pool
	Redis           *redis.Client
	Broker          *events.Broker
	LocationService *activitylocation.ServiceImpl
	LocationHandler *activitylocation.HandlerImpl

	redisPublisher *events.RedisPublisher
	redisRelay     *events.RedisRelay
}

// NewContainer initializes and returns a new dependency container
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		return nil, err
	}

	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		return nil, err
	}

	rdb, err := database.OpenRedis(ctx, cfg, logger)
	if err != nil {
		pool.Close()
		return nil, err
	}

	return build(cfg, logger, pool, rdb), nil
}

func build(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool, rdb *redis.Client) *Container {
	gzCfg := cfg.Gazetteer
	var gz gazetteer.Client = gazetteer.NewHTTPClient(gazetteer.Config{
		BaseURL:   gzCfg.BaseURL,
		ProgramID: gzCfg.ProgramID,
		Timeout:   gzCfg.Timeout,
		PageLimit: gzCfg.SearchPageLimit,
	}, nil, logger)
	if gzCfg.CacheTTL > 0 {
		gz = gazetteer.NewCachedClient(gz, gzCfg.CacheTTL, logger)
	}

	broker := events.NewBroker(logger)
	publishers := locationedit.Publishers{broker}

	c := &Container{
		Config: cfg,
		Logger: logger,
		Pool:   pool,
		Redis:  rdb,
		Broker: broker,
	}

	if rdb != nil {
		// Each instance tags what it sends so it can skip its own events.
		origin := instanceID()
		c.redisPublisher = events.NewRedisPublisher(rdb, origin, 256, logger)
		c.redisRelay = events.NewRedisRelay(rdb, broker, origin, logger)
		publishers = append(publishers, c.redisPublisher)
	}

	repo := activitylocation.NewRepository(pool, logger)
	c.LocationService = activitylocation.NewServiceImpl(repo, gz, publishers, activitylocation.Config{
		PreciseEpsilon: cfg.Locations.PreciseEpsilon,
		WorkspaceTTL:   cfg.Locations.WorkspaceTTL,
		AutoSave:       cfg.Locations.AutoSave,
		SearchMinChars: gzCfg.SearchMinChars,
	}, logger)
	c.LocationHandler = activitylocation.NewHandlerImpl(c.LocationService, broker, logger)
	return c
}

func instanceID() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "instance"
	}
	return host + "-" + uuid.NewString()[:8]
}

// Run drives the Redis event relay until ctx is done. Without Redis it
// returns immediately.
func (c *Container) Run(ctx context.Context) error {
	if c.Redis == nil {
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c.redisPublisher.Run(gctx)
		return nil
	})
	g.Go(func() error {
		return c.redisRelay.Run(gctx)
	})
	return g.Wait()
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("Error closing redis client", slog.Any("error", err))
		}
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
}

// WaitForDB waits for the database to be ready
func (c *Container) WaitForDB(ctx context.Context) bool {
	return database.WaitForDB(ctx, c.Pool, c.Logger)
}

// RunMigrations runs database migrations
func (c *Container) RunMigrations(connectionURL string) error {
	return database.RunMigrations(connectionURL, c.Logger)
}
