package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/target/sortparam/config"
	"github.com/target/sortparam/internal/core"
	"github.com/target/sortparam/internal/data"
	httpx "github.com/target/sortparam/internal/http"
	"github.com/target/sortparam/internal/service"
	"github.com/target/sortparam/internal/service/sortcodec"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Codec        *sortcodec.Codec
	SortParams   *service.SortParamService
	SortApply    *service.SortApplyService
	SortDefaults *service.SortDefaultsService // nil when SORT_DEFAULTS_SOURCE=none
	HealthChecks []httpx.HealthCheck
}

// ServiceDeps groups dependencies for service initialization.
// DB and Redis are only consulted when the configuration asks for them.
type ServiceDeps struct {
	Config *config.AppConfig
	DB     *sql.DB
	Redis  *redis.Client
	Logger *slog.Logger
}

// NeedsDB reports whether cfg requires a PostgreSQL connection.
func NeedsDB(cfg *config.AppConfig) bool {
	return cfg.Defaults.Source == config.DefaultsSourcePostgres
}

// NeedsRedis reports whether cfg requires a Redis connection.
func NeedsRedis(cfg *config.AppConfig) bool {
	return cfg.Defaults.CacheEnabled && cfg.Cache.Backend == config.CacheBackendRedis
}

// NewServices wires the codec, the defaults repository and the services built on them.
func NewServices(deps *ServiceDeps) (*ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return nil, errors.New("service deps with config are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	codec, err := sortcodec.NewCodec(deps.Config.Sort)
	if err != nil {
		return nil, fmt.Errorf("sort codec: %w", err)
	}

	repo, checks, err := buildDefaultsRepo(deps, logger)
	if err != nil {
		return nil, err
	}

	c := &ServiceContainer{
		Codec: codec,
		SortParams: service.NewSortParamService(service.SortParamServiceOptions{
			Codec:    codec,
			Defaults: repo,
			Logger:   logger,
		}),
		SortApply:    service.NewSortApplyService(service.SortApplyServiceOptions{Logger: logger}),
		HealthChecks: checks,
	}
	if repo != nil {
		c.SortDefaults = service.NewSortDefaultsService(service.SortDefaultsServiceOptions{
			Repo:   repo,
			Codec:  codec,
			Logger: logger,
		})
	}
	return c, nil
}

// buildDefaultsRepo picks the repository for SORT_DEFAULTS_SOURCE and wraps it in the
// configured cache. A nil repository means per-site defaults are disabled.
func buildDefaultsRepo(deps *ServiceDeps, logger *slog.Logger) (core.SortDefaultsRepository, []httpx.HealthCheck, error) {
	cfg := deps.Config
	var (
		repo   core.SortDefaultsRepository
		checks []httpx.HealthCheck
	)

	switch cfg.Defaults.Source {
	case config.DefaultsSourceFile:
		fileRepo, err := data.NewFileSortDefaultsRepo(cfg.Defaults.File)
		if err != nil {
			return nil, nil, fmt.Errorf("load sort defaults file: %w", err)
		}
		repo = fileRepo
	case config.DefaultsSourcePostgres:
		if deps.DB == nil {
			return nil, nil, errors.New("postgres sort defaults require a database connection")
		}
		repo = data.NewSortDefaultsRepo(deps.DB)
		db := deps.DB
		checks = append(checks, httpx.HealthCheck{Name: "postgres", Check: db.PingContext})
	default:
		return nil, nil, nil
	}

	if !cfg.Defaults.CacheEnabled {
		return repo, checks, nil
	}

	var cache core.CacheRepository
	switch cfg.Cache.Backend {
	case config.CacheBackendMemory:
		cache = data.NewLocalCache(data.LocalCacheConfig{Capacity: cfg.Cache.LocalCapacity})
	default:
		if deps.Redis == nil {
			return nil, nil, errors.New("redis cache requires a redis connection")
		}
		redisCache := data.NewRedisCacheRepo(deps.Redis)
		cache = redisCache
		checks = append(checks, httpx.HealthCheck{Name: "redis", Check: redisCache.Health})
	}

	logger.Info("sort defaults cache enabled", "backend", cfg.Cache.Backend, "ttl", cfg.Defaults.CacheTTL)
	return data.NewCachedSortDefaultsRepo(data.CachedSortDefaultsRepoOptions{
		Repo:  repo,
		Cache: cache,
		Config: data.CachedSortDefaultsConfig{
			TTL:    cfg.Defaults.CacheTTL,
			Logger: logger,
		},
	}), checks, nil
}

// Infrastructure holds the optional connections a configuration needs.
type Infrastructure struct {
	DB    *sql.DB
	Redis *redis.Client
}

// Close releases every open connection.
func (i *Infrastructure) Close() error {
	var errs []error
	if i.DB != nil {
		if err := i.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	return errors.Join(errs...)
}

// ConnectInfrastructure opens the connections cfg needs and runs migrations when enabled.
func ConnectInfrastructure(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*Infrastructure, error) {
	infra := &Infrastructure{}

	if NeedsDB(cfg) {
		db, err := ConnectDB(ctx, DatabaseConfig{DBConfig: cfg.Postgres, Logger: logger})
		if err != nil {
			return nil, fmt.Errorf("connect db: %w", err)
		}
		infra.DB = db

		if cfg.Postgres.RunMigrationsOnStart {
			if err := RunMigrations(ctx, db, logger); err != nil {
				return nil, errors.Join(err, infra.Close())
			}
		} else {
			logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
		}
	}

	if NeedsRedis(cfg) {
		client, err := ConnectRedis(ctx, cfg.Cache, logger)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("connect redis: %w", err), infra.Close())
		}
		infra.Redis = client
	}

	return infra, nil
}
