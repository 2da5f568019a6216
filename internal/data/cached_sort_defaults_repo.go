package data

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/target/sortparam/internal/core"
	"github.com/target/sortparam/internal/domain/model"
)

var _ core.SortDefaultsRepository = (*CachedSortDefaultsRepo)(nil)

const sortDefaultsCachePrefix = "sortparam:defaults:"

// CachedSortDefaultsRepoOptions groups dependencies for CachedSortDefaultsRepo.
type CachedSortDefaultsRepoOptions struct {
	Repo   core.SortDefaultsRepository
	Cache  core.CacheRepository
	Config CachedSortDefaultsConfig
}

// CachedSortDefaultsConfig holds cache settings.
type CachedSortDefaultsConfig struct {
	TTL    time.Duration
	Logger *slog.Logger
}

// CachedSortDefaultsRepo is a read-through cache in front of another SortDefaultsRepository.
// Writes go to the underlying repository and invalidate the cached site.
// Cache failures are logged and never fail the call.
type CachedSortDefaultsRepo struct {
	repo   core.SortDefaultsRepository
	cache  core.CacheRepository
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedSortDefaultsRepo creates a new CachedSortDefaultsRepo.
func NewCachedSortDefaultsRepo(opts CachedSortDefaultsRepoOptions) *CachedSortDefaultsRepo {
	if opts.Repo == nil || opts.Cache == nil {
		panic("sort defaults repository and cache are required")
	}
	logger := opts.Config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedSortDefaultsRepo{
		repo:   opts.Repo,
		cache:  opts.Cache,
		ttl:    opts.Config.TTL,
		logger: logger.With("component", "sort_defaults_cache"),
	}
}

func sortDefaultsCacheKey(site string) string {
	return sortDefaultsCachePrefix + site
}

// Get returns the cached defaults of site, loading and caching them on a miss.
// Not-found results are not cached.
func (r *CachedSortDefaultsRepo) Get(ctx context.Context, site string) (*model.SortDefaults, error) {
	key := sortDefaultsCacheKey(site)

	raw, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.WarnContext(ctx, "sort defaults cache read failed", "site", site, "error", err)
	}
	if raw != nil {
		var cached model.SortDefaults
		if decodeErr := json.Unmarshal(raw, &cached); decodeErr == nil {
			return &cached, nil
		}
		r.logger.WarnContext(ctx, "discarding undecodable sort defaults cache entry", "site", site)
	}

	defaults, err := r.repo.Get(ctx, site)
	if err != nil {
		return nil, err
	}
	r.store(ctx, defaults)
	return defaults, nil
}

// Put writes through to the repository and refreshes the cached entry.
func (r *CachedSortDefaultsRepo) Put(ctx context.Context, defaults *model.SortDefaults) (*model.SortDefaults, error) {
	saved, err := r.repo.Put(ctx, defaults)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, saved.Site)
	return saved, nil
}

// Delete removes the defaults of site and its cached entry.
func (r *CachedSortDefaultsRepo) Delete(ctx context.Context, site string) (bool, error) {
	ok, err := r.repo.Delete(ctx, site)
	if err != nil {
		return false, err
	}
	r.invalidate(ctx, site)
	return ok, nil
}

// List bypasses the cache.
func (r *CachedSortDefaultsRepo) List(ctx context.Context, opts model.SortDefaultsListOptions) (*model.SortDefaultsPage, error) {
	return r.repo.List(ctx, opts)
}

func (r *CachedSortDefaultsRepo) store(ctx context.Context, defaults *model.SortDefaults) {
	raw, err := json.Marshal(defaults)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, sortDefaultsCacheKey(defaults.Site), raw, r.ttl); err != nil {
		r.logger.WarnContext(ctx, "sort defaults cache write failed", "site", defaults.Site, "error", err)
	}
}

func (r *CachedSortDefaultsRepo) invalidate(ctx context.Context, site string) {
	if _, err := r.cache.Delete(ctx, sortDefaultsCacheKey(site)); err != nil {
		r.logger.WarnContext(ctx, "sort defaults cache invalidation failed", "site", site, "error", err)
	}
}
