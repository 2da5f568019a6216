package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/target/sortparam/internal/core"
	"github.com/target/sortparam/internal/domain/model"
	apperrors "github.com/target/sortparam/internal/errors"
	"github.com/target/sortparam/internal/service/sortcodec"
)

// SortDefaultsServiceOptions groups dependencies for SortDefaultsService.
type SortDefaultsServiceOptions struct {
	Repo   core.SortDefaultsRepository // Required
	Codec  *sortcodec.Codec            // Required: resolves stored defaults
	Logger *slog.Logger                // Optional
}

// SortDefaultsService manages the default sort declarations of call sites.
type SortDefaultsService struct {
	repo   core.SortDefaultsRepository
	codec  *sortcodec.Codec
	logger *slog.Logger
}

// NewSortDefaultsService constructs a new SortDefaultsService.
func NewSortDefaultsService(opts SortDefaultsServiceOptions) *SortDefaultsService {
	if opts.Repo == nil {
		panic("SortDefaultsRepository is required")
	}
	if opts.Codec == nil {
		panic("sort codec is required")
	}
	return &SortDefaultsService{repo: opts.Repo, codec: opts.Codec, logger: opts.Logger}
}

// Get returns the stored defaults of site.
func (s *SortDefaultsService) Get(ctx context.Context, site string) (*model.SortDefaults, error) {
	site = strings.TrimSpace(site)
	if site == "" {
		return nil, apperrors.ValidationField("site", "site is required")
	}
	return s.repo.Get(ctx, site)
}

// List returns one page of stored defaults. A zero Limit returns every match.
func (s *SortDefaultsService) List(ctx context.Context, opts model.SortDefaultsListOptions) (*model.SortDefaultsPage, error) {
	if opts.Limit < 0 {
		return nil, apperrors.ValidationField("limit", "limit cannot be negative")
	}
	if opts.Offset < 0 {
		return nil, apperrors.ValidationField("offset", "offset cannot be negative")
	}
	page, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list sort defaults: %w", err)
	}
	if page == nil {
		page = &model.SortDefaultsPage{}
	}
	if page.Items == nil {
		page.Items = []*model.SortDefaults{}
	}
	return page, nil
}

// Put stores the defaults of a site, replacing existing ones.
// Declaring both forms is stored as-is and reported when resolved.
func (s *SortDefaultsService) Put(ctx context.Context, req model.PutSortDefaultsRequest) (*model.SortDefaults, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	}

	defaults := req.ToSortDefaults()
	saved, err := s.repo.Put(ctx, &defaults)
	if err != nil {
		return nil, fmt.Errorf("put sort defaults: %w", err)
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "sort defaults stored",
			"site", saved.Site, "single", saved.HasSingle(), "multiple", len(saved.Multiple))
	}
	return saved, nil
}

// Delete removes the defaults of site and reports whether any existed.
func (s *SortDefaultsService) Delete(ctx context.Context, site string) (bool, error) {
	site = strings.TrimSpace(site)
	if site == "" {
		return false, apperrors.ValidationField("site", "site is required")
	}
	return s.repo.Delete(ctx, site)
}

// Resolve returns the sort the site's defaults resolve to.
// A site without stored defaults resolves to the configured fallback.
func (s *SortDefaultsService) Resolve(ctx context.Context, site string) (*model.Sort, error) {
	defaults, err := s.Get(ctx, site)
	if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}
	return s.codec.ResolveDefault(defaults)
}
