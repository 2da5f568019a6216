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

// SortSource tells where a resolved sort came from.
type SortSource string

const (
	// SortSourceRequest means the request carried the sort parameter.
	SortSourceRequest SortSource = "request"
	// SortSourceDefault means the site's stored defaults were used.
	SortSourceDefault SortSource = "default"
	// SortSourceFallback means neither the request nor the site declared a sort.
	SortSourceFallback SortSource = "fallback"
)

// SortRequest carries the raw sort parameter of one request.
// Present is false when the parameter was missing altogether.
type SortRequest struct {
	Site      string
	Qualifier string
	Values    []string
	Present   bool
}

// SortResolution is the outcome of resolving a SortRequest.
// Sort is nil only when no fallback is configured and nothing else applied.
type SortResolution struct {
	Parameter string      `json:"parameter"`
	Source    SortSource  `json:"source"`
	Sort      *model.Sort `json:"sort"`
}

// SortParamServiceOptions groups dependencies for SortParamService.
type SortParamServiceOptions struct {
	Codec    *sortcodec.Codec            // Required
	Defaults core.SortDefaultsRepository // Optional: per-site default declarations
	Logger   *slog.Logger                // Optional
}

// SortParamService binds request sort parameters to model.Sort values and back.
type SortParamService struct {
	codec    *sortcodec.Codec
	defaults core.SortDefaultsRepository
	logger   *slog.Logger
}

// NewSortParamService constructs a new SortParamService.
func NewSortParamService(opts SortParamServiceOptions) *SortParamService {
	if opts.Codec == nil {
		panic("sort codec is required")
	}
	return &SortParamService{codec: opts.Codec, defaults: opts.Defaults, logger: opts.Logger}
}

// Codec returns the codec the service was configured with.
func (s *SortParamService) Codec() *sortcodec.Codec { return s.codec }

// ParameterName returns the request parameter name for qualifier.
func (s *SortParamService) ParameterName(qualifier string) string {
	return s.codec.ParameterName(qualifier)
}

// Resolve parses the request values or, when the parameter is missing or a single blank value,
// falls back to the site defaults and then to the configured fallback.
func (s *SortParamService) Resolve(ctx context.Context, req SortRequest) (*SortResolution, error) {
	res := &SortResolution{Parameter: s.codec.ParameterName(req.Qualifier)}

	if hasSortValues(req) {
		parsed := s.codec.Parse(req.Values)
		res.Source = SortSourceRequest
		res.Sort = &parsed
		return res, nil
	}

	defaults, err := s.lookupDefaults(ctx, req.Site)
	if err != nil {
		return nil, err
	}

	resolved, err := s.codec.ResolveDefault(defaults)
	if err != nil {
		return nil, err
	}

	res.Sort = resolved
	res.Source = SortSourceFallback
	if !defaults.IsEmpty() {
		res.Source = SortSourceDefault
	}
	if s.logger != nil {
		s.logger.DebugContext(ctx, "sort parameter not supplied",
			"parameter", res.Parameter, "site", req.Site, "source", res.Source)
	}
	return res, nil
}

// Expressions folds sort into request parameter values.
// legacy selects the single-direction policy, which fails on mixed directions.
func (s *SortParamService) Expressions(sort model.Sort, legacy bool) ([]string, error) {
	if legacy {
		return s.codec.LegacyFold(sort)
	}
	return s.codec.Fold(sort), nil
}

func (s *SortParamService) lookupDefaults(ctx context.Context, site string) (*model.SortDefaults, error) {
	if s.defaults == nil || site == "" {
		return nil, nil
	}
	defaults, err := s.defaults.Get(ctx, site)
	if apperrors.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get sort defaults: %w", err)
	}
	return defaults, nil
}

// hasSortValues treats a missing parameter, an empty value list and a lone blank value as absent.
func hasSortValues(req SortRequest) bool {
	if !req.Present || len(req.Values) == 0 {
		return false
	}
	return len(req.Values) > 1 || strings.TrimSpace(req.Values[0]) != ""
}
