package sortcodec

import (
	"github.com/target/sortparam/config"
	"github.com/target/sortparam/internal/domain/model"
)

// Codec binds the parse, fold and default resolution functions to a validated SortConfig.
type Codec struct {
	cfg      config.SortConfig
	fallback *model.Sort
}

// NewCodec validates cfg and parses its fallback.
// A blank parameter name or property delimiter is a configuration error.
func NewCodec(cfg config.SortConfig) (*Codec, error) {
	cfg.Fallback = append([]string(nil), cfg.Fallback...)
	cfg.Sanitize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var fallback *model.Sort
	if !cfg.DisableFallback {
		s := Parse(cfg.Fallback, cfg.PropertyDelimiter)
		fallback = &s
	}
	return &Codec{cfg: cfg, fallback: fallback}, nil
}

// MustNewCodec is like NewCodec but panics on an invalid configuration.
func MustNewCodec(cfg config.SortConfig) *Codec {
	c, err := NewCodec(cfg)
	if err != nil {
		panic(err)
	}
	return c
}

// Config returns the sanitized configuration.
func (c *Codec) Config() config.SortConfig { return c.cfg }

// Fallback returns the configured fallback, nil when disabled.
func (c *Codec) Fallback() *model.Sort { return c.fallback }

// ParameterName returns the request parameter for qualifier, e.g. "user_sort".
func (c *Codec) ParameterName(qualifier string) string {
	if qualifier == "" {
		return c.cfg.Parameter
	}
	return qualifier + c.cfg.QualifierDelimiter + c.cfg.Parameter
}

// Parse turns raw request values into a Sort.
func (c *Codec) Parse(values []string) model.Sort {
	return Parse(values, c.cfg.PropertyDelimiter)
}

// Fold serializes s grouping same-direction runs.
func (c *Codec) Fold(s model.Sort) []string {
	return Fold(s, c.cfg.PropertyDelimiter)
}

// LegacyFold serializes s into a single-direction expression.
func (c *Codec) LegacyFold(s model.Sort) ([]string, error) {
	return LegacyFold(s, c.cfg.PropertyDelimiter)
}

// Expressions folds s with the policy selected by the configuration.
func (c *Codec) Expressions(s model.Sort) ([]string, error) {
	if c.cfg.LegacyFold {
		return c.LegacyFold(s)
	}
	return c.Fold(s), nil
}

// ResolveDefault resolves site defaults against the configured fallback.
func (c *Codec) ResolveDefault(defaults *model.SortDefaults) (*model.Sort, error) {
	return ResolveDefault(defaults, c.fallback)
}
