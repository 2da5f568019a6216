package config

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/target/sortparam/internal/errors"
)

// DefaultsSource selects where per-site sort defaults are read from.
type DefaultsSource string

const (
	// DefaultsSourceNone disables per-site defaults; only the fallback applies.
	DefaultsSourceNone DefaultsSource = "none"
	// DefaultsSourceFile reads defaults from a YAML file.
	DefaultsSourceFile DefaultsSource = "file"
	// DefaultsSourcePostgres reads defaults from the sort_defaults table.
	DefaultsSourcePostgres DefaultsSource = "postgres"
)

// UnmarshalText implements encoding.TextUnmarshaler for DefaultsSource.
func (s *DefaultsSource) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "none", "file", "postgres":
		*s = DefaultsSource(v)
		return nil
	default:
		return fmt.Errorf("invalid DefaultsSource: %q (valid options: none, file, postgres)", v)
	}
}

// DefaultsConfig configures the per-site sort defaults repository.
type DefaultsConfig struct {
	Source DefaultsSource `env:"SORT_DEFAULTS_SOURCE" envDefault:"none"`

	// File is the YAML file read when Source is "file".
	File string `env:"SORT_DEFAULTS_FILE" envDefault:"sort-defaults.yaml"`

	// CacheEnabled puts a Redis read-through cache in front of the repository.
	CacheEnabled bool `env:"SORT_DEFAULTS_CACHE_ENABLED" envDefault:"false"`

	// CacheTTL is how long resolved site defaults stay cached.
	CacheTTL time.Duration `env:"SORT_DEFAULTS_CACHE_TTL" envDefault:"5m"`
}

// Sanitize applies guardrails to the defaults configuration.
func (c *DefaultsConfig) Sanitize() {
	if c.Source == "" {
		c.Source = DefaultsSourceNone
	}
	c.File = strings.TrimSpace(c.File)
	if c.CacheTTL <= 0 {
		c.CacheTTL = 5 * time.Minute
	}
	if c.Source == DefaultsSourceNone {
		c.CacheEnabled = false
	}
}

// Validate reports a configuration error when the file source has no path.
func (c *DefaultsConfig) Validate() error {
	if c.Source == DefaultsSourceFile && c.File == "" {
		return apperrors.Configuration("SORT_DEFAULTS_FILE", "defaults file is required when SORT_DEFAULTS_SOURCE=file")
	}
	return nil
}
