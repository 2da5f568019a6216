package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - sort.go: Sort parameter codec configuration
//   - defaults.go: Where per-site sort defaults come from
//   - database.go: Database and cache configuration
//   - http.go: HTTP server configuration
//   - logging.go: Log level and format
type AppConfig struct {
	// IsDev controls development mode behavior (text logs, debug level).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Sort parameter codec configuration
	Sort SortConfig

	// Per-site default sort declarations
	Defaults DefaultsConfig

	// Database configuration
	Postgres DBConfig `envPrefix:"DB_"`
	Cache    CacheConfig

	// HTTP server configuration
	HTTP HTTPConfig

	// Logging configuration
	Logging LoggingConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Sort.Sanitize()
	c.Defaults.Sanitize()
	c.HTTP.Sanitize()
	c.Cache.Sanitize()

	// Check NODE_ENV for dev mode
	c.detectDevMode()
	c.Logging.Sanitize(c.IsDev)
}

// Validate reports configuration errors that cannot be sanitized away.
func (c *AppConfig) Validate() error {
	if err := c.Sort.Validate(); err != nil {
		return err
	}
	return c.Defaults.Validate()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
