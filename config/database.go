package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"                    envDefault:"localhost"`
	Port     int    `env:"PORT"                    envDefault:"5432"`
	User     string `env:"USER"                    envDefault:"sortparam"`
	Password string `env:"PASSWORD"                envDefault:"sortparam"`
	Name     string `env:"NAME"                    envDefault:"sortparam"`
	SSLMode  string `env:"SSL_MODE"                envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// DSN returns the pgx connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		c.User, c.Password, net.JoinHostPort(c.Host, strconv.Itoa(c.Port)), c.Name, c.SSLMode)
}

// Cache backends.
const (
	CacheBackendRedis  = "redis"
	CacheBackendMemory = "memory"
)

// CacheConfig contains cache configuration.
// The memory backend is a per-process LRU used when Redis is not available.
type CacheConfig struct {
	Backend       string `env:"CACHE_BACKEND"        envDefault:"redis"`
	LocalCapacity int    `env:"CACHE_LOCAL_CAPACITY" envDefault:"1024"`

	// Redis connection settings for cache.
	RedisAddr     string `env:"CACHE_REDIS_ADDR"     envDefault:"localhost:6379"`
	RedisPassword string `env:"CACHE_REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"CACHE_REDIS_DB"       envDefault:"0"`

	// DialTimeout bounds the initial Redis ping on startup.
	DialTimeout time.Duration `env:"CACHE_REDIS_DIAL_TIMEOUT" envDefault:"5s"`
}

// Sanitize applies guardrails to cache configuration values.
func (c *CacheConfig) Sanitize() {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if c.Backend != CacheBackendMemory {
		c.Backend = CacheBackendRedis
	}
	if c.LocalCapacity <= 0 {
		c.LocalCapacity = 1024
	}
	if c.RedisDB < 0 {
		c.RedisDB = 0
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = 5 * time.Second
	}
}
