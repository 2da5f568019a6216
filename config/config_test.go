package config

import (
	"log/slog"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/target/sortparam/internal/errors"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, DefaultSortParameter, cfg.Sort.Parameter)
	assert.Equal(t, DefaultPropertyDelimiter, cfg.Sort.PropertyDelimiter)
	assert.Equal(t, DefaultQualifierDelimiter, cfg.Sort.QualifierDelimiter)
	assert.Empty(t, cfg.Sort.Fallback)
	assert.False(t, cfg.Sort.LegacyFold)
	assert.Equal(t, DefaultsSourceNone, cfg.Defaults.Source)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Defaults.CacheTTL)
	require.NoError(t, cfg.Validate())
}

func TestAppConfig_ParseSortEnv(t *testing.T) {
	t.Setenv("SORT_PARAMETER", "order")
	t.Setenv("SORT_PROPERTY_DELIMITER", "|")
	t.Setenv("SORT_QUALIFIER_DELIMITER", "-")
	t.Setenv("SORT_FALLBACK", "created_at|desc; name|asc ;")
	t.Setenv("SORT_LEGACY_FOLD", "true")
	t.Setenv("SORT_DEFAULTS_SOURCE", "FILE")
	t.Setenv("SORT_DEFAULTS_FILE", "/etc/sortparam/defaults.yaml")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, "order", cfg.Sort.Parameter)
	assert.Equal(t, "|", cfg.Sort.PropertyDelimiter)
	assert.Equal(t, "-", cfg.Sort.QualifierDelimiter)
	assert.Equal(t, []string{"created_at|desc", "name|asc"}, cfg.Sort.Fallback)
	assert.True(t, cfg.Sort.LegacyFold)
	assert.Equal(t, DefaultsSourceFile, cfg.Defaults.Source)
	assert.Equal(t, "/etc/sortparam/defaults.yaml", cfg.Defaults.File)
	require.NoError(t, cfg.Validate())
}

func TestAppConfig_InvalidDefaultsSource(t *testing.T) {
	t.Setenv("SORT_DEFAULTS_SOURCE", "mongo")

	var cfg AppConfig
	assert.Error(t, env.Parse(&cfg))
}

func TestSortConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       SortConfig
		wantField string
	}{
		{name: "defaults are valid", cfg: DefaultSortConfig()},
		{
			name:      "blank parameter",
			cfg:       SortConfig{Parameter: "  ", PropertyDelimiter: ","},
			wantField: "SORT_PARAMETER",
		},
		{
			name:      "empty property delimiter",
			cfg:       SortConfig{Parameter: "sort", PropertyDelimiter: ""},
			wantField: "SORT_PROPERTY_DELIMITER",
		},
		{
			name:      "whitespace property delimiter",
			cfg:       SortConfig{Parameter: "sort", PropertyDelimiter: " "},
			wantField: "SORT_PROPERTY_DELIMITER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperrors.IsConfiguration(err))
			assert.Equal(t, tt.wantField, apperrors.GetField(err))
		})
	}
}

func TestSortConfig_SanitizeResetsQualifierDelimiter(t *testing.T) {
	cfg := SortConfig{Parameter: " sort ", PropertyDelimiter: ",", QualifierDelimiter: ""}
	cfg.Sanitize()
	assert.Equal(t, "sort", cfg.Parameter)
	assert.Equal(t, DefaultQualifierDelimiter, cfg.QualifierDelimiter)
}

func TestSortConfig_SanitizeKeepsCallerSlice(t *testing.T) {
	loaded := []string{" ", "name,desc", ""}
	cfg := SortConfig{Parameter: "sort", PropertyDelimiter: ",", Fallback: loaded}
	cfg.Sanitize()

	assert.Equal(t, []string{"name,desc"}, cfg.Fallback)
	assert.Equal(t, []string{" ", "name,desc", ""}, loaded)
}

func TestDefaultsConfig_Validate(t *testing.T) {
	cfg := DefaultsConfig{Source: DefaultsSourceFile, File: " "}
	cfg.Sanitize()
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, apperrors.IsConfiguration(err))

	cfg = DefaultsConfig{Source: DefaultsSourceNone, CacheEnabled: true}
	cfg.Sanitize()
	assert.False(t, cfg.CacheEnabled)
}

func TestLoggingConfig(t *testing.T) {
	cfg := LoggingConfig{Level: " DEBUG "}
	cfg.Sanitize(true)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())

	cfg = LoggingConfig{Level: "bogus", Format: "xml"}
	cfg.Sanitize(false)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	cfg := HTTPConfig{}
	cfg.Sanitize()
	assert.Equal(t, 10*time.Second, cfg.ReadHeaderTimeout)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
}

func TestDBConfig_DSN(t *testing.T) {
	cfg := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/n?sslmode=disable", cfg.DSN())
}

func TestCacheConfig_Sanitize(t *testing.T) {
	cfg := CacheConfig{Backend: " MEMORY ", RedisDB: -1}
	cfg.Sanitize()
	assert.Equal(t, CacheBackendMemory, cfg.Backend)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 1024, cfg.LocalCapacity)
	assert.Equal(t, 5*time.Second, cfg.DialTimeout)

	cfg = CacheConfig{Backend: "memcached"}
	cfg.Sanitize()
	assert.Equal(t, CacheBackendRedis, cfg.Backend)
}
