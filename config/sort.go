package config

import (
	"strings"

	apperrors "github.com/target/sortparam/internal/errors"
)

const (
	// DefaultSortParameter is the request parameter sort expressions are read from.
	DefaultSortParameter = "sort"
	// DefaultPropertyDelimiter separates properties and the direction: firstname,lastname,asc.
	DefaultPropertyDelimiter = ","
	// DefaultQualifierDelimiter joins a qualifier and the sort parameter: user_sort.
	DefaultQualifierDelimiter = "_"
)

// SortConfig configures how sort expressions are read from and written to requests.
type SortConfig struct {
	// Parameter is the request parameter to look sort expressions up from.
	Parameter string `env:"SORT_PARAMETER" envDefault:"sort"`

	// PropertyDelimiter separates property references and the trailing direction.
	PropertyDelimiter string `env:"SORT_PROPERTY_DELIMITER" envDefault:","`

	// QualifierDelimiter separates a qualifier from the sort parameter.
	// Empty resets to the default.
	QualifierDelimiter string `env:"SORT_QUALIFIER_DELIMITER" envDefault:"_"`

	// Fallback is used when neither the request nor the site declares a sort.
	// It is written in request syntax, e.g. "created_at,desc". Empty means unsorted.
	Fallback []string `env:"SORT_FALLBACK" envSeparator:";"`

	// DisableFallback makes requests without any sort resolve to nothing at all
	// instead of the fallback.
	DisableFallback bool `env:"SORT_DISABLE_FALLBACK" envDefault:"false"`

	// LegacyFold restricts folding to a single direction group.
	LegacyFold bool `env:"SORT_LEGACY_FOLD" envDefault:"false"`
}

// DefaultSortConfig returns a SortConfig with the standard parameter name and delimiters.
func DefaultSortConfig() SortConfig {
	return SortConfig{
		Parameter:          DefaultSortParameter,
		PropertyDelimiter:  DefaultPropertyDelimiter,
		QualifierDelimiter: DefaultQualifierDelimiter,
	}
}

// Sanitize normalises the sort configuration.
func (c *SortConfig) Sanitize() {
	c.Parameter = strings.TrimSpace(c.Parameter)
	if c.QualifierDelimiter == "" {
		c.QualifierDelimiter = DefaultQualifierDelimiter
	}
	fallback := make([]string, 0, len(c.Fallback))
	for _, f := range c.Fallback {
		if f = strings.TrimSpace(f); f != "" {
			fallback = append(fallback, f)
		}
	}
	c.Fallback = fallback
}

// Validate returns a configuration error when the parameter name or property delimiter is blank.
func (c *SortConfig) Validate() error {
	if strings.TrimSpace(c.Parameter) == "" {
		return apperrors.Configuration("SORT_PARAMETER", "sort parameter must not be empty")
	}
	if strings.TrimSpace(c.PropertyDelimiter) == "" {
		return apperrors.Configuration("SORT_PROPERTY_DELIMITER", "property delimiter must not be empty")
	}
	return nil
}
