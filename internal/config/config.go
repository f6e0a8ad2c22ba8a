// Package config loads marketlink service configuration from a YAML file
// with .env and environment variable overrides.
package config

import (
	"time"

	"github.com/jonesrussell/marketlink/internal/logger"
	"github.com/jonesrussell/marketlink/internal/markets"
	"github.com/jonesrussell/marketlink/internal/matcher"
	"github.com/jonesrussell/marketlink/internal/selector"
	"github.com/jonesrussell/marketlink/internal/tokenizer"
)

// Default configuration values.
const (
	defaultServiceName    = "marketlink"
	defaultServiceVersion = "1.0.0"
	defaultServicePort    = 8090
	defaultReadTimeout    = 30 * time.Second
	defaultWriteTimeout   = 60 * time.Second
	defaultIdleTimeout    = 120 * time.Second
	defaultMaxTopResults  = 3
)

// Config holds all configuration for the marketlink service.
type Config struct {
	Service  ServiceConfig          `yaml:"service"`
	Markets  markets.Config         `yaml:"markets"`
	Matching MatchingConfig         `yaml:"matching"`
	Selector selector.SignalWeights `yaml:"selector"`
	Database DatabaseConfig         `yaml:"database"`
	Logging  logger.Config          `yaml:"logging"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name         string        `yaml:"name"`
	Version      string        `yaml:"version"`
	Port         int           `env:"MARKETLINK_PORT" yaml:"port"`
	Debug        bool          `env:"APP_DEBUG"       yaml:"debug"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// MatchingConfig holds the matching core's configuration.
type MatchingConfig struct {
	Tokenizer     tokenizer.Config     `yaml:"tokenizer"`
	MinMatchScore float64              `yaml:"min_match_score"`
	MaxTopResults int                  `yaml:"max_top_results"`
	Exclusions    armedExclusions      `yaml:"exclusions"`
	Categories    []CategoryRuleConfig `yaml:"categories"`
}

// armedExclusions wraps the exclusion policy with an enable flag so an
// empty policy in YAML does not silently re-enable the default one.
type armedExclusions struct {
	Disabled bool                    `yaml:"disabled"`
	Policy   markets.ExclusionPolicy `yaml:",inline"`
}

// CategoryRuleConfig is a category rule as written in the config file.
// File-defined rules replace the built-in table entirely when present.
type CategoryRuleConfig struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// DatabaseConfig holds rule-store configuration. An empty path disables
// the store and the service runs on built-in or file-defined rules.
type DatabaseConfig struct {
	Path string `env:"MARKETLINK_DB_PATH" yaml:"path"`
}

// SetDefaults applies default values to any unset fields.
func (c *Config) SetDefaults() {
	if c.Service.Name == "" {
		c.Service.Name = defaultServiceName
	}
	if c.Service.Version == "" {
		c.Service.Version = defaultServiceVersion
	}
	if c.Service.Port == 0 {
		c.Service.Port = defaultServicePort
	}
	if c.Service.ReadTimeout == 0 {
		c.Service.ReadTimeout = defaultReadTimeout
	}
	if c.Service.WriteTimeout == 0 {
		c.Service.WriteTimeout = defaultWriteTimeout
	}
	if c.Service.IdleTimeout == 0 {
		c.Service.IdleTimeout = defaultIdleTimeout
	}
	if c.Matching.MinMatchScore == 0 {
		c.Matching.MinMatchScore = matcher.DefaultMinMatchScore
	}
	if c.Matching.MaxTopResults == 0 {
		c.Matching.MaxTopResults = defaultMaxTopResults
	}
	c.Markets.SetDefaults()
	c.Logging.SetDefaults()
}

// ExclusionPolicy resolves the effective exclusion policy: disabled means
// none, an explicit policy wins, otherwise the default sports exclusion.
func (c *Config) ExclusionPolicy() markets.ExclusionPolicy {
	if c.Matching.Exclusions.Disabled {
		return markets.ExclusionPolicy{}
	}
	if !c.Matching.Exclusions.Policy.IsEmpty() {
		return c.Matching.Exclusions.Policy
	}
	return markets.DefaultExclusionPolicy()
}
