package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/quantmind-br/tokenlist-go/internal/domain"
	"github.com/quantmind-br/tokenlist-go/internal/utils"
)

// Config represents the application configuration
type Config struct {
	Sources SourcesConfig `mapstructure:"sources" yaml:"sources"`
	Fetch   FetchConfig   `mapstructure:"fetch" yaml:"fetch"`
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// SourcesConfig holds the strategy selection and the mirror list of each strategy
type SourcesConfig struct {
	DefaultStrategy string   `mapstructure:"default_strategy" yaml:"default_strategy"`
	GitHub          []string `mapstructure:"github" yaml:"github"`
	CDN             []string `mapstructure:"cdn" yaml:"cdn"`
	Solana          []string `mapstructure:"solana" yaml:"solana"`
}

// FetchConfig contains HTTP settings
type FetchConfig struct {
	// Timeout of zero keeps the transport default
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	UserAgent string        `mapstructure:"user_agent" yaml:"user_agent"`
	ProxyURL  string        `mapstructure:"proxy_url" yaml:"proxy_url"`
}

// CacheConfig contains cache settings
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL       time.Duration `mapstructure:"ttl" yaml:"ttl"`
	Directory string        `mapstructure:"directory" yaml:"directory"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Mirrors returns the configured mirror list for a strategy
func (s SourcesConfig) Mirrors(name domain.StrategyName) []string {
	switch name {
	case domain.StrategyGitHub:
		return s.GitHub
	case domain.StrategyCDN:
		return s.CDN
	case domain.StrategySolana:
		return s.Solana
	default:
		return nil
	}
}

// SetMirrors replaces the mirror list of a strategy
func (s *SourcesConfig) SetMirrors(name domain.StrategyName, mirrors []string) error {
	normalized, err := utils.NormalizeMirrors(mirrors)
	if err != nil {
		return domain.NewValidationError("sources."+strings.ToLower(string(name)), err.Error())
	}
	switch name {
	case domain.StrategyGitHub:
		s.GitHub = normalized
	case domain.StrategyCDN:
		s.CDN = normalized
	case domain.StrategySolana:
		s.Solana = normalized
	default:
		return domain.NewStrategyError(string(name), domain.ErrUnknownStrategy)
	}
	return nil
}

// Strategy returns the parsed default strategy name
func (s SourcesConfig) Strategy() domain.StrategyName {
	name, err := domain.ParseStrategyName(s.DefaultStrategy)
	if err != nil {
		return domain.DefaultStrategy
	}
	return name
}

// Validate validates the configuration, filling unset values with defaults
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Sources.DefaultStrategy) == "" {
		c.Sources.DefaultStrategy = string(domain.DefaultStrategy)
	}
	name, err := domain.ParseStrategyName(c.Sources.DefaultStrategy)
	if err != nil {
		return domain.NewValidationError("sources.default_strategy",
			fmt.Sprintf("%q is not one of %v", c.Sources.DefaultStrategy, domain.StrategyNames()))
	}
	c.Sources.DefaultStrategy = string(name)

	mirrors := map[string]*[]string{
		"sources.github": &c.Sources.GitHub,
		"sources.cdn":    &c.Sources.CDN,
		"sources.solana": &c.Sources.Solana,
	}
	defaults := map[string]domain.StrategyName{
		"sources.github": domain.StrategyGitHub,
		"sources.cdn":    domain.StrategyCDN,
		"sources.solana": domain.StrategySolana,
	}
	for field, list := range mirrors {
		if len(*list) == 0 {
			*list = domain.DefaultRepositories(defaults[field])
			continue
		}
		normalized, err := utils.NormalizeMirrors(*list)
		if err != nil {
			return domain.NewValidationError(field, err.Error())
		}
		*list = normalized
	}

	if c.Fetch.Timeout < 0 {
		c.Fetch.Timeout = DefaultFetchTimeout
	}
	if c.Fetch.ProxyURL != "" && !utils.IsHTTPURL(c.Fetch.ProxyURL) {
		return domain.NewValidationError("fetch.proxy_url", "must be an http(s) url")
	}
	if c.Cache.TTL < 0 {
		return domain.NewValidationError("cache.ttl", "must not be negative")
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Cache.Directory == "" {
		c.Cache.Directory = CacheDir()
	}
	c.Cache.Directory = utils.ExpandPath(c.Cache.Directory)

	switch c.Logging.Format {
	case "pretty", "json":
	default:
		c.Logging.Format = DefaultLogFormat
	}
	return nil
}
