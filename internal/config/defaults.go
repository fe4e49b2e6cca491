package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/quantmind-br/tokenlist-go/internal/domain"
)

// Default values
const (
	// Fetch defaults
	DefaultFetchTimeout time.Duration = 0

	// Cache defaults
	DefaultCacheEnabled = false
	DefaultCacheTTL     = time.Hour

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tokenlist"
	}
	return filepath.Join(home, ".tokenlist")
}

// CacheDir returns the cache directory path
func CacheDir() string {
	return filepath.Join(ConfigDir(), "cache")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Sources: SourcesConfig{
			DefaultStrategy: string(domain.DefaultStrategy),
			GitHub:          domain.DefaultRepositories(domain.StrategyGitHub),
			CDN:             domain.DefaultRepositories(domain.StrategyCDN),
			Solana:          domain.DefaultRepositories(domain.StrategySolana),
		},
		Fetch: FetchConfig{
			Timeout: DefaultFetchTimeout,
		},
		Cache: CacheConfig{
			Enabled:   DefaultCacheEnabled,
			TTL:       DefaultCacheTTL,
			Directory: CacheDir(),
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
