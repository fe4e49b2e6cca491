package config

import (
	"errors"
	"strings"

	"github.com/quantmind-br/tokenlist-go/internal/domain"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides (TOKENLIST_CACHE_ENABLED, ...)
const EnvPrefix = "TOKENLIST"

// LoadFrom loads configuration into v, keeping any flags already bound to it.
// A config file set with v.SetConfigFile takes the place of the search path.
func LoadFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		v.AddConfigPath(".")
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	v.SetDefault("sources.default_strategy", string(domain.DefaultStrategy))
	v.SetDefault("sources.github", domain.DefaultRepositories(domain.StrategyGitHub))
	v.SetDefault("sources.cdn", domain.DefaultRepositories(domain.StrategyCDN))
	v.SetDefault("sources.solana", domain.DefaultRepositories(domain.StrategySolana))

	v.SetDefault("fetch.timeout", DefaultFetchTimeout)
	v.SetDefault("fetch.user_agent", "")
	v.SetDefault("fetch.proxy_url", "")

	v.SetDefault("cache.enabled", DefaultCacheEnabled)
	v.SetDefault("cache.ttl", DefaultCacheTTL)
	v.SetDefault("cache.directory", CacheDir())

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}
