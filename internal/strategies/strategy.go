package strategies

import (
	"context"
	"time"

	"github.com/quantmind-br/tokenlist-go/internal/cache"
	"github.com/quantmind-br/tokenlist-go/internal/domain"
	"github.com/quantmind-br/tokenlist-go/internal/fetcher"
	"github.com/quantmind-br/tokenlist-go/internal/metrics"
	"github.com/quantmind-br/tokenlist-go/internal/utils"
)

// Strategy resolves the token list from a fixed set of mirrors
type Strategy interface {
	// Name returns the strategy name
	Name() domain.StrategyName
	// Repositories returns the mirror URLs in fetch order
	Repositories() []string
	// Resolve fetches every mirror and merges their tokens.
	// Unreachable mirrors contribute nothing; Resolve never fails.
	Resolve(ctx context.Context) []domain.TokenInfo
}

// Dependencies contains shared dependencies for all strategies
type Dependencies struct {
	Fetcher domain.Fetcher
	Cache   domain.Cache
	Logger  *utils.Logger
	Metrics *metrics.Metrics
}

// DependencyOptions contains options for creating dependencies
type DependencyOptions struct {
	Timeout     time.Duration
	EnableCache bool
	CacheTTL    time.Duration
	CacheDir    string
	UserAgent   string
	ProxyURL    string
	Verbose     bool
	LogLevel    string
	LogFormat   string
	// Logger overrides LogLevel, LogFormat and Verbose
	Logger  *utils.Logger
	Metrics *metrics.Metrics
}

// NewDependencies creates new dependencies for strategies
func NewDependencies(opts DependencyOptions) (*Dependencies, error) {
	fetcherClient, err := fetcher.NewClient(fetcher.ClientOptions{
		Timeout:     opts.Timeout,
		EnableCache: opts.EnableCache,
		CacheTTL:    opts.CacheTTL,
		UserAgent:   opts.UserAgent,
		ProxyURL:    opts.ProxyURL,
	})
	if err != nil {
		return nil, err
	}

	var cacheImpl domain.Cache
	if opts.EnableCache {
		cacheImpl, err = cache.NewBadgerCache(cache.Options{
			Directory: opts.CacheDir,
		})
		if err != nil {
			return nil, err
		}
		fetcherClient.SetCache(cacheImpl)
	}

	logger := opts.Logger
	if logger == nil {
		logger = utils.NewLogger(utils.LoggerOptions{
			Level:   opts.LogLevel,
			Format:  opts.LogFormat,
			Verbose: opts.Verbose,
		})
	}

	return &Dependencies{
		Fetcher: fetcherClient,
		Cache:   cacheImpl,
		Logger:  logger,
		Metrics: opts.Metrics,
	}, nil
}

// Close releases all resources
func (d *Dependencies) Close() error {
	if d.Fetcher != nil {
		d.Fetcher.Close()
	}
	if d.Cache != nil {
		return d.Cache.Close()
	}
	return nil
}
