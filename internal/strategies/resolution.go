package strategies

import (
	"context"
	"time"

	"github.com/quantmind-br/tokenlist-go/internal/domain"
	"github.com/quantmind-br/tokenlist-go/internal/fetcher"
	"github.com/quantmind-br/tokenlist-go/internal/metrics"
	"github.com/quantmind-br/tokenlist-go/internal/utils"
)

// Ensure ResolutionStrategy implements Strategy
var _ Strategy = (*ResolutionStrategy)(nil)

// ResolutionStrategy fetches a fixed, ordered list of mirrors concurrently
// and concatenates their tokens in mirror order. Duplicates across mirrors
// are kept.
type ResolutionStrategy struct {
	name         domain.StrategyName
	repositories []string
	fetcher      domain.Fetcher
	logger       *utils.Logger
	metrics      *metrics.Metrics
}

// NewResolutionStrategy creates a strategy over the given mirrors.
// The mirror list is copied and fixed for the life of the strategy.
func NewResolutionStrategy(name domain.StrategyName, repositories []string, deps *Dependencies) *ResolutionStrategy {
	repos := make([]string, len(repositories))
	copy(repos, repositories)

	logger := deps.Logger
	if logger == nil {
		logger = utils.NewNopLogger()
	}

	return &ResolutionStrategy{
		name:         name,
		repositories: repos,
		fetcher:      deps.Fetcher,
		logger:       logger.WithComponent("strategy").WithStrategy(string(name)),
		metrics:      deps.Metrics,
	}
}

// NewGitHubStrategy resolves from raw.githubusercontent.com unless mirrors are given
func NewGitHubStrategy(deps *Dependencies, repositories ...string) *ResolutionStrategy {
	return newNamedStrategy(domain.StrategyGitHub, deps, repositories)
}

// NewCDNStrategy resolves from jsDelivr unless mirrors are given
func NewCDNStrategy(deps *Dependencies, repositories ...string) *ResolutionStrategy {
	return newNamedStrategy(domain.StrategyCDN, deps, repositories)
}

// NewSolanaStrategy resolves from token-list.solana.com unless mirrors are given
func NewSolanaStrategy(deps *Dependencies, repositories ...string) *ResolutionStrategy {
	return newNamedStrategy(domain.StrategySolana, deps, repositories)
}

func newNamedStrategy(name domain.StrategyName, deps *Dependencies, repositories []string) *ResolutionStrategy {
	if len(repositories) == 0 {
		repositories = domain.DefaultRepositories(name)
	}
	return NewResolutionStrategy(name, repositories, deps)
}

// Name returns the strategy name
func (s *ResolutionStrategy) Name() domain.StrategyName {
	return s.name
}

// Repositories returns a copy of the mirror URLs in fetch order
func (s *ResolutionStrategy) Repositories() []string {
	repos := make([]string, len(s.repositories))
	copy(repos, s.repositories)
	return repos
}

// Resolve fetches all mirrors at once and waits for every one of them.
// Each mirror fills its own slot so the merge order is the declared
// mirror order, never completion order.
func (s *ResolutionStrategy) Resolve(ctx context.Context) []domain.TokenInfo {
	start := time.Now()

	lists, _ := utils.ParallelMap(ctx, s.repositories, len(s.repositories),
		func(ctx context.Context, url string) (*domain.TokenList, error) {
			return s.fetchOne(ctx, url), nil
		})

	total := 0
	for _, list := range lists {
		if list != nil {
			total += len(list.Tokens)
		}
	}

	tokens := make([]domain.TokenInfo, 0, total)
	sources := 0
	for _, list := range lists {
		if list == nil {
			continue
		}
		sources++
		tokens = append(tokens, list.Tokens...)
	}

	s.metrics.RecordResolution(string(s.name), len(tokens))
	s.logger.Info().
		Int("sources", sources).
		Int("mirrors", len(s.repositories)).
		Int("tokens", len(tokens)).
		Dur("duration", time.Since(start)).
		Msg("token list resolved")

	return tokens
}

// fetchOne fetches a single mirror; nil means the mirror is unavailable
func (s *ResolutionStrategy) fetchOne(ctx context.Context, url string) *domain.TokenList {
	start := time.Now()
	list := fetcher.FetchTokenList(ctx, s.fetcher, url, s.logger)

	count := 0
	if list != nil {
		count = len(list.Tokens)
	}
	s.metrics.RecordSourceFetch(string(s.name), utils.GetDomain(url), list != nil, count, time.Since(start).Seconds())

	if list != nil {
		s.logger.WithURL(url).Debug().Int("tokens", count).Msg("fetched token list")
	}
	return list
}
