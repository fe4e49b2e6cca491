package tokenlist

import (
	"context"

	"github.com/quantmind-br/tokenlist-go/internal/config"
	"github.com/quantmind-br/tokenlist-go/internal/domain"
	"github.com/quantmind-br/tokenlist-go/internal/strategies"
)

// Provider maps strategy names to strategies. The registry is built once by
// the constructor and only read afterwards.
type Provider struct {
	strategies map[domain.StrategyName]strategies.Strategy
	order      []domain.StrategyName
}

// NewProvider registers the given strategies in order. A strategy whose name
// is already registered replaces the earlier one but keeps its position.
func NewProvider(strats ...strategies.Strategy) *Provider {
	p := &Provider{
		strategies: make(map[domain.StrategyName]strategies.Strategy, len(strats)),
	}
	for _, s := range strats {
		if _, ok := p.strategies[s.Name()]; !ok {
			p.order = append(p.order, s.Name())
		}
		p.strategies[s.Name()] = s
	}
	return p
}

// NewDefaultProvider registers GitHub, Solana and CDN on their built-in mirrors
func NewDefaultProvider(deps *strategies.Dependencies) *Provider {
	return NewProvider(
		strategies.NewGitHubStrategy(deps),
		strategies.NewSolanaStrategy(deps),
		strategies.NewCDNStrategy(deps),
	)
}

// NewProviderFromConfig registers GitHub, Solana and CDN on the configured mirrors
func NewProviderFromConfig(cfg config.SourcesConfig, deps *strategies.Dependencies) *Provider {
	return NewProvider(
		strategies.NewGitHubStrategy(deps, cfg.Mirrors(domain.StrategyGitHub)...),
		strategies.NewSolanaStrategy(deps, cfg.Mirrors(domain.StrategySolana)...),
		strategies.NewCDNStrategy(deps, cfg.Mirrors(domain.StrategyCDN)...),
	)
}

// Resolve runs the named strategy and wraps its tokens in a Container.
// An unregistered name returns a *domain.StrategyError wrapping
// domain.ErrUnknownStrategy.
func (p *Provider) Resolve(ctx context.Context, name domain.StrategyName) (*Container, error) {
	s, ok := p.strategies[name]
	if !ok {
		return nil, domain.NewStrategyError(string(name), domain.ErrUnknownStrategy)
	}
	return NewContainer(s.Resolve(ctx)), nil
}

// ResolveDefault resolves with domain.DefaultStrategy
func (p *Provider) ResolveDefault(ctx context.Context) (*Container, error) {
	return p.Resolve(ctx, domain.DefaultStrategy)
}

// Strategy returns the strategy registered under name
func (p *Provider) Strategy(name domain.StrategyName) (strategies.Strategy, bool) {
	s, ok := p.strategies[name]
	return s, ok
}

// Strategies returns the registered names in registration order
func (p *Provider) Strategies() []domain.StrategyName {
	names := make([]domain.StrategyName, len(p.order))
	copy(names, p.order)
	return names
}
