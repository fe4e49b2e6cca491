// Package tokenlist exposes resolved token lists and the registry of
// strategies that produce them.
package tokenlist

import (
	"github.com/quantmind-br/tokenlist-go/internal/domain"
)

// Container is a read-only view over an ordered token sequence.
// Every filter returns a new Container backed by a new slice; the receiver
// is never modified, so containers can be shared across goroutines.
type Container struct {
	tokens []domain.TokenInfo
}

// NewContainer wraps tokens. The slice is retained, not copied.
func NewContainer(tokens []domain.TokenInfo) *Container {
	if tokens == nil {
		tokens = []domain.TokenInfo{}
	}
	return &Container{tokens: tokens}
}

// FilterByTag keeps tokens carrying tag. Tokens without tags never match.
func (c *Container) FilterByTag(tag string) *Container {
	return c.filter(func(t domain.TokenInfo) bool {
		return t.HasTag(tag)
	})
}

// ExcludeByTag drops tokens carrying tag
func (c *Container) ExcludeByTag(tag string) *Container {
	return c.filter(func(t domain.TokenInfo) bool {
		return !t.HasTag(tag)
	})
}

// FilterByChainID keeps tokens on chain id
func (c *Container) FilterByChainID(id domain.ChainID) *Container {
	return c.filter(func(t domain.TokenInfo) bool {
		return t.ChainID == id
	})
}

// ExcludeByChainID drops tokens on chain id
func (c *Container) ExcludeByChainID(id domain.ChainID) *Container {
	return c.filter(func(t domain.TokenInfo) bool {
		return t.ChainID != id
	})
}

// FilterByClusterSlug keeps tokens on the chain the slug names.
// An unknown slug returns a *domain.InvalidArgumentError listing the valid ones.
func (c *Container) FilterByClusterSlug(slug string) (*Container, error) {
	id, err := domain.ChainIDForSlug(slug)
	if err != nil {
		return nil, err
	}
	return c.FilterByChainID(id), nil
}

// GetList returns the tokens in order. The slice is shared with the
// container and must not be modified.
func (c *Container) GetList() []domain.TokenInfo {
	return c.tokens
}

// Len returns the number of tokens
func (c *Container) Len() int {
	return len(c.tokens)
}

// ToMap indexes the tokens by address. When an address repeats, the later
// token wins.
func (c *Container) ToMap() domain.TokenInfoMap {
	m := make(domain.TokenInfoMap, len(c.tokens))
	for _, t := range c.tokens {
		m[t.Address] = t
	}
	return m
}

func (c *Container) filter(keep func(domain.TokenInfo) bool) *Container {
	out := make([]domain.TokenInfo, 0, len(c.tokens))
	for _, t := range c.tokens {
		if keep(t) {
			out = append(out, t)
		}
	}
	return &Container{tokens: out}
}
