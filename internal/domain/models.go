package domain

import (
	"net/http"
	"strings"
)

// ChainID identifies the Solana cluster a token lives on
type ChainID int

// Known chain identifiers
const (
	MainnetBeta ChainID = 101
	Testnet     ChainID = 102
	Devnet      ChainID = 103
)

// String returns the cluster slug for known chain ids
func (c ChainID) String() string {
	for _, cs := range ClusterSlugs {
		if cs.ChainID == c {
			return cs.Slug
		}
	}
	return "unknown"
}

// ClusterSlug maps a human readable cluster name to its chain id
type ClusterSlug struct {
	Slug    string
	ChainID ChainID
}

// ClusterSlugs is the fixed slug table in definition order
var ClusterSlugs = []ClusterSlug{
	{Slug: "mainnet-beta", ChainID: MainnetBeta},
	{Slug: "testnet", ChainID: Testnet},
	{Slug: "devnet", ChainID: Devnet},
}

// SlugNames returns the valid cluster slugs in table order
func SlugNames() []string {
	names := make([]string, len(ClusterSlugs))
	for i, cs := range ClusterSlugs {
		names[i] = cs.Slug
	}
	return names
}

// ChainIDForSlug translates a cluster slug into its chain id
func ChainIDForSlug(slug string) (ChainID, error) {
	for _, cs := range ClusterSlugs {
		if cs.Slug == slug {
			return cs.ChainID, nil
		}
	}
	return 0, NewInvalidArgumentError("slug", slug,
		"Unknown slug: "+slug+", please use one of "+strings.Join(SlugNames(), ","))
}

// TagDetails describes a tag declared by a token list
type TagDetails struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// TokenExtensions holds optional links and external ids for a token
type TokenExtensions struct {
	Website        string `json:"website,omitempty" yaml:"website,omitempty"`
	BridgeContract string `json:"bridgeContract,omitempty" yaml:"bridgeContract,omitempty"`
	AssetContract  string `json:"assetContract,omitempty" yaml:"assetContract,omitempty"`
	Address        string `json:"address,omitempty" yaml:"address,omitempty"`
	Explorer       string `json:"explorer,omitempty" yaml:"explorer,omitempty"`
	Twitter        string `json:"twitter,omitempty" yaml:"twitter,omitempty"`
	Github         string `json:"github,omitempty" yaml:"github,omitempty"`
	Medium         string `json:"medium,omitempty" yaml:"medium,omitempty"`
	Tgann          string `json:"tgann,omitempty" yaml:"tgann,omitempty"`
	Tggroup        string `json:"tggroup,omitempty" yaml:"tggroup,omitempty"`
	Discord        string `json:"discord,omitempty" yaml:"discord,omitempty"`
	SerumV3Usdt    string `json:"serumV3Usdt,omitempty" yaml:"serumV3Usdt,omitempty"`
	SerumV3Usdc    string `json:"serumV3Usdc,omitempty" yaml:"serumV3Usdc,omitempty"`
	CoingeckoID    string `json:"coingeckoId,omitempty" yaml:"coingeckoId,omitempty"`
	ImageURL       string `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty"`
	Description    string `json:"description,omitempty" yaml:"description,omitempty"`
}

// TokenInfo is the metadata entry for one on-chain asset
type TokenInfo struct {
	ChainID    ChainID          `json:"chainId" yaml:"chainId"`
	Address    string           `json:"address" yaml:"address"`
	Name       string           `json:"name" yaml:"name"`
	Decimals   int              `json:"decimals" yaml:"decimals"`
	Symbol     string           `json:"symbol" yaml:"symbol"`
	LogoURI    string           `json:"logoURI,omitempty" yaml:"logoURI,omitempty"`
	Tags       []string         `json:"tags,omitempty" yaml:"tags,omitempty"`
	Extensions *TokenExtensions `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// HasTag reports whether the token carries the given tag
func (t TokenInfo) HasTag(tag string) bool {
	for _, tt := range t.Tags {
		if tt == tag {
			return true
		}
	}
	return false
}

// TokenInfoMap indexes tokens by address
type TokenInfoMap map[string]TokenInfo

// TokenList is the parsed form of one remote token list document
type TokenList struct {
	Name      string                `json:"name" yaml:"name"`
	LogoURI   string                `json:"logoURI" yaml:"logoURI"`
	Tags      map[string]TagDetails `json:"tags" yaml:"tags"`
	Timestamp string                `json:"timestamp" yaml:"timestamp"`
	Tokens    []TokenInfo           `json:"tokens" yaml:"tokens"`
}

// StrategyName identifies a resolution strategy
type StrategyName string

const (
	StrategyGitHub StrategyName = "GitHub"
	StrategySolana StrategyName = "Solana"
	StrategyCDN    StrategyName = "CDN"
)

// DefaultStrategy is used when the caller does not pick one
const DefaultStrategy = StrategyCDN

// StrategyNames returns all strategy names in canonical order
func StrategyNames() []StrategyName {
	return []StrategyName{StrategyGitHub, StrategySolana, StrategyCDN}
}

// Response represents an HTTP response
type Response struct {
	StatusCode  int
	Body        []byte
	Headers     http.Header
	ContentType string
	URL         string
	FromCache   bool
}
