package domain

import "strings"

// Default mirror URLs per strategy, in fetch order
const (
	GitHubTokenListURL = "https://raw.githubusercontent.com/solana-labs/token-list/main/src/tokens/solana.tokenlist.json"
	CDNTokenListURL    = "https://cdn.jsdelivr.net/gh/solana-labs/token-list@latest/src/tokens/solana.tokenlist.json"
	SolanaTokenListURL = "https://token-list.solana.com/solana.tokenlist.json"
)

// DefaultRepositories returns a fresh copy of the built-in mirror list for
// the named strategy, or nil when the name is not enumerated.
func DefaultRepositories(name StrategyName) []string {
	switch name {
	case StrategyGitHub:
		return []string{GitHubTokenListURL}
	case StrategyCDN:
		return []string{CDNTokenListURL}
	case StrategySolana:
		return []string{SolanaTokenListURL}
	default:
		return nil
	}
}

// ParseStrategyName matches s against the enumerated strategy names,
// ignoring case and surrounding whitespace.
func ParseStrategyName(s string) (StrategyName, error) {
	s = strings.TrimSpace(s)
	for _, n := range StrategyNames() {
		if strings.EqualFold(string(n), s) {
			return n, nil
		}
	}
	return "", NewStrategyError(s, ErrUnknownStrategy)
}
