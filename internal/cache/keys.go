package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/quantmind-br/tokenlist-go/internal/utils"
)

// PrefixDocument namespaces cached token list documents
const PrefixDocument = "doc"

// GenerateKey generates a cache key from a URL.
// The key is a SHA256 hash of the normalized URL, so mirrors that differ
// only by host case, default port or fragment share one entry.
func GenerateKey(rawURL string) string {
	normalized, err := utils.NormalizeURL(rawURL)
	if err != nil {
		normalized = rawURL
	}
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:])
}

// DocumentKey generates the cache key for a token list document
func DocumentKey(rawURL string) string {
	return PrefixDocument + ":" + GenerateKey(rawURL)
}
