package fetcher

import (
	"github.com/quantmind-br/tokenlist-go/pkg/version"
)

// DefaultUserAgent identifies this client to token list hosts
var DefaultUserAgent = version.UserAgent()

// RequestHeaders returns the headers sent with every token list request
func RequestHeaders(userAgent string) map[string]string {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return map[string]string{
		"User-Agent":      userAgent,
		"Accept":          "application/json, text/plain;q=0.9, */*;q=0.8",
		"Accept-Encoding": "gzip, deflate, br",
		"Cache-Control":   "no-cache",
	}
}
