package domain

//go:generate mockgen -destination=../mocks/domain_mocks.go -package=mocks github.com/quantmind-br/tokenlist-go/internal/domain Fetcher,Cache

import (
	"context"
	"time"
)

// Fetcher defines the interface for retrieving a remote document
type Fetcher interface {
	// Get fetches content from a URL
	Get(ctx context.Context, url string) (*Response, error)
	// Close releases resources
	Close() error
}

// Cache defines the interface for content caching
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores a value in cache with TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Has checks if a key exists in cache
	Has(ctx context.Context, key string) bool
	// Delete removes a key from cache
	Delete(ctx context.Context, key string) error
	// Close releases cache resources
	Close() error
}
