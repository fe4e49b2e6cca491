package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/quantmind-br/tokenlist-go/internal/domain"
)

// Ensure Client implements domain.Fetcher
var _ domain.Fetcher = (*Client)(nil)

// Client is an HTTP client for token list documents built on tls-client
type Client struct {
	tlsClient    tls_client.HttpClient
	userAgent    string
	cache        domain.Cache
	cacheEnabled bool
	cacheTTL     time.Duration
}

// ClientOptions contains options for creating a Client
type ClientOptions struct {
	// Timeout of zero keeps the transport default
	Timeout     time.Duration
	EnableCache bool
	CacheTTL    time.Duration
	Cache       domain.Cache
	UserAgent   string
	ProxyURL    string
}

// DefaultClientOptions returns default client options
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		Timeout:     0,
		EnableCache: false,
		CacheTTL:    time.Hour,
		UserAgent:   "",
		ProxyURL:    "",
	}
}

// NewClient creates a new HTTP client
func NewClient(opts ClientOptions) (*Client, error) {
	tlsOpts := []tls_client.HttpClientOption{
		tls_client.WithClientProfile(profiles.Chrome_131),
	}

	if opts.Timeout > 0 {
		tlsOpts = append(tlsOpts, tls_client.WithTimeoutMilliseconds(timeoutMilliseconds(opts.Timeout)))
	}

	if opts.ProxyURL != "" {
		tlsOpts = append(tlsOpts, tls_client.WithProxyUrl(opts.ProxyURL))
	}

	tlsClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), tlsOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create tls client: %w", err)
	}

	return &Client{
		tlsClient:    tlsClient,
		userAgent:    opts.UserAgent,
		cache:        opts.Cache,
		cacheEnabled: opts.EnableCache,
		cacheTTL:     opts.CacheTTL,
	}, nil
}

// Get fetches content from a URL. There is no retry: a failed request is
// reported once and the caller decides how to degrade.
func (c *Client) Get(ctx context.Context, url string) (*domain.Response, error) {
	if c.cacheEnabled && c.cache != nil {
		cached, err := c.getFromCache(ctx, url)
		if err == nil && cached != nil {
			return cached, nil
		}
	}

	resp, err := c.doRequest(ctx, url)
	if err != nil {
		return nil, err
	}

	if c.cacheEnabled && c.cache != nil && cacheable(resp.Body) {
		_ = c.saveToCache(ctx, url, resp)
	}

	return resp, nil
}

// timeoutMilliseconds converts a positive timeout, rounding sub-millisecond
// values up so they never reach the transport as zero
func timeoutMilliseconds(d time.Duration) int {
	ms := int(d / time.Millisecond)
	if ms < 1 {
		return 1
	}
	return ms
}

// cacheable reports whether a body looks like a JSON document. Maintenance
// pages served with 200 must not pin a mirror to fallback for a whole TTL.
func cacheable(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	return len(trimmed) > 0 && trimmed[0] == '{' && json.Valid(trimmed)
}

// doRequest performs the actual HTTP request
func (c *Client) doRequest(ctx context.Context, targetURL string) (*domain.Response, error) {
	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, targetURL, nil)
	if err != nil {
		return nil, domain.NewFetchError(targetURL, 0, fmt.Errorf("failed to create request: %w", err))
	}

	for k, v := range RequestHeaders(c.userAgent) {
		req.Header.Set(k, v)
	}

	resp, err := c.tlsClient.Do(req)
	if err != nil {
		return nil, domain.NewFetchError(targetURL, 0, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, domain.NewFetchError(targetURL, resp.StatusCode, fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewFetchError(targetURL, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err))
	}

	contentType := resp.Header.Get("Content-Type")
	if IsZstd(contentType, body) {
		body, err = DecodeZstd(body)
		if err != nil {
			return nil, domain.NewFetchError(targetURL, resp.StatusCode, err)
		}
	}

	// Convert fhttp.Header to http.Header
	httpHeaders := make(http.Header)
	for k, v := range resp.Header {
		httpHeaders[k] = v
	}

	return &domain.Response{
		StatusCode:  resp.StatusCode,
		Body:        body,
		Headers:     httpHeaders,
		ContentType: contentType,
		URL:         targetURL,
		FromCache:   false,
	}, nil
}

// Close releases client resources
func (c *Client) Close() error {
	// tls-client has no Close; kept for domain.Fetcher
	return nil
}

// getFromCache retrieves a response from cache
func (c *Client) getFromCache(ctx context.Context, url string) (*domain.Response, error) {
	data, err := c.cache.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	return &domain.Response{
		StatusCode:  200,
		Body:        data,
		ContentType: "application/json",
		URL:         url,
		FromCache:   true,
	}, nil
}

// saveToCache saves a response to cache
func (c *Client) saveToCache(ctx context.Context, url string, resp *domain.Response) error {
	return c.cache.Set(ctx, url, resp.Body, c.cacheTTL)
}

// SetCache sets the cache implementation
func (c *Client) SetCache(cache domain.Cache) {
	c.cache = cache
}
