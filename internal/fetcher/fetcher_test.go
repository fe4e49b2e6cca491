package fetcher

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/quantmind-br/tokenlist-go/internal/domain"
	"github.com/quantmind-br/tokenlist-go/internal/mocks"
	"github.com/quantmind-br/tokenlist-go/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const sampleList = `{
	"name": "Solana Token List",
	"timestamp": "2021-03-03T19:57:21+0000",
	"tokens": [
		{"chainId": 101, "address": "So11111111111111111111111111111111111111112", "symbol": "SOL", "name": "Wrapped SOL", "decimals": 9},
		{"chainId": 103, "address": "SRMuApVNdxXokk5GT7XD5cUUgXMBCoAz2LHeuAoKWRt", "symbol": "SRM", "name": "Serum", "decimals": 6, "tags": ["dex"]}
	]
}`

func newTestLogger(buf *bytes.Buffer) *utils.Logger {
	return utils.NewLogger(utils.LoggerOptions{
		Level:  "debug",
		Format: "json",
		Output: buf,
	})
}

// TestDefaultClientOptions tests default client options
func TestDefaultClientOptions(t *testing.T) {
	opts := DefaultClientOptions()

	assert.Zero(t, opts.Timeout)
	assert.False(t, opts.EnableCache)
	assert.Equal(t, time.Hour, opts.CacheTTL)
	assert.Empty(t, opts.UserAgent)
	assert.Empty(t, opts.ProxyURL)
}

// TestNewClient tests creating a new client
func TestNewClient(t *testing.T) {
	tests := []struct {
		name  string
		opts  ClientOptions
		check func(t *testing.T, c *Client)
	}{
		{
			name: "with default options",
			opts: DefaultClientOptions(),
			check: func(t *testing.T, c *Client) {
				assert.NotNil(t, c.tlsClient)
			},
		},
		{
			name: "with explicit timeout",
			opts: ClientOptions{Timeout: 10 * time.Second},
			check: func(t *testing.T, c *Client) {
				assert.NotNil(t, c)
			},
		},
		{
			name: "with custom user agent",
			opts: ClientOptions{UserAgent: "TestAgent/1.0"},
			check: func(t *testing.T, c *Client) {
				assert.Equal(t, "TestAgent/1.0", c.userAgent)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.opts)
			require.NoError(t, err)
			tt.check(t, client)
			assert.NoError(t, client.Close())
		})
	}
}

// TestClient_Get tests fetching content
func TestClient_Get(t *testing.T) {
	t.Run("successful fetch", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(sampleList))
		}))
		defer server.Close()

		client, err := NewClient(DefaultClientOptions())
		require.NoError(t, err)
		defer client.Close()

		resp, err := client.Get(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, []byte(sampleList), resp.Body)
		assert.Equal(t, "application/json", resp.ContentType)
		assert.False(t, resp.FromCache)
	})

	t.Run("sends user agent and accept headers", func(t *testing.T) {
		var gotUA, gotAccept string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			gotAccept = r.Header.Get("Accept")
			w.Write([]byte("{}"))
		}))
		defer server.Close()

		client, err := NewClient(ClientOptions{UserAgent: "TestAgent/1.0"})
		require.NoError(t, err)

		_, err = client.Get(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "TestAgent/1.0", gotUA)
		assert.Contains(t, gotAccept, "application/json")
	})

	t.Run("not found error is a fetch error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client, err := NewClient(DefaultClientOptions())
		require.NoError(t, err)

		resp, err := client.Get(context.Background(), server.URL)
		assert.Nil(t, resp)

		var fetchErr *domain.FetchError
		require.True(t, errors.As(err, &fetchErr))
		assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
		assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
	})

	t.Run("no retry on server error", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		client, err := NewClient(DefaultClientOptions())
		require.NoError(t, err)

		_, err = client.Get(context.Background(), server.URL)
		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("decodes zstd body", func(t *testing.T) {
		encoder, err := zstd.NewWriter(nil)
		require.NoError(t, err)
		compressed := encoder.EncodeAll([]byte(sampleList), nil)
		encoder.Close()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/octet-stream")
			w.Write(compressed)
		}))
		defer server.Close()

		client, err := NewClient(DefaultClientOptions())
		require.NoError(t, err)

		resp, err := client.Get(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, []byte(sampleList), resp.Body)
	})
}

// TestClient_Cache tests the optional response cache
func TestClient_Cache(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the network", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cache := mocks.NewMockCache(ctrl)
		cache.EXPECT().Get(ctx, "https://cdn.example.com/list.json").Return([]byte(sampleList), nil)

		client, err := NewClient(ClientOptions{EnableCache: true, Cache: cache, CacheTTL: time.Hour})
		require.NoError(t, err)

		resp, err := client.Get(ctx, "https://cdn.example.com/list.json")
		require.NoError(t, err)
		assert.True(t, resp.FromCache)
		assert.Equal(t, []byte(sampleList), resp.Body)
	})

	t.Run("cache miss stores response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(sampleList))
		}))
		defer server.Close()

		ctrl := gomock.NewController(t)
		cache := mocks.NewMockCache(ctrl)
		cache.EXPECT().Get(ctx, server.URL).Return(nil, domain.ErrCacheMiss)
		cache.EXPECT().Set(ctx, server.URL, []byte(sampleList), time.Hour).Return(nil)

		client, err := NewClient(ClientOptions{EnableCache: true, Cache: cache, CacheTTL: time.Hour})
		require.NoError(t, err)

		resp, err := client.Get(ctx, server.URL)
		require.NoError(t, err)
		assert.False(t, resp.FromCache)
	})

	t.Run("cache set error is ignored", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(sampleList))
		}))
		defer server.Close()

		ctrl := gomock.NewController(t)
		cache := mocks.NewMockCache(ctrl)
		cache.EXPECT().Get(ctx, gomock.Any()).Return(nil, domain.ErrCacheMiss)
		cache.EXPECT().Set(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache error"))

		client, err := NewClient(ClientOptions{EnableCache: true, Cache: cache})
		require.NoError(t, err)

		resp, err := client.Get(ctx, server.URL)
		require.NoError(t, err)
		assert.NotNil(t, resp)
	})

	t.Run("disabled cache is never consulted", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(sampleList))
		}))
		defer server.Close()

		ctrl := gomock.NewController(t)
		cache := mocks.NewMockCache(ctrl)

		opts := DefaultClientOptions()
		opts.Cache = cache
		client, err := NewClient(opts)
		require.NoError(t, err)

		_, err = client.Get(ctx, server.URL)
		require.NoError(t, err)
	})

	t.Run("non JSON body is not cached", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte("<html>maintenance</html>"))
		}))
		defer server.Close()

		ctrl := gomock.NewController(t)
		cache := mocks.NewMockCache(ctrl)
		cache.EXPECT().Get(ctx, server.URL).Return(nil, domain.ErrCacheMiss)

		client, err := NewClient(ClientOptions{EnableCache: true, Cache: cache, CacheTTL: time.Hour})
		require.NoError(t, err)

		resp, err := client.Get(ctx, server.URL)
		require.NoError(t, err)
		assert.Equal(t, []byte("<html>maintenance</html>"), resp.Body)
	})

	t.Run("mirror recovers after a maintenance page", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls == 1 {
				w.Write([]byte("<html>maintenance</html>"))
				return
			}
			w.Write([]byte(sampleList))
		}))
		defer server.Close()

		ctrl := gomock.NewController(t)
		cache := mocks.NewMockCache(ctrl)
		cache.EXPECT().Get(ctx, server.URL).Return(nil, domain.ErrCacheMiss).Times(2)
		cache.EXPECT().Set(ctx, server.URL, []byte(sampleList), time.Hour).Return(nil)

		client, err := NewClient(ClientOptions{EnableCache: true, Cache: cache, CacheTTL: time.Hour})
		require.NoError(t, err)

		assert.Nil(t, FetchTokenList(ctx, client, server.URL, nil))

		list := FetchTokenList(ctx, client, server.URL, nil)
		require.NotNil(t, list)
		assert.Len(t, list.Tokens, 2)
		assert.Equal(t, 2, calls)
	})
}

// TestClient_Timeout tests sub-second request timeouts
func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(sampleList))
	}))
	defer server.Close()

	client, err := NewClient(ClientOptions{Timeout: 100 * time.Millisecond})
	require.NoError(t, err)

	_, err = client.Get(context.Background(), server.URL)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}

// TestTimeoutMilliseconds tests timeout conversion
func TestTimeoutMilliseconds(t *testing.T) {
	assert.Equal(t, 500, timeoutMilliseconds(500*time.Millisecond))
	assert.Equal(t, 2000, timeoutMilliseconds(2*time.Second))
	assert.Equal(t, 1, timeoutMilliseconds(time.Microsecond))
}

// TestCacheable tests which bodies may be cached
func TestCacheable(t *testing.T) {
	assert.True(t, cacheable([]byte(sampleList)))
	assert.True(t, cacheable([]byte("  {}\n")))
	assert.False(t, cacheable([]byte("<html>maintenance</html>")))
	assert.False(t, cacheable([]byte(`{"tokens": [`)))
	assert.False(t, cacheable([]byte("[]")))
	assert.False(t, cacheable(nil))
}

// TestFetchTokenList tests parsing and failure isolation
func TestFetchTokenList(t *testing.T) {
	ctx := context.Background()
	url := "https://cdn.example.com/solana.tokenlist.json"

	t.Run("parses document", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := mocks.NewMockFetcher(ctrl)
		f.EXPECT().Get(ctx, url).Return(&domain.Response{StatusCode: 200, Body: []byte(sampleList)}, nil)

		list := FetchTokenList(ctx, f, url, nil)
		require.NotNil(t, list)
		assert.Equal(t, "Solana Token List", list.Name)
		require.Len(t, list.Tokens, 2)
		assert.Equal(t, "SOL", list.Tokens[0].Symbol)
		assert.Equal(t, []string{"dex"}, list.Tokens[1].Tags)
	})

	t.Run("network error yields nil and logs fallback", func(t *testing.T) {
		var buf bytes.Buffer
		ctrl := gomock.NewController(t)
		f := mocks.NewMockFetcher(ctrl)
		f.EXPECT().Get(ctx, url).Return(nil, domain.NewFetchError(url, 0, errors.New("connection refused")))

		list := FetchTokenList(ctx, f, url, newTestLogger(&buf))
		assert.Nil(t, list)
		assert.Contains(t, buf.String(), "falling back to static repository")
		assert.Contains(t, buf.String(), `"level":"info"`)
		assert.Contains(t, buf.String(), url)
	})

	t.Run("non JSON body yields nil", func(t *testing.T) {
		var buf bytes.Buffer
		ctrl := gomock.NewController(t)
		f := mocks.NewMockFetcher(ctrl)
		f.EXPECT().Get(ctx, url).Return(&domain.Response{StatusCode: 200, Body: []byte("<html>oops</html>")}, nil)

		list := FetchTokenList(ctx, f, url, newTestLogger(&buf))
		assert.Nil(t, list)
		assert.Contains(t, buf.String(), "failed to parse token list")
	})

	t.Run("document without tokens is not an error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		f := mocks.NewMockFetcher(ctrl)
		f.EXPECT().Get(ctx, url).Return(&domain.Response{StatusCode: 200, Body: []byte(`{"name": "empty"}`)}, nil)

		list := FetchTokenList(ctx, f, url, nil)
		require.NotNil(t, list)
		assert.Empty(t, list.Tokens)
	})
}

// TestIsZstd tests zstd detection
func TestIsZstd(t *testing.T) {
	assert.True(t, IsZstd("application/zstd", nil))
	assert.True(t, IsZstd("", []byte{0x28, 0xB5, 0x2F, 0xFD, 0x00}))
	assert.False(t, IsZstd("application/json", []byte(`{"tokens": []}`)))
	assert.False(t, IsZstd("", []byte{0x28}))
}

// TestRequestHeaders tests default request headers
func TestRequestHeaders(t *testing.T) {
	headers := RequestHeaders("")
	assert.Equal(t, DefaultUserAgent, headers["User-Agent"])
	assert.Contains(t, headers["Accept"], "application/json")

	headers = RequestHeaders("custom/1.0")
	assert.Equal(t, "custom/1.0", headers["User-Agent"])
}
