package samples

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/samplecask/samplecask/internal/cache"
)

// Fetcher downloads raw sample bytes, keeping recently fetched bodies in a
// bounded LRU cache so repeated decodes of the same URL skip the network.
type Fetcher struct {
	client *http.Client
	cache  *cache.MemoryCache
	logger *log.Logger
}

// NewFetcher creates a fetcher. cacheBytes bounds the raw-byte cache; zero
// disables it. A nil client defaults to the shared no-retry client.
func NewFetcher(client *http.Client, cacheBytes int64, logger *log.Logger) *Fetcher {
	if client == nil {
		client = newHTTPClient()
	}
	if logger == nil {
		logger = log.Default()
	}
	f := &Fetcher{client: client, logger: logger}
	if cacheBytes > 0 {
		f.cache = cache.NewMemoryCache(cacheBytes)
	}
	return f
}

// Fetch returns the body at url, from cache when possible.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if f.cache != nil {
		if data, ok := f.cache.Get(url); ok {
			f.logger.Debug("fetch cache hit", "url", url, "bytes", len(data))
			return data, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %d", ErrUnexpectedStatus, url, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrFetchFailed, err)
	}

	if f.cache != nil {
		if err := f.cache.Put(url, data); err != nil {
			// Oversized bodies simply bypass the cache.
			f.logger.Debug("fetch cache put skipped", "url", url, "error", err)
		}
	}

	f.logger.Debug("fetched sample", "url", url, "bytes", len(data))
	return data, nil
}
