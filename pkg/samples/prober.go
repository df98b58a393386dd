package samples

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-retryablehttp"
)

// Prober checks whether a candidate URL points at an existing resource.
type Prober interface {
	// Exists reports whether url resolves to a successful response. Any
	// transport failure or non-2xx status counts as absent.
	Exists(ctx context.Context, url string) bool
}

// HTTPProber probes URLs with metadata-only HEAD requests.
type HTTPProber struct {
	client *http.Client
	logger *log.Logger
}

// NewHTTPProber creates a prober backed by the shared HTTP client.
func NewHTTPProber(client *http.Client, logger *log.Logger) *HTTPProber {
	if client == nil {
		client = newHTTPClient()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &HTTPProber{client: client, logger: logger}
}

// Exists issues a HEAD request and reports whether the response was 2xx.
// Failures are swallowed: a probe that cannot complete means the resource
// is treated as absent, never as an error.
func (p *HTTPProber) Exists(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		p.logger.Debug("probe request build failed", "url", url, "error", err)
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Debug("probe miss", "url", url, "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.logger.Debug("probe miss", "url", url, "status", resp.StatusCode)
		return false
	}
	return true
}

// newHTTPClient builds the client shared by the prober and the fetcher.
// Retries are explicitly disabled: a missing sample must resolve to the next
// candidate immediately, and fetch failures surface as decode failures.
func newHTTPClient() *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 0
	rc.Logger = nil
	return rc.StandardClient()
}
