package samples

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
)

// Resolver turns a logical (directory, fileName) pair into a concrete URL by
// probing a prioritized list of (source, format) combinations. Results are
// memoized for the process lifetime; a key is never re-probed.
type Resolver struct {
	cfg    Config
	prober Prober
	logger *log.Logger

	mu    sync.RWMutex
	cache map[string]string
}

// NewResolver creates a resolver for the given configuration. A nil prober
// defaults to an HTTPProber on the shared client.
func NewResolver(cfg Config, prober Prober, logger *log.Logger) *Resolver {
	if logger == nil {
		logger = log.Default()
	}
	if prober == nil {
		prober = NewHTTPProber(nil, logger)
	}
	return &Resolver{
		cfg:    cfg,
		prober: prober,
		logger: logger,
		cache:  make(map[string]string),
	}
}

// Resolve returns a playable URL for the sample. Formats are tried in
// configured preference order; within a format the CDN is probed before the
// local path. The first hit wins and is cached. When every probe misses, the
// local lossless fallback path is returned and cached all the same, so
// Resolve never fails.
func (r *Resolver) Resolve(ctx context.Context, directory, fileName string) string {
	key := directory + "/" + fileName

	r.mu.RLock()
	url, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return url
	}

	url = r.probeChain(ctx, directory, fileName)

	r.mu.Lock()
	// A concurrent Resolve for the same key may have finished first; the
	// earlier entry stays authoritative.
	if cached, ok := r.cache[key]; ok {
		url = cached
	} else {
		r.cache[key] = url
	}
	r.mu.Unlock()

	return url
}

// Cached returns the memoized URL for the sample, if one exists.
func (r *Resolver) Cached(directory, fileName string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	url, ok := r.cache[directory+"/"+fileName]
	return url, ok
}

func (r *Resolver) probeChain(ctx context.Context, directory, fileName string) string {
	for _, format := range r.cfg.FormatPreference {
		if r.cfg.UseJsDelivr {
			cdn := r.cfg.CDNURL(format, directory, fileName)
			if r.prober.Exists(ctx, cdn) {
				r.logger.Debug("resolved sample", "dir", directory, "file", fileName, "source", "cdn", "format", format)
				return cdn
			}
		}
		local := r.cfg.LocalURL(format, directory, fileName)
		if r.prober.Exists(ctx, local) {
			r.logger.Debug("resolved sample", "dir", directory, "file", fileName, "source", "local", "format", format)
			return local
		}
	}

	fallback := r.cfg.FallbackURL(directory, fileName)
	r.logger.Debug("no probe succeeded, using fallback", "dir", directory, "file", fileName, "url", fallback)
	return fallback
}
