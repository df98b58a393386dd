package samples

import (
	"fmt"
	"strings"
)

// Default configuration values.
const (
	// DefaultCDNHost is the public mirror used for GitHub-hosted sample packs.
	DefaultCDNHost = "cdn.jsdelivr.net"
	// DefaultLocalBasePath is the relative prefix for locally hosted samples.
	DefaultLocalBasePath = "./"
	// DefaultFetchCacheBytes bounds the in-memory raw-byte fetch cache (64MB).
	DefaultFetchCacheBytes = 64 * 1024 * 1024
)

// Config contains all sample loading configuration options. It is immutable
// after construction; Resolver, Dispatcher and PlayerFactory take a copy.
type Config struct {
	// Source identity for CDN-hosted packs
	Username   string `yaml:"username" env:"SAMPLECASK_USERNAME"`
	Repo       string `yaml:"repo" env:"SAMPLECASK_REPO"`
	ReleaseTag string `yaml:"release_tag" env:"SAMPLECASK_RELEASE_TAG"`

	// Source selection
	CDNHost       string `yaml:"cdn_host" env:"SAMPLECASK_CDN_HOST" envDefault:"cdn.jsdelivr.net"`
	UseJsDelivr   bool   `yaml:"use_jsdelivr" env:"SAMPLECASK_USE_JSDELIVR" envDefault:"true"`
	LocalBasePath string `yaml:"local_base_path" env:"SAMPLECASK_LOCAL_BASE_PATH" envDefault:"./"`

	// FormatPreference is the ordered trial list; earlier entries win.
	FormatPreference []Format `yaml:"format_preference" env:"SAMPLECASK_FORMAT_PREFERENCE" envSeparator:","`

	// Loading behavior
	UseProgressiveLoading bool `yaml:"use_progressive_loading" env:"SAMPLECASK_PROGRESSIVE_LOADING" envDefault:"true"`
	UseWorkerDecoding     bool `yaml:"use_worker_decoding" env:"SAMPLECASK_WORKER_DECODING" envDefault:"true"`

	// FetchCacheBytes bounds the raw-byte cache; zero disables caching of
	// fetched bodies.
	FetchCacheBytes int64 `yaml:"fetch_cache_bytes" env:"SAMPLECASK_FETCH_CACHE_BYTES" envDefault:"67108864"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		CDNHost:       DefaultCDNHost,
		UseJsDelivr:   true,
		LocalBasePath: DefaultLocalBasePath,

		FormatPreference: []Format{FormatOpus, FormatMP3, FormatFLAC},

		UseProgressiveLoading: true,
		UseWorkerDecoding:     true,

		FetchCacheBytes: DefaultFetchCacheBytes,
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.UseJsDelivr {
		if c.Username == "" || c.Repo == "" {
			return fmt.Errorf("%w: username and repo are required when the CDN is enabled", ErrInvalidConfig)
		}
		if c.CDNHost == "" {
			return fmt.Errorf("%w: cdn_host must not be empty", ErrInvalidConfig)
		}
	}
	if len(c.FormatPreference) == 0 {
		return fmt.Errorf("%w: format_preference must list at least one format", ErrInvalidConfig)
	}
	for _, f := range c.FormatPreference {
		if !f.Valid() {
			return fmt.Errorf("%w: unsupported format %q in format_preference", ErrInvalidConfig, f)
		}
	}
	if c.LocalBasePath != "" && !strings.HasSuffix(c.LocalBasePath, "/") {
		return fmt.Errorf("%w: local_base_path must end with a slash", ErrInvalidConfig)
	}
	if c.FetchCacheBytes < 0 {
		return fmt.Errorf("%w: fetch_cache_bytes must not be negative", ErrInvalidConfig)
	}
	return nil
}
