package samples

import (
	"errors"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.CDNHost != DefaultCDNHost {
		t.Errorf("cdn host: got %q", cfg.CDNHost)
	}
	if !cfg.UseJsDelivr || !cfg.UseProgressiveLoading || !cfg.UseWorkerDecoding {
		t.Error("feature toggles should default to enabled")
	}

	want := []Format{FormatOpus, FormatMP3, FormatFLAC}
	if len(cfg.FormatPreference) != len(want) {
		t.Fatalf("format preference: got %v", cfg.FormatPreference)
	}
	for i, f := range want {
		if cfg.FormatPreference[i] != f {
			t.Errorf("format preference[%d]: got %s, want %s", i, cfg.FormatPreference[i], f)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"cdn without username", func(c *Config) { c.Username = "" }, true},
		{"cdn without repo", func(c *Config) { c.Repo = "" }, true},
		{"cdn without host", func(c *Config) { c.CDNHost = "" }, true},
		{"no cdn, no identity", func(c *Config) {
			c.UseJsDelivr = false
			c.Username = ""
			c.Repo = ""
		}, false},
		{"empty format preference", func(c *Config) { c.FormatPreference = nil }, true},
		{"bogus format", func(c *Config) { c.FormatPreference = []Format{"aiff"} }, true},
		{"base path missing slash", func(c *Config) { c.LocalBasePath = "samples" }, true},
		{"negative cache size", func(c *Config) { c.FetchCacheBytes = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewLoader_RejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.FormatPreference = nil

	if _, err := NewLoader(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
