package samples

import (
	"context"
	"sync"
	"testing"
)

// scriptedProber answers existence probes from a fixed table and records the
// order of probed URLs.
type scriptedProber struct {
	mu     sync.Mutex
	exists map[string]bool
	calls  []string
}

func newScriptedProber(exists map[string]bool) *scriptedProber {
	if exists == nil {
		exists = make(map[string]bool)
	}
	return &scriptedProber{exists: exists}
}

func (p *scriptedProber) Exists(_ context.Context, url string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, url)
	return p.exists[url]
}

func (p *scriptedProber) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Username = "acme"
	cfg.Repo = "drumkit"
	cfg.ReleaseTag = "v1"
	return cfg
}

func TestResolver_FirstHitWins(t *testing.T) {
	cfg := testConfig()
	cfg.FormatPreference = []Format{FormatMP3, FormatFLAC}

	cdnFLAC := cfg.CDNURL(FormatFLAC, "vocal", "track1")
	prober := newScriptedProber(map[string]bool{cdnFLAC: true})
	r := NewResolver(cfg, prober, nil)

	got := r.Resolve(context.Background(), "vocal", "track1")
	if got != cdnFLAC {
		t.Errorf("Resolve returned %q, want %q", got, cdnFLAC)
	}

	// mp3 CDN, mp3 local, then flac CDN: three probes.
	want := []string{
		cfg.CDNURL(FormatMP3, "vocal", "track1"),
		cfg.LocalURL(FormatMP3, "vocal", "track1"),
		cdnFLAC,
	}
	if len(prober.calls) != len(want) {
		t.Fatalf("probe count: got %d, want %d (%v)", len(prober.calls), len(want), prober.calls)
	}
	for i := range want {
		if prober.calls[i] != want[i] {
			t.Errorf("probe %d: got %q, want %q", i, prober.calls[i], want[i])
		}
	}
}

func TestResolver_CDNBeforeLocalPerFormat(t *testing.T) {
	cfg := testConfig()
	cfg.FormatPreference = []Format{FormatOpus, FormatMP3}

	localOpus := cfg.LocalURL(FormatOpus, "hat", "hh02")
	prober := newScriptedProber(map[string]bool{localOpus: true})
	r := NewResolver(cfg, prober, nil)

	got := r.Resolve(context.Background(), "hat", "hh02")
	if got != localOpus {
		t.Errorf("Resolve returned %q, want %q", got, localOpus)
	}

	// The first-preference format's local source beats any later format.
	want := []string{
		cfg.CDNURL(FormatOpus, "hat", "hh02"),
		localOpus,
	}
	for i := range want {
		if prober.calls[i] != want[i] {
			t.Errorf("probe %d: got %q, want %q", i, prober.calls[i], want[i])
		}
	}
}

func TestResolver_CDNDisabledSkipsCDNProbes(t *testing.T) {
	cfg := testConfig()
	cfg.UseJsDelivr = false
	cfg.FormatPreference = []Format{FormatMP3}

	localMP3 := cfg.LocalURL(FormatMP3, "kick", "bd01")
	prober := newScriptedProber(map[string]bool{localMP3: true})
	r := NewResolver(cfg, prober, nil)

	got := r.Resolve(context.Background(), "kick", "bd01")
	if got != localMP3 {
		t.Errorf("Resolve returned %q, want %q", got, localMP3)
	}
	if len(prober.calls) != 1 {
		t.Errorf("expected a single local probe, got %v", prober.calls)
	}
}

func TestResolver_FallbackWhenAllProbesMiss(t *testing.T) {
	cfg := testConfig()
	prober := newScriptedProber(nil)
	r := NewResolver(cfg, prober, nil)

	got := r.Resolve(context.Background(), "perc", "shaker")
	want := cfg.FallbackURL("perc", "shaker")
	if got != want {
		t.Errorf("Resolve returned %q, want fallback %q", got, want)
	}

	// The fallback is cached like any other result.
	if cached, ok := r.Cached("perc", "shaker"); !ok || cached != want {
		t.Errorf("fallback not cached: %q %v", cached, ok)
	}
}

func TestResolver_SecondCallHitsCacheWithoutProbing(t *testing.T) {
	cfg := testConfig()
	cfg.FormatPreference = []Format{FormatMP3, FormatFLAC}

	cdnFLAC := cfg.CDNURL(FormatFLAC, "vocal", "track1")
	prober := newScriptedProber(map[string]bool{cdnFLAC: true})
	r := NewResolver(cfg, prober, nil)

	first := r.Resolve(context.Background(), "vocal", "track1")
	probesAfterFirst := prober.callCount()

	second := r.Resolve(context.Background(), "vocal", "track1")
	if second != first {
		t.Errorf("second Resolve returned %q, want %q", second, first)
	}
	if prober.callCount() != probesAfterFirst {
		t.Errorf("second Resolve issued probes: %d -> %d", probesAfterFirst, prober.callCount())
	}
}

func TestResolver_ConcurrentSameKey(t *testing.T) {
	cfg := testConfig()
	cdnOpus := cfg.CDNURL(FormatOpus, "kick", "bd01")
	prober := newScriptedProber(map[string]bool{cdnOpus: true})
	r := NewResolver(cfg, prober, nil)

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			results[n] = r.Resolve(context.Background(), "kick", "bd01")
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if got != cdnOpus {
			t.Errorf("goroutine %d got %q, want %q", i, got, cdnOpus)
		}
	}
}
