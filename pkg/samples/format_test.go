package samples

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	got, err := ParseFormat(" MP3 ")
	if err != nil {
		t.Fatalf("ParseFormat failed: %v", err)
	}
	if got != FormatMP3 {
		t.Errorf("got %s, want %s", got, FormatMP3)
	}

	if _, err := ParseFormat("aiff"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestConfig_CDNURL(t *testing.T) {
	cfg := testConfig()

	got := cfg.CDNURL(FormatOpus, "kick", "bd01")
	want := "https://cdn.jsdelivr.net/gh/acme/drumkit@v1/opus/samples/kick/bd01.opus"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestConfig_CDNURLWithoutReleaseTag(t *testing.T) {
	cfg := testConfig()
	cfg.ReleaseTag = ""

	got := cfg.CDNURL(FormatMP3, "vocal", "track1")
	want := "https://cdn.jsdelivr.net/gh/acme/drumkit/mp3/samples/vocal/track1.mp3"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestConfig_LocalURL(t *testing.T) {
	cfg := testConfig()
	cfg.LocalBasePath = "./assets/"

	got := cfg.LocalURL(FormatFLAC, "vocal", "track1")
	want := "./assets/flac/samples/vocal/track1.flac"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestConfig_FallbackURLIsLocalLossless(t *testing.T) {
	cfg := testConfig()

	got := cfg.FallbackURL("perc", "clave")
	want := "./flac/samples/perc/clave.flac"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
