package samples

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// testLogger returns a logger that swallows output.
func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// makeWAV encodes a short sine burst as a 16-bit WAV and returns the file
// bytes. WAV is the one format the pack can synthesize deterministically in
// a test, so it stands in for fetched sample data throughout the suite.
func makeWAV(t *testing.T, sampleRate, channels, frames int) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating fixture file: %v", err)
	}

	data := make([]int, frames*channels)
	for i := 0; i < frames; i++ {
		s := int(math.Sin(2*math.Pi*440*float64(i)/float64(sampleRate)) * 16000)
		for c := 0; c < channels; c++ {
			data[i*channels+c] = s
		}
	}

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{SampleRate: sampleRate, NumChannels: channels},
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("closing encoder: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("closing fixture file: %v", err)
	}

	out, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading fixture back: %v", err)
	}
	return out
}
