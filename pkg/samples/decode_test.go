package samples

import (
	"errors"
	"testing"
)

func TestSniffFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"flac", []byte("fLaC\x00\x00\x00\x22"), FormatFLAC},
		{"wav", append([]byte("RIFF\x24\x00\x00\x00WAVE"), []byte("fmt ")...), FormatWAV},
		{"mp3 with id3", []byte("ID3\x04\x00\x00\x00\x00\x00\x00"), FormatMP3},
		{"mp3 bare frame", []byte{0xFF, 0xFB, 0x90, 0x00}, FormatMP3},
		{"ogg opus", append([]byte("OggS\x00\x02"), append(make([]byte, 22), []byte("\x01\x1eOpusHead")...)...), FormatOpus},
		{"ogg vorbis", append([]byte("OggS\x00\x02"), append(make([]byte, 22), []byte("\x01\x1e\x01vorbis")...)...), FormatOgg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SniffFormat(tt.data)
			if err != nil {
				t.Fatalf("SniffFormat failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSniffFormat_Unknown(t *testing.T) {
	if _, err := SniffFormat([]byte("not audio at all")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestDecodeBytes_WAV(t *testing.T) {
	const (
		rate     = 44100
		channels = 2
		frames   = 441
	)
	data := makeWAV(t, rate, channels, frames)

	buf, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("DecodeBytes failed: %v", err)
	}

	if buf.SourceFormat != FormatWAV {
		t.Errorf("source format: got %s, want %s", buf.SourceFormat, FormatWAV)
	}
	if buf.SampleRate() != rate {
		t.Errorf("sample rate: got %d, want %d", buf.SampleRate(), rate)
	}
	if buf.Channels() != channels {
		t.Errorf("channels: got %d, want %d", buf.Channels(), channels)
	}
	if buf.Frames() != frames {
		t.Errorf("frames: got %d, want %d", buf.Frames(), frames)
	}
}

func TestDecodeBytes_Empty(t *testing.T) {
	if _, err := DecodeBytes(nil); !errors.Is(err, ErrEmptyAudioData) {
		t.Errorf("expected ErrEmptyAudioData, got %v", err)
	}
}

func TestDecodeBytes_Garbage(t *testing.T) {
	if _, err := DecodeBytes([]byte("definitely not a sample")); err == nil {
		t.Error("expected an error for unrecognizable data")
	}
}
