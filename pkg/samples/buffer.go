package samples

import (
	"encoding/binary"
	"time"

	"github.com/go-audio/audio"
)

// Buffer is an in-memory, ready-to-play representation of decoded audio
// samples. PCM holds interleaved 16-bit samples regardless of the source
// bit depth; decoders normalize on the way in.
type Buffer struct {
	PCM          *audio.IntBuffer
	SourceFormat Format
}

// SampleRate returns the sample rate in Hz.
func (b *Buffer) SampleRate() int {
	return b.PCM.Format.SampleRate
}

// Channels returns the number of interleaved channels.
func (b *Buffer) Channels() int {
	return b.PCM.Format.NumChannels
}

// Frames returns the number of sample frames (samples per channel).
func (b *Buffer) Frames() int {
	if b.PCM.Format.NumChannels == 0 {
		return 0
	}
	return len(b.PCM.Data) / b.PCM.Format.NumChannels
}

// Duration returns the playback duration of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.PCM.Format.SampleRate == 0 {
		return 0
	}
	return time.Duration(b.Frames()) * time.Second / time.Duration(b.PCM.Format.SampleRate)
}

// SizeBytes returns the in-memory PCM payload size.
func (b *Buffer) SizeBytes() int64 {
	return int64(len(b.PCM.Data)) * 2
}

// Bytes serializes the buffer as interleaved little-endian int16, the wire
// format the audio context consumes.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, len(b.PCM.Data)*2)
	for i, s := range b.PCM.Data {
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(s)))
	}
	return out
}

// newBuffer wraps interleaved int16 samples in a Buffer.
func newBuffer(data []int, sampleRate, channels int, format Format) *Buffer {
	return &Buffer{
		PCM: &audio.IntBuffer{
			Data:           data,
			Format:         &audio.Format{SampleRate: sampleRate, NumChannels: channels},
			SourceBitDepth: 16,
		},
		SourceFormat: format,
	}
}
