package samples

import "io"

// Playback output format. The audio context is created once with a fixed
// format; buffers are conformed to it before playback.
const (
	// PlaybackSampleRate is the output sample rate in Hz.
	PlaybackSampleRate = 48000
	// PlaybackChannels is the output channel count.
	PlaybackChannels = 2
)

// AudioContext abstracts the playback backend so tests run without real
// audio hardware. The production implementation owns the single oto context;
// the mock records interactions.
type AudioContext interface {
	// NewPlayer creates a player for an int16-LE PCM stream in the
	// context's output format.
	NewPlayer(r io.Reader) (AudioPlayer, error)

	// Close releases the backend. Players created from the context are
	// closed as well.
	Close() error

	// IsReady reports whether the context can create players.
	IsReady() bool

	// SampleRate returns the context's output sample rate.
	SampleRate() int

	// ChannelCount returns the context's output channel count.
	ChannelCount() int
}

// AudioPlayer is a single bound playback stream.
type AudioPlayer interface {
	// Play starts or resumes playback.
	Play()

	// Pause pauses playback.
	Pause()

	// IsPlaying reports whether audio is currently playing.
	IsPlaying() bool

	// Reset rewinds the player to the beginning.
	Reset() error

	// Close releases the player.
	Close() error
}
