//go:build !nocgo
// +build !nocgo

package samples

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ebitengine/oto/v3"
)

// OtoAudioContext implements AudioContext on real audio hardware. It owns
// the process's single oto context; construct it once at startup and pass it
// to whatever needs playback.
type OtoAudioContext struct {
	context *oto.Context
	mu      sync.Mutex
	ready   bool
	players []AudioPlayer
}

// NewOtoAudioContext creates and readies the oto-backed audio context.
func NewOtoAudioContext() (*OtoAudioContext, error) {
	options := &oto.NewContextOptions{
		SampleRate:   PlaybackSampleRate,
		ChannelCount: PlaybackChannels,
		Format:       oto.FormatSignedInt16LE,
	}

	log.Debug("initializing audio context",
		"sample_rate", options.SampleRate,
		"channels", options.ChannelCount)

	context, readyChan, err := oto.NewContext(options)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio context: %w", err)
	}

	select {
	case <-readyChan:
	case <-time.After(5 * time.Second):
		// oto v3 contexts have no Close; an unready one is left for GC.
		return nil, fmt.Errorf("audio context initialization timeout")
	}

	return &OtoAudioContext{context: context, ready: true}, nil
}

// NewPlayer creates a player for an int16-LE PCM stream.
func (ac *OtoAudioContext) NewPlayer(r io.Reader) (AudioPlayer, error) {
	ac.mu.Lock()
	defer ac.mu.Unlock()

	if !ac.ready || ac.context == nil {
		return nil, ErrNoAudioContext
	}

	player := &otoPlayer{player: ac.context.NewPlayer(r), reader: r}
	ac.players = append(ac.players, player)
	return player, nil
}

// Close closes every player created from the context. The oto context itself
// has no close; it is released with the process.
func (ac *OtoAudioContext) Close() error {
	ac.mu.Lock()
	defer ac.mu.Unlock()

	for _, p := range ac.players {
		_ = p.Close()
	}
	ac.players = nil
	ac.ready = false
	return nil
}

// IsReady reports whether the context can create players.
func (ac *OtoAudioContext) IsReady() bool {
	ac.mu.Lock()
	defer ac.mu.Unlock()
	return ac.ready
}

// SampleRate returns the context's output sample rate.
func (ac *OtoAudioContext) SampleRate() int { return PlaybackSampleRate }

// ChannelCount returns the context's output channel count.
func (ac *OtoAudioContext) ChannelCount() int { return PlaybackChannels }

// otoPlayer adapts *oto.Player to the AudioPlayer interface.
type otoPlayer struct {
	player *oto.Player
	reader io.Reader
}

func (p *otoPlayer) Play() {
	if !p.player.IsPlaying() {
		p.player.Play()
	}
}

func (p *otoPlayer) Pause() {
	p.player.Pause()
}

func (p *otoPlayer) IsPlaying() bool {
	return p.player.IsPlaying()
}

func (p *otoPlayer) Reset() error {
	if seeker, ok := p.reader.(io.Seeker); ok {
		_, err := seeker.Seek(0, io.SeekStart)
		return err
	}
	return fmt.Errorf("underlying reader is not seekable")
}

func (p *otoPlayer) Close() error {
	return p.player.Close()
}
