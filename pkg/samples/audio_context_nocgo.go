//go:build nocgo
// +build nocgo

package samples

import (
	"errors"
	"io"
)

// Stub implementation for static analysis and builds without CGO.

// OtoAudioContext stub for nocgo builds.
type OtoAudioContext struct{}

// NewOtoAudioContext always fails in nocgo builds.
func NewOtoAudioContext() (*OtoAudioContext, error) {
	return nil, errors.New("audio not available in nocgo build")
}

func (ac *OtoAudioContext) NewPlayer(r io.Reader) (AudioPlayer, error) {
	return nil, errors.New("audio not available in nocgo build")
}

func (ac *OtoAudioContext) Close() error { return nil }

func (ac *OtoAudioContext) IsReady() bool { return false }

func (ac *OtoAudioContext) SampleRate() int { return PlaybackSampleRate }

func (ac *OtoAudioContext) ChannelCount() int { return PlaybackChannels }
