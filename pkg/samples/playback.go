package samples

import (
	"bytes"
	"context"
	"sync"

	"github.com/charmbracelet/log"
)

// PlayerFactory produces playback handles bound to resolved sample URLs.
// Under progressive loading a handle defers fetch and decode until its first
// Play; otherwise the source is bound eagerly at creation.
type PlayerFactory struct {
	cfg        Config
	dispatcher *Dispatcher
	audio      AudioContext
	logger     *log.Logger
}

// NewPlayerFactory creates a factory on the given dispatcher and audio
// context.
func NewPlayerFactory(cfg Config, dispatcher *Dispatcher, audio AudioContext, logger *log.Logger) *PlayerFactory {
	if logger == nil {
		logger = log.Default()
	}
	return &PlayerFactory{
		cfg:        cfg,
		dispatcher: dispatcher,
		audio:      audio,
		logger:     logger,
	}
}

// NewHandle creates a playback handle for a resolved URL. In progressive
// mode the handle holds only the URL until the first Play. In eager mode the
// sample is decoded and the player created before the handle is returned;
// eager binding errors surface on the first Play.
func (f *PlayerFactory) NewHandle(ctx context.Context, url, id string) *Handle {
	h := &Handle{factory: f, url: url, id: id}
	if !f.cfg.UseProgressiveLoading {
		h.bindOnce.Do(func() { h.bindErr = h.bind(ctx) })
	}
	return h
}

// Handle is a lazily loading playback element bound to one sample. The
// source is bound at most once, on the first Play under progressive loading;
// repeated Plays reuse the bound player.
type Handle struct {
	factory *PlayerFactory
	url     string
	id      string

	bindOnce sync.Once
	bindErr  error

	mu     sync.Mutex
	player AudioPlayer
	closed bool
}

// URL returns the resolved URL the handle is bound to.
func (h *Handle) URL() string { return h.url }

// ID returns the sample id the handle is bound to.
func (h *Handle) ID() string { return h.id }

// Bound reports whether the handle has a bound player.
func (h *Handle) Bound() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.player != nil
}

// Play binds the source if this is the first play, then starts playback from
// the beginning.
func (h *Handle) Play(ctx context.Context) error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return ErrHandleClosed
	}
	h.mu.Unlock()

	h.bindOnce.Do(func() { h.bindErr = h.bind(ctx) })
	if h.bindErr != nil {
		return h.bindErr
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.player == nil {
		return ErrNothingToPlay
	}
	if err := h.player.Reset(); err != nil {
		return err
	}
	h.player.Play()
	return nil
}

// Pause pauses playback if the source is bound.
func (h *Handle) Pause() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.player != nil {
		h.player.Pause()
	}
}

// IsPlaying reports whether the handle is currently playing.
func (h *Handle) IsPlaying() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.player != nil && h.player.IsPlaying()
}

// Close releases the bound player, if any. A closed handle cannot be played
// again.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	if h.player == nil {
		return nil
	}
	err := h.player.Close()
	h.player = nil
	return err
}

// bind decodes the sample and creates the player. Called exactly once per
// handle via bindOnce.
func (h *Handle) bind(ctx context.Context) error {
	f := h.factory

	buf, err := f.dispatcher.Decode(ctx, h.url, h.id)
	if err != nil {
		return err
	}

	if f.audio == nil || !f.audio.IsReady() {
		return ErrNoAudioContext
	}

	conformed := buf.ConformTo(f.audio.SampleRate(), f.audio.ChannelCount())
	player, err := f.audio.NewPlayer(bytes.NewReader(conformed.Bytes()))
	if err != nil {
		return err
	}

	f.logger.Debug("bound playback handle",
		"id", h.id,
		"url", h.url,
		"duration", conformed.Duration())

	h.mu.Lock()
	h.player = player
	h.mu.Unlock()
	return nil
}
