// Package samples resolves playable audio sample URLs, lazily fetches and
// decodes audio data into in-memory PCM buffers, and binds decoded buffers
// to playback handles. Resolution prefers CDN-hosted compressed formats over
// larger lossless ones and memoizes every answer for the process lifetime.
package samples

import (
	"context"

	"github.com/charmbracelet/log"
)

// Sample names one logical sample for batch preloading. When ID is empty the
// sample is only resolved (existence-probed); a non-empty ID additionally
// pre-decodes the audio under that id.
type Sample struct {
	Directory string `yaml:"directory"`
	File      string `yaml:"file"`
	ID        string `yaml:"id"`
}

// Loader ties the resolver, dispatcher and player factory together behind
// the library's public surface: resolve-URL, pre-decode, create playback
// handle and batch preload.
type Loader struct {
	cfg        Config
	resolver   *Resolver
	dispatcher *Dispatcher
	factory    *PlayerFactory
	logger     *log.Logger
}

// LoaderOption customizes loader construction.
type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	prober Prober
	audio  AudioContext
	logger *log.Logger
}

// WithProber replaces the HTTP existence prober, primarily for tests.
func WithProber(p Prober) LoaderOption {
	return func(o *loaderOptions) { o.prober = p }
}

// WithAudioContext supplies the playback backend. Without one, playback
// handles fail to bind but resolution and decoding still work.
func WithAudioContext(ac AudioContext) LoaderOption {
	return func(o *loaderOptions) { o.audio = ac }
}

// WithLogger replaces the default logger.
func WithLogger(l *log.Logger) LoaderOption {
	return func(o *loaderOptions) { o.logger = l }
}

// NewLoader validates the configuration and constructs the pipeline.
func NewLoader(cfg Config, opts ...LoaderOption) (*Loader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o loaderOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.Default()
	}

	resolver := NewResolver(cfg, o.prober, o.logger)
	dispatcher := NewDispatcher(cfg, nil, o.logger)
	factory := NewPlayerFactory(cfg, dispatcher, o.audio, o.logger)

	return &Loader{
		cfg:        cfg,
		resolver:   resolver,
		dispatcher: dispatcher,
		factory:    factory,
		logger:     o.logger,
	}, nil
}

// Resolve returns a playable URL for the sample, probing sources on first
// use and answering from the resolution cache afterwards.
func (l *Loader) Resolve(ctx context.Context, directory, fileName string) string {
	return l.resolver.Resolve(ctx, directory, fileName)
}

// Predecode resolves the sample and decodes it under the given id, priming
// the decoded-buffer cache.
func (l *Loader) Predecode(ctx context.Context, directory, fileName, id string) (*Buffer, error) {
	url := l.resolver.Resolve(ctx, directory, fileName)
	return l.dispatcher.Decode(ctx, url, id)
}

// NewHandle resolves the sample and creates a playback handle for it.
func (l *Loader) NewHandle(ctx context.Context, directory, fileName, id string) *Handle {
	url := l.resolver.Resolve(ctx, directory, fileName)
	return l.factory.NewHandle(ctx, url, id)
}

// PreloadAll resolves and pre-decodes the samples strictly sequentially in
// input order; sequential processing is a deliberate throttle against
// request bursts. Samples without an ID are only resolved, which already
// existence-probes them. Individual failures are logged and do not stop the
// batch. onProgress, when non-nil, is invoked after each sample with the
// count processed so far and the total. The only error returned is ctx
// cancellation between samples.
func (l *Loader) PreloadAll(ctx context.Context, samples []Sample, onProgress func(done, total int)) error {
	total := len(samples)
	for i, s := range samples {
		if err := ctx.Err(); err != nil {
			return err
		}

		if s.ID == "" {
			l.resolver.Resolve(ctx, s.Directory, s.File)
		} else if _, err := l.Predecode(ctx, s.Directory, s.File, s.ID); err != nil {
			l.logger.Error("preload failed", "dir", s.Directory, "file", s.File, "id", s.ID, "error", err)
		}

		if onProgress != nil {
			onProgress(i+1, total)
		}
	}
	return nil
}

// Dispatcher exposes the decode dispatcher for callers that hold resolved
// URLs of their own.
func (l *Loader) Dispatcher() *Dispatcher { return l.dispatcher }

// Close stops the background decode worker. Caches stay readable.
func (l *Loader) Close() {
	l.dispatcher.Close()
}
