package samples

import (
	"io"
	"sync"
)

// MockAudioContext implements AudioContext for testing without real audio.
type MockAudioContext struct {
	mu      sync.Mutex
	ready   bool
	players []*MockAudioPlayer

	// Test helpers
	PlayersCreated int
	PlayersClosed  int
}

// NewMockAudioContext creates a new mock audio context.
func NewMockAudioContext() *MockAudioContext {
	return &MockAudioContext{ready: true}
}

// NewPlayer creates a mock player that records the PCM it was given.
func (mac *MockAudioContext) NewPlayer(r io.Reader) (AudioPlayer, error) {
	mac.mu.Lock()
	defer mac.mu.Unlock()

	if !mac.ready {
		return nil, ErrNoAudioContext
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	player := &MockAudioPlayer{context: mac, Data: data}
	mac.players = append(mac.players, player)
	mac.PlayersCreated++
	return player, nil
}

// Close closes the mock context and all its players.
func (mac *MockAudioContext) Close() error {
	mac.mu.Lock()
	defer mac.mu.Unlock()

	for _, p := range mac.players {
		p.closed = true
	}
	mac.ready = false
	mac.players = nil
	return nil
}

// IsReady reports whether the mock context is open.
func (mac *MockAudioContext) IsReady() bool {
	mac.mu.Lock()
	defer mac.mu.Unlock()
	return mac.ready
}

// SampleRate returns the context's output sample rate.
func (mac *MockAudioContext) SampleRate() int { return PlaybackSampleRate }

// ChannelCount returns the context's output channel count.
func (mac *MockAudioContext) ChannelCount() int { return PlaybackChannels }

// MockAudioPlayer records playback interactions for assertions.
type MockAudioPlayer struct {
	context *MockAudioContext

	mu      sync.Mutex
	playing bool
	closed  bool

	// Data is the PCM handed to the player at construction.
	Data []byte
	// PlayCalls counts Play invocations.
	PlayCalls int
}

func (p *MockAudioPlayer) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = true
	p.PlayCalls++
}

func (p *MockAudioPlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
}

func (p *MockAudioPlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func (p *MockAudioPlayer) Reset() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = false
	return nil
}

func (p *MockAudioPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		p.context.mu.Lock()
		p.context.PlayersClosed++
		p.context.mu.Unlock()
	}
	p.playing = false
	return nil
}
