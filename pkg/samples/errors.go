package samples

import "errors"

// Common errors for the sample loading pipeline.
var (
	// Resolver errors
	ErrUnknownFormat = errors.New("unknown audio format")

	// Fetch errors
	ErrFetchFailed      = errors.New("fetching sample data failed")
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// Decode errors
	ErrDecodeFailed    = errors.New("audio decode failed")
	ErrEmptyAudioData  = errors.New("empty audio data")
	ErrOpusUnavailable = errors.New("opus decoding not built in")

	// Dispatcher errors
	ErrDispatcherClosed = errors.New("dispatcher has been closed")

	// Playback errors
	ErrNoAudioContext = errors.New("audio context is not initialized")
	ErrHandleClosed   = errors.New("playback handle has been closed")
	ErrNothingToPlay  = errors.New("no audio bound to handle")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
)
