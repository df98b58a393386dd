//go:build nocgo
// +build nocgo

package samples

// opusAvailable reports whether opus decoding is compiled in.
const opusAvailable = false

func decodeOpus(data []byte) (*Buffer, error) {
	return nil, ErrOpusUnavailable
}
