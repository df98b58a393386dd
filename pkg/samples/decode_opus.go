//go:build !nocgo
// +build !nocgo

package samples

import (
	"bytes"
	"fmt"
	"io"

	"github.com/hraban/opus"
)

// opusAvailable reports whether opus decoding is compiled in.
const opusAvailable = true

// opusSampleRate is fixed by the codec: ogg-opus always decodes at 48kHz.
const opusSampleRate = 48000

func decodeOpus(data []byte) (*Buffer, error) {
	stream, err := opus.NewStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: opus: %v", ErrDecodeFailed, err)
	}
	defer stream.Close()

	var samples []int
	pcm := make([]int16, 16384)
	for {
		n, err := stream.ReadStereo(pcm)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: opus: %v", ErrDecodeFailed, err)
		}
		// n counts frames; ReadStereo interleaves two channels.
		for i := 0; i < n*2; i++ {
			samples = append(samples, int(pcm[i]))
		}
	}

	return newBuffer(samples, opusSampleRate, 2, FormatOpus), nil
}
