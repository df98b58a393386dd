package samples

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
)

// DecodeBytes sniffs the container format from magic bytes and decodes the
// payload into a 16-bit interleaved PCM buffer. The sniff looks at content,
// not at the URL extension, since a CDN may serve a different format than
// the one requested.
func DecodeBytes(data []byte) (*Buffer, error) {
	if len(data) == 0 {
		return nil, ErrEmptyAudioData
	}

	format, err := SniffFormat(data)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatMP3:
		return decodeMP3(data)
	case FormatFLAC:
		return decodeFLAC(data)
	case FormatOgg:
		return decodeVorbis(data)
	case FormatOpus:
		return decodeOpus(data)
	case FormatWAV:
		return decodeWAV(data)
	}
	return nil, fmt.Errorf("%w: %s", ErrDecodeFailed, format)
}

// SniffFormat identifies the audio format from leading magic bytes.
func SniffFormat(data []byte) (Format, error) {
	switch {
	case len(data) >= 4 && bytes.Equal(data[:4], []byte("fLaC")):
		return FormatFLAC, nil
	case len(data) >= 4 && bytes.Equal(data[:4], []byte("OggS")):
		// Opus and Vorbis share the Ogg container; the codec identifies
		// itself in the first packet of the first page.
		head := data
		if len(head) > 512 {
			head = head[:512]
		}
		if bytes.Contains(head, []byte("OpusHead")) {
			return FormatOpus, nil
		}
		if bytes.Contains(head, []byte("\x01vorbis")) {
			return FormatOgg, nil
		}
		return "", fmt.Errorf("%w: unrecognized ogg codec", ErrUnknownFormat)
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return FormatWAV, nil
	case len(data) >= 3 && bytes.Equal(data[:3], []byte("ID3")):
		return FormatMP3, nil
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		// Bare MPEG frame sync, no ID3 tag.
		return FormatMP3, nil
	}
	return "", ErrUnknownFormat
}

func decodeMP3(data []byte) (*Buffer, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: mp3: %v", ErrDecodeFailed, err)
	}

	// go-mp3 always emits 16-bit little-endian stereo.
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: mp3: %v", ErrDecodeFailed, err)
	}

	samples := make([]int, len(raw)/2)
	for i := range samples {
		samples[i] = int(int16(uint16(raw[i*2]) | uint16(raw[i*2+1])<<8))
	}
	return newBuffer(samples, dec.SampleRate(), 2, FormatMP3), nil
}

func decodeFLAC(data []byte) (*Buffer, error) {
	stream, err := flac.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: flac: %v", ErrDecodeFailed, err)
	}
	defer stream.Close()

	info := stream.Info
	channels := int(info.NChannels)
	shift := int(info.BitsPerSample) - 16

	var samples []int
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: flac: %v", ErrDecodeFailed, err)
		}

		n := int(frame.BlockSize)
		for i := 0; i < n; i++ {
			for _, sub := range frame.Subframes {
				s := int(sub.Samples[i])
				if shift > 0 {
					s >>= shift
				} else if shift < 0 {
					s <<= -shift
				}
				samples = append(samples, s)
			}
		}
	}

	return newBuffer(samples, int(info.SampleRate), channels, FormatFLAC), nil
}

func decodeVorbis(data []byte) (*Buffer, error) {
	pcm, format, err := oggvorbis.ReadAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: vorbis: %v", ErrDecodeFailed, err)
	}

	samples := make([]int, len(pcm))
	for i, f := range pcm {
		samples[i] = int(clampFloat(f))
	}
	return newBuffer(samples, format.SampleRate, format.Channels, FormatOgg), nil
}

func decodeWAV(data []byte) (*Buffer, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: wav: invalid file", ErrDecodeFailed)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: wav: %v", ErrDecodeFailed, err)
	}

	shift := buf.SourceBitDepth - 16
	samples := buf.Data
	if shift != 0 {
		samples = make([]int, len(buf.Data))
		for i, s := range buf.Data {
			if shift > 0 {
				samples[i] = s >> shift
			} else {
				samples[i] = s << -shift
			}
		}
	}
	return newBuffer(samples, buf.Format.SampleRate, buf.Format.NumChannels, FormatWAV), nil
}

// clampFloat converts a [-1, 1] float sample to int16 range with clipping.
func clampFloat(f float32) int16 {
	s := f * 32767
	if s > 32767 {
		return 32767
	}
	if s < -32768 {
		return -32768
	}
	return int16(s)
}
