package samples

// ConformTo returns the buffer's samples adjusted to the given output format:
// channels are mapped (mono duplicated, extra channels averaged down) and the
// rate is converted with linear interpolation. A buffer already in the output
// format is returned as-is.
func (b *Buffer) ConformTo(sampleRate, channels int) *Buffer {
	if b.SampleRate() == sampleRate && b.Channels() == channels {
		return b
	}

	frames := b.Frames()
	srcCh := b.Channels()

	// Channel mapping first, one frame at a time.
	mapped := make([]int, frames*channels)
	for i := 0; i < frames; i++ {
		src := b.PCM.Data[i*srcCh : (i+1)*srcCh]
		for c := 0; c < channels; c++ {
			switch {
			case c < srcCh:
				mapped[i*channels+c] = src[c]
			case srcCh == 1:
				mapped[i*channels+c] = src[0]
			default:
				mapped[i*channels+c] = mixdown(src)
			}
		}
	}

	if b.SampleRate() == sampleRate {
		return newBuffer(mapped, sampleRate, channels, b.SourceFormat)
	}

	// Linear interpolation between neighboring frames.
	outFrames := int(int64(frames) * int64(sampleRate) / int64(b.SampleRate()))
	out := make([]int, outFrames*channels)
	for i := 0; i < outFrames; i++ {
		srcPos := float64(i) * float64(b.SampleRate()) / float64(sampleRate)
		i0 := int(srcPos)
		i1 := i0 + 1
		if i1 >= frames {
			i1 = frames - 1
		}
		frac := srcPos - float64(i0)
		for c := 0; c < channels; c++ {
			s0 := float64(mapped[i0*channels+c])
			s1 := float64(mapped[i1*channels+c])
			out[i*channels+c] = int(s0 + (s1-s0)*frac)
		}
	}

	return newBuffer(out, sampleRate, channels, b.SourceFormat)
}

// mixdown averages a frame's channels into one sample.
func mixdown(frame []int) int {
	sum := 0
	for _, s := range frame {
		sum += s
	}
	return sum / len(frame)
}
