// SPDX-License-Identifier: EPL-2.0

package pcm

import "io"

// Clip is a fully decoded PCM stream held in memory as interleaved
// float32 samples. Holding the whole file makes seeking trivial and
// keeps the streaming path free of decoder latency; a 3-minute stereo
// file at 48 kHz costs about 66 MB.
type Clip struct {
	info Info
	data []float32
}

// NewClip wraps interleaved sample data into a Clip. The data slice is
// retained, not copied.
func NewClip(data []float32, sampleRate float64, channels int) (*Clip, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if channels < 1 {
		return nil, ErrInvalidChannels
	}
	if len(data)%channels != 0 {
		return nil, ErrInvalidDataSize
	}

	return &Clip{
		info: Info{
			SampleRate:  sampleRate,
			Channels:    channels,
			TotalFrames: uint64(len(data) / channels),
		},
		data: data,
	}, nil
}

func (c *Clip) Info() Info { return c.info }

// ReadFrames copies interleaved frames starting at frame start into dst.
// It returns the number of frames copied, short near the end of the
// clip, and io.EOF when start is at or past the end.
func (c *Clip) ReadFrames(start uint64, dst []float32) (int, error) {
	ch := c.info.Channels
	if len(dst)%ch != 0 {
		return 0, ErrInvalidDstSize
	}
	if start >= c.info.TotalFrames {
		return 0, io.EOF
	}

	want := uint64(len(dst) / ch)
	avail := c.info.TotalFrames - start
	if want > avail {
		want = avail
	}

	off := start * uint64(ch)
	copy(dst, c.data[off:off+want*uint64(ch)])

	return int(want), nil
}

// DownmixMono returns a mono copy of c produced by averaging channels.
// A mono clip is returned unchanged.
func DownmixMono(c *Clip) *Clip {
	ch := c.info.Channels
	if ch == 1 {
		return c
	}

	frames := int(c.info.TotalFrames)
	out := make([]float32, frames)
	inv := float32(1.0) / float32(ch)

	switch ch {
	case 2: // Stereo (most common)
		for f := range frames {
			idx := f << 1
			out[f] = (c.data[idx] + c.data[idx+1]) * 0.5
		}
	default:
		for f := range frames {
			sum := float32(0)
			base := f * ch
			for i := range ch {
				sum += c.data[base+i]
			}
			out[f] = sum * inv
		}
	}

	return &Clip{
		info: Info{
			SampleRate:  c.info.SampleRate,
			Channels:    1,
			TotalFrames: uint64(frames),
		},
		data: out,
	}
}
