// SPDX-License-Identifier: EPL-2.0

package resample

import (
	"math"

	"github.com/ik5/audplay/utils"
)

// RateEpsilon is the sample-rate difference in Hz below which
// resampling degenerates to a direct copy.
const RateEpsilon = 0.1

// Resampler converts blocks of native-rate frames to output-rate frames
// using Catmull-Rom cubic interpolation. Works on interleaved samples;
// preserves channel count.
//
// The resampler is stateful across blocks: it retains up to three
// native frames of history plus the fractional read phase, so feeding
// consecutive blocks produces the same result as resampling the whole
// stream at once. It is not safe for concurrent use.
type Resampler struct {
	ratio    float64 // native frames consumed per output frame
	channels int
	identity bool

	// window is history + current block, interleaved. After each call
	// everything before the interpolation window is retired, normally
	// leaving at most 3 frames.
	window     []float32
	histFrames int

	// pos is the source position of the next output frame, in frames
	// relative to the start of window.
	pos float64
}

// New creates a resampler converting nativeRate to outputRate.
func New(nativeRate, outputRate float64, channels int) (*Resampler, error) {
	if nativeRate <= 0 || outputRate <= 0 {
		return nil, ErrInvalidRate
	}
	if channels < 1 {
		return nil, ErrInvalidChannels
	}

	return &Resampler{
		ratio:    nativeRate / outputRate,
		channels: channels,
		identity: math.Abs(nativeRate-outputRate) < RateEpsilon,
	}, nil
}

// Identity reports whether the conversion is a direct copy.
func (r *Resampler) Identity() bool { return r.identity }

// Ratio returns native frames consumed per output frame.
func (r *Resampler) Ratio() float64 { return r.ratio }

// Channels returns the channel count the resampler was built for.
func (r *Resampler) Channels() int { return r.channels }

// NeededNativeFrames returns how many native frames must be supplied to
// Process to produce outputFrames output frames, given the current
// history and phase. The two extra guard frames keep the cubic window
// inside the supplied data.
func (r *Resampler) NeededNativeFrames(outputFrames int) int {
	if outputFrames <= 0 {
		return 0
	}
	if r.identity {
		return outputFrames
	}

	need := int(math.Ceil(r.pos+float64(outputFrames)*r.ratio)) + 2 - r.histFrames
	if need < 0 {
		need = 0
	}
	return need
}

// Process resamples src into dst and returns the number of output
// frames written. len(dst) caps the output; production also stops when
// the cubic window would run past the end of src, in which case the
// tail of src is retained as history for the next call. Process never
// reads outside src.
func (r *Resampler) Process(dst, src []float32) (int, error) {
	ch := r.channels
	if len(dst)%ch != 0 {
		return 0, ErrInvalidDstSize
	}
	if len(src)%ch != 0 {
		return 0, ErrInvalidSrcSize
	}

	if r.identity {
		n := copy(dst, src)
		return n / ch, nil
	}

	// Rebuild the working window: retained history followed by the new
	// block.
	r.window = append(r.window[:r.histFrames*ch], src...)
	wframes := len(r.window) / ch

	dstFrames := len(dst) / ch
	written := 0

	for written < dstFrames {
		idx := int(r.pos)
		if idx+2 >= wframes {
			break // cubic window would leave the block; wait for more input
		}

		t := float32(r.pos - float64(idx))
		r.interpolate(dst[written*ch:], idx, t, wframes)

		written++
		r.pos += r.ratio
	}

	r.retire(wframes)
	return written, nil
}

// Drain produces the remaining output frames for the end of a stream,
// falling back to linear interpolation when fewer than four frames
// surround the source position and repeating the final frame when it is
// the only one left. Returns the number of output frames written.
func (r *Resampler) Drain(dst []float32) int {
	if r.identity {
		return 0
	}

	ch := r.channels
	wframes := len(r.window) / ch
	dstFrames := len(dst) / ch
	written := 0

	for written < dstFrames {
		idx := int(r.pos)
		if idx >= wframes {
			break
		}

		t := float32(r.pos - float64(idx))
		r.interpolate(dst[written*ch:], idx, t, wframes)

		written++
		r.pos += r.ratio
	}

	r.retire(wframes)
	return written
}

// Reset discards history and phase, as after a seek.
func (r *Resampler) Reset() {
	r.window = r.window[:0]
	r.histFrames = 0
	r.pos = 0
}

// interpolate writes one output frame at source index idx with
// fractional offset t. Window edges degrade per the documented policy:
// missing y0 or y3 duplicates the nearest frame, a missing y2 turns the
// cubic into sample repetition.
func (r *Resampler) interpolate(out []float32, idx int, t float32, wframes int) {
	ch := r.channels

	for c := range ch {
		y1 := r.window[idx*ch+c]

		if idx+1 >= wframes {
			// Single frame left: repeat it.
			out[c] = y1
			continue
		}
		y2 := r.window[(idx+1)*ch+c]

		if idx-1 < 0 || idx+2 >= wframes {
			// Not enough surrounding frames for a cubic: linear.
			out[c] = y1 + (y2-y1)*t
			continue
		}

		y0 := r.window[(idx-1)*ch+c]
		y3 := r.window[(idx+2)*ch+c]
		out[c] = utils.CubicInterpolate(y0, y1, y2, y3, t)
	}
}

// retire drops window frames that can no longer participate in any
// interpolation window and rebases the phase.
func (r *Resampler) retire(wframes int) {
	cut := int(r.pos) - 1
	if cut < 0 {
		cut = 0
	}
	if cut > wframes {
		cut = wframes
	}

	ch := r.channels
	kept := (wframes - cut) * ch
	copy(r.window, r.window[cut*ch:wframes*ch])
	r.window = r.window[:kept]
	r.histFrames = wframes - cut
	r.pos -= float64(cut)
}
