// SPDX-License-Identifier: EPL-2.0

package pcm

// Interleaved is a typed view over an interleaved sample buffer:
// frame 0 channel 0, frame 0 channel 1, frame 1 channel 0, ...
// Data must hold at least Frames*Channels samples.
type Interleaved struct {
	Data     []float32
	Frames   int
	Channels int
}

// Zero fills the viewed region with silence.
func (v Interleaved) Zero() {
	n := v.Frames * v.Channels
	for i := range v.Data[:n] {
		v.Data[i] = 0
	}
}

// Planar is a typed view over channel-planar sample buffers, one
// contiguous slice per channel. Each slice must hold at least Frames
// samples.
type Planar struct {
	Chans  [][]float32
	Frames int
}

// Zero fills the viewed region of every channel with silence.
func (v Planar) Zero() {
	for _, ch := range v.Chans {
		for i := range ch[:v.Frames] {
			ch[i] = 0
		}
	}
}

// Deinterleave scatters src into dst. When dst has more channels than
// src, the extra channels repeat the last source channel; when it has
// fewer, the surplus source channels are dropped. Frame counts must
// match; this is the single layout conversion boundary, so no other
// code needs to index across layouts.
func Deinterleave(dst Planar, src Interleaved) {
	for c, out := range dst.Chans {
		sc := c
		if sc >= src.Channels {
			sc = src.Channels - 1
		}
		for f := 0; f < src.Frames; f++ {
			out[f] = src.Data[f*src.Channels+sc]
		}
	}
}

// Interleave gathers src into dst. Channel counts follow the same
// mapping rules as Deinterleave.
func Interleave(dst Interleaved, src Planar) {
	for c := 0; c < dst.Channels; c++ {
		sc := c
		if sc >= len(src.Chans) {
			sc = len(src.Chans) - 1
		}
		in := src.Chans[sc]
		for f := 0; f < src.Frames; f++ {
			dst.Data[f*dst.Channels+c] = in[f]
		}
	}
}
