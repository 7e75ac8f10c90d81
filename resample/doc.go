// SPDX-License-Identifier: EPL-2.0

// Package resample converts PCM blocks between sample rates using
// Catmull-Rom cubic interpolation.
//
// For each output frame i the source position is i * (nativeRate /
// outputRate); the integer part selects a four-frame window (one frame
// before the position, two after) and the fractional part drives the
// cubic kernel in utils.CubicInterpolate. When the two rates differ by
// less than RateEpsilon the conversion is a bit-exact copy.
//
// The resampler consumes a bounded, precomputed amount of input:
// NeededNativeFrames reports exactly how many native frames a Process
// call needs for a given output size, and Process never reads outside
// the block it was given. History and phase carry across calls, so
// block-wise processing matches whole-stream processing.
//
// Typical use from a streaming producer:
//
//	rs, _ := resample.New(44100, 48000, 2)
//	need := rs.NeededNativeFrames(1024)
//	// ... fetch `need` native frames into src ...
//	n, err := rs.Process(dst, src)
package resample
