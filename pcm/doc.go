// SPDX-License-Identifier: EPL-2.0

// Package pcm holds the decoded-audio data model shared by the rest of
// the module.
//
// # Clips and Readers
//
// A Clip is a fully decoded stream kept in memory as interleaved
// float32 samples in [-1.0, 1.0]:
//
//	clip, err := pcm.NewClip(data, 48000, 2)
//	n, err := clip.ReadFrames(1024, buf)
//
// The Reader interface abstracts random access to frames so the
// streaming layer does not care which container the audio came from.
// Format packages under formats/ decode into Clips.
//
// # Format Registry
//
// The registry allows dynamic decoder registration by format key:
//
//	registry := pcm.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.Get("wav")
//
// # Layout Views
//
// Interleaved and Planar are typed views over the two common sample
// layouts. Deinterleave and Interleave are the only conversion points
// between them; everything else in the module works on one layout.
//
// # Sample Format
//
// Samples are float32 in the range [-1.0, 1.0]:
//   - 0.0 represents silence
//   - 1.0 represents maximum positive amplitude
//   - -1.0 represents maximum negative amplitude
package pcm
