// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Decoding uses github.com/go-audio/wav and produces a pcm.Clip with
// the whole file resident in memory, which is what the streaming layer
// needs for cheap seek and loop:
//
//	f, _ := os.Open("audio.wav")
//	clip, err := wav.Decoder{}.Decode(f)
//
// Supported bit depths are 8, 16, 24 and 32-bit integer PCM at any
// sample rate and channel count. Invalid containers return
// ErrNotWavFile; valid containers with an unhandled sample format
// return ErrUnsupportedBitDepth.
//
// WriteWAV16 writes interleaved 16-bit PCM with a canonical 44-byte
// header; it is used by tooling and as the round-trip fixture in tests:
//
//	samples := []int16{100, -100, 200, -200}
//	err := wav.WriteWAV16(file, 8000, 1, samples)
package wav
