// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// Decoding uses github.com/go-audio/aiff and produces a pcm.Clip with
// the whole file resident in memory:
//
//	f, _ := os.Open("audio.aiff")
//	clip, err := aiff.Decoder{}.Decode(f)
//
// Supported bit depths are 8, 16, 24 and 32-bit integer PCM. Invalid
// containers return ErrNotAiffFile.
package aiff
