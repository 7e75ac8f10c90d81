// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis and loads the decoded
// stream fully into memory as a pcm.Clip:
//
//	f, _ := os.Open("audio.ogg")
//	clip, err := vorbis.Decoder{}.Decode(f)
//
// Vorbis decodes natively to interleaved float32 samples in [-1.0, 1.0],
// so no scaling pass is needed. Channel count and sample rate follow the
// file's encoding.
package vorbis
