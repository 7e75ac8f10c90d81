// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decompress the
// stream and loads the result fully into memory as a pcm.Clip:
//
//	f, _ := os.Open("audio.mp3")
//	clip, err := mp3.Decoder{}.Decode(f)
//
// go-mp3 always emits 16-bit stereo PCM, so decoded clips report two
// channels regardless of the source encoding.
package mp3
