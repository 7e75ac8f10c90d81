// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides helpers for building in-memory PCM clips
// used as fixtures across package tests.
package audiotest

import (
	"math"

	"github.com/ik5/audplay/pcm"
)

// NewClip builds a clip whose samples come from waveform, called with
// the frame index and channel number.
func NewClip(sampleRate float64, channels, totalFrames int, waveform func(frame, channel int) float32) *pcm.Clip {
	data := make([]float32, totalFrames*channels)
	for frame := range totalFrames {
		for ch := range channels {
			data[frame*channels+ch] = waveform(frame, ch)
		}
	}

	clip, err := pcm.NewClip(data, sampleRate, channels)
	if err != nil {
		panic(err)
	}

	return clip
}

// NewSilentClip builds a clip of all-zero samples.
func NewSilentClip(sampleRate float64, channels, totalFrames int) *pcm.Clip {
	return NewClip(sampleRate, channels, totalFrames, func(frame, channel int) float32 {
		return 0.0
	})
}

// NewSineClip builds a clip holding a sine wave at the given frequency,
// identical on every channel.
func NewSineClip(sampleRate float64, channels, totalFrames int, frequency float64) *pcm.Clip {
	return NewClip(sampleRate, channels, totalFrames, func(frame, channel int) float32 {
		t := float64(frame) / sampleRate
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantClip builds a clip where every sample holds value.
func NewConstantClip(sampleRate float64, channels, totalFrames int, value float32) *pcm.Clip {
	return NewClip(sampleRate, channels, totalFrames, func(frame, channel int) float32 {
		return value
	})
}

// NewRampClip builds a mono-pattern clip where frame i holds
// float32(i)/float32(totalFrames) on every channel. Useful for
// asserting exact read positions.
func NewRampClip(sampleRate float64, channels, totalFrames int) *pcm.Clip {
	return NewClip(sampleRate, channels, totalFrames, func(frame, channel int) float32 {
		return float32(frame) / float32(totalFrames)
	})
}
