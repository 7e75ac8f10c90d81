// SPDX-License-Identifier: EPL-2.0

package pcm

import "errors"

var (
	ErrInvalidSampleRate    = errors.New("sample rate must be positive")
	ErrInvalidChannels      = errors.New("channel count must be at least 1")
	ErrInvalidDataSize      = errors.New("data size must be multiple of channels")
	ErrInvalidDstSize       = errors.New("dst size must be multiple of channels")
	ErrUnsupportedFormat    = errors.New("unsupported audio format")
	ErrNoFrames             = errors.New("stream holds no frames")
	ErrChannelCountMismatch = errors.New("view channel count mismatch")
)
