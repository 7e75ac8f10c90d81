package wav

import "errors"

var (
	ErrNotWavFile          = errors.New("not a WAV file")
	ErrUnsupportedBitDepth = errors.New("unsupported WAV bit depth")
	ErrInvalidChannelCount = errors.New("channel count must be at least 1")
	ErrInvalidSampleCount  = errors.New("sample count must be multiple of channels")
)
