// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	goaiff "github.com/go-audio/aiff"

	"github.com/ik5/audplay/pcm"
)

// Decoder decodes AIFF containers into fully loaded PCM clips using
// github.com/go-audio/aiff.
type Decoder struct{}

// Decode parses the FORM/AIFF container and loads all PCM data into
// memory as a pcm.Clip.
func (Decoder) Decode(r io.ReadSeeker) (*pcm.Clip, error) {
	dec := goaiff.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	scale, ok := pcmScale(int(dec.BitDepth))
	if !ok {
		return nil, ErrUnsupportedBitDepth
	}

	format := dec.Format()
	if format == nil {
		return nil, ErrUnsupportedAiffLayout
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decoding aiff data: %w", err)
	}

	data := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		data[i] = float32(v) / scale
	}

	clip, err := pcm.NewClip(data, float64(format.SampleRate), format.NumChannels)
	if err != nil {
		return nil, fmt.Errorf("building clip: %w", err)
	}

	return clip, nil
}

// pcmScale returns the normalization divisor for a PCM bit depth.
func pcmScale(bitDepth int) (float32, bool) {
	switch bitDepth {
	case 8:
		return 128.0, true
	case 16:
		return 32768.0, true
	case 24:
		return 8388608.0, true
	case 32:
		return 2147483648.0, true
	default:
		return 0, false
	}
}
