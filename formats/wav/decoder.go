// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"

	"github.com/ik5/audplay/pcm"
)

// Decoder decodes WAV containers into fully loaded PCM clips using
// github.com/go-audio/wav.
type Decoder struct{}

// Decode parses the RIFF/WAVE container and loads all PCM data into
// memory. Loading the whole file up front is what gives the streaming
// layer cheap random access for seeking and looping.
func (Decoder) Decode(r io.ReadSeeker) (*pcm.Clip, error) {
	dec := gowav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	scale, ok := pcmScale(int(dec.BitDepth))
	if !ok {
		return nil, ErrUnsupportedBitDepth
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decoding wav data: %w", err)
	}

	data := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		data[i] = float32(v) / scale
	}

	clip, err := pcm.NewClip(data, float64(dec.SampleRate), int(dec.NumChans))
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
