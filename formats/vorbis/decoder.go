// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audplay/pcm"
)

// Decoder decodes Ogg Vorbis streams into fully loaded PCM clips using
// github.com/jfreymuth/oggvorbis.
type Decoder struct{}

// Decode decompresses the whole stream into memory as a pcm.Clip.
// oggvorbis already produces interleaved float32 samples, so the data
// is used as-is.
func (Decoder) Decode(r io.ReadSeeker) (*pcm.Clip, error) {
	data, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decoding ogg vorbis stream: %w", err)
	}

	clip, err := pcm.NewClip(data, float64(format.SampleRate), format.Channels)
	if err != nil {
		return nil, fmt.Errorf("building clip: %w", err)
	}

	return clip, nil
}
