// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audplay/pcm"
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// Decoder decodes MP3 streams into fully loaded PCM clips using
// github.com/hajimehoshi/go-mp3.
type Decoder struct{}

// Decode decompresses the whole stream into memory as a pcm.Clip.
// go-mp3 always emits 16-bit little-endian stereo PCM.
func (Decoder) Decode(r io.ReadSeeker) (*pcm.Clip, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("opening mp3 stream: %w", err)
	}

	return decodeAll(dec, 2)
}

func decodeAll(dec mp3Reader, channels int) (*pcm.Clip, error) {
	var data []float32
	buf := make([]byte, 8192)

	for {
		n, err := dec.Read(buf)

		// Convert complete int16 little-endian samples
		for i := 0; i+1 < n; i += 2 {
			v := int16(binary.LittleEndian.Uint16(buf[i : i+2]))
			data = append(data, float32(v)/32768.0)
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding mp3 data: %w", err)
		}
	}

	// Drop a trailing partial frame so channel alignment holds.
	data = data[:len(data)/channels*channels]

	clip, err := pcm.NewClip(data, float64(dec.SampleRate()), channels)
	if err != nil {
		return nil, fmt.Errorf("building clip: %w", err)
	}

	return clip, nil
}
