// SPDX-License-Identifier: EPL-2.0

package audplay

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audplay/engine"
	"github.com/ik5/audplay/formats/aiff"
	"github.com/ik5/audplay/formats/mp3"
	"github.com/ik5/audplay/formats/vorbis"
	"github.com/ik5/audplay/formats/wav"
	"github.com/ik5/audplay/pcm"
	"github.com/ik5/audplay/resample"
	"github.com/ik5/audplay/stream"
	"github.com/ik5/audplay/utils"
)

// Options configures Open.
type Options struct {
	// OutputRate is the sample rate the hosting audio backend runs at.
	// Zero means the file's native rate (no resampling).
	OutputRate float64
	// Mono downmixes the file to one channel before streaming.
	Mono bool
}

// DefaultRegistry returns a decoder registry covering every format this
// module ships: wav, aiff/aif, mp3 and ogg/oga.
func DefaultRegistry() *pcm.Registry {
	reg := pcm.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	return reg
}

// Open decodes the audio file at path and returns a ready playback
// engine. The decoder is chosen by file extension from DefaultRegistry.
// The engine is stopped; call Start to pre-fill the buffer and Play to
// begin.
func Open(path string, opts Options) (*engine.Engine, error) {
	clip, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	if opts.Mono {
		clip = pcm.DownmixMono(clip)
	}

	rate := opts.OutputRate
	if rate == 0 {
		rate = clip.Info().SampleRate
	}

	s, err := stream.New(clip, rate)
	if err != nil {
		return nil, fmt.Errorf("building streamer: %w", err)
	}

	return engine.New(s)
}

// LoadMono16 decodes the audio file at path, downmixes it to mono,
// resamples to targetRate and returns 16-bit PCM samples, ready for
// wav.WriteWAV16 or a telephony codec.
func LoadMono16(path string, targetRate float64) ([]int16, error) {
	clip, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	return resampleMono16(pcm.DownmixMono(clip), targetRate)
}

func decodeFile(path string) (*pcm.Clip, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")

	dec, ok := DefaultRegistry().Get(ext)
	if !ok {
		return nil, fmt.Errorf("extension %q: %w", ext, pcm.ErrUnsupportedFormat)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	clip, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return clip, nil
}

// resampleMono16 runs a mono clip through the block resampler in
// fixed-size chunks and converts the result to int16.
func resampleMono16(clip *pcm.Clip, targetRate float64) ([]int16, error) {
	info := clip.Info()

	rs, err := resample.New(info.SampleRate, targetRate, 1)
	if err != nil {
		return nil, fmt.Errorf("building resampler: %w", err)
	}

	const chunk = 4096
	in := make([]float32, chunk)
	out := make([]float32, chunk*4)
	pcm16 := make([]int16, 0, int(float64(info.TotalFrames)*targetRate/info.SampleRate)+1)

	var cursor uint64
	for {
		n, rerr := clip.ReadFrames(cursor, in)
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return nil, fmt.Errorf("reading frames: %w", rerr)
		}
		cursor += uint64(n)

		produced, perr := rs.Process(out, in[:n])
		if perr != nil {
			return nil, fmt.Errorf("resampling: %w", perr)
		}
		for _, s := range out[:produced] {
			pcm16 = append(pcm16, utils.Float32ToInt16(s))
		}
	}

	// Flush the frames still held as interpolation history.
	for {
		produced := rs.Drain(out)
		if produced == 0 {
			break
		}
		for _, s := range out[:produced] {
			pcm16 = append(pcm16, utils.Float32ToInt16(s))
		}
	}

	return pcm16, nil
}
