// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"io"
	"sync"
)

// Info describes a decoded PCM stream. It is immutable once the file
// has been opened.
type Info struct {
	// SampleRate of the PCM data in Hz.
	SampleRate float64
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels int
	// TotalFrames in the stream. One frame is one sample per channel.
	TotalFrames uint64
}

// Duration returns the stream length in seconds.
func (i Info) Duration() float64 {
	if i.SampleRate <= 0 {
		return 0
	}
	return float64(i.TotalFrames) / i.SampleRate
}

// Reader provides random access to decoded interleaved PCM frames.
// Implementations must be safe for use by a single goroutine at a time;
// they are not required to support concurrent readers.
type Reader interface {
	// Info reports the stream parameters.
	Info() Info
	// ReadFrames fills dst with interleaved float32 samples in [-1,1]
	// starting at frame start. len(dst) must be a multiple of the
	// channel count. It returns the number of frames read, which may be
	// short near the end of the stream. When start is at or past the
	// end, it returns 0 with io.EOF.
	ReadFrames(start uint64, dst []float32) (int, error)
}

// Decoder constructs a Clip from an input stream.
type Decoder interface {
	Decode(r io.ReadSeeker) (*Clip, error)
}

// Registry maps format keys (e.g., "wav", "mp3", "ogg") to decoders.
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}
