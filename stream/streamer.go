// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ik5/audplay/pcm"
	"github.com/ik5/audplay/resample"
	"github.com/ik5/audplay/ring"
)

const (
	// BufferSeconds is the ring capacity expressed in seconds of
	// output-rate audio.
	BufferSeconds = 3

	// refillInterval is the period of the background refill goroutine.
	refillInterval = 10 * time.Millisecond

	// chunkFrames is the number of native frames read per refill pass.
	chunkFrames = 1024

	// prefillFraction of the ring capacity must be filled before
	// StartPlayback returns.
	prefillFraction = 0.9

	// prefillStallBudget bounds how long StartPlayback tolerates no
	// forward progress before giving up.
	prefillStallBudget = 250 * time.Millisecond

	// quiesceTimeout bounds how long a control operation waits for the
	// producer to park between ticks.
	quiesceTimeout = 100 * time.Millisecond
)

// Streamer feeds decoded file audio through a resampler into an SPSC
// ring buffer. A background goroutine tops the ring up every 10 ms; the
// render path drains it with PopBlock without ever blocking.
//
// Exactly one goroutine may call PopBlock (the render consumer). The
// control surface (Seek, SkipForward, SetGain, Close) may be driven
// from any goroutine; control calls serialize on an internal mutex that
// the audio path never touches.
type Streamer struct {
	src        pcm.Reader
	info       pcm.Info
	outputRate float64

	rs   *resample.Resampler
	ring *ring.Buffer

	// Producer-side state: touched only by the refill goroutine, or by
	// the control path while the producer is parked.
	cursor     uint64 // next native frame to read
	nativeBuf  []float32
	outBuf     []float32
	pending    []float32 // resampled samples not yet pushed
	pendingOff int
	pendingGen uint64

	gain    atomic.Uint32 // float32 bits, [0,1]
	looped  atomic.Bool
	lastErr atomic.Pointer[error]

	// Producer quiesce handshake. Control raises quiesce and waits for
	// parked; the producer skips whole passes while quiesced. The
	// generation counter makes a pass that slipped through the timeout
	// window drop its now-stale output.
	quiesce atomic.Bool
	parked  atomic.Bool
	gen     atomic.Uint64

	mu      sync.Mutex
	started bool
	stopCh  chan struct{}
	done    chan struct{}
}

// Open decodes the file at path into memory and returns a streamer
// converting it to outputRate. The decoder is picked from reg by the
// lower-cased file extension. A missing file or an extension with no
// registered decoder is fatal here; nothing is retried.
func Open(path string, outputRate float64, reg *pcm.Registry) (*Streamer, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")

	dec, ok := reg.Get(ext)
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

	return New(clip, outputRate)
}

// New builds a streamer over an already decoded source. The ring is
// sized for BufferSeconds of output audio.
func New(src pcm.Reader, outputRate float64) (*Streamer, error) {
	if outputRate <= 0 {
		return nil, pcm.ErrInvalidSampleRate
	}

	info := src.Info()
	if info.TotalFrames == 0 {
		return nil, pcm.ErrNoFrames
	}

	rs, err := resample.New(info.SampleRate, outputRate, info.Channels)
	if err != nil {
		return nil, fmt.Errorf("building resampler: %w", err)
	}

	rb, err := ring.New(int(outputRate) * BufferSeconds * info.Channels)
	if err != nil {
		return nil, fmt.Errorf("building ring buffer: %w", err)
	}

	// Worst-case output frames produced from one native chunk, plus a
	// little slack for the retained history.
	outCap := chunkFrames
	if !rs.Identity() {
		outCap = int(math.Ceil(float64(chunkFrames)/rs.Ratio())) + 4
	}

	s := &Streamer{
		src:        src,
		info:       info,
		outputRate: outputRate,
		rs:         rs,
		ring:       rb,
		nativeBuf:  make([]float32, chunkFrames*info.Channels),
		outBuf:     make([]float32, outCap*info.Channels),
	}
	s.gain.Store(math.Float32bits(1.0))

	return s, nil
}

// Info returns the native stream parameters.
func (s *Streamer) Info() pcm.Info { return s.info }

// OutputRate returns the rate the ring buffer is filled at.
func (s *Streamer) OutputRate() float64 { return s.outputRate }

// OutputFrames returns the file duration expressed in output-rate
// frames, the wrap point of the playback position.
func (s *Streamer) OutputFrames() uint64 {
	return uint64(math.Ceil(float64(s.info.TotalFrames) * s.outputRate / s.info.SampleRate))
}

// BufferUsed returns the number of samples currently buffered.
func (s *Streamer) BufferUsed() int { return s.ring.UsedSlots() }

// BufferCapacity returns the fixed ring capacity in samples.
func (s *Streamer) BufferCapacity() int { return s.ring.Capacity() }

// StartPlayback pre-fills the ring to at least 90% of capacity, then
// launches the background refill goroutine. It fails when pre-filling
// makes no forward progress for 250 ms.
func (s *Streamer) StartPlayback() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}

	target := int(float64(s.ring.Capacity()) * prefillFraction)
	lastUsed := s.ring.UsedSlots()
	lastProgress := time.Now()

	for s.ring.UsedSlots() < target {
		s.refill()

		used := s.ring.UsedSlots()
		if used > lastUsed {
			lastUsed = used
			lastProgress = time.Now()
			continue
		}

		if time.Since(lastProgress) > prefillStallBudget {
			if err := s.LastError(); err != nil {
				return fmt.Errorf("%w: %w", ErrPrefillStalled, err)
			}
			return ErrPrefillStalled
		}
		time.Sleep(5 * time.Millisecond)
	}

	s.stopCh = make(chan struct{})
	s.done = make(chan struct{})
	s.started = true
	go s.refillLoop()

	return nil
}

// PopBlock fills dst with the next interleaved samples, applying the
// current gain. It fills dst completely or not at all; false means
// underrun and the caller should render silence. len(dst) must be
// frames × channels. Never blocks, never allocates.
func (s *Streamer) PopBlock(dst []float32) bool {
	if !s.ring.PopSlice(dst) {
		return false
	}

	if g := s.Gain(); g != 1.0 {
		for i := range dst {
			dst[i] *= g
		}
	}

	return true
}

// Seek moves the read cursor to the given native frame, wrapped modulo
// the file length, flushing all buffered and in-flight audio so nothing
// from before the seek is ever heard. Returns the wrapped frame.
func (s *Streamer) Seek(frame uint64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	frame %= s.info.TotalFrames
	s.relocate(func() { s.cursor = frame })

	return frame
}

// SkipForward advances the read cursor by the given number of seconds,
// wrapped modulo the file length. Returns the new native frame.
func (s *Streamer) SkipForward(seconds float64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	delta := uint64(math.Round(seconds * s.info.SampleRate))

	var frame uint64
	s.relocate(func() {
		frame = (s.cursor + delta) % s.info.TotalFrames
		s.cursor = frame
	})

	return frame
}

// SetGain sets the playback gain, clamped to [0,1]. Takes effect on the
// next popped block.
func (s *Streamer) SetGain(g float32) {
	if g < 0 {
		g = 0
	}
	if g > 1 {
		g = 1
	}
	s.gain.Store(math.Float32bits(g))
}

// Gain returns the current playback gain.
func (s *Streamer) Gain() float32 {
	return math.Float32frombits(s.gain.Load())
}

// PollLoopEvent consumes the loop flag, reporting whether the read
// cursor wrapped since the last poll. Wraps between polls coalesce into
// one event. Exactly one goroutine should poll.
func (s *Streamer) PollLoopEvent() bool {
	return s.looped.Swap(false)
}

// LastError returns the most recent transient read failure, or nil.
// Such failures do not stop the stream; the read is retried on the next
// refill tick.
func (s *Streamer) LastError() error {
	if p := s.lastErr.Load(); p != nil {
		return *p
	}
	return nil
}

// Close stops the refill goroutine and waits for it to exit. The
// render consumer must be detached before Close is called.
func (s *Streamer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		close(s.stopCh)
		<-s.done
		s.started = false
	}

	return nil
}

// relocate runs move with the producer parked, then flushes the ring,
// the resampler history and the pending remainder. Callers hold mu.
func (s *Streamer) relocate(move func()) {
	s.gen.Add(1)
	s.parkProducer(func() {
		move()
		s.rs.Reset()
		s.pending = s.pending[:0]
		s.pendingOff = 0
		s.ring.Reset()
	})
}

// parkProducer runs fn while the refill goroutine is guaranteed to be
// between passes. The wait is bounded; if the producer fails to park in
// time, fn still runs and the generation counter invalidates whatever
// the straggling pass produces.
func (s *Streamer) parkProducer(fn func()) {
	if !s.started {
		fn()
		return
	}

	s.quiesce.Store(true)
	deadline := time.Now().Add(quiesceTimeout)
	for !s.parked.Load() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	fn()
	s.quiesce.Store(false)
}

func (s *Streamer) refillLoop() {
	defer close(s.done)

	ticker := time.NewTicker(refillInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
		}

		if s.quiesce.Load() {
			s.parked.Store(true)
			continue
		}
		s.parked.Store(false)

		s.refill()
	}
}

// refill runs one producer pass: drain the pending remainder, then
// decode, resample and push native chunks until the ring is full.
func (s *Streamer) refill() {
	gen := s.gen.Load()
	ch := s.info.Channels

	// A remainder from a pass that predates a seek is stale audio.
	if s.pendingOff < len(s.pending) && s.pendingGen != gen {
		s.pending = s.pending[:0]
		s.pendingOff = 0
	}

	for s.pendingOff < len(s.pending) {
		if !s.ring.Push(s.pending[s.pendingOff]) {
			return
		}
		s.pendingOff++
	}
	s.pending = s.pending[:0]
	s.pendingOff = 0

	wrapped := false
	for s.ring.FreeSlots() >= ch {
		if s.gen.Load() != gen {
			return // seek landed mid-pass
		}

		n, err := s.src.ReadFrames(s.cursor, s.nativeBuf)
		if err != nil && err != io.EOF {
			s.lastErr.Store(&err)
			return
		}

		if n == 0 {
			if wrapped {
				return // source yields nothing even at frame zero
			}
			s.cursor = 0
			s.looped.Store(true)
			wrapped = true
			continue
		}
		wrapped = false

		s.lastErr.Store(nil)
		s.cursor += uint64(n)

		if s.cursor >= s.info.TotalFrames {
			// Seamless loop: wrap the cursor and keep the resampler
			// history so interpolation runs straight across the joint.
			s.cursor = 0
			s.looped.Store(true)
		}

		produced, perr := s.rs.Process(s.outBuf, s.nativeBuf[:n*ch])
		if perr != nil {
			s.lastErr.Store(&perr)
			return
		}

		for i := range produced * ch {
			if s.ring.Push(s.outBuf[i]) {
				continue
			}
			// Ring filled mid-chunk: keep the rest for the next pass so
			// no sample is lost or duplicated.
			s.pending = append(s.pending[:0], s.outBuf[i:produced*ch]...)
			s.pendingOff = 0
			s.pendingGen = gen
			return
		}
	}
}
