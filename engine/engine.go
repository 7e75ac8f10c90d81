// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"
	"math"
	"sync"

	"github.com/ik5/audplay/bridge"
	"github.com/ik5/audplay/clock"
	"github.com/ik5/audplay/pcm"
	"github.com/ik5/audplay/stream"
)

// Engine is the composition root of the player: it wires a file
// streamer, the playback clock and an optional transport bridge, and
// exposes the render entry point plus the control surface.
//
// ProcessBlock is the hot path and must be called by exactly one
// goroutine, the hosting audio backend's render callback. Control
// methods may be called from any goroutine.
type Engine struct {
	streamer *stream.Streamer
	clk      *clock.Clock
	br       bridge.Bridge

	channels int

	fade     atomicFloat32
	shutting sync.Once

	// Scratch buffers for channel remapping and planar conversion.
	// Sized on first use; block sizes are stable in practice, so the
	// render path allocates at most once per size change.
	popScratch    []float32
	planarScratch []float32

	mu sync.Mutex
}

// New builds an engine over a streamer that has not yet started
// playback. Call AttachBridge before Play when transport sync is
// wanted, then StartPlayback on the streamer or Start here.
func New(s *stream.Streamer) (*Engine, error) {
	clk, err := clock.New(s.OutputRate(), s.OutputFrames())
	if err != nil {
		return nil, fmt.Errorf("building clock: %w", err)
	}

	e := &Engine{
		streamer: s,
		clk:      clk,
		channels: s.Info().Channels,
	}
	e.fade.store(1.0)

	return e, nil
}

// AttachBridge installs and starts a transport bridge. The engine
// notifies it on every transport command and closes it with the engine.
func (e *Engine) AttachBridge(b bridge.Bridge) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.br = b
	if err := b.Start(); err != nil {
		return fmt.Errorf("starting bridge: %w", err)
	}

	return nil
}

// Start pre-fills the stream buffer and launches the refill goroutine.
// Playback still begins only on Play.
func (e *Engine) Start() error {
	return e.streamer.StartPlayback()
}

// ProcessBlock renders the next block of interleaved audio into dst.
// It never blocks: when the transport is stopped or paused, or the
// stream buffer has run dry, the block is silence and the position does
// not advance. dst.Channels may differ from the file's channel count;
// extra channels repeat the last stream channel.
func (e *Engine) ProcessBlock(dst pcm.Interleaved) {
	if e.clk.State() != clock.Playing {
		dst.Zero()
		return
	}

	if dst.Channels == e.channels {
		if !e.streamer.PopBlock(dst.Data[:dst.Frames*e.channels]) {
			dst.Zero()
			return
		}
		e.applyFade(dst.Data[:dst.Frames*e.channels])
		e.advance(dst.Frames)
		return
	}

	need := dst.Frames * e.channels
	if cap(e.popScratch) < need {
		e.popScratch = make([]float32, need)
	}
	block := e.popScratch[:need]

	if !e.streamer.PopBlock(block) {
		dst.Zero()
		return
	}
	e.applyFade(block)

	// Remap stream channels onto the output layout: surplus output
	// channels duplicate the last stream channel, surplus stream
	// channels are dropped.
	for f := range dst.Frames {
		for c := range dst.Channels {
			sc := c
			if sc >= e.channels {
				sc = e.channels - 1
			}
			dst.Data[f*dst.Channels+c] = block[f*e.channels+sc]
		}
	}

	e.advance(dst.Frames)
}

// ProcessBlockPlanar renders into channel-planar buffers, converting at
// the boundary through a scratch interleaved block.
func (e *Engine) ProcessBlockPlanar(dst pcm.Planar) {
	channels := len(dst.Chans)
	need := dst.Frames * channels
	if cap(e.planarScratch) < need {
		e.planarScratch = make([]float32, need)
	}

	iv := pcm.Interleaved{
		Data:     e.planarScratch[:need],
		Frames:   dst.Frames,
		Channels: channels,
	}

	e.ProcessBlock(iv)
	pcm.Deinterleave(dst, iv)
}

// Play starts or resumes playback.
func (e *Engine) Play() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.clk.Play()
	if e.br != nil {
		e.br.NotifyPlay()
	}
}

// Pause suspends playback, holding the position.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.clk.Pause()
	if e.br != nil {
		e.br.NotifyPause()
	}
}

// Stop halts playback, resets the position to zero and rewinds the
// stream.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.clk.Stop()
	e.streamer.Seek(0)
	if e.br != nil {
		e.br.NotifyStop()
	}
}

// Seek relocates playback to the given position in seconds, wrapped at
// the file duration. Buffered audio from before the seek is flushed.
func (e *Engine) Seek(seconds float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	info := e.streamer.Info()
	native := e.streamer.Seek(uint64(math.Round(seconds * info.SampleRate)))
	e.snapClock(native)
}

// SkipForward jumps ahead by the given number of seconds, wrapping at
// the file duration.
func (e *Engine) SkipForward(seconds float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	native := e.streamer.SkipForward(seconds)
	e.snapClock(native)
}

// Info returns the native parameters of the loaded file.
func (e *Engine) Info() pcm.Info { return e.streamer.Info() }

// SetGain sets the playback gain, clamped to [0,1].
func (e *Engine) SetGain(g float32) { e.streamer.SetGain(g) }

// Gain returns the current playback gain.
func (e *Engine) Gain() float32 { return e.streamer.Gain() }

// PollLoopEvent consumes the loop flag. When a Broadcaster bridge is
// attached its sync loop is the consumer; poll here only otherwise.
func (e *Engine) PollLoopEvent() bool { return e.streamer.PollLoopEvent() }

// State returns the transport state.
func (e *Engine) State() clock.State { return e.clk.State() }

// PositionFrames returns the playback position in output frames.
func (e *Engine) PositionFrames() uint64 { return e.clk.PositionFrames() }

// PositionSeconds returns the playback position in seconds.
func (e *Engine) PositionSeconds() float64 { return e.clk.PositionSeconds() }

// LastError returns the stream's most recent transient read failure.
func (e *Engine) LastError() error { return e.streamer.LastError() }

// Close tears the engine down: bridge first, then the stream. The
// render consumer must already be detached.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var firstErr error
	if e.br != nil {
		if err := e.br.Close(); err != nil {
			firstErr = err
		}
		e.br = nil
	}

	if err := e.streamer.Close(); err != nil && firstErr == nil {
		firstErr = err
	}

	return firstErr
}

func (e *Engine) applyFade(block []float32) {
	f := e.fade.load()
	if f == 1.0 {
		return
	}

	for i := range block {
		block[i] *= f
	}
}

func (e *Engine) advance(frames int) {
	e.clk.Advance(uint64(frames))
}

// snapClock converts a native frame to output frames and snaps the
// clock to it. Callers hold mu.
func (e *Engine) snapClock(nativeFrame uint64) {
	info := e.streamer.Info()
	out := uint64(math.Round(float64(nativeFrame) * e.streamer.OutputRate() / info.SampleRate))
	e.clk.SetPosition(out)

	if e.br != nil {
		e.br.NotifySeek(float64(nativeFrame) / info.SampleRate)
	}
}
