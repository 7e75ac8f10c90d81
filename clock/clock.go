// SPDX-License-Identifier: EPL-2.0

package clock

import (
	"math"
	"sync/atomic"
)

// State is the transport state of a playback clock.
type State int32

const (
	// Stopped means playback is inactive and the position is held at zero.
	Stopped State = iota
	// Playing means the render path is consuming audio and advancing
	// the position.
	Playing
	// Paused means playback is suspended with the position held.
	Paused
)

// String returns a human readable state name.
func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "unknown"
	}
}

// Clock tracks the transport state and playback position of a single
// file. The position is kept both as a frame counter in output-rate
// frames, wrapped at the file duration, and as a derived seconds value.
//
// Position updates come from exactly one goroutine (the render
// consumer calling Advance or SetPosition); reads are safe from any
// goroutine.
type Clock struct {
	totalFrames uint64
	outputRate  float64

	state   atomic.Int32
	frames  atomic.Uint64
	seconds atomic.Uint64 // math.Float64bits
}

// New creates a stopped clock for a file of totalFrames frames at the
// given output rate. totalFrames is the wrap point; both arguments must
// be positive.
func New(outputRate float64, totalFrames uint64) (*Clock, error) {
	if outputRate <= 0 {
		return nil, ErrInvalidRate
	}
	if totalFrames == 0 {
		return nil, ErrInvalidDuration
	}

	return &Clock{
		totalFrames: totalFrames,
		outputRate:  outputRate,
	}, nil
}

// State returns the current transport state.
func (c *Clock) State() State {
	return State(c.state.Load())
}

// Play transitions the clock to Playing. Resuming from Paused keeps the
// held position; starting from Stopped continues from zero.
func (c *Clock) Play() {
	c.state.Store(int32(Playing))
}

// Pause suspends playback, holding the position. Pausing a stopped
// clock is a no-op.
func (c *Clock) Pause() {
	c.state.CompareAndSwap(int32(Playing), int32(Paused))
}

// Stop halts playback and resets the position to zero.
func (c *Clock) Stop() {
	c.state.Store(int32(Stopped))
	c.storePosition(0)
}

// Advance moves the position forward by n frames, wrapping at the file
// duration. It reports whether the position wrapped. Only the render
// consumer may call Advance.
func (c *Clock) Advance(n uint64) bool {
	pos := c.frames.Load() + n
	wrapped := pos >= c.totalFrames
	if wrapped {
		pos %= c.totalFrames
	}
	c.storePosition(pos)

	return wrapped
}

// SetPosition snaps the position to the given frame, wrapping at the
// file duration. Used by the control path after a seek, while the
// render side is drained.
func (c *Clock) SetPosition(frame uint64) {
	c.storePosition(frame % c.totalFrames)
}

// PositionFrames returns the position in output-rate frames.
func (c *Clock) PositionFrames() uint64 {
	return c.frames.Load()
}

// PositionSeconds returns the position in seconds.
func (c *Clock) PositionSeconds() float64 {
	return math.Float64frombits(c.seconds.Load())
}

// TotalFrames returns the wrap point in output-rate frames.
func (c *Clock) TotalFrames() uint64 {
	return c.totalFrames
}

func (c *Clock) storePosition(frame uint64) {
	c.frames.Store(frame)
	c.seconds.Store(math.Float64bits(float64(frame) / c.outputRate))
}
