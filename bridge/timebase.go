// SPDX-License-Identifier: EPL-2.0

package bridge

import (
	"sync/atomic"

	"github.com/ik5/audplay/clock"
)

// TimebaseMaster serves position queries from a hosting audio backend
// that pulls transport state, e.g. a timebase callback. It has no
// goroutine of its own; the host calls ReportPosition and Playing from
// its callback context, so both are single atomic loads.
//
// An explicit stop engages a hold-at-zero latch: the master keeps
// reporting position zero until the next play command, even if the
// underlying counter briefly holds a stale value. A loop wrap needs no
// special casing here because the position counter itself wraps to
// zero while the state stays Playing.
type TimebaseMaster struct {
	src        PositionSource
	holdAtZero atomic.Bool
}

// NewTimebaseMaster creates a master reporting positions from src.
func NewTimebaseMaster(src PositionSource) *TimebaseMaster {
	return &TimebaseMaster{src: src}
}

// Start is a no-op; the master is passive.
func (m *TimebaseMaster) Start() error { return nil }

// Close is a no-op.
func (m *TimebaseMaster) Close() error { return nil }

// NotifyPlay releases the hold-at-zero latch.
func (m *TimebaseMaster) NotifyPlay() { m.holdAtZero.Store(false) }

// NotifyPause keeps reporting the held position.
func (m *TimebaseMaster) NotifyPause() {}

// NotifyStop engages the hold-at-zero latch.
func (m *TimebaseMaster) NotifyStop() { m.holdAtZero.Store(true) }

// NotifySeek is a no-op; the next ReportPosition picks up the new
// counter value.
func (m *TimebaseMaster) NotifySeek(seconds float64) {}

// ReportPosition returns the playback position in output frames.
// Non-blocking; safe from the host's real-time callback.
func (m *TimebaseMaster) ReportPosition() uint64 {
	if m.holdAtZero.Load() {
		return 0
	}
	return m.src.PositionFrames()
}

// Playing reports whether the transport should be rolling.
func (m *TimebaseMaster) Playing() bool {
	return m.src.State() == clock.Playing
}
