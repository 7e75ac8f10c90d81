// SPDX-License-Identifier: EPL-2.0

package bridge

import "github.com/ik5/audplay/clock"

// Bridge keeps an external transport informed of playback state. The
// engine calls the Notify methods from its control path after each
// command takes effect; implementations must never block the render
// path.
type Bridge interface {
	// Start begins any background activity the bridge needs.
	Start() error
	// Close stops background activity and releases resources.
	Close() error

	NotifyPlay()
	NotifyPause()
	NotifyStop()
	// NotifySeek reports a relocation to the given position in seconds.
	NotifySeek(seconds float64)
}

// PositionSource is the read side a timebase master samples. Both
// methods must be safe to call from the host's real-time callback.
// *clock.Clock satisfies it.
type PositionSource interface {
	PositionFrames() uint64
	State() clock.State
}

// StatusSource is what a broadcaster periodically samples: the playback
// position in seconds and the loop event. The broadcaster is the sole
// consumer of the loop event while installed.
type StatusSource interface {
	PositionSeconds() float64
	PollLoopEvent() bool
}
