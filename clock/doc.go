// SPDX-License-Identifier: EPL-2.0

// Package clock tracks playback transport state and position.
//
// A Clock is a small state machine over Stopped, Playing and Paused
// with an atomically readable position in output-rate frames and in
// seconds. Transitions:
//
//	Stopped --Play--> Playing <--Play/Pause--> Paused
//	Playing/Paused --Stop--> Stopped (position reset to zero)
//
// The position advances only when the render consumer reports frames it
// actually wrote, so the clock never runs ahead of audible audio. When
// the position reaches the file duration it wraps back to zero, which
// is how seamless looping is represented.
package clock
