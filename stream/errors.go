// SPDX-License-Identifier: EPL-2.0

package stream

import "errors"

var (
	// ErrAlreadyStarted is returned when StartPlayback is called twice
	// without an intervening Close.
	ErrAlreadyStarted = errors.New("playback already started")

	// ErrPrefillStalled is returned when the pre-fill makes no forward
	// progress within the stall budget.
	ErrPrefillStalled = errors.New("buffer pre-fill stalled")
)
