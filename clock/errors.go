// SPDX-License-Identifier: EPL-2.0

package clock

import "errors"

var (
	// ErrInvalidRate is returned when the output sample rate is not positive.
	ErrInvalidRate = errors.New("output rate must be positive")

	// ErrInvalidDuration is returned when the file duration is zero frames.
	ErrInvalidDuration = errors.New("total frames must be positive")
)
