// SPDX-License-Identifier: EPL-2.0

package ring

import "errors"

var (
	ErrInvalidCapacity = errors.New("capacity must be positive")
)
