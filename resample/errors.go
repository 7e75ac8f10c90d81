// SPDX-License-Identifier: EPL-2.0

package resample

import "errors"

var (
	ErrInvalidRate     = errors.New("sample rates must be positive")
	ErrInvalidChannels = errors.New("channel count must be at least 1")
	ErrInvalidDstSize  = errors.New("dst size must be multiple of channels")
	ErrInvalidSrcSize  = errors.New("src size must be multiple of channels")
)
