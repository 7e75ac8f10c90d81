// SPDX-License-Identifier: EPL-2.0

package bridge

import "errors"

// ErrAlreadyStarted is returned when Start is called on a bridge whose
// background activity is already running.
var ErrAlreadyStarted = errors.New("bridge already started")
