// SPDX-License-Identifier: EPL-2.0

// Package ring provides the lock-free sample queue between the file
// streaming producer and the real-time render consumer.
//
// The buffer enforces single-producer/single-consumer discipline: the
// background refill goroutine is the only pusher and the render path is
// the only popper. Under that discipline every operation is wait-free
// and allocation-free, which is what lets file I/O coexist with a
// hard-real-time audio callback.
//
// The invariant UsedSlots() + FreeSlots() == Capacity() holds at every
// point in time from either side's perspective.
package ring
