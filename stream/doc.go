// SPDX-License-Identifier: EPL-2.0

// Package stream moves decoded file audio into the real-time render
// path.
//
// A Streamer owns the producer side of an SPSC ring buffer: a
// background goroutine wakes every 10 ms, reads native frames from the
// decoded clip, resamples them to the output rate and pushes the result
// into the ring. The render path drains the ring with PopBlock, which
// never blocks and never allocates; when the ring runs dry the caller
// plays silence instead.
//
// The stream loops: when the read cursor reaches the end of the file it
// wraps to frame zero and raises a loop event, keeping the resampler
// history intact so the joint is seamless.
//
// Seeking flushes everything between the file and the speaker. The
// control path parks the producer between ticks, resets the ring and
// the resampler, and bumps a generation counter that invalidates any
// resampled remainder still in flight, so audio from before the seek is
// never heard after it.
package stream
